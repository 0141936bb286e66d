package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"e-county-api/internal/config"
	"e-county-api/internal/domain"
	"e-county-api/internal/handler"
	"e-county-api/internal/middleware"
	"e-county-api/internal/repository"
	"e-county-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	rdb, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (caching and rate limiting disabled)", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (photo upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	if err := services.Department.EnsureSeedData(context.Background()); err != nil {
		log.Fatalf("Failed to seed departments: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services, rdb, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services, rdb *redis.Client, cfg *config.Config) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Post("/logout", h.Auth.Logout)
	auth.Get("/me", middleware.AuthRequired(services.Auth), h.Auth.Me)

	protected := api.Group("", middleware.AuthRequired(services.Auth))

	issues := protected.Group("/issues")
	issues.Post("/",
		middleware.RequireRole(domain.RoleCitizen),
		middleware.IssueRateLimiter(rdb, cfg.IssueDailyLimit),
		h.Issue.Create)
	issues.Post("/photos", h.Issue.UploadPhoto)
	issues.Get("/", h.Issue.List)
	issues.Get("/user/my-issues", h.Issue.MyIssues)
	issues.Get("/officer/assigned", middleware.RequireRole(domain.RoleOfficer), h.Issue.AssignedIssues)
	issues.Get("/officer/stats", middleware.RequireRole(domain.RoleOfficer), h.Issue.OfficerStats)
	issues.Get("/:id", h.Issue.Get)
	issues.Put("/:id/status", middleware.RequireAnyRole(domain.RoleOfficer, domain.RoleAdmin), h.Issue.UpdateStatus)
	issues.Post("/:id/comments", middleware.RequireRole(domain.RoleOfficer), h.Issue.AddComment)
	issues.Post("/:id/feedback", middleware.RequireRole(domain.RoleCitizen), h.Issue.SubmitFeedback)

	departments := protected.Group("/departments")
	departments.Get("/", h.Department.List)
	departments.Get("/:id", h.Department.Get)

	announcements := protected.Group("/announcements")
	announcements.Post("/", middleware.RequireAnyRole(domain.RoleOfficer, domain.RoleAdmin), h.Announcement.Create)
	announcements.Get("/", h.Announcement.List)
	announcements.Get("/user/my-announcements", middleware.RequireAnyRole(domain.RoleOfficer, domain.RoleAdmin), h.Announcement.MyAnnouncements)
	announcements.Get("/:id", h.Announcement.Get)
	announcements.Put("/:id/archive", middleware.RequireAnyRole(domain.RoleOfficer, domain.RoleAdmin), h.Announcement.Archive)
	announcements.Put("/:id", middleware.RequireAnyRole(domain.RoleOfficer, domain.RoleAdmin), h.Announcement.Update)
	announcements.Delete("/:id", middleware.RequireAnyRole(domain.RoleOfficer, domain.RoleAdmin), h.Announcement.Delete)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/count/unread", h.Notification.UnreadCount)
	notifications.Put("/read-all", h.Notification.MarkAllAsRead)
	notifications.Put("/:id/read", h.Notification.MarkAsRead)
	notifications.Delete("/:id", h.Notification.Delete)

	admin := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.Get("/stats", h.Admin.Stats)
	admin.Get("/users", h.Admin.ListUsers)
	admin.Post("/users/create", h.Admin.CreateUser)
	admin.Put("/users/:id/deactivate", h.Admin.DeactivateUser)
	admin.Get("/issues", h.Admin.ListIssues)
	admin.Put("/issues/:id/verify", h.Admin.VerifyIssue)
	admin.Put("/issues/:id/assign", h.Admin.AssignIssue)
	admin.Get("/officers/with-permissions", h.Admin.ListOfficersWithPermissions)
	admin.Get("/officers", h.Admin.ListOfficers)
	admin.Put("/officers/:id/announcement-permission", h.Admin.SetAnnouncementPermission)
	admin.Get("/reports/export", h.Admin.ExportReports)
}
