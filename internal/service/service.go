package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"e-county-api/internal/config"
	"e-county-api/internal/repository"
	"e-county-api/internal/service/announcement"
	"e-county-api/internal/service/auth"
	"e-county-api/internal/service/dashboard"
	"e-county-api/internal/service/department"
	"e-county-api/internal/service/email"
	"e-county-api/internal/service/export"
	"e-county-api/internal/service/issue"
	"e-county-api/internal/service/media"
	"e-county-api/internal/service/notification"
	"e-county-api/internal/service/routing"
	"e-county-api/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Issue        issue.Service
	Department   department.Service
	Announcement announcement.Service
	Notification notification.Service
	Media        media.Service
	Email        email.Service
	Routing      routing.Service
	Dashboard    dashboard.Service
	Export       export.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Department, repos.Session, emailService, cfg)
	routingService := routing.NewService(repos.Department, repos.User)
	notificationService := notification.NewService(repos.Notification, repos.User, emailService)

	issueService := issue.NewService(repos.Issue, repos.User, routingService)
	issueService.SetNotificationService(notificationService)

	departmentService := department.NewService(repos.Department)
	announcementService := announcement.NewService(repos.Announcement)
	mediaService := media.NewService(minioClient, cfg)
	dashboardService := dashboard.NewService(repos.User, repos.Issue, repos.Department, redis)
	exportService := export.NewService(repos.Issue)
	userService := user.NewService(repos.User, repos.Department, emailService)

	return &Services{
		Auth:         authService,
		User:         userService,
		Issue:        issueService,
		Department:   departmentService,
		Announcement: announcementService,
		Notification: notificationService,
		Media:        mediaService,
		Email:        emailService,
		Routing:      routingService,
		Dashboard:    dashboardService,
		Export:       exportService,
	}
}
