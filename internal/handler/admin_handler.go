package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"e-county-api/internal/domain"
	"e-county-api/internal/middleware"
	"e-county-api/internal/service/dashboard"
	"e-county-api/internal/service/export"
	"e-county-api/internal/service/issue"
	"e-county-api/internal/service/user"
)

type AdminHandler struct {
	userService      user.Service
	issueService     issue.Service
	dashboardService dashboard.Service
	exportService    export.Service
}

func NewAdminHandler(userService user.Service, issueService issue.Service, dashboardService dashboard.Service, exportService export.Service) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		issueService:     issueService,
		dashboardService: dashboardService,
		exportService:    exportService,
	}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	params := paginationFromQuery(c)

	var filter domain.UserFilter
	if raw := c.Query("role"); raw != "" {
		role := domain.UserRole(raw)
		if role.IsValid() {
			filter.Role = &role
		}
	}

	result, err := h.userService.List(c.Context(), filter, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"users":   result.Items,
		"total":   result.Total,
		"page":    result.Page,
		"pages":   result.Pages,
	})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.userService.CreateUser(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailExists):
			return middleware.Conflict("Email already registered")
		case errors.Is(err, domain.ErrDepartmentNotFound):
			return middleware.BadRequest("Department not found")
		case errors.Is(err, user.ErrMissingFields),
			errors.Is(err, user.ErrInvalidRole),
			errors.Is(err, user.ErrNoDepartment):
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User created. Credentials have been emailed.",
		"user":    created,
	})
}

func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}
	if userID == middleware.GetCurrentUserID(c) {
		return middleware.BadRequest("You cannot deactivate your own account")
	}

	if err := h.userService.Deactivate(c.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User deactivated",
	})
}

func (h *AdminHandler) ListIssues(c *fiber.Ctx) error {
	params := paginationFromQuery(c)
	filter := issueFilterFromQuery(c)

	result, err := h.issueService.List(c.Context(), filter, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"issues":  result.Items,
		"total":   result.Total,
		"page":    result.Page,
		"pages":   result.Pages,
	})
}

func (h *AdminHandler) VerifyIssue(c *fiber.Ctx) error {
	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid issue ID")
	}

	var input struct {
		Status domain.IssueStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	verified, err := h.issueService.Verify(c.Context(), issueID, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIssueNotFound):
			return middleware.NotFound("Issue not found")
		case errors.Is(err, issue.ErrVerifyStatus):
			return middleware.BadRequest("Status must be pending, verified, or assigned")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Issue verified",
		"issue":   verified,
	})
}

func (h *AdminHandler) AssignIssue(c *fiber.Ctx) error {
	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid issue ID")
	}

	var input struct {
		OfficerID uuid.UUID `json:"officer_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	assigned, err := h.issueService.Assign(c.Context(), issueID, input.OfficerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIssueNotFound):
			return middleware.NotFound("Issue not found")
		case errors.Is(err, issue.ErrOfficerMissing), errors.Is(err, issue.ErrInvalidOfficer):
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Issue assigned",
		"issue":   assigned,
	})
}

func (h *AdminHandler) ListOfficers(c *fiber.Ctx) error {
	var departmentID *uuid.UUID
	if raw := c.Query("department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.BadRequest("Invalid department ID")
		}
		departmentID = &id
	}

	officers, err := h.userService.ListOfficers(c.Context(), departmentID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"officers": officers,
	})
}

func (h *AdminHandler) ListOfficersWithPermissions(c *fiber.Ctx) error {
	officers, err := h.userService.ListOfficers(c.Context(), nil)
	if err != nil {
		return err
	}

	allowed := make([]domain.User, 0, len(officers))
	for _, officer := range officers {
		if officer.CanCreateAnnouncement {
			allowed = append(allowed, officer)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"officers": allowed,
	})
}

func (h *AdminHandler) SetAnnouncementPermission(c *fiber.Ctx) error {
	officerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid officer ID")
	}

	var input struct {
		Allowed bool `json:"allowed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.userService.SetAnnouncementPermission(c.Context(), officerID, input.Allowed)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return middleware.NotFound("User not found")
		case errors.Is(err, domain.ErrNotAnOfficer):
			return middleware.BadRequest("User is not a field officer")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Announcement permission updated",
		"user":    updated,
	})
}

// ExportReports streams the issue report in the requested format.
// format=csv downloads a file; format=pdf returns the JSON payload the
// frontend renders into a PDF.
func (h *AdminHandler) ExportReports(c *fiber.Ctx) error {
	switch c.Query("format", "csv") {
	case "csv":
		csvData, err := h.exportService.ExportCSV(c.Context())
		if err != nil {
			return err
		}
		fileName := "issue-report-" + time.Now().Format("2006-01-02") + ".csv"
		c.Set("Content-Type", "text/csv")
		c.Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
		return c.SendString(csvData)
	case "pdf":
		data, err := h.exportService.ExportPDFData(c.Context())
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"report":  data,
		})
	default:
		return middleware.BadRequest("Unsupported export format")
	}
}
