package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"e-county-api/internal/domain"
	"e-county-api/internal/middleware"
	"e-county-api/internal/service/issue"
	"e-county-api/internal/service/media"
)

type IssueHandler struct {
	issueService issue.Service
	mediaService media.Service
}

func NewIssueHandler(issueService issue.Service, mediaService media.Service) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
		mediaService: mediaService,
	}
}

func (h *IssueHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateIssueInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.issueService.Create(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return middleware.BadRequest(err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Issue reported successfully",
		"issue":   created,
	})
}

func (h *IssueHandler) List(c *fiber.Ctx) error {
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

func (h *IssueHandler) Get(c *fiber.Ctx) error {
	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid issue ID")
	}

	found, err := h.issueService.GetByID(c.Context(), issueID)
	if err != nil {
		if errors.Is(err, domain.ErrIssueNotFound) {
			return middleware.NotFound("Issue not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"issue":   found,
	})
}

func (h *IssueHandler) MyIssues(c *fiber.Ctx) error {
	params := paginationFromQuery(c)
	status := statusFromQuery(c)

	result, err := h.issueService.ListMine(c.Context(), middleware.GetCurrentUserID(c), status, params)
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

func (h *IssueHandler) AssignedIssues(c *fiber.Ctx) error {
	params := paginationFromQuery(c)
	status := statusFromQuery(c)

	result, err := h.issueService.ListAssigned(c.Context(), middleware.GetCurrentUserID(c), status, params)
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

func (h *IssueHandler) OfficerStats(c *fiber.Ctx) error {
	stats, err := h.issueService.OfficerStats(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}

func (h *IssueHandler) UpdateStatus(c *fiber.Ctx) error {
	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid issue ID")
	}

	var input domain.UpdateIssueStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.issueService.UpdateStatus(c.Context(), issueID, middleware.GetCurrentUserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIssueNotFound):
			return middleware.NotFound("Issue not found")
		case errors.Is(err, issue.ErrInvalidStatus):
			return middleware.BadRequest("Invalid status value")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Issue updated",
		"issue":   updated,
	})
}

func (h *IssueHandler) AddComment(c *fiber.Ctx) error {
	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid issue ID")
	}

	var input domain.AddCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.issueService.AddComment(c.Context(), issueID, middleware.GetCurrentUserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIssueNotFound):
			return middleware.NotFound("Issue not found")
		case errors.Is(err, domain.ErrNotAssignedOfficer):
			return middleware.Forbidden("You are not assigned to this issue")
		case errors.Is(err, issue.ErrEmptyComment):
			return middleware.BadRequest("Comment is required")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Comment added",
		"issue":   updated,
	})
}

func (h *IssueHandler) SubmitFeedback(c *fiber.Ctx) error {
	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid issue ID")
	}

	var input domain.SubmitFeedbackInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.issueService.SubmitFeedback(c.Context(), issueID, middleware.GetCurrentUserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIssueNotFound):
			return middleware.NotFound("Issue not found")
		case errors.Is(err, issue.ErrNotReporter):
			return middleware.Forbidden("Only the reporter may submit feedback")
		case errors.Is(err, domain.ErrIssueNotResolved):
			return middleware.BadRequest("Feedback can only be submitted on resolved issues")
		case errors.Is(err, domain.ErrFeedbackExists):
			return middleware.Conflict("Feedback already submitted for this issue")
		case errors.Is(err, issue.ErrInvalidRating):
			return middleware.BadRequest("Rating must be between 1 and 5")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Feedback submitted",
		"issue":   updated,
	})
}

// UploadPhoto accepts one multipart file and returns its public URL.
// Clients upload photos first, then reference the URLs when creating
// an issue or posting an update.
func (h *IssueHandler) UploadPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return middleware.BadRequest("Photo file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Could not read uploaded file")
	}
	defer file.Close()

	url, err := h.mediaService.UploadPhoto(
		c.Context(),
		fileHeader.Filename,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrFileTooLarge), errors.Is(err, media.ErrUnsupportedType):
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"url":     url,
	})
}

func paginationFromQuery(c *fiber.Ctx) domain.PaginationParams {
	params := domain.PaginationParams{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}
	params.Validate()
	return params
}

func statusFromQuery(c *fiber.Ctx) *domain.IssueStatus {
	if raw := c.Query("status"); raw != "" {
		status := domain.IssueStatus(raw)
		if status.IsValid() {
			return &status
		}
	}
	return nil
}

func issueFilterFromQuery(c *fiber.Ctx) domain.IssueFilter {
	filter := domain.IssueFilter{Status: statusFromQuery(c)}
	if raw := c.Query("category"); raw != "" {
		category := domain.IssueCategory(raw)
		if category.IsValid() {
			filter.Category = &category
		}
	}
	return filter
}
