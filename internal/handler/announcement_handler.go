package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"e-county-api/internal/domain"
	"e-county-api/internal/middleware"
	"e-county-api/internal/service/announcement"
)

type AnnouncementHandler struct {
	annService announcement.Service
}

func NewAnnouncementHandler(annService announcement.Service) *AnnouncementHandler {
	return &AnnouncementHandler{annService: annService}
}

func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	var input domain.CreateAnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.annService.Create(c.Context(), user, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoAnnouncementRights):
			return middleware.Forbidden("You do not have permission to create announcements")
		case errors.Is(err, announcement.ErrMissingFields),
			errors.Is(err, announcement.ErrInvalidVisibility):
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"message":      "Announcement published",
		"announcement": created,
	})
}

func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	params := paginationFromQuery(c)
	result, err := h.annService.ListForRole(c.Context(), user.Role, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"announcements": result.Items,
		"total":         result.Total,
		"page":          result.Page,
		"pages":         result.Pages,
	})
}

func (h *AnnouncementHandler) Get(c *fiber.Ctx) error {
	annID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	ann, err := h.annService.Get(c.Context(), annID)
	if err != nil {
		if errors.Is(err, domain.ErrAnnouncementNotFound) {
			return middleware.NotFound("Announcement not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"announcement": ann,
	})
}

func (h *AnnouncementHandler) MyAnnouncements(c *fiber.Ctx) error {
	params := paginationFromQuery(c)
	result, err := h.annService.ListMine(c.Context(), middleware.GetCurrentUserID(c), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"announcements": result.Items,
		"total":         result.Total,
		"page":          result.Page,
		"pages":         result.Pages,
	})
}

func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	annID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	var input domain.UpdateAnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.annService.Update(c.Context(), annID, user, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAnnouncementNotFound):
			return middleware.NotFound("Announcement not found")
		case errors.Is(err, domain.ErrAnnouncementForbidden):
			return middleware.Forbidden("Not authorized to modify this announcement")
		case errors.Is(err, announcement.ErrInvalidStatus),
			errors.Is(err, announcement.ErrInvalidVisibility):
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"message":      "Announcement updated",
		"announcement": updated,
	})
}

func (h *AnnouncementHandler) Archive(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	annID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	archived, err := h.annService.Archive(c.Context(), annID, user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAnnouncementNotFound):
			return middleware.NotFound("Announcement not found")
		case errors.Is(err, domain.ErrAnnouncementForbidden):
			return middleware.Forbidden("Not authorized to modify this announcement")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"message":      "Announcement archived",
		"announcement": archived,
	})
}

func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	annID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid announcement ID")
	}

	if err := h.annService.Delete(c.Context(), annID, user); err != nil {
		switch {
		case errors.Is(err, domain.ErrAnnouncementNotFound):
			return middleware.NotFound("Announcement not found")
		case errors.Is(err, domain.ErrAnnouncementForbidden):
			return middleware.Forbidden("Not authorized to modify this announcement")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Announcement deleted",
	})
}
