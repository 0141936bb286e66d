package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"e-county-api/internal/domain"
	"e-county-api/internal/middleware"
	"e-county-api/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	params := paginationFromQuery(c)

	var isRead *bool
	if raw := c.Query("is_read"); raw != "" {
		val := raw == "true"
		isRead = &val
	}

	result, err := h.notifService.List(c.Context(), middleware.GetCurrentUserID(c), isRead, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"notifications": result.Items,
		"total":         result.Total,
		"page":          result.Page,
		"pages":         result.Pages,
	})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notifService.UnreadCount(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.MarkAsRead(c.Context(), notifID, middleware.GetCurrentUserID(c)); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	if err := h.notifService.MarkAllAsRead(c.Context(), middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "All notifications marked as read",
	})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.Delete(c.Context(), notifID, middleware.GetCurrentUserID(c)); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Notification deleted",
	})
}
