package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"e-county-api/internal/domain"
	"e-county-api/internal/middleware"
	"e-county-api/internal/service/department"
)

type DepartmentHandler struct {
	deptService department.Service
}

func NewDepartmentHandler(deptService department.Service) *DepartmentHandler {
	return &DepartmentHandler{deptService: deptService}
}

func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	departments, err := h.deptService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"departments": departments,
	})
}

func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	deptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid department ID")
	}

	dept, err := h.deptService.GetByID(c.Context(), deptID)
	if err != nil {
		if errors.Is(err, domain.ErrDepartmentNotFound) {
			return middleware.NotFound("Department not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"department": dept,
	})
}
