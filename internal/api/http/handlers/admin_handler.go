package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-tracker/internal/api/dto"
	"github.com/spec-kit/sla-tracker/internal/service"
)

// AdminHandler serves destructive maintenance endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ClearData DELETE /api/clear-data.
func (h *AdminHandler) ClearData(c *fiber.Ctx) error {
	result, err := h.admin.ClearAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.ClearDataResponse{
		Message:        "all data cleared",
		TicketsDeleted: result.TicketsDeleted,
		AgentsDeleted:  result.AgentsDeleted,
	})
}
