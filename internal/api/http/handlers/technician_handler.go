package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-helpdesk/internal/api/dto"
	"github.com/spec-kit/campus-helpdesk/internal/auth"
	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/events"
	"github.com/spec-kit/campus-helpdesk/internal/service"
	apperrors "github.com/spec-kit/campus-helpdesk/pkg/util"
)

// TechnicianHandler serves the technician work surface: assigned tasks
// and status updates on them.
type TechnicianHandler struct {
	requests *service.RequestService
}

// NewTechnicianHandler constructs the handler.
func NewTechnicianHandler(requestService *service.RequestService) *TechnicianHandler {
	return &TechnicianHandler{requests: requestService}
}

// Tasks handles GET /technician/tasks for the logged-in technician.
func (h *TechnicianHandler) Tasks(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Technician == nil {
		return apperrors.NewUnauthorized("technician login required")
	}

	requests, err := h.requests.TasksForTechnician(c.Context(), principal.Technician.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestRecords(requests)})
}

// UpdateTask handles PATCH /technician/tasks. A technician may only
// update requests assigned to them.
func (h *TechnicianHandler) UpdateTask(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Technician == nil {
		return apperrors.NewUnauthorized("technician login required")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RequestID == "" || req.Status == "" {
		return apperrors.NewValidationError("request_id and status required", nil)
	}

	request, err := h.requests.GetRequest(c.Context(), req.RequestID)
	if err != nil {
		return err
	}
	if request.Technician == nil || *request.Technician != principal.Technician.Name {
		return apperrors.NewForbidden("request is not assigned to you")
	}

	name := principal.Technician.Name
	actor := events.Actor{Type: domain.SubjectTypeTechnician, ActorName: &name}
	if err := h.requests.UpdateStatus(c.Context(), actor, req.RequestID, req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"request_id": req.RequestID,
			"status":     req.Status,
		},
	})
}
