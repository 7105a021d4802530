package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-helpdesk/internal/api/dto"
	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/events"
	"github.com/spec-kit/campus-helpdesk/internal/observability"
	"github.com/spec-kit/campus-helpdesk/internal/service"
	apperrors "github.com/spec-kit/campus-helpdesk/pkg/util"
)

// AdminHandler serves the administrative surface backing the dashboard:
// full request listings, status overrides, roster management and
// reporting.
type AdminHandler struct {
	requests  *service.RequestService
	roster    *service.RosterService
	metrics   *observability.Metrics
	adminName string
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(requestService *service.RequestService, rosterService *service.RosterService, metrics *observability.Metrics, adminName string) *AdminHandler {
	return &AdminHandler{
		requests:  requestService,
		roster:    rosterService,
		metrics:   metrics,
		adminName: adminName,
	}
}

var listableStatuses = map[domain.RequestStatus]struct{}{
	domain.RequestStatusPending:      {},
	domain.RequestStatusMatched:      {},
	domain.RequestStatusNoTimeMatch:  {},
	domain.RequestStatusNoTechnician: {},
	domain.RequestStatusWorking:      {},
	domain.RequestStatusResolved:     {},
	domain.RequestStatusCompleted:    {},
}

// ListRequests handles GET /admin/requests with an optional ?status=
// filter.
func (h *AdminHandler) ListRequests(c *fiber.Ctx) error {
	var status *domain.RequestStatus
	if raw := c.Query("status"); raw != "" {
		candidate := domain.RequestStatus(raw)
		if _, ok := listableStatuses[candidate]; !ok {
			return apperrors.NewValidationError("unknown status filter", map[string]any{"status": raw})
		}
		status = &candidate
	}

	requests, err := h.requests.ListRequests(c.Context(), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestRecords(requests)})
}

// UpdateStatus handles PATCH /admin/requests/status.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RequestID == "" || req.Status == "" {
		return apperrors.NewValidationError("request_id and status required", nil)
	}

	name := h.adminName
	actor := events.Actor{Type: domain.SubjectTypeAdmin, ActorName: &name}
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

// ListTechnicians handles GET /admin/technicians.
func (h *AdminHandler) ListTechnicians(c *fiber.Ctx) error {
	technicians, err := h.roster.ListTechnicians(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTechnicianRecords(technicians)})
}

// OnboardTechnician handles POST /admin/technicians.
func (h *AdminHandler) OnboardTechnician(c *fiber.Ctx) error {
	var req dto.OnboardTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	technician, err := h.roster.OnboardTechnician(c.Context(), service.OnboardInput{
		Name:      req.Name,
		Role:      req.Role,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTechnicianRecord(technician)})
}

// Analytics handles GET /admin/analytics: request counts by category plus
// intake pipeline counters.
func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	byCategory := h.requests.Analytics(c.Context())
	outcomes, duplicates := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"requests":         dto.AnalyticsResponse{ByCategory: byCategory},
			"intake_outcomes":  outcomes,
			"duplicates_found": duplicates,
		},
	})
}
