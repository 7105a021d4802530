package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-helpdesk/internal/api/dto"
	"github.com/spec-kit/campus-helpdesk/internal/auth"
	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/service"
	apperrors "github.com/spec-kit/campus-helpdesk/pkg/util"
)

// RequestsHandler serves the student-facing surface: submission, status
// lookup and submission history.
type RequestsHandler struct {
	intake   *service.IntakeService
	requests *service.RequestService
}

// NewRequestsHandler constructs the handler.
func NewRequestsHandler(intakeService *service.IntakeService, requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{intake: intakeService, requests: requestService}
}

// Submit handles POST /submit_request. The student identity comes from
// the authenticated principal, never the payload.
func (h *RequestsHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Student == nil {
		return apperrors.NewUnauthorized("student login required")
	}

	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Query) == "" {
		return apperrors.NewValidationError("query must not be empty", nil)
	}

	result, err := h.intake.Submit(c.Context(), service.SubmitInput{
		StudentID: principal.Student.StudentID,
		Query:     req.Query,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": dto.SubmitResponse{
			RequestID:       result.Request.RequestID,
			Category:        result.Request.Category,
			Reply:           result.Reply,
			Technician:      result.Request.Technician,
			StartTime:       result.Request.StartTime,
			EndTime:         result.Request.EndTime,
			AssignedTime:    result.Request.AssignedTime,
			StudentFreeTime: result.Request.StudentFreeTime,
			Status:          result.Request.Status,
			IsDuplicate:     result.IsDuplicate,
			DuplicateID:     result.DuplicateID,
		},
	})
}

// GetStatus handles GET /get_status/:request_id.
func (h *RequestsHandler) GetStatus(c *fiber.Ctx) error {
	requestID := c.Params("request_id")
	if requestID == "" {
		return apperrors.NewValidationError("request_id required", nil)
	}

	request, err := h.requests.GetRequest(c.Context(), requestID)
	if err != nil {
		return err
	}
	if err := h.authorizeView(c, request); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewRequestRecord(request)})
}

// History handles GET /history. Students see their own submissions.
func (h *RequestsHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Student == nil {
		return apperrors.NewUnauthorized("student login required")
	}

	requests, err := h.requests.HistoryForStudent(c.Context(), principal.Student.StudentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestRecords(requests)})
}

// authorizeView restricts record visibility: students see their own
// requests, technicians their assigned ones, admins everything.
func (h *RequestsHandler) authorizeView(c *fiber.Ctx, request *domain.Request) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	switch principal.SubjectType {
	case domain.SubjectTypeAdmin:
		return nil
	case domain.SubjectTypeStudent:
		if principal.Student != nil && principal.Student.StudentID == request.StudentID {
			return nil
		}
	case domain.SubjectTypeTechnician:
		if principal.Technician != nil && request.Technician != nil && *request.Technician == principal.Technician.Name {
			return nil
		}
	}
	return apperrors.NewForbidden("not allowed to view this request")
}
