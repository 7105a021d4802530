package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/events"
	"github.com/spec-kit/campus-helpdesk/internal/repository"
	apperrors "github.com/spec-kit/campus-helpdesk/pkg/util"
)

// RequestService covers request lookup and lifecycle mutation after
// intake: status queries, student history, technician task lists and the
// status updates staff apply.
type RequestService struct {
	requests    repository.RequestRepository
	technicians repository.TechnicianRepository
	dispatcher  events.Dispatcher
}

// RequestDependencies bundles collaborators for the request service.
type RequestDependencies struct {
	RequestRepo    repository.RequestRepository
	TechnicianRepo repository.TechnicianRepository
	Dispatcher     events.Dispatcher
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:    deps.RequestRepo,
		technicians: deps.TechnicianRepo,
		dispatcher:  deps.Dispatcher,
	}
}

var allowedStatusUpdates = map[domain.RequestStatus]struct{}{
	domain.RequestStatusPending:   {},
	domain.RequestStatusWorking:   {},
	domain.RequestStatusResolved:  {},
	domain.RequestStatusCompleted: {},
}

// GetRequest fetches a single request by id.
func (s *RequestService) GetRequest(ctx context.Context, id string) (*domain.Request, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

// HistoryForStudent lists all requests a student has submitted.
func (s *RequestService) HistoryForStudent(ctx context.Context, studentID string) ([]domain.Request, error) {
	requests, err := s.requests.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// TasksForTechnician lists all requests assigned to a technician.
func (s *RequestService) TasksForTechnician(ctx context.Context, name string) ([]domain.Request, error) {
	requests, err := s.requests.ListByTechnician(ctx, name)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// ListRequests lists all requests, optionally restricted to one status.
func (s *RequestService) ListRequests(ctx context.Context, status *domain.RequestStatus) ([]domain.Request, error) {
	var requests []domain.Request
	var err error
	if status != nil {
		requests, err = s.requests.ListByStatus(ctx, *status)
	} else {
		requests, err = s.requests.ListAll(ctx)
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// UpdateStatus mutates a request's status. Terminal statuses are final:
// a resolved or completed request cannot be reopened, which is what keeps
// the technician's load decrement to exactly once per assignment.
func (s *RequestService) UpdateStatus(ctx context.Context, actor events.Actor, requestID string, newStatus domain.RequestStatus) error {
	if _, ok := allowedStatusUpdates[newStatus]; !ok {
		return apperrors.NewValidationError("unsupported status", map[string]any{"status": newStatus})
	}

	technician, previous, err := s.requests.UpdateStatus(ctx, requestID, newStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
		}
		return apperrors.MapError(err)
	}
	if previous.IsTerminal() {
		return apperrors.NewConflict("request is already in a terminal status", map[string]any{
			"request_id": requestID,
			"status":     previous,
		})
	}

	if newStatus.IsTerminal() && technician != nil && *technician != "" {
		if err := s.technicians.DecrementLoad(ctx, *technician); err != nil {
			return apperrors.MapError(err)
		}
	}

	s.publishStatusChanged(ctx, actor, requestID, previous, newStatus)
	return nil
}

// Analytics returns request counts grouped by category. A store failure
// degrades to empty counts, matching the reporting surface's best-effort
// contract.
func (s *RequestService) Analytics(ctx context.Context) map[domain.Category]int {
	counts, err := s.requests.CountByCategory(ctx)
	if err != nil {
		return map[domain.Category]int{}
	}
	return counts
}

func (s *RequestService) publishStatusChanged(ctx context.Context, actor events.Actor, requestID string, oldStatus, newStatus domain.RequestStatus) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRequestStatusChanged,
		RequestID: requestID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload: events.RequestStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
}
