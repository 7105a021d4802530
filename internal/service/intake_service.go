package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/events"
	"github.com/spec-kit/campus-helpdesk/internal/intake"
	"github.com/spec-kit/campus-helpdesk/internal/observability"
	"github.com/spec-kit/campus-helpdesk/internal/repository"
	apperrors "github.com/spec-kit/campus-helpdesk/pkg/util"
)

// IntakeService runs the submission pipeline: normalize, duplicate check,
// hour extraction, classification, technician selection and persistence.
type IntakeService struct {
	requests    repository.RequestRepository
	technicians repository.TechnicianRepository
	duplicates  *intake.DuplicateDetector
	classifier  *intake.Classifier
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
	assignLocks keyedMutex
}

// IntakeDependencies bundles collaborators for the intake service.
type IntakeDependencies struct {
	RequestRepo    repository.RequestRepository
	TechnicianRepo repository.TechnicianRepository
	Duplicates     *intake.DuplicateDetector
	Classifier     *intake.Classifier
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
	Logger         *zap.Logger
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	return &IntakeService{
		requests:    deps.RequestRepo,
		technicians: deps.TechnicianRepo,
		duplicates:  deps.Duplicates,
		classifier:  deps.Classifier,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
	}
}

// SubmitInput describes a raw student submission.
type SubmitInput struct {
	StudentID string
	Query     string
}

// SubmitResult carries everything the caller needs to render a response.
type SubmitResult struct {
	Request     domain.Request
	Reply       string
	IsDuplicate bool
	DuplicateID string
}

// Submit runs the full intake pipeline and persists the resulting request.
// Every sub-step short of the final save degrades gracefully; a failed
// save is the one hard error, since an un-persisted request is a lost
// ticket.
func (s *IntakeService) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	normalized := intake.Normalize(input.Query)

	var isDuplicate bool
	var duplicateID string
	if s.duplicates != nil {
		isDuplicate, duplicateID = s.duplicates.Check(ctx, normalized)
		if isDuplicate {
			s.metrics.RecordDuplicate()
			s.logger.Info("duplicate request flagged",
				zap.String("student_id", input.StudentID),
				zap.String("duplicate_of", duplicateID))
		}
	}

	var desiredHour *int
	if hour, ok := intake.ExtractHour(normalized); ok {
		desiredHour = &hour
	}

	category, trade := s.classifier.Classify(ctx, normalized)

	request := domain.Request{
		RequestID:       uuid.NewString(),
		StudentID:       input.StudentID,
		Query:           normalized,
		Category:        category,
		StudentFreeTime: desiredHour,
		Status:          domain.RequestStatusNoTechnician,
	}

	if trade != nil {
		selection := s.selectAndReserve(ctx, *trade, desiredHour)
		request.Status = selection.Outcome
		if selection.Technician != nil {
			name := selection.Technician.Name
			start, end, assigned := selection.StartTime, selection.EndTime, selection.AssignedHour
			request.Technician = &name
			request.StartTime = &start
			request.EndTime = &end
			request.AssignedTime = &assigned
		}
	}
	// The assigned hour prefers the student's stated hour over the
	// technician's window start.
	if desiredHour != nil {
		request.AssignedTime = desiredHour
	}

	if err := s.requests.Create(ctx, &request); err != nil {
		s.logger.Error("failed to persist request", zap.Error(err))
		return nil, apperrors.MapError(err)
	}

	s.metrics.RecordIntakeOutcome(string(request.Status))
	s.publishSubmitted(ctx, &request, isDuplicate, duplicateID)
	if request.Technician != nil && trade != nil {
		s.publishAssigned(ctx, &request, *trade)
	}

	return &SubmitResult{
		Request:     request,
		Reply:       category.Reply(),
		IsDuplicate: isDuplicate,
		DuplicateID: duplicateID,
	}, nil
}

// selectAndReserve serializes select-then-increment per trade so two
// concurrent submissions cannot both observe the same free technician and
// overbook them past the snapshot they read.
func (s *IntakeService) selectAndReserve(ctx context.Context, trade domain.Trade, desiredHour *int) intake.Selection {
	unlock := s.assignLocks.lock(string(trade))
	defer unlock()

	techs, err := s.technicians.ListByRole(ctx, trade)
	if err != nil {
		s.logger.Warn("technician listing failed; treating as none available",
			zap.String("trade", string(trade)), zap.Error(err))
		return intake.Selection{Outcome: domain.RequestStatusNoTechnician}
	}

	selection := intake.SelectTechnician(trade, desiredHour, techs)
	if selection.Technician != nil {
		if err := s.technicians.IncrementLoad(ctx, selection.Technician.Name); err != nil {
			// Without the increment the ledger never charged this
			// technician, so the request must not claim them either.
			s.logger.Warn("failed to increment technician load; dropping assignment",
				zap.String("technician", selection.Technician.Name), zap.Error(err))
			return intake.Selection{Outcome: domain.RequestStatusNoTechnician}
		}
	}
	return selection
}

func (s *IntakeService) publishSubmitted(ctx context.Context, request *domain.Request, isDuplicate bool, duplicateID string) {
	if s.dispatcher == nil {
		return
	}
	studentID := request.StudentID
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRequestSubmitted,
		RequestID: request.RequestID,
		Actor:     events.Actor{Type: domain.SubjectTypeStudent, StudentID: &studentID},
		Timestamp: time.Now(),
		Payload: events.RequestSubmittedPayload{
			Category:    request.Category,
			Outcome:     request.Status,
			IsDuplicate: isDuplicate,
			DuplicateID: duplicateID,
		},
	})
}

func (s *IntakeService) publishAssigned(ctx context.Context, request *domain.Request, trade domain.Trade) {
	if s.dispatcher == nil {
		return
	}
	studentID := request.StudentID
	assigned := 0
	if request.AssignedTime != nil {
		assigned = *request.AssignedTime
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRequestAssigned,
		RequestID: request.RequestID,
		Actor:     events.Actor{Type: domain.SubjectTypeStudent, StudentID: &studentID},
		Timestamp: time.Now(),
		Payload: events.RequestAssignedPayload{
			Technician:   *request.Technician,
			Trade:        trade,
			AssignedHour: assigned,
			Outcome:      request.Status,
		},
	})
}

// keyedMutex hands out one mutex per key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
