package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/events"
	"github.com/spec-kit/campus-helpdesk/internal/intake"
	"github.com/spec-kit/campus-helpdesk/internal/observability"
	"github.com/spec-kit/campus-helpdesk/internal/repository"
)

type stubPredictor struct {
	category domain.Category
}

func (s stubPredictor) Predict(string) (domain.Category, error) {
	return s.category, nil
}

type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) captured() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event(nil), d.events...)
}

type failingRequestRepo struct {
	repository.RequestRepository
}

func (failingRequestRepo) Create(context.Context, *domain.Request) error {
	return errors.New("store down")
}

type incrementFailingTechnicianRepo struct {
	repository.TechnicianRepository
}

func (incrementFailingTechnicianRepo) IncrementLoad(context.Context, string) error {
	return errors.New("ledger down")
}

func electrician(name string, start, end int) domain.Technician {
	return domain.Technician{
		Name:      name,
		Role:      domain.TradeElectrician,
		StartTime: start,
		EndTime:   end,
		Status:    domain.TechnicianStatusFree,
	}
}

func newIntakeFixture(t *testing.T, techs ...domain.Technician) (*IntakeService, *repository.MemoryRequestRepository, *repository.MemoryTechnicianRepository, *captureDispatcher) {
	t.Helper()
	requests := repository.NewMemoryRequestRepository()
	technicians := repository.NewMemoryTechnicianRepository(techs...)
	dispatcher := &captureDispatcher{}
	svc := NewIntakeService(IntakeDependencies{
		RequestRepo:    requests,
		TechnicianRepo: technicians,
		Duplicates:     intake.NewDuplicateDetector(requests, 20, 0.6),
		Classifier:     intake.NewClassifier(nil, nil, nil),
		Dispatcher:     dispatcher,
		Metrics:        observability.NewMetrics(),
		Logger:         zap.NewNop(),
	})
	return svc, requests, technicians, dispatcher
}

func TestSubmitSlangQueryWithoutStatedHour(t *testing.T) {
	svc, _, technicians, dispatcher := newIntakeFixture(t, electrician("Ramesh", 9, 18))

	result, err := svc.Submit(context.Background(), SubmitInput{
		StudentID: "101",
		Query:     "Fan not wokring plz fix pls",
	})
	require.NoError(t, err)

	assert.Equal(t, "fan not working please fix please", result.Request.Query)
	assert.Equal(t, domain.CategoryHostel, result.Request.Category)
	assert.Equal(t, domain.RequestStatusNoTimeMatch, result.Request.Status)
	require.NotNil(t, result.Request.Technician)
	assert.Equal(t, "Ramesh", *result.Request.Technician)
	require.NotNil(t, result.Request.AssignedTime)
	assert.Equal(t, 9, *result.Request.AssignedTime)
	assert.Nil(t, result.Request.StudentFreeTime)

	ramesh, err := technicians.GetByName(context.Background(), "Ramesh")
	require.NoError(t, err)
	assert.Equal(t, 1, ramesh.CurrentLoad)
	assert.Equal(t, domain.TechnicianStatusBusy, ramesh.Status)

	captured := dispatcher.captured()
	require.Len(t, captured, 2)
	assert.Equal(t, events.EventRequestSubmitted, captured[0].Type)
	assert.Equal(t, events.EventRequestAssigned, captured[1].Type)
}

func TestSubmitStatedHourInsideWindow(t *testing.T) {
	svc, _, _, _ := newIntakeFixture(t, electrician("Ramesh", 9, 18))

	result, err := svc.Submit(context.Background(), SubmitInput{
		StudentID: "101",
		Query:     "light switch broken, free after 11",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RequestStatusMatched, result.Request.Status)
	require.NotNil(t, result.Request.StudentFreeTime)
	assert.Equal(t, 11, *result.Request.StudentFreeTime)
	require.NotNil(t, result.Request.AssignedTime)
	assert.Equal(t, 11, *result.Request.AssignedTime)
}

func TestSubmitDuplicateIsAdvisory(t *testing.T) {
	svc, requests, _, _ := newIntakeFixture(t, electrician("Ramesh", 9, 18))

	first, err := svc.Submit(context.Background(), SubmitInput{StudentID: "101", Query: "fan not working in room"})
	require.NoError(t, err)
	assert.False(t, first.IsDuplicate)

	second, err := svc.Submit(context.Background(), SubmitInput{StudentID: "102", Query: "fan not working in room"})
	require.NoError(t, err)
	assert.True(t, second.IsDuplicate)
	assert.Equal(t, first.Request.RequestID, second.DuplicateID)

	// Duplicates are still persisted and processed.
	all, err := requests.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSubmitNoTechnicianForTrade(t *testing.T) {
	svc, _, _, _ := newIntakeFixture(t)

	result, err := svc.Submit(context.Background(), SubmitInput{StudentID: "101", Query: "water leak in washroom"})
	require.NoError(t, err)

	assert.Equal(t, domain.RequestStatusNoTechnician, result.Request.Status)
	assert.Nil(t, result.Request.Technician)
}

func TestSubmitNonMaintenanceCategorySkipsDispatch(t *testing.T) {
	requests := repository.NewMemoryRequestRepository()
	technicians := repository.NewMemoryTechnicianRepository(electrician("Ramesh", 9, 18))
	svc := NewIntakeService(IntakeDependencies{
		RequestRepo:    requests,
		TechnicianRepo: technicians,
		Classifier:     intake.NewClassifier(stubPredictor{category: domain.CategoryLibrary}, nil, nil),
		Metrics:        observability.NewMetrics(),
		Logger:         zap.NewNop(),
	})

	result, err := svc.Submit(context.Background(), SubmitInput{StudentID: "101", Query: "lost my borrowed book"})
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryLibrary, result.Request.Category)
	assert.Nil(t, result.Request.Technician)
	assert.Equal(t, domain.RequestStatusNoTechnician, result.Request.Status)

	ramesh, err := technicians.GetByName(context.Background(), "Ramesh")
	require.NoError(t, err)
	assert.Equal(t, 0, ramesh.CurrentLoad)
}

func TestConcurrentSubmissionsDoNotOverbook(t *testing.T) {
	svc, requests, technicians, _ := newIntakeFixture(t,
		electrician("Ramesh", 9, 18),
		electrician("Suresh", 9, 18),
	)
	ctx := context.Background()

	const submissions = 8
	var wg sync.WaitGroup
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(ctx, SubmitInput{StudentID: "101", Query: "light broken after 11"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Each technician takes one job and goes busy, so exactly two
	// submissions may be assigned; no snapshot race may hand the same
	// free technician to two submissions.
	assigned := 0
	all, err := requests.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, submissions)
	for _, request := range all {
		if request.Technician != nil {
			assigned++
		}
	}
	assert.Equal(t, 2, assigned)

	totalLoad := 0
	roster, err := technicians.ListAll(ctx)
	require.NoError(t, err)
	for _, technician := range roster {
		assert.LessOrEqual(t, technician.CurrentLoad, 1)
		totalLoad += technician.CurrentLoad
	}
	assert.Equal(t, assigned, totalLoad)
}

func TestFailedLoadIncrementDropsAssignment(t *testing.T) {
	requests := repository.NewMemoryRequestRepository()
	technicians := repository.NewMemoryTechnicianRepository(electrician("Ramesh", 9, 18))
	svc := NewIntakeService(IntakeDependencies{
		RequestRepo:    requests,
		TechnicianRepo: incrementFailingTechnicianRepo{technicians},
		Duplicates:     intake.NewDuplicateDetector(requests, 20, 0.6),
		Classifier:     intake.NewClassifier(nil, nil, nil),
		Dispatcher:     &captureDispatcher{},
		Metrics:        observability.NewMetrics(),
		Logger:         zap.NewNop(),
	})

	result, err := svc.Submit(context.Background(), SubmitInput{
		StudentID: "101",
		Query:     "light broken after 11",
	})
	require.NoError(t, err)

	// The request still lands, but it may not claim a technician whose
	// ledger was never charged.
	assert.Equal(t, domain.RequestStatusNoTechnician, result.Request.Status)
	assert.Nil(t, result.Request.Technician)

	ramesh, err := technicians.GetByName(context.Background(), "Ramesh")
	require.NoError(t, err)
	assert.Equal(t, 0, ramesh.CurrentLoad)
	assert.Equal(t, domain.TechnicianStatusFree, ramesh.Status)
}

func TestSubmitFailsWhenSaveFails(t *testing.T) {
	technicians := repository.NewMemoryTechnicianRepository(electrician("Ramesh", 9, 18))
	svc := NewIntakeService(IntakeDependencies{
		RequestRepo:    failingRequestRepo{repository.NewMemoryRequestRepository()},
		TechnicianRepo: technicians,
		Classifier:     intake.NewClassifier(nil, nil, nil),
		Metrics:        observability.NewMetrics(),
		Logger:         zap.NewNop(),
	})

	_, err := svc.Submit(context.Background(), SubmitInput{StudentID: "101", Query: "fan broken"})
	require.Error(t, err)
}
