package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/intake"
)

// The in-memory adapters implement the same store interfaces as the
// postgres repositories. They back the unit tests and small deployments
// that do not want a database; missing records surface as pgx.ErrNoRows so
// error mapping stays uniform across adapters.

// MemoryRequestRepository is an in-memory RequestRepository.
type MemoryRequestRepository struct {
	mu       sync.Mutex
	requests []domain.Request
}

// NewMemoryRequestRepository builds an empty store.
func NewMemoryRequestRepository() *MemoryRequestRepository {
	return &MemoryRequestRepository{}
}

func (r *MemoryRequestRepository) Create(_ context.Context, request *domain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, *request)
	return nil
}

func (r *MemoryRequestRepository) GetByID(_ context.Context, id string) (*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].RequestID == id {
			request := r.requests[i]
			return &request, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// ListRecent returns the newest requests first, like the SQL adapter.
func (r *MemoryRequestRepository) ListRecent(_ context.Context, limit int) ([]domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 {
		limit = 20
	}
	var result []domain.Request
	for i := len(r.requests) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, r.requests[i])
	}
	return result, nil
}

func (r *MemoryRequestRepository) ListByStudent(_ context.Context, studentID string) ([]domain.Request, error) {
	return r.filter(func(req domain.Request) bool { return req.StudentID == studentID }), nil
}

func (r *MemoryRequestRepository) ListByTechnician(_ context.Context, name string) ([]domain.Request, error) {
	return r.filter(func(req domain.Request) bool {
		return req.Technician != nil && *req.Technician == name
	}), nil
}

func (r *MemoryRequestRepository) ListByStatus(_ context.Context, status domain.RequestStatus) ([]domain.Request, error) {
	return r.filter(func(req domain.Request) bool { return req.Status == status }), nil
}

func (r *MemoryRequestRepository) ListAll(_ context.Context) ([]domain.Request, error) {
	return r.filter(func(domain.Request) bool { return true }), nil
}

func (r *MemoryRequestRepository) UpdateStatus(_ context.Context, id string, status domain.RequestStatus) (*string, domain.RequestStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].RequestID == id {
			previous := r.requests[i].Status
			if !previous.IsTerminal() {
				r.requests[i].Status = status
			}
			return r.requests[i].Technician, previous, nil
		}
	}
	return nil, "", pgx.ErrNoRows
}

func (r *MemoryRequestRepository) CountByCategory(_ context.Context) (map[domain.Category]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.Category]int)
	for _, req := range r.requests {
		counts[req.Category]++
	}
	return counts, nil
}

func (r *MemoryRequestRepository) filter(keep func(domain.Request) bool) []domain.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Request
	for i := len(r.requests) - 1; i >= 0; i-- {
		if keep(r.requests[i]) {
			result = append(result, r.requests[i])
		}
	}
	return result
}

// MemoryTechnicianRepository is an in-memory TechnicianRepository.
type MemoryTechnicianRepository struct {
	mu          sync.Mutex
	technicians []domain.Technician
}

// NewMemoryTechnicianRepository builds a store seeded with the given roster.
func NewMemoryTechnicianRepository(seed ...domain.Technician) *MemoryTechnicianRepository {
	return &MemoryTechnicianRepository{technicians: append([]domain.Technician{}, seed...)}
}

func (r *MemoryTechnicianRepository) Create(_ context.Context, technician *domain.Technician) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.technicians = append(r.technicians, *technician)
	return nil
}

func (r *MemoryTechnicianRepository) GetByName(_ context.Context, name string) (*domain.Technician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.technicians {
		if r.technicians[i].Name == name {
			technician := r.technicians[i]
			return &technician, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemoryTechnicianRepository) ListByRole(_ context.Context, role domain.Trade) ([]domain.Technician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Technician
	for _, t := range r.technicians {
		if t.Role == role {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *MemoryTechnicianRepository) ListAll(_ context.Context) ([]domain.Technician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Technician{}, r.technicians...), nil
}

func (r *MemoryTechnicianRepository) IncrementLoad(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.technicians {
		if r.technicians[i].Name == name {
			r.technicians[i].CurrentLoad++
			r.technicians[i].Status = domain.TechnicianStatusBusy
		}
	}
	return nil
}

func (r *MemoryTechnicianRepository) DecrementLoad(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.technicians {
		if r.technicians[i].Name == name {
			if r.technicians[i].CurrentLoad > 0 {
				r.technicians[i].CurrentLoad--
			}
			if r.technicians[i].CurrentLoad == 0 {
				r.technicians[i].Status = domain.TechnicianStatusFree
			} else {
				r.technicians[i].Status = domain.TechnicianStatusBusy
			}
		}
	}
	return nil
}

// MemoryStudentRepository is an in-memory StudentRepository.
type MemoryStudentRepository struct {
	mu       sync.Mutex
	students map[string]domain.Student
}

// NewMemoryStudentRepository builds an empty store.
func NewMemoryStudentRepository() *MemoryStudentRepository {
	return &MemoryStudentRepository{students: make(map[string]domain.Student)}
}

func (r *MemoryStudentRepository) Create(_ context.Context, student *domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.students[student.StudentID]; !exists {
		r.students[student.StudentID] = *student
	}
	return nil
}

func (r *MemoryStudentRepository) GetByID(_ context.Context, studentID string) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	student, ok := r.students[studentID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &student, nil
}

// MemoryMaintenanceMap is an in-memory MaintenanceMapRepository.
type MemoryMaintenanceMap struct {
	mu      sync.Mutex
	entries []maintenanceEntry
}

type maintenanceEntry struct {
	issue      string
	technician string
}

// NewMemoryMaintenanceMap builds an empty mapping table.
func NewMemoryMaintenanceMap() *MemoryMaintenanceMap {
	return &MemoryMaintenanceMap{}
}

func (r *MemoryMaintenanceMap) Add(_ context.Context, issue, technician string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, maintenanceEntry{issue: strings.ToLower(issue), technician: technician})
	return nil
}

func (r *MemoryMaintenanceMap) Lookup(_ context.Context, query string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if issueMatches(entry.issue, query) {
			return entry.technician, nil
		}
	}
	return intake.LookupUnknown, nil
}
