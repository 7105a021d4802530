package service

import (
	"context"
	"strings"

	"github.com/spec-kit/campus-helpdesk/internal/auth"
	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/intake"
	"github.com/spec-kit/campus-helpdesk/internal/repository"
	apperrors "github.com/spec-kit/campus-helpdesk/pkg/util"
)

// RosterService handles administrative technician onboarding and roster
// queries. It also implements the classifier's RoleFinder by resolving
// technician names to their trade.
type RosterService struct {
	technicians repository.TechnicianRepository
	bcryptCost  int
}

// NewRosterService constructs the service.
func NewRosterService(technicians repository.TechnicianRepository, bcryptCost int) *RosterService {
	return &RosterService{technicians: technicians, bcryptCost: bcryptCost}
}

var knownTrades = map[domain.Trade]struct{}{
	domain.TradeElectrician: {},
	domain.TradePlumber:     {},
	domain.TradeCarpenter:   {},
	domain.TradePainter:     {},
}

// OnboardInput describes a new technician.
type OnboardInput struct {
	Name      string
	Role      domain.Trade
	StartTime int
	EndTime   int
	Password  string
}

// OnboardTechnician validates and creates a technician, starting free
// with zero load.
func (s *RosterService) OnboardTechnician(ctx context.Context, input OnboardInput) (*domain.Technician, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name and password required", nil)
	}
	if _, ok := knownTrades[input.Role]; !ok {
		return nil, apperrors.NewValidationError("unknown trade", map[string]any{"role": input.Role})
	}

	technician := &domain.Technician{
		Name:        name,
		Role:        input.Role,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		CurrentLoad: 0,
		Status:      domain.TechnicianStatusFree,
	}
	if !technician.WindowValid() {
		return nil, apperrors.NewValidationError("invalid availability window", map[string]any{
			"start_time": input.StartTime,
			"end_time":   input.EndTime,
		})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	technician.PasswordHash = hash

	if err := s.technicians.Create(ctx, technician); err != nil {
		return nil, apperrors.MapError(err)
	}
	return technician, nil
}

// ListTechnicians returns the full roster.
func (s *RosterService) ListTechnicians(ctx context.Context) ([]domain.Technician, error) {
	technicians, err := s.technicians.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return technicians, nil
}

// RoleOf resolves a technician name to their trade for the classifier's
// auxiliary lookup tier. Misses are reported as not-found, never errors.
func (s *RosterService) RoleOf(ctx context.Context, name string) (domain.Trade, bool) {
	technician, err := s.technicians.GetByName(ctx, name)
	if err != nil {
		return "", false
	}
	return technician.Role, true
}

var _ intake.RoleFinder = (*RosterService)(nil)
