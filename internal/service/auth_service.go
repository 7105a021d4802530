package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campus-helpdesk/internal/auth"
	"github.com/spec-kit/campus-helpdesk/internal/config"
	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/repository"
	apperrors "github.com/spec-kit/campus-helpdesk/pkg/util"
)

// AuthService coordinates login flows for students, technicians and the
// configured administrator.
type AuthService struct {
	students    repository.StudentRepository
	technicians repository.TechnicianRepository
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	adminName   string
	adminSecret string
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	StudentRepo    repository.StudentRepository
	TechnicianRepo repository.TechnicianRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		students:    deps.StudentRepo,
		technicians: deps.TechnicianRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost:  cfg.Auth.BcryptCost,
		adminName:   cfg.Auth.AdminName,
		adminSecret: cfg.Auth.AdminPassword,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// BcryptCost exposes the configured hashing cost for onboarding flows.
func (s *AuthService) BcryptCost() int {
	return s.bcryptCost
}

// LoginStudent authenticates a student by id and password.
func (s *AuthService) LoginStudent(ctx context.Context, studentID, password string) (*domain.Student, string, time.Time, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid id or password")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(student.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid id or password")
	}
	token, exp, err := s.tokenMgr.GenerateToken(student.StudentID, domain.SubjectTypeStudent, nil)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return student, token, exp, nil
}

// LoginTechnician authenticates a technician by name and password and
// returns a trade-bearing token.
func (s *AuthService) LoginTechnician(ctx context.Context, name, password string) (*domain.Technician, string, time.Time, error) {
	technician, err := s.technicians.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(technician.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(technician.Name, domain.SubjectTypeTechnician, &technician.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return technician, token, exp, nil
}

// LoginAdmin authenticates the configured administrator.
func (s *AuthService) LoginAdmin(_ context.Context, name, password string) (string, time.Time, error) {
	if s.adminSecret == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("admin login disabled")
	}
	nameOK := subtle.ConstantTimeCompare([]byte(name), []byte(s.adminName)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminSecret)) == 1
	if !nameOK || !passOK {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(s.adminName, domain.SubjectTypeAdmin, nil)
	if err != nil {
		return "", time.Time{}, apperrors.MapError(err)
	}
	return token, exp, nil
}
