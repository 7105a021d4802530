package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/repository"
	apperrors "github.com/spec-kit/campus-helpdesk/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	SubjectType domain.SubjectType
	Student     *domain.Student
	Technician  *domain.Technician
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens      *TokenManager
	students    repository.StudentRepository
	technicians repository.TechnicianRepository
}

// NewAuthMiddleware constructs the middleware.
func NewAuthMiddleware(tokens *TokenManager, students repository.StudentRepository, technicians repository.TechnicianRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, students: students, technicians: technicians}
}

// Handle extracts the bearer token and attaches the principal to the
// request context.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return apperrors.NewUnauthorized("missing bearer token")
	}
	claims, err := m.tokens.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := Principal{SubjectType: claims.Subject}
	switch claims.Subject {
	case domain.SubjectTypeStudent:
		student, err := m.students.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			return apperrors.NewUnauthorized("unknown student")
		}
		principal.Student = student
	case domain.SubjectTypeTechnician:
		technician, err := m.technicians.GetByName(c.Context(), claims.SubjectID)
		if err != nil {
			return apperrors.NewUnauthorized("unknown technician")
		}
		principal.Technician = technician
	case domain.SubjectTypeAdmin:
		// Admin identity lives in configuration, not the store.
	default:
		return apperrors.NewUnauthorized("unknown subject type")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *fiber.Ctx) (Principal, bool) {
	principal, ok := c.Locals(principalKey).(Principal)
	return principal, ok
}
