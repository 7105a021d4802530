package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
	apperrors "github.com/spec-kit/campus-helpdesk/pkg/util"
)

// RequireStudent ensures a student is authenticated.
func RequireStudent() fiber.Handler {
	return requireSubject(domain.SubjectTypeStudent, "student required")
}

// RequireTechnician ensures a technician is authenticated.
func RequireTechnician() fiber.Handler {
	return requireSubject(domain.SubjectTypeTechnician, "technician required")
}

// RequireAdmin ensures an administrator is authenticated.
func RequireAdmin() fiber.Handler {
	return requireSubject(domain.SubjectTypeAdmin, "admin required")
}

func requireSubject(subject domain.SubjectType, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("login required")
		}
		if principal.SubjectType != subject {
			return apperrors.NewForbidden(message)
		}
		return c.Next()
	}
}
