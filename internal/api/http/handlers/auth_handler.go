package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-helpdesk/internal/api/dto"
	"github.com/spec-kit/campus-helpdesk/internal/service"
	apperrors "github.com/spec-kit/campus-helpdesk/pkg/util"
)

// AuthHandler exposes login endpoints for students, technicians and the
// administrator.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// StudentLogin handles POST /login.
func (h *AuthHandler) StudentLogin(c *fiber.Ctx) error {
	var req dto.StudentLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.StudentID == "" || req.Password == "" {
		return apperrors.NewValidationError("student_id and password required", nil)
	}

	student, token, exp, err := h.auth.LoginStudent(c.Context(), req.StudentID, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"student": fiber.Map{
				"student_id": student.StudentID,
				"name":       student.Name,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// TechnicianLogin handles POST /technician/login.
func (h *AuthHandler) TechnicianLogin(c *fiber.Ctx) error {
	var req dto.TechnicianLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Password == "" {
		return apperrors.NewValidationError("name and password required", nil)
	}

	technician, token, exp, err := h.auth.LoginTechnician(c.Context(), req.Name, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"technician": fiber.Map{
				"name": technician.Name,
				"role": technician.Role,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// AdminLogin handles POST /admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	token, exp, err := h.auth.LoginAdmin(c.Context(), req.Name, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
