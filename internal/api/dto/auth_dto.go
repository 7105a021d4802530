package dto

import "time"

// StudentLoginRequest payload.
type StudentLoginRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

// TechnicianLoginRequest payload.
type TechnicianLoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AdminLoginRequest payload.
type AdminLoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AuthResponse carries an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
