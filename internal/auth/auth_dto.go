package auth

import (
	"time"

	"github.com/YugandharPise/SME-HR/internal/store"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	EmployeeID *int64 `json:"employee_id"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      AuthResponse `json:"user"`
}

func toAuthResponse(u *store.User) AuthResponse {
	return AuthResponse{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role.String(),
		EmployeeID: u.EmployeeID,
	}
}
