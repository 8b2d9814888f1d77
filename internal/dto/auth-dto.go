package dto

import "github.com/yigaglobal/fellowship_service/internal/domain"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}

// AuthResponse holds the verified token claims stashed in ctx.Locals.
type AuthResponse struct {
	AccountID uint    `json:"account_id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	Iat       float64 `json:"iat"`
	Expiry    float64 `json:"expiry"`
}

type AccountResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func NewAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:       a.ID,
		Username: a.Username,
		Name:     a.Name,
		Role:     a.Role,
	}
}
