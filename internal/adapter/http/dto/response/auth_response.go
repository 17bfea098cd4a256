package response

import (
	"time"

	"presupuestos_service/internal/domain/entities"
)

type ProfileResponse struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	SellerID string `json:"seller_id,omitempty"`
}

func FromProfile(p entities.Profile) ProfileResponse {
	return ProfileResponse{
		UID:      p.UID,
		Email:    p.Email,
		Name:     p.Name,
		Role:     string(p.Role),
		SellerID: p.SellerID,
	}
}

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   ProfileResponse `json:"profile"`
}

type SessionResponse struct {
	SessionID string          `json:"session_id"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   ProfileResponse `json:"profile"`
}
