package dto

import "time"

// LoginRequest authenticates a shared staff workstation.
type LoginRequest struct {
	WorkstationID string `json:"workstation_id" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token         string    `json:"token"`
	WorkstationID string    `json:"workstation_id"`
	ExpiresAt     time.Time `json:"expires_at"`
}
