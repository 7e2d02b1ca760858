package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Workstation is a shared lab terminal that staff log in from.
type Workstation struct {
	ID           string     `db:"id" json:"id"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// WorkstationClaims are the JWT claims carried by workstation access tokens.
type WorkstationClaims struct {
	WorkstationID string `json:"workstation_id"`
	jwt.RegisteredClaims
}
