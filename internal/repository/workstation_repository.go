package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/coad-fablab/printlab-api/internal/models"
)

// WorkstationRepository manages shared lab terminal credentials.
type WorkstationRepository struct {
	db *sqlx.DB
}

// NewWorkstationRepository constructs a WorkstationRepository.
func NewWorkstationRepository(db *sqlx.DB) *WorkstationRepository {
	return &WorkstationRepository{db: db}
}

// FindByID fetches a workstation by its identifier.
func (r *WorkstationRepository) FindByID(ctx context.Context, id string) (*models.Workstation, error) {
	const query = `SELECT id, password_hash, active, last_login, created_at FROM workstations WHERE id = $1`
	var ws models.Workstation
	if err := r.db.GetContext(ctx, &ws, query, id); err != nil {
		return nil, err
	}
	return &ws, nil
}

// UpdateLastLogin stamps a successful login.
func (r *WorkstationRepository) UpdateLastLogin(ctx context.Context, id string) error {
	const query = `UPDATE workstations SET last_login = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("update workstation last login: %w", err)
	}
	return nil
}
