package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/coad-fablab/printlab-api/internal/models"
)

// StaffRepository manages the attribution roster.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository constructs a StaffRepository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// List returns staff ordered by name, optionally including deactivated
// members.
func (r *StaffRepository) List(ctx context.Context, includeInactive bool) ([]models.StaffMember, error) {
	query := `SELECT name, is_active, added_at, deactivated_at FROM staff`
	if !includeInactive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name ASC`

	var staff []models.StaffMember
	if err := r.db.SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}

// FindByName fetches a single roster entry.
func (r *StaffRepository) FindByName(ctx context.Context, name string) (*models.StaffMember, error) {
	const query = `SELECT name, is_active, added_at, deactivated_at FROM staff WHERE name = $1`
	var member models.StaffMember
	if err := r.db.GetContext(ctx, &member, query, name); err != nil {
		return nil, err
	}
	return &member, nil
}

// Create inserts a new active staff member.
func (r *StaffRepository) Create(ctx context.Context, member *models.StaffMember) error {
	if member.AddedAt.IsZero() {
		member.AddedAt = time.Now().UTC()
	}
	member.IsActive = true
	const query = `INSERT INTO staff (name, is_active, added_at) VALUES (:name, :is_active, :added_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create staff member: %w", err)
	}
	return nil
}

// SetActive toggles a member's active flag, stamping deactivated_at on
// deactivation and clearing it on reactivation.
func (r *StaffRepository) SetActive(ctx context.Context, name string, active bool) error {
	var deactivatedAt *time.Time
	if !active {
		now := time.Now().UTC()
		deactivatedAt = &now
	}
	const query = `UPDATE staff SET is_active = $2, deactivated_at = $3 WHERE name = $1`
	res, err := r.db.ExecContext(ctx, query, name, active, deactivatedAt)
	if err != nil {
		return fmt.Errorf("set staff active: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set staff active rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
