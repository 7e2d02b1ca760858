package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/coad-fablab/printlab-api/internal/models"
)

const jobColumns = `id, short_id, student_name, student_email, discipline, class_number,
    original_filename, display_name, file_path, metadata_path, file_hash,
    status, printer, color, material, weight_g, time_hours, cost_usd,
    acknowledged_minimum_charge, student_confirmed, student_confirmed_at,
    reject_reasons, staff_viewed_at, last_updated_by, notes, created_at, updated_at`

// JobRepository manages persistence for print jobs.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository constructs a JobRepository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// List returns jobs matching the filter, newest first. Archived jobs
// are excluded unless explicitly requested by status.
func (r *JobRepository) List(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	} else {
		conditions = append(conditions, fmt.Sprintf("status <> $%d", len(args)+1))
		args = append(args, models.StatusArchived)
	}
	if filter.Printer != "" {
		conditions = append(conditions, fmt.Sprintf("printer = $%d", len(args)+1))
		args = append(args, filter.Printer)
	}
	if filter.Discipline != "" {
		conditions = append(conditions, fmt.Sprintf("discipline = $%d", len(args)+1))
		args = append(args, filter.Discipline)
	}
	if filter.Search != "" {
		n := len(args) + 1
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(student_name) LIKE $%d OR LOWER(student_email) LIKE $%d OR LOWER(display_name) LIKE $%d OR LOWER(short_id) LIKE $%d)",
			n, n, n, n))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	query := fmt.Sprintf("SELECT %s FROM jobs WHERE %s ORDER BY created_at DESC",
		jobColumns, strings.Join(conditions, " AND "))

	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// CountsByStatus returns job counts keyed by status, archived included.
func (r *JobRepository) CountsByStatus(ctx context.Context) (map[models.JobStatus]int, error) {
	rows := []struct {
		Status models.JobStatus `db:"status"`
		Count  int              `db:"count"`
	}{}
	const query = `SELECT status, COUNT(*) AS count FROM jobs GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	counts := make(map[models.JobStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// FindByID fetches a job by its full ID or short ID.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*models.Job, error) {
	query := fmt.Sprintf("SELECT %s FROM jobs WHERE id = $1 OR short_id = $1", jobColumns)
	var job models.Job
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

// FindActiveDuplicate looks for an in-flight job with the same file
// hash submitted by the same student.
func (r *JobRepository) FindActiveDuplicate(ctx context.Context, fileHash, email string) (*models.Job, error) {
	statuses := make([]string, len(models.ActiveStatuses))
	placeholders := make([]string, len(models.ActiveStatuses))
	args := []interface{}{fileHash, strings.ToLower(email)}
	for i, s := range models.ActiveStatuses {
		statuses[i] = string(s)
		placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
		args = append(args, s)
	}
	query := fmt.Sprintf("SELECT %s FROM jobs WHERE file_hash = $1 AND LOWER(student_email) = $2 AND status IN (%s) LIMIT 1",
		jobColumns, strings.Join(placeholders, ", "))

	var job models.Job
	if err := r.db.GetContext(ctx, &job, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find duplicate: %w", err)
	}
	return &job, nil
}

// Create inserts a new job.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	const query = `INSERT INTO jobs (id, short_id, student_name, student_email, discipline, class_number,
        original_filename, display_name, file_path, metadata_path, file_hash,
        status, printer, color, material, weight_g, time_hours, cost_usd,
        acknowledged_minimum_charge, student_confirmed, student_confirmed_at,
        reject_reasons, staff_viewed_at, last_updated_by, notes, created_at, updated_at)
        VALUES (:id, :short_id, :student_name, :student_email, :discipline, :class_number,
        :original_filename, :display_name, :file_path, :metadata_path, :file_hash,
        :status, :printer, :color, :material, :weight_g, :time_hours, :cost_usd,
        :acknowledged_minimum_charge, :student_confirmed, :student_confirmed_at,
        :reject_reasons, :staff_viewed_at, :last_updated_by, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// Update persists every mutable job field.
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = time.Now().UTC()
	const query = `UPDATE jobs SET
        display_name = :display_name, file_path = :file_path, metadata_path = :metadata_path,
        status = :status, printer = :printer, color = :color, material = :material,
        weight_g = :weight_g, time_hours = :time_hours, cost_usd = :cost_usd,
        student_confirmed = :student_confirmed, student_confirmed_at = :student_confirmed_at,
        reject_reasons = :reject_reasons, staff_viewed_at = :staff_viewed_at,
        last_updated_by = :last_updated_by, notes = :notes, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// Delete removes a job row.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// ArchiveOlderThan flips terminal jobs last touched before the cutoff
// to ARCHIVED and returns how many rows changed.
func (r *JobRepository) ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `UPDATE jobs SET status = $1, updated_at = $2
        WHERE status IN ($3, $4) AND updated_at < $5`
	res, err := r.db.ExecContext(ctx, query,
		models.StatusArchived, time.Now().UTC(),
		models.StatusPaidPickedUp, models.StatusRejected, cutoff)
	if err != nil {
		return 0, fmt.Errorf("archive jobs: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("archive jobs rows affected: %w", err)
	}
	return affected, nil
}
