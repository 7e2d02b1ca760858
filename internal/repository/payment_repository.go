package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/coad-fablab/printlab-api/internal/models"
)

// PaymentRepository persists pickup payment records.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts the payment row for a job. Each job has at most one.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.PaidTS.IsZero() {
		payment.PaidTS = time.Now().UTC()
	}
	const query = `INSERT INTO payments (job_id, grams, price_cents, txn_no, picked_up_by, paid_ts, paid_by_staff)
        VALUES (:job_id, :grams, :price_cents, :txn_no, :picked_up_by, :paid_ts, :paid_by_staff)`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// FindByJob fetches the payment for a job.
func (r *PaymentRepository) FindByJob(ctx context.Context, jobID string) (*models.Payment, error) {
	const query = `SELECT job_id, grams, price_cents, txn_no, picked_up_by, paid_ts, paid_by_staff
        FROM payments WHERE job_id = $1`
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, jobID); err != nil {
		return nil, err
	}
	return &payment, nil
}
