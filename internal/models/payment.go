package models

import "time"

// Payment records the pickup/payment step that closes out a job.
type Payment struct {
	JobID       string    `db:"job_id" json:"job_id"`
	Grams       float64   `db:"grams" json:"grams"`
	PriceCents  int       `db:"price_cents" json:"price_cents"`
	TxnNo       string    `db:"txn_no" json:"txn_no"`
	PickedUpBy  string    `db:"picked_up_by" json:"picked_up_by"`
	PaidTS      time.Time `db:"paid_ts" json:"paid_ts"`
	PaidByStaff string    `db:"paid_by_staff" json:"paid_by_staff"`
}

// PriceUSD returns the recorded price in dollars.
func (p Payment) PriceUSD() float64 {
	return float64(p.PriceCents) / 100.0
}
