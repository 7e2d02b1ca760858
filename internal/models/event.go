package models

import "time"

// Event types recorded against jobs.
const (
	EventJobCreated       = "JobCreated"
	EventJobApproved      = "JobApproved"
	EventJobRejected      = "JobRejected"
	EventJobReviewed      = "JobReviewed"
	EventJobConfirmed     = "JobConfirmed"
	EventStatusChanged    = "StatusChanged"
	EventPaymentRecorded  = "PaymentRecorded"
	EventJobDeleted       = "JobDeleted"
	EventAdminOverride    = "AdminOverride"
	EventAuditFileDeleted = "AuditFileDeleted"
	EventAuditReviewed    = "AuditReviewed"
	EventJobsArchived     = "JobsArchived"
)

// Event is an append-only audit trail entry for a job.
type Event struct {
	ID            int64     `db:"id" json:"id"`
	JobID         string    `db:"job_id" json:"job_id"`
	Timestamp     time.Time `db:"timestamp" json:"timestamp"`
	EventType     string    `db:"event_type" json:"event_type"`
	Details       JSONMap   `db:"details" json:"details"`
	TriggeredBy   string    `db:"triggered_by" json:"triggered_by"`
	WorkstationID string    `db:"workstation_id" json:"workstation_id"`
}
