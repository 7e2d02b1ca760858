package dto

// Override actions accepted by the admin escape hatch.
const (
	OverrideChangeStatus = "change_status"
	OverrideUnlock       = "unlock"
	OverrideConfirm      = "confirm"
	OverrideMarkFailed   = "mark_failed"
)

// OverrideRequest performs an out-of-band state change with a logged
// reason.
type OverrideRequest struct {
	Action    string `json:"action" validate:"required,oneof=change_status unlock confirm mark_failed"`
	JobID     string `json:"job_id" validate:"required"`
	StaffName string `json:"staff_name" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
	// NewStatus is only consulted for change_status.
	NewStatus string `json:"new_status"`
}

// AuditDeleteFileRequest removes an orphaned or stale file found by
// the audit scan.
type AuditDeleteFileRequest struct {
	Path      string `json:"file_path" validate:"required"`
	StaffName string `json:"staff_name" validate:"required"`
}

// AuditReviewRequest marks a flagged job as manually reviewed.
type AuditReviewRequest struct {
	JobID     string   `json:"job_id" validate:"required"`
	StaffName string   `json:"staff_name" validate:"required"`
	Issues    []string `json:"issues"`
}

// ArchiveRequest archives terminal jobs older than the cutoff.
type ArchiveRequest struct {
	OlderThanDays int    `json:"older_than_days" validate:"required,gt=0"`
	StaffName     string `json:"staff_name" validate:"required"`
}

// ArchiveResponse reports how many jobs the sweep touched.
type ArchiveResponse struct {
	Archived int `json:"archived"`
}
