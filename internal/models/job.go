package models

import "time"

// JobStatus is the closed set of states a print job moves through.
type JobStatus string

const (
	StatusUploaded     JobStatus = "UPLOADED"
	StatusPending      JobStatus = "PENDING"
	StatusReadyToPrint JobStatus = "READYTOPRINT"
	StatusPrinting     JobStatus = "PRINTING"
	StatusCompleted    JobStatus = "COMPLETED"
	StatusPaidPickedUp JobStatus = "PAIDPICKEDUP"
	StatusRejected     JobStatus = "REJECTED"
	StatusArchived     JobStatus = "ARCHIVED"
)

// AllStatuses lists every status in pipeline order.
var AllStatuses = []JobStatus{
	StatusUploaded,
	StatusPending,
	StatusReadyToPrint,
	StatusPrinting,
	StatusCompleted,
	StatusPaidPickedUp,
	StatusRejected,
	StatusArchived,
}

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// transitions is the single transition table for the regular staff flow.
// Admin overrides bypass it and are logged instead.
var transitions = map[JobStatus][]JobStatus{
	StatusUploaded:     {StatusPending, StatusRejected},
	StatusPending:      {StatusReadyToPrint},
	StatusReadyToPrint: {StatusPrinting},
	StatusPrinting:     {StatusCompleted},
	StatusCompleted:    {StatusPaidPickedUp},
}

// CanTransition reports whether the regular flow permits from -> to.
func CanTransition(from, to JobStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ActiveStatuses are the states considered "in flight" for duplicate
// submission detection.
var ActiveStatuses = []JobStatus{StatusUploaded, StatusPending, StatusReadyToPrint}

// statusDirs maps statuses to their storage directory names. Approved
// jobs stay in the intake directory until the student confirms, so
// PENDING shares it; terminal rejected/archived jobs keep their files
// where they last lived.
var statusDirs = map[JobStatus]string{
	StatusUploaded:     "Uploaded",
	StatusPending:      "Uploaded",
	StatusReadyToPrint: "ReadyToPrint",
	StatusPrinting:     "Printing",
	StatusCompleted:    "Completed",
	StatusPaidPickedUp: "PaidPickedUp",
}

// Dir returns the storage directory for the status, defaulting to the
// intake directory for statuses without one of their own.
func (s JobStatus) Dir() string {
	if dir, ok := statusDirs[s]; ok {
		return dir
	}
	return "Uploaded"
}

// StatusDirs returns the distinct storage directory names.
func StatusDirs() []string {
	seen := make(map[string]struct{}, len(statusDirs))
	dirs := make([]string, 0, len(statusDirs))
	for _, s := range AllStatuses {
		dir, ok := statusDirs[s]
		if !ok {
			continue
		}
		if _, dup := seen[dir]; dup {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}

// Job is the central print-job entity.
type Job struct {
	ID          string `db:"id" json:"id"`
	ShortID     string `db:"short_id" json:"short_id"`
	StudentName string `db:"student_name" json:"student_name"`
	Email       string `db:"student_email" json:"student_email"`
	Discipline  string `db:"discipline" json:"discipline"`
	ClassNumber string `db:"class_number" json:"class_number"`

	OriginalFilename string `db:"original_filename" json:"original_filename"`
	DisplayName      string `db:"display_name" json:"display_name"`
	FilePath         string `db:"file_path" json:"-"`
	MetadataPath     string `db:"metadata_path" json:"-"`
	FileHash         string `db:"file_hash" json:"-"`

	Status  JobStatus `db:"status" json:"status"`
	Printer string    `db:"printer" json:"printer"`
	Color   string    `db:"color" json:"color"`
	// Material is the print method (Filament or Resin) chosen at submission.
	Material  string   `db:"material" json:"material"`
	WeightG   *float64 `db:"weight_g" json:"weight_g"`
	TimeHours *float64 `db:"time_hours" json:"time_hours"`
	CostUSD   *float64 `db:"cost_usd" json:"cost_usd"`

	AcknowledgedMinimumCharge bool       `db:"acknowledged_minimum_charge" json:"-"`
	StudentConfirmed          bool       `db:"student_confirmed" json:"student_confirmed"`
	StudentConfirmedAt        *time.Time `db:"student_confirmed_at" json:"student_confirmed_at"`

	RejectReasons  StringList `db:"reject_reasons" json:"reject_reasons"`
	StaffViewedAt  *time.Time `db:"staff_viewed_at" json:"staff_viewed_at"`
	LastUpdatedBy  string     `db:"last_updated_by" json:"last_updated_by"`
	Notes          string     `db:"notes" json:"notes"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// JobFilter captures dashboard filtering criteria.
type JobFilter struct {
	Status     JobStatus
	Search     string
	Printer    string
	Discipline string
}
