package models

import "time"

// Audit issue codes reported per job by the storage scan.
const (
	AuditIssueFileMissing       = "file_missing"
	AuditIssueMetadataMissing   = "metadata_missing"
	AuditIssueDirStatusMismatch = "dir_status_mismatch"
	AuditIssueMetadataMismatch  = "metadata_mismatch"
)

// BrokenLink describes filesystem inconsistencies for a single job.
type BrokenLink struct {
	JobID        string   `json:"job_id"`
	Issues       []string `json:"issues"`
	FilePath     string   `json:"file_path"`
	MetadataPath string   `json:"metadata_path"`
	ExpectedDir  string   `json:"expected_dir"`
	ActualDir    string   `json:"actual_dir"`
}

// AuditReport is the result of scanning the status directories against
// the job table.
type AuditReport struct {
	ReportGeneratedAt time.Time    `json:"report_generated_at"`
	OrphanedFiles     []string     `json:"orphaned_files"`
	BrokenLinks       []BrokenLink `json:"broken_links"`
	StaleFiles        []string     `json:"stale_files"`
}
