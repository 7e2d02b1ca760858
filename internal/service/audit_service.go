package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/coad-fablab/printlab-api/internal/dto"
	"github.com/coad-fablab/printlab-api/internal/models"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
	"github.com/coad-fablab/printlab-api/pkg/storage"
)

type auditJobStore interface {
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	FindByID(ctx context.Context, id string) (*models.Job, error)
}

// AuditService reconciles the status directories against the job
// table. The filesystem and the database can drift when moves fail or
// files are touched by hand; the audit surfaces that drift for staff
// to fix.
type AuditService struct {
	jobs       auditJobStore
	staff      staffStore
	events     eventStore
	files      *storage.FileStore
	staleAfter time.Duration
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuditService constructs the audit service.
func NewAuditService(jobs auditJobStore, staff staffStore, events eventStore, files *storage.FileStore, staleAfter time.Duration, validate *validator.Validate, logger *zap.Logger) *AuditService {
	if staleAfter <= 0 {
		staleAfter = 30 * 24 * time.Hour
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		jobs:       jobs,
		staff:      staff,
		events:     events,
		files:      files,
		staleAfter: staleAfter,
		validator:  validate,
		logger:     logger,
		now:        time.Now,
	}
}

// Run scans storage and reports orphaned files, broken links, and
// stale terminal jobs.
func (s *AuditService) Run(ctx context.Context) (*models.AuditReport, error) {
	jobs, err := s.allJobs(ctx)
	if err != nil {
		return nil, err
	}

	referenced := make(map[string]struct{}, len(jobs)*2)
	for _, job := range jobs {
		if job.FilePath != "" {
			referenced[job.FilePath] = struct{}{}
		}
		if job.MetadataPath != "" {
			referenced[job.MetadataPath] = struct{}{}
		}
	}

	onDisk, err := s.files.ListAll(models.StatusDirs())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to scan storage")
	}

	report := &models.AuditReport{
		ReportGeneratedAt: s.now().UTC(),
		OrphanedFiles:     []string{},
		BrokenLinks:       []models.BrokenLink{},
		StaleFiles:        []string{},
	}

	for _, path := range onDisk {
		if _, ok := referenced[path]; !ok {
			report.OrphanedFiles = append(report.OrphanedFiles, path)
		}
	}

	staleCutoff := s.now().UTC().Add(-s.staleAfter)
	for i := range jobs {
		job := &jobs[i]
		if link := s.inspect(job); link != nil {
			report.BrokenLinks = append(report.BrokenLinks, *link)
		}
		terminal := job.Status == models.StatusRejected || job.Status == models.StatusPaidPickedUp
		if terminal && job.UpdatedAt.Before(staleCutoff) && s.files.Exists(job.FilePath) {
			report.StaleFiles = append(report.StaleFiles, job.FilePath)
		}
	}
	return report, nil
}

// inspect checks one job's filesystem links.
func (s *AuditService) inspect(job *models.Job) *models.BrokenLink {
	var issues []string
	expectedDir := job.Status.Dir()
	actualDir := ""

	if !s.files.Exists(job.FilePath) {
		issues = append(issues, models.AuditIssueFileMissing)
	} else {
		actualDir = filepath.Base(filepath.Dir(job.FilePath))
		if actualDir != expectedDir {
			issues = append(issues, models.AuditIssueDirStatusMismatch)
		}
	}

	if !s.files.Exists(job.MetadataPath) {
		issues = append(issues, models.AuditIssueMetadataMissing)
	} else {
		meta := s.files.ReadMetadata(job.MetadataPath)
		if recorded, ok := meta["status"].(string); ok && recorded != string(job.Status) {
			issues = append(issues, models.AuditIssueMetadataMismatch)
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &models.BrokenLink{
		JobID:        job.ID,
		Issues:       issues,
		FilePath:     job.FilePath,
		MetadataPath: job.MetadataPath,
		ExpectedDir:  expectedDir,
		ActualDir:    actualDir,
	}
}

// DeleteFile removes an orphaned file flagged by the scan.
func (s *AuditService) DeleteFile(ctx context.Context, req dto.AuditDeleteFileRequest, workstationID string) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid audit payload")
	}
	if err := s.requireActiveStaff(ctx, req.StaffName); err != nil {
		return err
	}
	if err := s.files.Delete(req.Path); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not delete file")
	}
	s.record(ctx, "system", models.EventAuditFileDeleted, req.StaffName, workstationID,
		models.JSONMap{"path": req.Path})
	return nil
}

// MarkReviewed notes that staff looked at a flagged job and accepted
// its current state.
func (s *AuditService) MarkReviewed(ctx context.Context, req dto.AuditReviewRequest, workstationID string) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid audit payload")
	}
	if err := s.requireActiveStaff(ctx, req.StaffName); err != nil {
		return err
	}
	job, err := s.jobs.FindByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	var details models.JSONMap
	if len(req.Issues) > 0 {
		details = models.JSONMap{"issues": req.Issues}
	}
	s.record(ctx, job.ID, models.EventAuditReviewed, req.StaffName, workstationID, details)
	return nil
}

func (s *AuditService) allJobs(ctx context.Context) ([]models.Job, error) {
	active, err := s.jobs.List(ctx, models.JobFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}
	archived, err := s.jobs.List(ctx, models.JobFilter{Status: models.StatusArchived})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list archived jobs")
	}
	return append(active, archived...), nil
}

func (s *AuditService) requireActiveStaff(ctx context.Context, name string) error {
	member, err := s.staff.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown staff member %q", name))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify staff")
	}
	if !member.IsActive {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("staff member %q is deactivated", name))
	}
	return nil
}

func (s *AuditService) record(ctx context.Context, jobID, eventType, staff, workstationID string, details models.JSONMap) {
	err := s.events.Create(ctx, &models.Event{
		JobID:         jobID,
		EventType:     eventType,
		TriggeredBy:   staff,
		WorkstationID: workstationID,
		Details:       details,
	})
	if err != nil {
		s.logger.Warn("failed to record audit event", zap.String("event_type", eventType), zap.Error(err))
	}
}
