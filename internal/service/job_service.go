package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/coad-fablab/printlab-api/internal/dto"
	mailtmpl "github.com/coad-fablab/printlab-api/internal/mail"
	"github.com/coad-fablab/printlab-api/internal/models"
	"github.com/coad-fablab/printlab-api/internal/pricing"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
	"github.com/coad-fablab/printlab-api/pkg/storage"
)

type jobStore interface {
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	FindByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error
	ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type staffStore interface {
	FindByName(ctx context.Context, name string) (*models.StaffMember, error)
}

type jobEventStore interface {
	Create(ctx context.Context, event *models.Event) error
	ListByJob(ctx context.Context, jobID string, limit int) ([]models.Event, error)
	ListRecent(ctx context.Context, limit int) ([]models.Event, error)
}

type paymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
}

// JobService drives jobs through the staff pipeline.
type JobService struct {
	jobs     jobStore
	staff    staffStore
	events   jobEventStore
	payments paymentStore
	files    *storage.FileStore
	signer   *storage.ConfirmationSigner
	notifier notifier

	publicURL string
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewJobService constructs the job service.
func NewJobService(
	jobs jobStore,
	staff staffStore,
	events jobEventStore,
	payments paymentStore,
	files *storage.FileStore,
	signer *storage.ConfirmationSigner,
	n notifier,
	publicURL string,
	validate *validator.Validate,
	logger *zap.Logger,
) *JobService {
	if n == nil {
		n = noopNotifier{}
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{
		jobs:      jobs,
		staff:     staff,
		events:    events,
		payments:  payments,
		files:     files,
		signer:    signer,
		notifier:  n,
		publicURL: strings.TrimRight(publicURL, "/"),
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns jobs matching the dashboard filter.
func (s *JobService) List(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", filter.Status))
	}
	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}
	return jobs, nil
}

// Get loads a single job by ID or short ID.
func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	return s.find(ctx, id)
}

// Events returns the audit trail for a job.
func (s *JobService) Events(ctx context.Context, id string, limit int) ([]models.Event, error) {
	job, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListByJob(ctx, job.ID, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

// RecentEvents returns the newest entries across the whole event log.
func (s *JobService) RecentEvents(ctx context.Context, limit int) ([]models.Event, error) {
	events, err := s.events.ListRecent(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

// Review toggles the staff-viewed marker.
func (s *JobService) Review(ctx context.Context, id string, req dto.ReviewRequest, workstationID string) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}
	if err := s.requireActiveStaff(ctx, req.StaffName); err != nil {
		return nil, err
	}
	job, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Reviewed {
		now := s.now().UTC()
		job.StaffViewedAt = &now
	} else {
		job.StaffViewedAt = nil
	}
	job.LastUpdatedBy = req.StaffName
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}
	s.logEvent(ctx, job.ID, models.EventJobReviewed, req.StaffName, workstationID,
		models.JSONMap{"reviewed": req.Reviewed})
	return job, nil
}

// Approve records slicer output, quotes the cost, and emails the
// student a confirmation link.
func (s *JobService) Approve(ctx context.Context, id string, req dto.ApproveRequest, workstationID string) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid approval payload")
	}
	if err := s.requireActiveStaff(ctx, req.StaffName); err != nil {
		return nil, err
	}
	job, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(job.Status, models.StatusPending) {
		return nil, s.transitionConflict(job.Status, models.StatusPending)
	}

	if req.AuthoritativeFilename != "" {
		if err := s.promoteAuthoritativeFile(job, req.AuthoritativeFilename); err != nil {
			return nil, err
		}
	}

	weight := req.WeightG
	hours := req.TimeHours
	cost := pricing.CostUSD(weight, job.Material)
	job.WeightG = &weight
	job.TimeHours = &hours
	job.CostUSD = &cost
	job.Status = models.StatusPending
	job.LastUpdatedBy = req.StaffName
	if job.StaffViewedAt == nil {
		now := s.now().UTC()
		job.StaffViewedAt = &now
	}
	// Files stay in the intake directory until the student confirms;
	// only the sidecar is refreshed here.
	s.syncJobMetadata(job)

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}
	s.logEvent(ctx, job.ID, models.EventJobApproved, req.StaffName, workstationID,
		models.JSONMap{"weight_g": weight, "time_hours": hours, "cost_usd": cost})

	token, _, err := s.signer.Generate(job.ID)
	if err != nil {
		s.logger.Error("failed to generate confirmation token", zap.String("job_id", job.ID), zap.Error(err))
	} else {
		s.notifier.Notify(mailtmpl.Approval(job, s.confirmURL(token)))
	}
	return job, nil
}

// Reject declines a job with at least one reason and notifies the
// student.
func (s *JobService) Reject(ctx context.Context, id string, req dto.RejectRequest, workstationID string) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rejection payload")
	}
	if err := s.requireActiveStaff(ctx, req.StaffName); err != nil {
		return nil, err
	}

	reasons := make([]string, 0, len(req.Reasons)+1)
	for _, r := range req.Reasons {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			reasons = append(reasons, trimmed)
		}
	}
	if custom := strings.TrimSpace(req.CustomReason); custom != "" {
		reasons = append(reasons, custom)
	}
	if len(reasons) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one rejection reason is required")
	}

	job, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(job.Status, models.StatusRejected) {
		return nil, s.transitionConflict(job.Status, models.StatusRejected)
	}

	job.Status = models.StatusRejected
	job.RejectReasons = models.StringList(reasons)
	job.LastUpdatedBy = req.StaffName
	if job.StaffViewedAt == nil {
		now := s.now().UTC()
		job.StaffViewedAt = &now
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}
	s.logEvent(ctx, job.ID, models.EventJobRejected, req.StaffName, workstationID,
		models.JSONMap{"reasons": reasons})
	s.notifier.Notify(mailtmpl.Rejection(job))
	return job, nil
}

// Confirm accepts a student's cost confirmation via emailed token and
// releases the job to print.
func (s *JobService) Confirm(ctx context.Context, token string) (*models.Job, error) {
	jobID, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.ErrGone
		}
		return nil, appErrors.Clone(appErrors.ErrValidation, "confirmation link is not valid")
	}

	job, err := s.find(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.StudentConfirmed {
		return job, nil
	}
	if !models.CanTransition(job.Status, models.StatusReadyToPrint) {
		return nil, s.transitionConflict(job.Status, models.StatusReadyToPrint)
	}

	now := s.now().UTC()
	job.StudentConfirmed = true
	job.StudentConfirmedAt = &now
	job.Status = models.StatusReadyToPrint
	s.moveJobFiles(job)

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}
	s.logEvent(ctx, job.ID, models.EventJobConfirmed, "student", "", nil)
	return job, nil
}

// MarkPrinting moves a confirmed job onto a printer.
func (s *JobService) MarkPrinting(ctx context.Context, id string, req dto.ActionRequest, workstationID string) (*models.Job, error) {
	return s.advance(ctx, id, req, workstationID, models.StatusPrinting)
}

// MarkComplete takes a job off the printer and notifies the student
// that it is ready for pickup.
func (s *JobService) MarkComplete(ctx context.Context, id string, req dto.ActionRequest, workstationID string) (*models.Job, error) {
	job, err := s.advance(ctx, id, req, workstationID, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(mailtmpl.Completed(job))
	return job, nil
}

// RecordPayment closes out a completed job with payment and pickup
// details.
func (s *JobService) RecordPayment(ctx context.Context, id string, req dto.PaymentRequest, workstationID string) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	if err := s.requireActiveStaff(ctx, req.StaffName); err != nil {
		return nil, err
	}
	job, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(job.Status, models.StatusPaidPickedUp) {
		return nil, s.transitionConflict(job.Status, models.StatusPaidPickedUp)
	}

	priceCents := 0
	if job.CostUSD != nil {
		priceCents = int(math.Round(*job.CostUSD * 100))
	}
	payment := &models.Payment{
		JobID:       job.ID,
		Grams:       req.Grams,
		PriceCents:  priceCents,
		TxnNo:       req.TxnNo,
		PickedUpBy:  req.PickedUpBy,
		PaidTS:      s.now().UTC(),
		PaidByStaff: req.StaffName,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}

	job.Status = models.StatusPaidPickedUp
	job.LastUpdatedBy = req.StaffName
	s.moveJobFiles(job)
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}
	s.logEvent(ctx, job.ID, models.EventPaymentRecorded, req.StaffName, workstationID,
		models.JSONMap{"txn_no": req.TxnNo, "picked_up_by": req.PickedUpBy, "grams": req.Grams, "price_cents": priceCents})
	return job, nil
}

// UpdateNotes replaces the staff notes on a job.
func (s *JobService) UpdateNotes(ctx context.Context, id string, req dto.NotesRequest, workstationID string) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notes payload")
	}
	if err := s.requireActiveStaff(ctx, req.StaffName); err != nil {
		return nil, err
	}
	job, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	job.Notes = req.Notes
	job.LastUpdatedBy = req.StaffName
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}
	return job, nil
}

// Delete removes a job that has not entered the print pipeline.
func (s *JobService) Delete(ctx context.Context, id string, req dto.ActionRequest, workstationID string) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid delete payload")
	}
	if err := s.requireActiveStaff(ctx, req.StaffName); err != nil {
		return err
	}
	job, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if job.Status != models.StatusUploaded && job.Status != models.StatusPending {
		return appErrors.Clone(appErrors.ErrForbidden,
			fmt.Sprintf("jobs in %s cannot be deleted", job.Status))
	}

	for _, path := range []string{job.FilePath, job.MetadataPath} {
		if path == "" {
			continue
		}
		if err := s.files.Delete(path); err != nil {
			s.logger.Warn("failed to delete job file", zap.String("path", path), zap.Error(err))
		}
	}
	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete job")
	}
	s.logEvent(ctx, job.ID, models.EventJobDeleted, req.StaffName, workstationID,
		models.JSONMap{"display_name": job.DisplayName, "status": string(job.Status)})
	return nil
}

// CandidateFiles lists sliced files sitting next to the job's model
// that could be promoted during approval. The most recently modified
// candidate is returned as the recommended pick.
func (s *JobService) CandidateFiles(ctx context.Context, id string) ([]string, string, error) {
	job, err := s.find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	names, err := s.files.ListDir(job.Status.Dir())
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to scan job directory")
	}
	current := filepath.Base(job.FilePath)
	dir := s.files.DirPath(job.Status.Dir())
	candidates := make([]string, 0)
	var recommended string
	var newest time.Time
	for _, name := range names {
		if name == current || strings.HasSuffix(name, ".json") {
			continue
		}
		if !strings.Contains(name, job.ShortID) {
			continue
		}
		candidates = append(candidates, name)
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && info.ModTime().After(newest) {
			newest = info.ModTime()
			recommended = name
		}
	}
	return candidates, recommended, nil
}

// Override performs an out-of-band correction with a logged reason.
func (s *JobService) Override(ctx context.Context, req dto.OverrideRequest, workstationID string) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid override payload")
	}
	if err := s.requireActiveStaff(ctx, req.StaffName); err != nil {
		return nil, err
	}
	job, err := s.find(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	previous := job.Status

	switch req.Action {
	case dto.OverrideChangeStatus:
		target := models.JobStatus(req.NewStatus)
		if !target.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", req.NewStatus))
		}
		job.Status = target
		s.moveJobFiles(job)
	case dto.OverrideUnlock:
		job.Status = models.StatusPending
		job.StudentConfirmed = false
		job.StudentConfirmedAt = nil
		s.moveJobFiles(job)
	case dto.OverrideConfirm:
		now := s.now().UTC()
		job.Status = models.StatusReadyToPrint
		job.StudentConfirmed = true
		job.StudentConfirmedAt = &now
		s.moveJobFiles(job)
	case dto.OverrideMarkFailed:
		job.Status = models.StatusRejected
		job.RejectReasons = append(job.RejectReasons, req.Reason)
	}

	job.LastUpdatedBy = req.StaffName
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}
	s.logEvent(ctx, job.ID, models.EventAdminOverride, req.StaffName, workstationID, models.JSONMap{
		"action":          req.Action,
		"reason":          req.Reason,
		"previous_status": string(previous),
		"new_status":      string(job.Status),
	})
	return job, nil
}

// ArchiveOld flips terminal jobs last touched before the cutoff to
// ARCHIVED.
func (s *JobService) ArchiveOld(ctx context.Context, req dto.ArchiveRequest, workstationID string) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid archive payload")
	}
	if err := s.requireActiveStaff(ctx, req.StaffName); err != nil {
		return 0, err
	}
	cutoff := s.now().UTC().AddDate(0, 0, -req.OlderThanDays)
	archived, err := s.jobs.ArchiveOlderThan(ctx, cutoff)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive jobs")
	}
	if archived > 0 {
		s.logEvent(ctx, "system", models.EventJobsArchived, req.StaffName, workstationID,
			models.JSONMap{"archived": archived, "older_than_days": req.OlderThanDays})
	}
	return archived, nil
}

// advance performs a simple staff-attributed status transition.
func (s *JobService) advance(ctx context.Context, id string, req dto.ActionRequest, workstationID string, target models.JobStatus) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if err := s.requireActiveStaff(ctx, req.StaffName); err != nil {
		return nil, err
	}
	job, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(job.Status, target) {
		return nil, s.transitionConflict(job.Status, target)
	}

	previous := job.Status
	job.Status = target
	job.LastUpdatedBy = req.StaffName
	s.moveJobFiles(job)
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}
	s.logEvent(ctx, job.ID, models.EventStatusChanged, req.StaffName, workstationID,
		models.JSONMap{"from": string(previous), "to": string(target)})
	return job, nil
}

func (s *JobService) find(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	return job, nil
}

// requireActiveStaff rejects actions attributed to unknown or
// deactivated staff.
func (s *JobService) requireActiveStaff(ctx context.Context, name string) error {
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

func (s *JobService) transitionConflict(from, to models.JobStatus) error {
	return appErrors.Clone(appErrors.ErrConflict,
		fmt.Sprintf("cannot move job from %s to %s", from, to))
}

// moveJobFiles relocates the model and its sidecar into the directory
// for the job's current status. Failures are logged and left for the
// storage audit, never surfaced to the caller.
func (s *JobService) moveJobFiles(job *models.Job) {
	dir := job.Status.Dir()
	if job.FilePath != "" {
		moved, err := s.files.Move(job.FilePath, dir)
		if err != nil {
			s.logger.Warn("failed to move job file", zap.String("job_id", job.ID), zap.Error(err))
		} else {
			job.FilePath = moved
		}
	}
	if job.MetadataPath != "" {
		moved, err := s.files.Move(job.MetadataPath, dir)
		if err != nil {
			s.logger.Warn("failed to move metadata sidecar", zap.String("job_id", job.ID), zap.Error(err))
		} else {
			job.MetadataPath = moved
		}
	}
	s.syncJobMetadata(job)
}

// syncJobMetadata rewrites the sidecar keys that change over a job's
// lifetime so the sidecar alone can rebuild the record.
func (s *JobService) syncJobMetadata(job *models.Job) {
	if job.MetadataPath == "" || !s.files.Exists(job.MetadataPath) {
		return
	}
	meta := s.files.ReadMetadata(job.MetadataPath)
	meta["status"] = string(job.Status)
	meta["file_path"] = job.FilePath
	meta["display_name"] = job.DisplayName
	meta["authoritative_filename"] = filepath.Base(job.FilePath)
	if err := s.files.WriteMetadata(job.MetadataPath, meta); err != nil {
		s.logger.Warn("failed to refresh metadata sidecar", zap.String("job_id", job.ID), zap.Error(err))
	}
}

// promoteAuthoritativeFile swaps the job's model file for a sliced
// file staff produced during review.
func (s *JobService) promoteAuthoritativeFile(job *models.Job, filename string) error {
	if filepath.Base(filename) != filename {
		return appErrors.Clone(appErrors.ErrValidation, "authoritative filename must not contain a path")
	}
	candidate := filepath.Join(s.files.DirPath(job.Status.Dir()), filename)
	if !s.files.Exists(candidate) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file %q not found next to the job", filename))
	}
	job.FilePath = candidate
	job.DisplayName = filename
	return nil
}

// logEvent appends to the job audit trail. The trail is advisory; a
// write failure only logs.
func (s *JobService) logEvent(ctx context.Context, jobID, eventType, staff, workstationID string, details models.JSONMap) {
	err := s.events.Create(ctx, &models.Event{
		JobID:         jobID,
		EventType:     eventType,
		TriggeredBy:   staff,
		WorkstationID: workstationID,
		Details:       details,
	})
	if err != nil {
		s.logger.Warn("failed to record event",
			zap.String("job_id", jobID),
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}

func (s *JobService) confirmURL(token string) string {
	return fmt.Sprintf("%s/confirm/%s", s.publicURL, token)
}
