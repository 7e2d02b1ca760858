package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coad-fablab/printlab-api/internal/dto"
	mailtmpl "github.com/coad-fablab/printlab-api/internal/mail"
	"github.com/coad-fablab/printlab-api/internal/models"
	"github.com/coad-fablab/printlab-api/pkg/config"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
	"github.com/coad-fablab/printlab-api/pkg/storage"
)

type submissionJobStore interface {
	Create(ctx context.Context, job *models.Job) error
	FindActiveDuplicate(ctx context.Context, fileHash, email string) (*models.Job, error)
}

type eventStore interface {
	Create(ctx context.Context, event *models.Event) error
}

// Upload is the raw file part of a submission.
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// SubmissionService validates and stores new print jobs.
type SubmissionService struct {
	jobs     submissionJobStore
	events   eventStore
	files    *storage.FileStore
	notifier notifier
	cfg      config.StorageConfig
	logger   *zap.Logger
}

// NewSubmissionService constructs the submission service.
func NewSubmissionService(jobs submissionJobStore, events eventStore, files *storage.FileStore, n notifier, cfg config.StorageConfig, logger *zap.Logger) *SubmissionService {
	if n == nil {
		n = noopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{jobs: jobs, events: events, files: files, notifier: n, cfg: cfg, logger: logger}
}

// Submit validates the form and file, stores both, and creates the job
// in UPLOADED state. All field problems are reported together.
func (s *SubmissionService) Submit(ctx context.Context, req dto.SubmitRequest, upload Upload) (*models.Job, error) {
	if fields := s.validate(req, upload); len(fields) > 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "submission has invalid fields").WithFields(fields)
	}
	if upload.Size > s.cfg.MaxFileSizeBytes {
		return nil, appErrors.ErrPayloadTooLarge
	}

	// Read with a hard cap in case the declared size lied.
	data, err := io.ReadAll(io.LimitReader(upload.Reader, s.cfg.MaxFileSizeBytes+1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
	}
	if int64(len(data)) > s.cfg.MaxFileSizeBytes {
		return nil, appErrors.ErrPayloadTooLarge
	}

	sum := sha256.Sum256(data)
	fileHash := hex.EncodeToString(sum[:])
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if dup, err := s.jobs.FindActiveDuplicate(ctx, fileHash, email); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check for duplicates")
	} else if dup != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("this file is already submitted as job %s", dup.ShortID))
	}

	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	shortID := id[:8]
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	displayName := fmt.Sprintf("%s%s_%s_%s_%s%s",
		sanitizeNamePart(req.FirstName), sanitizeNamePart(req.LastName),
		req.Method, sanitizeNamePart(req.Color), shortID, ext)

	uploadDir := models.StatusUploaded.Dir()
	filePath, err := s.files.Save(uploadDir, displayName, data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store upload")
	}

	job := &models.Job{
		ID:               id,
		ShortID:          shortID,
		StudentName:      strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName),
		Email:            email,
		Discipline:       req.Discipline,
		ClassNumber:      strings.TrimSpace(req.ClassNumber),
		OriginalFilename: upload.Filename,
		DisplayName:      displayName,
		FilePath:         filePath,
		MetadataPath:     filePath + ".json",
		FileHash:         fileHash,
		Status:           models.StatusUploaded,
		Printer:          req.Printer,
		Color:            req.Color,
		Material:         req.Method,

		AcknowledgedMinimumCharge: req.AcknowledgedMinimumCharge,
	}

	if err := s.files.WriteMetadata(job.MetadataPath, metadataFor(job)); err != nil {
		s.logger.Warn("failed to write metadata sidecar", zap.String("job_id", job.ID), zap.Error(err))
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		// Roll the stored file back so a retry does not trip the
		// duplicate check.
		if delErr := s.files.Delete(filePath); delErr != nil {
			s.logger.Error("failed to clean up upload after insert failure", zap.String("path", filePath), zap.Error(delErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create job")
	}

	if err := s.events.Create(ctx, &models.Event{
		JobID:       job.ID,
		EventType:   models.EventJobCreated,
		TriggeredBy: "student",
		Details:     models.JSONMap{"display_name": job.DisplayName, "printer": job.Printer},
	}); err != nil {
		s.logger.Warn("failed to record creation event", zap.String("job_id", job.ID), zap.Error(err))
	}

	s.notifier.Notify(mailtmpl.SubmissionReceived(job))
	s.logger.Info("job submitted",
		zap.String("job_id", job.ID),
		zap.String("short_id", job.ShortID),
		zap.String("student_email", job.Email))
	return job, nil
}

// emailPattern matches the submission form's check. It requires a
// dotted domain, so bare hosts like student@localhost are rejected.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// validate collects every field problem instead of failing on the
// first, matching the submission form's inline error display.
func (s *SubmissionService) validate(req dto.SubmitRequest, upload Upload) map[string]string {
	fields := map[string]string{}

	if n := len(strings.TrimSpace(req.FirstName)); n < 2 || n > 100 {
		fields["first_name"] = "first name must be 2 to 100 characters"
	}
	if n := len(strings.TrimSpace(req.LastName)); n < 2 || n > 100 {
		fields["last_name"] = "last name must be 2 to 100 characters"
	}
	email := strings.TrimSpace(req.Email)
	if !emailPattern.MatchString(email) || len(email) > 100 {
		fields["email"] = "a valid email address is required"
	}
	if !models.ValidDiscipline(req.Discipline) {
		fields["discipline"] = "unknown discipline"
	}
	if n := len(strings.TrimSpace(req.ClassNumber)); n == 0 || n > 50 {
		fields["class_number"] = "class number is required (50 characters max)"
	}
	if req.Method != models.MethodFilament && req.Method != models.MethodResin {
		fields["method"] = "method must be Filament or Resin"
	} else {
		if !models.ValidColor(req.Method, req.Color) {
			fields["color"] = fmt.Sprintf("color not available for %s", req.Method)
		}
		if !models.ValidPrinter(req.Method, req.Printer) {
			fields["printer"] = fmt.Sprintf("printer not available for %s", req.Method)
		}
	}
	if !req.AcknowledgedMinimumCharge {
		fields["acknowledged_minimum_charge"] = "the minimum charge must be acknowledged"
	}
	if !req.ConfirmedScaled {
		fields["confirmed_scaled"] = "confirm the model is scaled to the intended print size"
	}
	if upload.Filename == "" || upload.Size == 0 {
		fields["file"] = "a model file is required"
	} else if !models.AllowedExtension(upload.Filename) {
		fields["file"] = "file must be .stl, .obj, or .3mf"
	}
	return fields
}

// metadataFor builds the sidecar contents written next to the model
// file so jobs survive even if the database is rebuilt.
func metadataFor(job *models.Job) map[string]interface{} {
	return map[string]interface{}{
		"job_id":            job.ID,
		"short_id":          job.ShortID,
		"student_name":      job.StudentName,
		"student_email":     job.Email,
		"discipline":        job.Discipline,
		"class_number":      job.ClassNumber,
		"original_filename": job.OriginalFilename,
		"display_name":      job.DisplayName,
		"status":            string(job.Status),
		"printer":           job.Printer,
		"color":             job.Color,
		"material":          job.Material,
	}
}

// sanitizeNamePart strips everything but letters and digits so the
// standardized filename stays filesystem safe.
func sanitizeNamePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
