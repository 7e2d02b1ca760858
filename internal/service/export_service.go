package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/coad-fablab/printlab-api/internal/models"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
	"github.com/coad-fablab/printlab-api/pkg/export"
)

type exportJobStore interface {
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
}

// ExportService renders the job table for offline reporting.
type ExportService struct {
	jobs   exportJobStore
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs the export service.
func NewExportService(jobs exportJobStore, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{jobs: jobs, logger: logger, now: time.Now}
}

// ExportResult is a rendered download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Export renders jobs matching the filter in csv or pdf format.
func (s *ExportService) Export(ctx context.Context, filter models.JobFilter, format string) (*ExportResult, error) {
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", filter.Status))
	}

	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}

	dataset := buildJobDataset(jobs)
	stamp := s.now().UTC().Format("2006-01-02")

	switch format {
	case "csv":
		data, err := export.RenderCSV(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("print-jobs-%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	default:
		data, err := export.RenderPDF(dataset, "FabLab Print Jobs")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("print-jobs-%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	}
}

func buildJobDataset(jobs []models.Job) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{
			"short_id", "student_name", "student_email", "discipline", "class_number",
			"status", "printer", "color", "material",
			"weight_g", "time_hours", "cost_usd", "created_at",
		},
	}
	for _, job := range jobs {
		dataset.Rows = append(dataset.Rows, []string{
			job.ShortID, job.StudentName, job.Email, job.Discipline, job.ClassNumber,
			string(job.Status), job.Printer, job.Color, job.Material,
			formatFloat(job.WeightG), formatFloat(job.TimeHours), formatFloat(job.CostUSD),
			job.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return dataset
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
