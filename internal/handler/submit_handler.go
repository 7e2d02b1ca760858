package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coad-fablab/printlab-api/internal/dto"
	"github.com/coad-fablab/printlab-api/internal/models"
	"github.com/coad-fablab/printlab-api/internal/service"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
	"github.com/coad-fablab/printlab-api/pkg/response"
)

type submissionService interface {
	Submit(ctx context.Context, req dto.SubmitRequest, upload service.Upload) (*models.Job, error)
}

type confirmationService interface {
	Confirm(ctx context.Context, token string) (*models.Job, error)
}

// SubmitHandler exposes the public submission endpoints.
type SubmitHandler struct {
	submissions submissionService
	jobs        confirmationService
	metrics     *service.MetricsService
}

// NewSubmitHandler constructs SubmitHandler.
func NewSubmitHandler(submissions submissionService, jobs confirmationService, metrics *service.MetricsService) *SubmitHandler {
	return &SubmitHandler{submissions: submissions, jobs: jobs, metrics: metrics}
}

// Submit godoc
// @Summary Submit a new print job
// @Tags Submission
// @Accept multipart/form-data
// @Produce json
// @Param first_name formData string true "Student first name"
// @Param last_name formData string true "Student last name"
// @Param email formData string true "Student email"
// @Param discipline formData string true "Discipline"
// @Param class_number formData string true "Class number"
// @Param method formData string true "Print method (Filament or Resin)"
// @Param color formData string true "Color"
// @Param printer formData string true "Printer"
// @Param acknowledged_minimum_charge formData bool true "Minimum charge consent"
// @Param confirmed_scaled formData bool true "Model scaling consent"
// @Param file formData file true "Model file (.stl, .obj, .3mf)"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /submit [post]
func (h *SubmitHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid form data"))
		return
	}

	upload := service.Upload{}
	fileHeader, err := c.FormFile("file")
	if err == nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			response.Error(c, appErrors.Wrap(openErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
			return
		}
		defer file.Close()
		upload = service.Upload{Filename: fileHeader.Filename, Size: fileHeader.Size, Reader: file}
	}

	job, err := h.submissions.Submit(c.Request.Context(), req, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordSubmission()
	response.Created(c, dto.SubmitResponse{
		ID:          job.ID,
		ShortID:     job.ShortID,
		DisplayName: job.DisplayName,
		Status:      string(job.Status),
	})
}

// Options godoc
// @Summary List submission form options
// @Tags Submission
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /submit/options [get]
func (h *SubmitHandler) Options(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{
		"disciplines":            models.Disciplines,
		"methods":                []string{models.MethodFilament, models.MethodResin},
		"colors":                 models.ColorsByMethod,
		"printers":               models.PrintersByMethod,
		"default_reject_reasons": models.DefaultRejectReasons,
	})
}

// Confirm godoc
// @Summary Confirm a quoted job via emailed token
// @Tags Submission
// @Produce json
// @Param token path string true "Confirmation token"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Router /submit/confirm/{token} [post]
func (h *SubmitHandler) Confirm(c *gin.Context) {
	job, err := h.jobs.Confirm(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"job": job})
}
