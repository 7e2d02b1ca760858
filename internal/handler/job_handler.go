package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/coad-fablab/printlab-api/internal/dto"
	"github.com/coad-fablab/printlab-api/internal/middleware"
	"github.com/coad-fablab/printlab-api/internal/models"
	"github.com/coad-fablab/printlab-api/internal/service"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
	"github.com/coad-fablab/printlab-api/pkg/response"
)

type jobService interface {
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Events(ctx context.Context, id string, limit int) ([]models.Event, error)
	CandidateFiles(ctx context.Context, id string) ([]string, string, error)
	Review(ctx context.Context, id string, req dto.ReviewRequest, workstationID string) (*models.Job, error)
	Approve(ctx context.Context, id string, req dto.ApproveRequest, workstationID string) (*models.Job, error)
	Reject(ctx context.Context, id string, req dto.RejectRequest, workstationID string) (*models.Job, error)
	MarkPrinting(ctx context.Context, id string, req dto.ActionRequest, workstationID string) (*models.Job, error)
	MarkComplete(ctx context.Context, id string, req dto.ActionRequest, workstationID string) (*models.Job, error)
	RecordPayment(ctx context.Context, id string, req dto.PaymentRequest, workstationID string) (*models.Job, error)
	UpdateNotes(ctx context.Context, id string, req dto.NotesRequest, workstationID string) (*models.Job, error)
	Delete(ctx context.Context, id string, req dto.ActionRequest, workstationID string) error
}

type countsService interface {
	Counts(ctx context.Context) (map[string]int, error)
	InvalidateCounts(ctx context.Context)
}

// JobHandler exposes the staff job pipeline endpoints.
type JobHandler struct {
	jobs      jobService
	dashboard countsService
	metrics   *service.MetricsService
}

// NewJobHandler constructs JobHandler.
func NewJobHandler(jobs jobService, dashboard countsService, metrics *service.MetricsService) *JobHandler {
	return &JobHandler{jobs: jobs, dashboard: dashboard, metrics: metrics}
}

// List godoc
// @Summary List jobs for the dashboard
// @Tags Jobs
// @Produce json
// @Param status query string false "Filter by status"
// @Param search query string false "Search name, email, or file"
// @Param printer query string false "Filter by printer"
// @Param discipline query string false "Filter by discipline"
// @Success 200 {object} response.Envelope
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	filter := models.JobFilter{
		Status:     models.JobStatus(strings.ToUpper(c.Query("status"))),
		Search:     strings.TrimSpace(c.Query("search")),
		Printer:    c.Query("printer"),
		Discipline: c.Query("discipline"),
	}
	jobs, err := h.jobs.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"jobs": jobs})
}

// Counts godoc
// @Summary Per-status job counts for the dashboard tabs
// @Tags Jobs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /jobs/counts [get]
func (h *JobHandler) Counts(c *gin.Context) {
	counts, err := h.dashboard.Counts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"counts": counts})
}

// Get godoc
// @Summary Get a job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID or short ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"job": job})
}

// Events godoc
// @Summary List a job's event log
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Param limit query int false "Max entries"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/events [get]
func (h *JobHandler) Events(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	events, err := h.jobs.Events(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"events": events})
}

// CandidateFiles godoc
// @Summary List sliced files eligible to become authoritative
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/candidate-files [get]
func (h *JobHandler) CandidateFiles(c *gin.Context) {
	files, recommended, err := h.jobs.CandidateFiles(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.CandidateFilesResponse{Files: files, Recommended: recommended})
}

// Review godoc
// @Summary Toggle the staff-viewed marker
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body dto.ReviewRequest true "Review payload"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/review [post]
func (h *JobHandler) Review(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	job, err := h.jobs.Review(c.Request.Context(), c.Param("id"), req, middleware.WorkstationID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"job": job})
}

// Approve godoc
// @Summary Approve a job with slicer output
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body dto.ApproveRequest true "Approval payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /jobs/{id}/approve [post]
func (h *JobHandler) Approve(c *gin.Context) {
	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	job, err := h.jobs.Approve(c.Request.Context(), c.Param("id"), req, middleware.WorkstationID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.afterTransition(c, job)
	response.JSON(c, http.StatusOK, gin.H{"job": job})
}

// Reject godoc
// @Summary Reject a job with reasons
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body dto.RejectRequest true "Rejection payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /jobs/{id}/reject [post]
func (h *JobHandler) Reject(c *gin.Context) {
	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	job, err := h.jobs.Reject(c.Request.Context(), c.Param("id"), req, middleware.WorkstationID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.afterTransition(c, job)
	response.JSON(c, http.StatusOK, gin.H{"job": job})
}

// MarkPrinting godoc
// @Summary Move a confirmed job onto a printer
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body dto.ActionRequest true "Attribution payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /jobs/{id}/mark-printing [post]
func (h *JobHandler) MarkPrinting(c *gin.Context) {
	h.simpleAction(c, h.jobs.MarkPrinting)
}

// MarkComplete godoc
// @Summary Take a finished job off the printer
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body dto.ActionRequest true "Attribution payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /jobs/{id}/mark-complete [post]
func (h *JobHandler) MarkComplete(c *gin.Context) {
	h.simpleAction(c, h.jobs.MarkComplete)
}

// Payment godoc
// @Summary Record payment and pickup
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body dto.PaymentRequest true "Payment payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /jobs/{id}/payment [post]
func (h *JobHandler) Payment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	job, err := h.jobs.RecordPayment(c.Request.Context(), c.Param("id"), req, middleware.WorkstationID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.afterTransition(c, job)
	response.JSON(c, http.StatusOK, gin.H{"job": job})
}

// Notes godoc
// @Summary Replace staff notes on a job
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body dto.NotesRequest true "Notes payload"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/notes [patch]
func (h *JobHandler) Notes(c *gin.Context) {
	var req dto.NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	job, err := h.jobs.UpdateNotes(c.Request.Context(), c.Param("id"), req, middleware.WorkstationID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"job": job})
}

// Delete godoc
// @Summary Delete a job that has not entered the print pipeline
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body dto.ActionRequest true "Attribution payload"
// @Success 204 "No Content"
// @Failure 403 {object} response.Envelope
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	if err := h.jobs.Delete(c.Request.Context(), c.Param("id"), req, middleware.WorkstationID(c)); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.InvalidateCounts(c.Request.Context())
	response.NoContent(c)
}

// simpleAction handles the transitions whose body is only staff
// attribution.
func (h *JobHandler) simpleAction(c *gin.Context, action func(ctx context.Context, id string, req dto.ActionRequest, workstationID string) (*models.Job, error)) {
	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	job, err := action(c.Request.Context(), c.Param("id"), req, middleware.WorkstationID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.afterTransition(c, job)
	response.JSON(c, http.StatusOK, gin.H{"job": job})
}

// afterTransition refreshes cached counts and counts the transition.
func (h *JobHandler) afterTransition(c *gin.Context, job *models.Job) {
	h.dashboard.InvalidateCounts(c.Request.Context())
	h.metrics.RecordTransition(string(job.Status))
}
