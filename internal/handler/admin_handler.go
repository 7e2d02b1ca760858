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

type overrideService interface {
	Override(ctx context.Context, req dto.OverrideRequest, workstationID string) (*models.Job, error)
	ArchiveOld(ctx context.Context, req dto.ArchiveRequest, workstationID string) (int64, error)
	RecentEvents(ctx context.Context, limit int) ([]models.Event, error)
}

type auditService interface {
	Run(ctx context.Context) (*models.AuditReport, error)
	DeleteFile(ctx context.Context, req dto.AuditDeleteFileRequest, workstationID string) error
	MarkReviewed(ctx context.Context, req dto.AuditReviewRequest, workstationID string) error
}

type exportService interface {
	Export(ctx context.Context, filter models.JobFilter, format string) (*service.ExportResult, error)
}

// AdminHandler exposes override, audit, export, and retention
// endpoints.
type AdminHandler struct {
	jobs    overrideService
	audit   auditService
	exports exportService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(jobs overrideService, audit auditService, exports exportService) *AdminHandler {
	return &AdminHandler{jobs: jobs, audit: audit, exports: exports}
}

// Override godoc
// @Summary Perform an out-of-band job correction
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.OverrideRequest true "Override payload"
// @Success 200 {object} response.Envelope
// @Router /admin/override [post]
func (h *AdminHandler) Override(c *gin.Context) {
	var req dto.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	job, err := h.jobs.Override(c.Request.Context(), req, middleware.WorkstationID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"job": job})
}

// Audit godoc
// @Summary Scan storage for inconsistencies
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/audit/report [get]
func (h *AdminHandler) Audit(c *gin.Context) {
	report, err := h.audit.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// AuditDeleteFile godoc
// @Summary Delete an orphaned or stale file found by the audit
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.AuditDeleteFileRequest true "Deletion payload"
// @Success 204 "No Content"
// @Router /admin/audit/orphaned-file [delete]
func (h *AdminHandler) AuditDeleteFile(c *gin.Context) {
	var req dto.AuditDeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	if err := h.audit.DeleteFile(c.Request.Context(), req, middleware.WorkstationID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AuditMarkReviewed godoc
// @Summary Mark a flagged job as manually reviewed
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.AuditReviewRequest true "Review payload"
// @Success 204 "No Content"
// @Router /admin/audit/mark-reviewed [post]
func (h *AdminHandler) AuditMarkReviewed(c *gin.Context) {
	var req dto.AuditReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	if err := h.audit.MarkReviewed(c.Request.Context(), req, middleware.WorkstationID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Archive godoc
// @Summary Archive terminal jobs older than a cutoff
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.ArchiveRequest true "Archive payload"
// @Success 200 {object} response.Envelope
// @Router /admin/archive [post]
func (h *AdminHandler) Archive(c *gin.Context) {
	var req dto.ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	archived, err := h.jobs.ArchiveOld(c.Request.Context(), req, middleware.WorkstationID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ArchiveResponse{Archived: int(archived)})
}

// Export godoc
// @Summary Export jobs as CSV or PDF
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "csv or pdf"
// @Param status query string false "Filter by status"
// @Success 200 {file} file
// @Router /admin/export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	filter := models.JobFilter{
		Status:     models.JobStatus(strings.ToUpper(c.Query("status"))),
		Printer:    c.Query("printer"),
		Discipline: c.Query("discipline"),
	}
	result, err := h.exports.Export(c.Request.Context(), filter, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// RecentEvents godoc
// @Summary List recent events across all jobs
// @Tags Admin
// @Produce json
// @Param limit query int false "Max entries"
// @Success 200 {object} response.Envelope
// @Router /analytics/events [get]
func (h *AdminHandler) RecentEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	events, err := h.jobs.RecentEvents(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"events": events})
}
