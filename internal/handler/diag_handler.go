package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coad-fablab/printlab-api/internal/service"
	"github.com/coad-fablab/printlab-api/pkg/response"
)

type diagService interface {
	Report(ctx context.Context) *service.DiagReport
}

// DiagHandler exposes health and diagnostics endpoints.
type DiagHandler struct {
	diag diagService
}

// NewDiagHandler constructs DiagHandler.
func NewDiagHandler(diag diagService) *DiagHandler {
	return &DiagHandler{diag: diag}
}

// Health godoc
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /health [get]
func (h *DiagHandler) Health(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// Diag godoc
// @Summary Subsystem diagnostics for the staff panel
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /_diag [get]
func (h *DiagHandler) Diag(c *gin.Context) {
	report := h.diag.Report(c.Request.Context())
	status := http.StatusOK
	if !report.Healthy {
		status = http.StatusServiceUnavailable
	}
	response.JSON(c, status, report)
}
