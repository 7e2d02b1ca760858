package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coad-fablab/printlab-api/internal/dto"
	"github.com/coad-fablab/printlab-api/internal/middleware"
	"github.com/coad-fablab/printlab-api/internal/models"
	"github.com/coad-fablab/printlab-api/internal/service"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
)

type overrideServiceMock struct {
	job      *models.Job
	archived int64
	events   []models.Event
	err      error

	lastReq dto.OverrideRequest
	lastWS  string
}

func (m *overrideServiceMock) Override(ctx context.Context, req dto.OverrideRequest, workstationID string) (*models.Job, error) {
	m.lastReq = req
	m.lastWS = workstationID
	return m.job, m.err
}

func (m *overrideServiceMock) ArchiveOld(ctx context.Context, req dto.ArchiveRequest, workstationID string) (int64, error) {
	m.lastWS = workstationID
	return m.archived, m.err
}

func (m *overrideServiceMock) RecentEvents(ctx context.Context, limit int) ([]models.Event, error) {
	return m.events, m.err
}

type auditServiceMock struct {
	report *models.AuditReport
	err    error

	deletedPath string
	reviewedJob string
}

func (m *auditServiceMock) Run(ctx context.Context) (*models.AuditReport, error) {
	return m.report, m.err
}

func (m *auditServiceMock) DeleteFile(ctx context.Context, req dto.AuditDeleteFileRequest, workstationID string) error {
	m.deletedPath = req.Path
	return m.err
}

func (m *auditServiceMock) MarkReviewed(ctx context.Context, req dto.AuditReviewRequest, workstationID string) error {
	m.reviewedJob = req.JobID
	return m.err
}

type exportServiceMock struct {
	result *service.ExportResult
	err    error

	lastFormat string
	lastFilter models.JobFilter
}

func (m *exportServiceMock) Export(ctx context.Context, filter models.JobFilter, format string) (*service.ExportResult, error) {
	m.lastFilter = filter
	m.lastFormat = format
	return m.result, m.err
}

func adminRequest(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextWorkstationKey, &models.WorkstationClaims{WorkstationID: "ws-back"})
	return c, w
}

func TestAdminHandlerOverride(t *testing.T) {
	mock := &overrideServiceMock{job: &models.Job{ID: "job-1", Status: models.StatusPending}}
	handler := NewAdminHandler(mock, &auditServiceMock{}, &exportServiceMock{})

	c, w := adminRequest(t, http.MethodPost, "/admin/override", dto.OverrideRequest{
		Action:    dto.OverrideUnlock,
		JobID:     "job-1",
		StaffName: "Dana",
		Reason:    "student emailed an updated model",
	})
	handler.Override(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.OverrideUnlock, mock.lastReq.Action)
	assert.Equal(t, "ws-back", mock.lastWS)
}

func TestAdminHandlerAuditReport(t *testing.T) {
	mock := &auditServiceMock{report: &models.AuditReport{
		ReportGeneratedAt: time.Now(),
		OrphanedFiles:     []string{"Uploaded/stray.stl"},
		BrokenLinks:       []models.BrokenLink{},
		StaleFiles:        []string{},
	}}
	handler := NewAdminHandler(&overrideServiceMock{}, mock, &exportServiceMock{})

	c, w := adminRequest(t, http.MethodGet, "/admin/audit/report", nil)
	handler.Audit(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stray.stl")
}

func TestAdminHandlerAuditDeleteFile(t *testing.T) {
	mock := &auditServiceMock{}
	handler := NewAdminHandler(&overrideServiceMock{}, mock, &exportServiceMock{})

	c, w := adminRequest(t, http.MethodDelete, "/admin/audit/orphaned-file", dto.AuditDeleteFileRequest{
		Path:      "Uploaded/stray.stl",
		StaffName: "Dana",
	})
	handler.AuditDeleteFile(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "Uploaded/stray.stl", mock.deletedPath)
}

func TestAdminHandlerArchive(t *testing.T) {
	mock := &overrideServiceMock{archived: 12}
	handler := NewAdminHandler(mock, &auditServiceMock{}, &exportServiceMock{})

	c, w := adminRequest(t, http.MethodPost, "/admin/archive", dto.ArchiveRequest{
		OlderThanDays: 90,
		StaffName:     "Dana",
	})
	handler.Archive(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"archived":12`)
}

func TestAdminHandlerExportHeaders(t *testing.T) {
	mock := &exportServiceMock{result: &service.ExportResult{
		Filename:    "print-jobs-2026-09-01.csv",
		ContentType: "text/csv",
		Data:        []byte("short_id\n01234567\n"),
	}}
	handler := NewAdminHandler(&overrideServiceMock{}, &auditServiceMock{}, mock)

	c, w := adminRequest(t, http.MethodGet, "/admin/export?format=csv&status=rejected", nil)
	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", mock.lastFormat)
	assert.Equal(t, models.StatusRejected, mock.lastFilter.Status)
	assert.Equal(t, `attachment; filename="print-jobs-2026-09-01.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "01234567")
}

func TestAdminHandlerExportUnknownFormat(t *testing.T) {
	mock := &exportServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "unsupported export format")}
	handler := NewAdminHandler(&overrideServiceMock{}, &auditServiceMock{}, mock)

	c, w := adminRequest(t, http.MethodGet, "/admin/export?format=xlsx", nil)
	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandlerRecentEvents(t *testing.T) {
	mock := &overrideServiceMock{events: []models.Event{{ID: 9, JobID: "job-1", EventType: "AdminOverride"}}}
	handler := NewAdminHandler(mock, &auditServiceMock{}, &exportServiceMock{})

	c, w := adminRequest(t, http.MethodGet, "/analytics/events?limit=25", nil)
	handler.RecentEvents(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AdminOverride")
}
