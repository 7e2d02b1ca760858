package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coad-fablab/printlab-api/internal/dto"
	"github.com/coad-fablab/printlab-api/internal/middleware"
	"github.com/coad-fablab/printlab-api/internal/models"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
)

type jobServiceMock struct {
	job    *models.Job
	jobs   []models.Job
	events []models.Event
	files  []string
	err    error

	lastFilter models.JobFilter
	lastID     string
	lastWS     string
}

func (m *jobServiceMock) List(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	m.lastFilter = filter
	return m.jobs, m.err
}

func (m *jobServiceMock) Get(ctx context.Context, id string) (*models.Job, error) {
	m.lastID = id
	return m.job, m.err
}

func (m *jobServiceMock) Events(ctx context.Context, id string, limit int) ([]models.Event, error) {
	m.lastID = id
	return m.events, m.err
}

func (m *jobServiceMock) CandidateFiles(ctx context.Context, id string) ([]string, string, error) {
	m.lastID = id
	if len(m.files) > 0 {
		return m.files, m.files[0], m.err
	}
	return m.files, "", m.err
}

func (m *jobServiceMock) Review(ctx context.Context, id string, req dto.ReviewRequest, workstationID string) (*models.Job, error) {
	m.lastID, m.lastWS = id, workstationID
	return m.job, m.err
}

func (m *jobServiceMock) Approve(ctx context.Context, id string, req dto.ApproveRequest, workstationID string) (*models.Job, error) {
	m.lastID, m.lastWS = id, workstationID
	return m.job, m.err
}

func (m *jobServiceMock) Reject(ctx context.Context, id string, req dto.RejectRequest, workstationID string) (*models.Job, error) {
	m.lastID, m.lastWS = id, workstationID
	return m.job, m.err
}

func (m *jobServiceMock) MarkPrinting(ctx context.Context, id string, req dto.ActionRequest, workstationID string) (*models.Job, error) {
	m.lastID, m.lastWS = id, workstationID
	return m.job, m.err
}

func (m *jobServiceMock) MarkComplete(ctx context.Context, id string, req dto.ActionRequest, workstationID string) (*models.Job, error) {
	m.lastID, m.lastWS = id, workstationID
	return m.job, m.err
}

func (m *jobServiceMock) RecordPayment(ctx context.Context, id string, req dto.PaymentRequest, workstationID string) (*models.Job, error) {
	m.lastID, m.lastWS = id, workstationID
	return m.job, m.err
}

func (m *jobServiceMock) UpdateNotes(ctx context.Context, id string, req dto.NotesRequest, workstationID string) (*models.Job, error) {
	m.lastID, m.lastWS = id, workstationID
	return m.job, m.err
}

func (m *jobServiceMock) Delete(ctx context.Context, id string, req dto.ActionRequest, workstationID string) error {
	m.lastID, m.lastWS = id, workstationID
	return m.err
}

type countsServiceMock struct {
	counts      map[string]int
	err         error
	invalidated int
}

func (m *countsServiceMock) Counts(ctx context.Context) (map[string]int, error) {
	return m.counts, m.err
}

func (m *countsServiceMock) InvalidateCounts(ctx context.Context) {
	m.invalidated++
}

func jobContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
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
	c.Set(middleware.ContextWorkstationKey, &models.WorkstationClaims{WorkstationID: "ws-front"})
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestJobHandlerListUppercasesStatus(t *testing.T) {
	mock := &jobServiceMock{jobs: []models.Job{{ID: "abc", ShortID: "abc", Status: models.StatusPending}}}
	handler := NewJobHandler(mock, &countsServiceMock{}, nil)

	c, w := jobContext(t, http.MethodGet, "/jobs?status=pending&search=%20jane%20", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusPending, mock.lastFilter.Status)
	assert.Equal(t, "jane", mock.lastFilter.Search)
	assert.Contains(t, w.Body.String(), `"jobs"`)
}

func TestJobHandlerCounts(t *testing.T) {
	dashboard := &countsServiceMock{counts: map[string]int{"UPLOADED": 3}}
	handler := NewJobHandler(&jobServiceMock{}, dashboard, nil)

	c, w := jobContext(t, http.MethodGet, "/jobs/counts", nil)
	handler.Counts(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"UPLOADED":3`)
}

func TestJobHandlerGetNotFound(t *testing.T) {
	mock := &jobServiceMock{err: appErrors.ErrNotFound}
	handler := NewJobHandler(mock, &countsServiceMock{}, nil)

	c, w := jobContext(t, http.MethodGet, "/jobs/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.Get(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
	assert.Equal(t, "missing", mock.lastID)
}

func TestJobHandlerCandidateFiles(t *testing.T) {
	mock := &jobServiceMock{files: []string{"abc12345_v2.3mf", "abc12345_v1.3mf"}}
	handler := NewJobHandler(mock, &countsServiceMock{}, nil)

	c, w := jobContext(t, http.MethodGet, "/jobs/job-1/candidate-files", nil)
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	handler.CandidateFiles(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "job-1", mock.lastID)
	assert.Contains(t, w.Body.String(), `"recommended":"abc12345_v2.3mf"`)
}

func TestJobHandlerApprovePassesWorkstation(t *testing.T) {
	mock := &jobServiceMock{job: &models.Job{ID: "job-1", Status: models.StatusPending}}
	dashboard := &countsServiceMock{}
	handler := NewJobHandler(mock, dashboard, nil)

	c, w := jobContext(t, http.MethodPost, "/jobs/job-1/approve", dto.ApproveRequest{
		StaffName: "Dana",
		WeightG:   42.5,
		TimeHours: 3,
	})
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	handler.Approve(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "job-1", mock.lastID)
	assert.Equal(t, "ws-front", mock.lastWS)
	assert.Equal(t, 1, dashboard.invalidated)
}

func TestJobHandlerApproveInvalidBody(t *testing.T) {
	handler := NewJobHandler(&jobServiceMock{}, &countsServiceMock{}, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/jobs/job-1/approve", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Approve(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestJobHandlerMarkPrintingConflict(t *testing.T) {
	mock := &jobServiceMock{err: appErrors.ErrConflict}
	handler := NewJobHandler(mock, &countsServiceMock{}, nil)

	c, w := jobContext(t, http.MethodPost, "/jobs/job-1/mark-printing", dto.ActionRequest{StaffName: "Dana"})
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	handler.MarkPrinting(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestJobHandlerDeleteNoContent(t *testing.T) {
	mock := &jobServiceMock{}
	dashboard := &countsServiceMock{}
	handler := NewJobHandler(mock, dashboard, nil)

	c, w := jobContext(t, http.MethodDelete, "/jobs/job-1", dto.ActionRequest{StaffName: "Dana"})
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
	assert.Equal(t, 1, dashboard.invalidated)
}

func TestJobHandlerEventsDefaultLimit(t *testing.T) {
	mock := &jobServiceMock{events: []models.Event{{ID: 1, JobID: "job-1", EventType: "JobCreated"}}}
	handler := NewJobHandler(mock, &countsServiceMock{}, nil)

	c, w := jobContext(t, http.MethodGet, "/jobs/job-1/events", nil)
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	handler.Events(c)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Contains(t, string(envelope["data"]), "JobCreated")
}
