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
	"github.com/coad-fablab/printlab-api/internal/models"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
)

type staffServiceMock struct {
	members []models.StaffMember
	member  *models.StaffMember
	err     error

	lastIncludeInactive bool
	lastName            string
}

func (m *staffServiceMock) List(ctx context.Context, includeInactive bool) ([]models.StaffMember, error) {
	m.lastIncludeInactive = includeInactive
	return m.members, m.err
}

func (m *staffServiceMock) Create(ctx context.Context, req dto.CreateStaffRequest) (*models.StaffMember, error) {
	m.lastName = req.Name
	return m.member, m.err
}

func (m *staffServiceMock) SetActive(ctx context.Context, name string, req dto.StaffStatusRequest) (*models.StaffMember, error) {
	m.lastName = name
	return m.member, m.err
}

func staffRequest(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
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
	return c, w
}

func TestStaffHandlerListIncludeInactive(t *testing.T) {
	mock := &staffServiceMock{members: []models.StaffMember{{Name: "Dana", IsActive: true}}}
	handler := NewStaffHandler(mock)

	c, w := staffRequest(t, http.MethodGet, "/staff?include_inactive=true", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mock.lastIncludeInactive)
	assert.Contains(t, w.Body.String(), "Dana")
}

func TestStaffHandlerCreate(t *testing.T) {
	mock := &staffServiceMock{member: &models.StaffMember{Name: "Priya", IsActive: true}}
	handler := NewStaffHandler(mock)

	c, w := staffRequest(t, http.MethodPost, "/staff", dto.CreateStaffRequest{Name: "Priya"})
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Priya", mock.lastName)
	assert.Contains(t, w.Body.String(), `"member"`)
}

func TestStaffHandlerCreateDuplicate(t *testing.T) {
	mock := &staffServiceMock{err: appErrors.Clone(appErrors.ErrConflict, "staff member already exists")}
	handler := NewStaffHandler(mock)

	c, w := staffRequest(t, http.MethodPost, "/staff", dto.CreateStaffRequest{Name: "Priya"})
	handler.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStaffHandlerSetActiveNotFound(t *testing.T) {
	mock := &staffServiceMock{err: appErrors.ErrNotFound}
	handler := NewStaffHandler(mock)

	inactive := false
	c, w := staffRequest(t, http.MethodPatch, "/staff/Ghost", dto.StaffStatusRequest{IsActive: &inactive})
	c.Params = gin.Params{{Key: "name", Value: "Ghost"}}
	handler.SetActive(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Ghost", mock.lastName)
}
