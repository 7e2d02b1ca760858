package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coad-fablab/printlab-api/internal/dto"
	"github.com/coad-fablab/printlab-api/internal/models"
)

type stubStaffRepo struct {
	members map[string]*models.StaffMember
}

func (s *stubStaffRepo) List(_ context.Context, includeInactive bool) ([]models.StaffMember, error) {
	var out []models.StaffMember
	for _, m := range s.members {
		if !includeInactive && !m.IsActive {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (s *stubStaffRepo) FindByName(_ context.Context, name string) (*models.StaffMember, error) {
	if m, ok := s.members[name]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubStaffRepo) Create(_ context.Context, member *models.StaffMember) error {
	s.members[member.Name] = member
	return nil
}

func (s *stubStaffRepo) SetActive(_ context.Context, name string, active bool) error {
	m, ok := s.members[name]
	if !ok {
		return sql.ErrNoRows
	}
	m.IsActive = active
	if active {
		m.DeactivatedAt = nil
	} else {
		now := time.Now().UTC()
		m.DeactivatedAt = &now
	}
	return nil
}

func newStaffFixture() (*StaffService, *stubStaffRepo) {
	repo := &stubStaffRepo{members: map[string]*models.StaffMember{
		"Alex Kim": {Name: "Alex Kim", IsActive: true},
	}}
	return NewStaffService(repo, nil, nil), repo
}

func TestStaffServiceCreate(t *testing.T) {
	svc, repo := newStaffFixture()

	member, err := svc.Create(context.Background(), dto.CreateStaffRequest{Name: "  Riley Chen  "})
	require.NoError(t, err)
	assert.Equal(t, "Riley Chen", member.Name)
	assert.True(t, member.IsActive)
	assert.Contains(t, repo.members, "Riley Chen")
}

func TestStaffServiceCreateDuplicate(t *testing.T) {
	svc, _ := newStaffFixture()
	_, err := svc.Create(context.Background(), dto.CreateStaffRequest{Name: "Alex Kim"})
	requireStatus(t, err, http.StatusConflict)
}

func TestStaffServiceDeactivateStampsTime(t *testing.T) {
	svc, _ := newStaffFixture()

	inactive := false
	member, err := svc.SetActive(context.Background(), "Alex Kim", dto.StaffStatusRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, member.IsActive)
	require.NotNil(t, member.DeactivatedAt)

	active := true
	member, err = svc.SetActive(context.Background(), "Alex Kim", dto.StaffStatusRequest{IsActive: &active})
	require.NoError(t, err)
	assert.True(t, member.IsActive)
	assert.Nil(t, member.DeactivatedAt)
}

func TestStaffServiceSetActiveUnknown(t *testing.T) {
	svc, _ := newStaffFixture()
	active := true
	_, err := svc.SetActive(context.Background(), "Nobody", dto.StaffStatusRequest{IsActive: &active})
	requireStatus(t, err, http.StatusNotFound)
}

func TestStaffServiceListFiltersInactive(t *testing.T) {
	svc, repo := newStaffFixture()
	now := time.Now().UTC()
	repo.members["Riley Chen"] = &models.StaffMember{Name: "Riley Chen", IsActive: false, DeactivatedAt: &now}

	activeOnly, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, activeOnly, 1)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
