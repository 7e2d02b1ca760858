package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coad-fablab/printlab-api/internal/models"
)

type stubCountsStore struct {
	counts map[models.JobStatus]int
	calls  int
}

func (s *stubCountsStore) CountsByStatus(_ context.Context) (map[models.JobStatus]int, error) {
	s.calls++
	return s.counts, nil
}

func TestDashboardCountsZeroFilled(t *testing.T) {
	store := &stubCountsStore{counts: map[models.JobStatus]int{
		models.StatusUploaded: 3,
		models.StatusPrinting: 1,
	}}
	svc := NewDashboardService(store, nil, 15*time.Second, nil, nil)

	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, counts["UPLOADED"])
	assert.Equal(t, 1, counts["PRINTING"])
	// every pipeline stage is present even at zero
	assert.Len(t, counts, len(models.AllStatuses))
	assert.Equal(t, 0, counts["REJECTED"])
}

func TestDashboardCountsWithoutCacheHitsStoreEachCall(t *testing.T) {
	store := &stubCountsStore{counts: map[models.JobStatus]int{}}
	svc := NewDashboardService(store, nil, 15*time.Second, nil, nil)

	_, err := svc.Counts(context.Background())
	require.NoError(t, err)
	_, err = svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
}
