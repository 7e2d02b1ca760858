package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coad-fablab/printlab-api/internal/models"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
)

const countsCacheKey = "printlab:job_counts"

type countsStore interface {
	CountsByStatus(ctx context.Context) (map[models.JobStatus]int, error)
}

// DashboardService serves the aggregate views that every staff tab
// polls, with a short Redis cache in front of the count query.
type DashboardService struct {
	jobs    countsStore
	cache   *redis.Client
	ttl     time.Duration
	metrics *MetricsService
	logger  *zap.Logger
}

// NewDashboardService constructs the dashboard service. The cache
// client may be nil, in which case every call hits the database.
func NewDashboardService(jobs countsStore, cache *redis.Client, ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &DashboardService{jobs: jobs, cache: cache, ttl: ttl, metrics: metrics, logger: logger}
}

// Counts returns per-status job totals, zero-filled so tabs can render
// every pipeline stage.
func (s *DashboardService) Counts(ctx context.Context) (map[string]int, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	counts, err := s.jobs.CountsByStatus(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count jobs")
	}

	result := make(map[string]int, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		result[string(status)] = counts[status]
	}
	s.toCache(ctx, result)
	return result, nil
}

func (s *DashboardService) fromCache(ctx context.Context) map[string]int {
	if s.cache == nil {
		return nil
	}
	start := time.Now()
	raw, err := s.cache.Get(ctx, countsCacheKey).Bytes()
	hit := err == nil
	s.metrics.RecordCacheOperation(hit, time.Since(start))
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("counts cache read failed", zap.Error(err))
		}
		return nil
	}
	var counts map[string]int
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil
	}
	return counts
}

func (s *DashboardService) toCache(ctx context.Context, counts map[string]int) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	start := time.Now()
	if err := s.cache.Set(ctx, countsCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("counts cache write failed", zap.Error(err))
	}
	s.metrics.ObserveCacheWrite(time.Since(start))
}

// InvalidateCounts drops the cached totals after a mutation.
func (s *DashboardService) InvalidateCounts(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, countsCacheKey).Err(); err != nil {
		s.logger.Warn("counts cache invalidation failed", zap.Error(err))
	}
}
