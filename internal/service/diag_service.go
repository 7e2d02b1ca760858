package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/coad-fablab/printlab-api/internal/mail"
	"github.com/coad-fablab/printlab-api/pkg/config"
	"github.com/coad-fablab/printlab-api/pkg/storage"
)

// DiagReport summarises the health of every subsystem for the staff
// diagnostics panel.
type DiagReport struct {
	GeneratedAt       time.Time         `json:"generated_at"`
	UptimeSec         float64           `json:"uptime_sec"`
	GoVersion         string            `json:"go_version"`
	AppEnv            string            `json:"app_env"`
	DBEngine          string            `json:"db_engine"`
	DBURLSanitized    string            `json:"db_url_sanitized"`
	// MigrationHead stays null; schema migrations run outside the app.
	MigrationHead     *string           `json:"migration_head"`
	JobCountsByStatus map[string]int    `json:"job_counts_by_status"`
	Checks            map[string]string `json:"checks"`
	Healthy           bool              `json:"healthy"`
}

// DiagService runs subsystem probes.
type DiagService struct {
	db        *sqlx.DB
	cache     *redis.Client
	files     *storage.FileStore
	mailer    *mail.Mailer
	counts    countsStore
	cfg       *config.Config
	startedAt time.Time
}

// NewDiagService constructs the diagnostics service.
func NewDiagService(db *sqlx.DB, cache *redis.Client, files *storage.FileStore, mailer *mail.Mailer, counts countsStore, cfg *config.Config) *DiagService {
	return &DiagService{db: db, cache: cache, files: files, mailer: mailer, counts: counts, cfg: cfg, startedAt: time.Now()}
}

// Report probes the database, cache, storage, and mail relay.
func (s *DiagService) Report(ctx context.Context) *DiagReport {
	checks := map[string]string{}
	healthy := true

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if s.db != nil {
		if err := s.db.PingContext(ctx); err != nil {
			checks["database"] = fmt.Sprintf("error: %v", err)
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
		healthy = false
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx).Err(); err != nil {
			checks["redis"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "not configured"
	}

	checks["storage"] = s.probeStorage()
	if checks["storage"] != "ok" {
		healthy = false
	}

	if s.mailer != nil && s.mailer.Enabled() {
		checks["mail"] = "ok"
	} else {
		checks["mail"] = "disabled"
	}

	report := &DiagReport{
		GeneratedAt: time.Now().UTC(),
		UptimeSec:   time.Since(s.startedAt).Seconds(),
		GoVersion:   runtime.Version(),
		DBEngine:    "postgres",
		Checks:      checks,
		Healthy:     healthy,
	}
	if s.cfg != nil {
		report.AppEnv = s.cfg.Env
		report.DBURLSanitized = fmt.Sprintf("postgres://%s@%s:%d/%s",
			s.cfg.Database.User, s.cfg.Database.Host, s.cfg.Database.Port, s.cfg.Database.Name)
	}
	if s.counts != nil {
		if counts, err := s.counts.CountsByStatus(ctx); err == nil {
			byStatus := make(map[string]int, len(counts))
			for status, n := range counts {
				byStatus[string(status)] = n
			}
			report.JobCountsByStatus = byStatus
		}
	}
	return report
}

// probeStorage verifies the storage root is writable.
func (s *DiagService) probeStorage() string {
	if s.files == nil {
		return "not configured"
	}
	probe := filepath.Join(s.files.Root(), ".diag")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	os.Remove(probe)
	return "ok"
}
