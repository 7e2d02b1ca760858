package service

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coad-fablab/printlab-api/internal/dto"
	"github.com/coad-fablab/printlab-api/internal/models"
	"github.com/coad-fablab/printlab-api/pkg/storage"
)

type auditFixture struct {
	svc    *AuditService
	jobs   *stubJobStore
	events *stubEventStore
	files  *storage.FileStore
}

func newAuditFixture(t *testing.T, jobs ...*models.Job) *auditFixture {
	t.Helper()
	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	f := &auditFixture{
		jobs:   newStubJobStore(jobs...),
		events: &stubEventStore{},
		files:  files,
	}
	f.svc = NewAuditService(f.jobs, activeStaff("Alex Kim"), f.events, files, 30*24*time.Hour, nil, nil)
	return f
}

// place writes a file into a status directory and returns its path.
func place(t *testing.T, files *storage.FileStore, dir, name, content string) string {
	t.Helper()
	path, err := files.Save(dir, name, []byte(content))
	require.NoError(t, err)
	return path
}

func TestAuditCleanStorage(t *testing.T) {
	job := uploadedJob("job-1234")
	f := newAuditFixture(t, job)
	job.FilePath = place(t, f.files, "Uploaded", job.DisplayName, "model")
	job.MetadataPath = job.FilePath + ".json"
	require.NoError(t, f.files.WriteMetadata(job.MetadataPath, map[string]interface{}{"status": "UPLOADED"}))

	report, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.OrphanedFiles)
	assert.Empty(t, report.BrokenLinks)
	assert.Empty(t, report.StaleFiles)
	assert.False(t, report.ReportGeneratedAt.IsZero())
}

func TestAuditFindsOrphanedFiles(t *testing.T) {
	f := newAuditFixture(t)
	orphan := place(t, f.files, "ReadyToPrint", "nobody_owns_this.stl", "model")

	report, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{orphan}, report.OrphanedFiles)
}

func TestAuditFindsBrokenLinks(t *testing.T) {
	missing := uploadedJob("job-1234")
	missing.FilePath = "/nonexistent/file.stl"
	missing.MetadataPath = "/nonexistent/file.stl.json"

	misplaced := uploadedJob("job-5678")
	f := newAuditFixture(t, missing, misplaced)

	// file sits in Printing while the job says UPLOADED, and the
	// sidecar records a different status
	misplaced.FilePath = place(t, f.files, "Printing", misplaced.DisplayName, "model")
	misplaced.MetadataPath = misplaced.FilePath + ".json"
	require.NoError(t, f.files.WriteMetadata(misplaced.MetadataPath, map[string]interface{}{"status": "PRINTING"}))

	report, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.BrokenLinks, 2)

	byJob := map[string]models.BrokenLink{}
	for _, link := range report.BrokenLinks {
		byJob[link.JobID] = link
	}
	assert.ElementsMatch(t, []string{models.AuditIssueFileMissing, models.AuditIssueMetadataMissing}, byJob["job-1234"].Issues)
	assert.ElementsMatch(t, []string{models.AuditIssueDirStatusMismatch, models.AuditIssueMetadataMismatch}, byJob["job-5678"].Issues)
	assert.Equal(t, "Uploaded", byJob["job-5678"].ExpectedDir)
	assert.Equal(t, "Printing", byJob["job-5678"].ActualDir)
}

func TestAuditFindsStaleTerminalJobs(t *testing.T) {
	stale := uploadedJob("job-1234")
	stale.Status = models.StatusPaidPickedUp
	stale.UpdatedAt = time.Now().Add(-60 * 24 * time.Hour)

	f := newAuditFixture(t, stale)
	stale.FilePath = place(t, f.files, "PaidPickedUp", stale.DisplayName, "model")
	stale.MetadataPath = stale.FilePath + ".json"
	require.NoError(t, f.files.WriteMetadata(stale.MetadataPath, map[string]interface{}{"status": "PAIDPICKEDUP"}))

	report, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{stale.FilePath}, report.StaleFiles)
}

func TestAuditDeleteFile(t *testing.T) {
	f := newAuditFixture(t)
	orphan := place(t, f.files, "ReadyToPrint", "orphan.stl", "model")

	err := f.svc.DeleteFile(context.Background(), dto.AuditDeleteFileRequest{
		Path:      orphan,
		StaffName: "Alex Kim",
	}, "ws-front")
	require.NoError(t, err)

	_, statErr := os.Stat(orphan)
	assert.True(t, os.IsNotExist(statErr))
	require.Len(t, f.events.events, 1)
	assert.Equal(t, models.EventAuditFileDeleted, f.events.events[0].EventType)
}

func TestAuditDeleteFileOutsideRoot(t *testing.T) {
	f := newAuditFixture(t)
	outside := filepath.Join(t.TempDir(), "escape.stl")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	err := f.svc.DeleteFile(context.Background(), dto.AuditDeleteFileRequest{
		Path:      outside,
		StaffName: "Alex Kim",
	}, "ws-front")
	requireStatus(t, err, http.StatusBadRequest)
}

func TestAuditMarkReviewed(t *testing.T) {
	f := newAuditFixture(t, uploadedJob("job-1234"))

	err := f.svc.MarkReviewed(context.Background(), dto.AuditReviewRequest{
		JobID:     "job-1234",
		StaffName: "Alex Kim",
	}, "ws-front")
	require.NoError(t, err)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, models.EventAuditReviewed, f.events.events[0].EventType)
}
