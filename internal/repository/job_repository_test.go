package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coad-fablab/printlab-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func jobRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "short_id", "student_name", "student_email", "discipline", "class_number",
		"original_filename", "display_name", "file_path", "metadata_path", "file_hash",
		"status", "printer", "color", "material", "weight_g", "time_hours", "cost_usd",
		"acknowledged_minimum_charge", "student_confirmed", "student_confirmed_at",
		"reject_reasons", "staff_viewed_at", "last_updated_by", "notes", "created_at", "updated_at",
	})
}

func addJobRow(rows *sqlmock.Rows, id, shortID string, status models.JobStatus) *sqlmock.Rows {
	now := time.Now().UTC()
	return rows.AddRow(
		id, shortID, "Jane Doe", "jdoe@example.edu", "Architecture", "ARCH 4010",
		"tower.stl", "JaneDoe_Filament_TrueRed_"+shortID+".stl", "/storage/Uploaded/x.stl", "/storage/Uploaded/x.json", "abc123",
		status, "Prusa MK4S", "True Red", "Filament", nil, nil, nil,
		true, false, nil,
		"[]", nil, "", "", now, now,
	)
}

func TestJobRepositoryListExcludesArchivedByDefault(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM jobs WHERE").
		WithArgs(models.StatusArchived).
		WillReturnRows(addJobRow(jobRows(), "job-1", "a1b2c3d4", models.StatusUploaded))

	jobs, err := repo.List(context.Background(), models.JobFilter{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "a1b2c3d4", jobs[0].ShortID)
}

func TestJobRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM jobs WHERE").
		WithArgs(models.StatusPending, "Prusa MK4S", "%jane%").
		WillReturnRows(addJobRow(jobRows(), "job-1", "a1b2c3d4", models.StatusPending))

	jobs, err := repo.List(context.Background(), models.JobFilter{
		Status:  models.StatusPending,
		Printer: "Prusa MK4S",
		Search:  "Jane",
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
}

func TestJobRepositoryCountsByStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("UPLOADED", 3).
		AddRow("PRINTING", 1)
	mock.ExpectQuery("SELECT status, COUNT").WillReturnRows(rows)

	counts, err := repo.CountsByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts[models.StatusUploaded])
	assert.Equal(t, 1, counts[models.StatusPrinting])
}

func TestJobRepositoryFindActiveDuplicate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM jobs WHERE file_hash").
		WithArgs("abc123", "jdoe@example.edu", models.StatusUploaded, models.StatusPending, models.StatusReadyToPrint).
		WillReturnRows(addJobRow(jobRows(), "job-1", "a1b2c3d4", models.StatusPending))

	dup, err := repo.FindActiveDuplicate(context.Background(), "abc123", "JDoe@example.edu")
	require.NoError(t, err)
	require.NotNil(t, dup)
	assert.Equal(t, "job-1", dup.ID)
}

func TestJobRepositoryFindActiveDuplicateNone(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM jobs WHERE file_hash").
		WillReturnRows(jobRows())

	dup, err := repo.FindActiveDuplicate(context.Background(), "abc123", "jdoe@example.edu")
	require.NoError(t, err)
	assert.Nil(t, dup)
}

func TestJobRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectExec("INSERT INTO jobs").WillReturnResult(sqlmock.NewResult(1, 1))

	job := &models.Job{
		ID:          "job-1",
		ShortID:     "a1b2c3d4",
		StudentName: "Jane Doe",
		Email:       "jdoe@example.edu",
		Status:      models.StatusUploaded,
	}
	require.NoError(t, repo.Create(context.Background(), job))
	assert.False(t, job.CreatedAt.IsZero())
	assert.False(t, job.UpdatedAt.IsZero())
}

func TestJobRepositoryArchiveOlderThan(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	cutoff := time.Now().Add(-90 * 24 * time.Hour)
	mock.ExpectExec("UPDATE jobs SET status").
		WithArgs(models.StatusArchived, sqlmock.AnyArg(), models.StatusPaidPickedUp, models.StatusRejected, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.ArchiveOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}
