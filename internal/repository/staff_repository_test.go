package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffRepositoryListActiveOnly(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	rows := sqlmock.NewRows([]string{"name", "is_active", "added_at", "deactivated_at"}).
		AddRow("Alex Kim", true, time.Now(), nil)
	mock.ExpectQuery("SELECT name, is_active(.+)WHERE is_active = true").WillReturnRows(rows)

	staff, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "Alex Kim", staff[0].Name)
}

func TestStaffRepositoryListIncludeInactive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"name", "is_active", "added_at", "deactivated_at"}).
		AddRow("Alex Kim", true, now, nil).
		AddRow("Riley Chen", false, now, now)
	mock.ExpectQuery("SELECT name, is_active").WillReturnRows(rows)

	staff, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.False(t, staff[1].IsActive)
	assert.NotNil(t, staff[1].DeactivatedAt)
}

func TestStaffRepositorySetActiveDeactivates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectExec("UPDATE staff SET is_active").
		WithArgs("Alex Kim", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetActive(context.Background(), "Alex Kim", false))
}

func TestStaffRepositorySetActiveNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectExec("UPDATE staff SET is_active").
		WithArgs("Nobody", true, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), "Nobody", true)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
