package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionRegularFlow(t *testing.T) {
	assert.True(t, CanTransition(StatusUploaded, StatusPending))
	assert.True(t, CanTransition(StatusUploaded, StatusRejected))
	assert.True(t, CanTransition(StatusPending, StatusReadyToPrint))
	assert.True(t, CanTransition(StatusReadyToPrint, StatusPrinting))
	assert.True(t, CanTransition(StatusPrinting, StatusCompleted))
	assert.True(t, CanTransition(StatusCompleted, StatusPaidPickedUp))
}

func TestCanTransitionRejectsBackwardsAndSkips(t *testing.T) {
	assert.False(t, CanTransition(StatusPending, StatusUploaded))
	assert.False(t, CanTransition(StatusUploaded, StatusPrinting))
	assert.False(t, CanTransition(StatusCompleted, StatusPrinting))
	assert.False(t, CanTransition(StatusPaidPickedUp, StatusUploaded))
	assert.False(t, CanTransition(StatusRejected, StatusPending))
	assert.False(t, CanTransition(StatusPending, StatusRejected))
}

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, JobStatus("SHIPPED").Valid())
	assert.False(t, JobStatus("").Valid())
}

func TestStatusDir(t *testing.T) {
	assert.Equal(t, "Uploaded", StatusUploaded.Dir())
	// Approved jobs wait for student confirmation in the intake directory.
	assert.Equal(t, "Uploaded", StatusPending.Dir())
	assert.Equal(t, "ReadyToPrint", StatusReadyToPrint.Dir())
	assert.Equal(t, "PaidPickedUp", StatusPaidPickedUp.Dir())
	// Terminal statuses without their own directory fall back to intake.
	assert.Equal(t, "Uploaded", StatusRejected.Dir())
	assert.Equal(t, "Uploaded", StatusArchived.Dir())
}

func TestStatusDirsDistinct(t *testing.T) {
	dirs := StatusDirs()
	assert.Len(t, dirs, 5)
	seen := map[string]bool{}
	for _, d := range dirs {
		assert.False(t, seen[d], "duplicate dir %s", d)
		seen[d] = true
	}
}
