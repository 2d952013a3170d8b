package database

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		busy bool
	}{
		{"nil", nil, false},
		{"locked database", errors.New("database is locked"), true},
		{"locked table", errors.New("database table is locked"), true},
		{"sqlite busy", errors.New("SQLITE_BUSY: database is busy"), true},
		{"sqlite locked", errors.New("SQLITE_LOCKED"), true},
		{"busy result code", errors.New("sqlite error (5)"), true},
		{"locked result code", errors.New("sqlite error (6)"), true},
		{"constraint violation", errors.New("UNIQUE constraint failed: authors.name"), false},
		{"plain error", errors.New("no such table: books"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.busy, isBusyError(tt.err))
		})
	}
}

func TestRetryWithBackoff_SucceedsAfterTransientBusy(t *testing.T) {
	t.Parallel()

	attempts := 0
	err := retryWithBackoff(context.Background(), 5, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_NonBusyErrorReturnsImmediately(t *testing.T) {
	t.Parallel()

	attempts := 0
	wantErr := errors.New("no such table: books")
	err := retryWithBackoff(context.Background(), 5, func() error {
		attempts++
		return wantErr
	})

	assert.Equal(t, wantErr, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_GivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	attempts := 0
	err := retryWithBackoff(context.Background(), 2, func() error {
		attempts++
		return errors.New("database is locked")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	// initial attempt plus two retries
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_StopsWhenContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	attempts := 0
	err := retryWithBackoff(ctx, 10, func() error {
		attempts++
		return errors.New("database is locked")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.LessOrEqual(t, attempts, 2)
}
