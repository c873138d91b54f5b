package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallNormalize(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	call := &Call{StartedAt: start, EndedAt: start.Add(5 * time.Minute)}

	require.NoError(t, call.Normalize())
	require.NotNil(t, call.Duration)
	assert.Equal(t, int64(300000), call.Duration.Milliseconds)
	assert.Equal(t, "5m", call.Duration.Human)
}

func TestCallNormalizeSwappedTimes(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	call := &Call{StartedAt: start.Add(5 * time.Minute), EndedAt: start}

	require.NoError(t, call.Normalize())
	require.NotNil(t, call.Duration)
	assert.Equal(t, int64(300000), call.Duration.Milliseconds)
}

func TestCallNormalizeDefaultsUnsetTimes(t *testing.T) {
	call := &Call{}
	require.NoError(t, call.Normalize())

	assert.False(t, call.StartedAt.IsZero())
	assert.False(t, call.EndedAt.IsZero())
	require.NotNil(t, call.Duration)
	assert.LessOrEqual(t, call.Duration.Milliseconds, int64(1000))
}
