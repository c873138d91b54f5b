package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	d := &Duration{Milliseconds: 91487000}
	require.NoError(t, ParseDuration(d))

	assert.Equal(t, 0, d.Years)
	assert.Equal(t, 0, d.Months)
	assert.Equal(t, 1, d.Days)
	assert.Equal(t, 1, d.Hours)
	assert.Equal(t, 24, d.Minutes)
	assert.Equal(t, 47, d.Seconds)
	assert.Equal(t, "1d 1h 24m 47s", d.Human)
}

func TestParseDurationOmitsZeroUnits(t *testing.T) {
	d := &Duration{Milliseconds: 86402000}
	require.NoError(t, ParseDuration(d))
	assert.Equal(t, "1d 2s", d.Human)

	d = &Duration{Milliseconds: 3600000}
	require.NoError(t, ParseDuration(d))
	assert.Equal(t, "1h", d.Human)
}

func TestParseDurationZero(t *testing.T) {
	d := &Duration{Milliseconds: 0}
	require.NoError(t, ParseDuration(d))
	assert.Equal(t, "0s", d.Human)
}

func TestParseDurationSubSecond(t *testing.T) {
	d := &Duration{Milliseconds: 999}
	require.NoError(t, ParseDuration(d))
	assert.Equal(t, 0, d.Seconds)
	assert.Equal(t, "0s", d.Human)
	assert.Equal(t, int64(999), d.Milliseconds)
}

func TestParseDurationNil(t *testing.T) {
	require.NoError(t, ParseDuration(nil))
}

func TestParseDurationNegative(t *testing.T) {
	d := &Duration{Milliseconds: -1}
	assert.Error(t, ParseDuration(d))
}

func TestParseDurationReparse(t *testing.T) {
	d := &Duration{Milliseconds: 91487000}
	require.NoError(t, ParseDuration(d))
	first := *d

	// stale derived fields are recomputed, not accumulated
	require.NoError(t, ParseDuration(d))
	assert.Equal(t, first, *d)
}
