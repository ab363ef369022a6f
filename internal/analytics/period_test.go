package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, GranularityMonth, g)

	g, err = ParseGranularity("week")
	require.NoError(t, err)
	assert.Equal(t, GranularityWeek, g)

	_, err = ParseGranularity("fortnight")
	require.Error(t, err)
}

func TestResolvePeriodDay(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)

	current, previous, err := ResolvePeriod(GranularityDay, now, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), current.From)
	assert.Equal(t, now, current.To)

	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), previous.From)
	assert.Equal(t, time.Date(2024, 3, 14, 23, 59, 59, int(999*time.Millisecond), time.UTC), previous.To)
}

func TestResolvePeriodRollingWindows(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	current, previous, err := ResolvePeriod(GranularityWeek, now, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), current.From)
	assert.Equal(t, now, current.To)
	assert.Equal(t, now.AddDate(0, 0, -14), previous.From)
	assert.Equal(t, now.AddDate(0, 0, -7), previous.To)

	current, previous, err = ResolvePeriod(GranularityMonth, now, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 15, 14, 30, 0, 0, time.UTC), current.From)
	assert.Equal(t, time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), previous.From)
	assert.Equal(t, current.From, previous.To)

	current, previous, err = ResolvePeriod(GranularityYear, now, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 3, 15, 14, 30, 0, 0, time.UTC), current.From)
	assert.Equal(t, time.Date(2022, 3, 15, 14, 30, 0, 0, time.UTC), previous.From)
}

func TestResolvePeriodCustom(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)

	current, previous, err := ResolvePeriod(GranularityCustom, now, &start, &end)
	require.NoError(t, err)
	assert.Equal(t, start, current.From)
	assert.Equal(t, end, current.To)

	// Previous period has equal span and ends where the current one starts.
	assert.Equal(t, start.AddDate(0, 0, -10), previous.From)
	assert.Equal(t, start, previous.To)
}

func TestResolvePeriodCustomDefaults(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	current, _, err := ResolvePeriod(GranularityCustom, now, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, -1, 0), current.From)
	assert.Equal(t, now, current.To)
}

func TestResolvePeriodCustomInvalid(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := ResolvePeriod(GranularityCustom, now, &start, &start)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	end := start.AddDate(0, 0, -1)
	_, _, err = ResolvePeriod(GranularityCustom, now, &start, &end)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
