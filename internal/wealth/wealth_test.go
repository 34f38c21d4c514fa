package wealth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhardel/caskwatch/internal/domain"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{n: 0, want: "0"},
		{n: 999, want: "999"},
		{n: 1000, want: "1,000"},
		{n: 1234567, want: "1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.n))
	}
}

func TestRateGuardsZeroCaskets(t *testing.T) {
	stats := &domain.PlayerStatistics{PlayerName: "Orlando"}
	e := New(stats)
	assert.Zero(t, e.Rate(5))
}

func TestRatePercentages(t *testing.T) {
	stats := &domain.PlayerStatistics{PlayerName: "Orlando", OpenedCaskets: 100, Uniques: 3, Broadcasts: 1}
	e := New(stats)

	info := e.Info()
	assert.Equal(t, "3.00%", info.ItemRates.UniqueRate)
	assert.Equal(t, "1.00%", info.ItemRates.BroadcastRate)
	assert.Equal(t, 100, info.Stats.Opened)
	assert.Equal(t, 3, info.Stats.Uniques)
	assert.Equal(t, 1, info.Stats.Broadcasts)
}

func TestHourlyRate(t *testing.T) {
	stats := &domain.PlayerStatistics{PlayerName: "Orlando"}
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	e := newWithClock(stats, func() time.Time { return current })

	// No elapsed time yet: 0, not a division by zero.
	e.AddValue(5000)
	assert.Zero(t, e.HourlyRate())

	// Half an hour in, the total extrapolates to double.
	current = current.Add(30 * time.Minute)
	assert.Equal(t, 10000, e.HourlyRate())

	current = current.Add(90 * time.Minute)
	assert.Equal(t, 2500, e.HourlyRate())
}

func TestHourlyRateNeverNegative(t *testing.T) {
	stats := &domain.PlayerStatistics{PlayerName: "Orlando"}
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	e := newWithClock(stats, func() time.Time { return current })
	e.AddValue(5000)

	// Clock stepping backwards must not produce a negative figure.
	current = current.Add(-time.Hour)
	assert.Zero(t, e.HourlyRate())
}

func TestRecordCasket(t *testing.T) {
	stats := &domain.PlayerStatistics{PlayerName: "Orlando"}
	e := New(stats)

	e.RecordCasket(false, false)
	e.RecordCasket(true, false)
	e.RecordCasket(true, true)

	snapshot := e.Stats()
	assert.Equal(t, 3, snapshot.OpenedCaskets)
	assert.Equal(t, 2, snapshot.Uniques)
	assert.Equal(t, 1, snapshot.Broadcasts)
}

func TestInfoMoneyRates(t *testing.T) {
	stats := &domain.PlayerStatistics{PlayerName: "Orlando", OpenedCaskets: 2}
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	e := newWithClock(stats, func() time.Time { return current })

	e.AddValue(1234567)
	current = current.Add(time.Hour)

	info := e.Info()
	assert.Equal(t, "1,234,567", info.MoneyRates.Total)
	assert.Equal(t, "1,234,567", info.MoneyRates.Hourly)
	assert.Equal(t, "617,283", info.MoneyRates.Average)
}

func TestReset(t *testing.T) {
	stats := &domain.PlayerStatistics{PlayerName: "Orlando", OpenedCaskets: 10, Uniques: 1, Broadcasts: 1}
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	e := newWithClock(stats, func() time.Time { return current })
	e.AddValue(9000)

	current = current.Add(time.Hour)
	e.Reset()

	assert.Zero(t, e.Total())
	assert.Zero(t, e.HourlyRate())
	assert.Zero(t, stats.OpenedCaskets)
	assert.Zero(t, stats.Uniques)
	assert.Zero(t, stats.Broadcasts)

	// The shared reference is kept, not replaced.
	e.RecordCasket(true, false)
	assert.Equal(t, 1, stats.OpenedCaskets)
}
