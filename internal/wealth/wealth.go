// Package wealth derives economic statistics for one tracked player: per
// casket acquisition rates and an hourly extrapolation of accumulated value.
package wealth

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhardel/caskwatch/internal/domain"
	"github.com/jhardel/caskwatch/internal/metrics"
)

var printer = message.NewPrinter(language.English)

// FormatValue renders n with thousands-group separators: 1234567 -> "1,234,567".
func FormatValue(n int) string {
	return printer.Sprintf("%d", n)
}

// ItemRates holds the per-casket acquisition rates, formatted as percentages.
type ItemRates struct {
	UniqueRate    string `json:"unique_rate"`
	BroadcastRate string `json:"broadcast_rate"`
}

// MoneyRates holds the formatted monetary figures.
type MoneyRates struct {
	Hourly  string `json:"hourly"`
	Total   string `json:"total"`
	Average string `json:"average"`
}

// Counters holds the raw counters as reported.
type Counters struct {
	Opened     int `json:"opened"`
	Uniques    int `json:"uniques"`
	Broadcasts int `json:"broadcasts"`
}

// Info is the full evaluator snapshot served to the overlay.
type Info struct {
	ItemRates  ItemRates  `json:"item_rates"`
	MoneyRates MoneyRates `json:"money_rates"`
	Stats      Counters   `json:"stats"`
}

// Evaluator accumulates value for one session and derives rates from the
// shared statistics record. One evaluator exists per active session; it is
// never persisted. Safe for concurrent use.
type Evaluator struct {
	mu    sync.Mutex
	start time.Time
	total int
	stats *domain.PlayerStatistics
	now   func() time.Time
}

// New creates an evaluator over the player's shared statistics record. The
// evaluator mutates stats in place; the caller keeps the reference for
// persistence.
func New(stats *domain.PlayerStatistics) *Evaluator {
	return newWithClock(stats, time.Now)
}

func newWithClock(stats *domain.PlayerStatistics, now func() time.Time) *Evaluator {
	return &Evaluator{start: now(), stats: stats, now: now}
}

// Rate returns numerator divided by opened caskets, or 0 before the first
// casket. Never divides by zero.
func (e *Evaluator) Rate(numerator int) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rateLocked(numerator)
}

func (e *Evaluator) rateLocked(numerator int) float64 {
	if e.stats.OpenedCaskets > 0 {
		return float64(numerator) / float64(e.stats.OpenedCaskets)
	}
	return 0
}

// HourlyRate extrapolates the session total to a per-hour figure from the
// wall-clock time elapsed since the session started. Zero elapsed time (or
// a clock that went backwards) yields 0, never a division by zero or a
// negative figure.
func (e *Evaluator) HourlyRate() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hourlyRateLocked()
}

func (e *Evaluator) hourlyRateLocked() int {
	elapsed := e.now().Sub(e.start)
	if elapsed <= 0 {
		return 0
	}
	hourly := int(float64(e.total) * float64(time.Hour) / float64(elapsed))
	if hourly < 0 {
		return 0
	}
	return hourly
}

// AddValue credits value from a casket to the session total.
func (e *Evaluator) AddValue(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.total += n
}

// Total returns the session's accumulated value.
func (e *Evaluator) Total() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total
}

// RecordCasket counts an opened casket and its outcomes against the shared
// statistics.
func (e *Evaluator) RecordCasket(unique, broadcast bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.OpenedCaskets++
	if unique {
		e.stats.Uniques++
	}
	if broadcast {
		e.stats.Broadcasts++
	}
	metrics.CasketsRecorded.Inc()
}

// Stats returns a copy of the current counters.
func (e *Evaluator) Stats() domain.PlayerStatistics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.stats
}

// Info snapshots the full evaluator state.
func (e *Evaluator) Info() Info {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Info{
		ItemRates: ItemRates{
			UniqueRate:    formatPercent(e.rateLocked(e.stats.Uniques)),
			BroadcastRate: formatPercent(e.rateLocked(e.stats.Broadcasts)),
		},
		MoneyRates: MoneyRates{
			Hourly:  FormatValue(e.hourlyRateLocked()),
			Total:   FormatValue(e.total),
			Average: FormatValue(int(e.rateLocked(e.total))),
		},
		Stats: Counters{
			Opened:     e.stats.OpenedCaskets,
			Uniques:    e.stats.Uniques,
			Broadcasts: e.stats.Broadcasts,
		},
	}
}

// Reset restamps the session start, zeroes the total and resets the shared
// statistics counters.
func (e *Evaluator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.start = e.now()
	e.total = 0
	e.stats.Reset()
}

func formatPercent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}
