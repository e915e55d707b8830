// Package progress formats the rate-limited '$'-prefixed progress line
// and the final completion summary, matching the optimized dispatcher's
// elapsed/ETA/throughput formatting.
package progress

import (
	"fmt"
	"time"

	"github.com/Amr-9/ouija-go/internal/clhost"
)

// MinInterval is the minimum time between two progress reports; the
// original dispatcher used a 250-tick threshold on clock(), which this
// treats as 250 milliseconds of wall-clock time.
const MinInterval = 250 * time.Millisecond

// Reporter tracks when the last report was emitted so callers can check
// ShouldReport without re-deriving a timestamp every batch.
type Reporter struct {
	Start      time.Time
	lastReport time.Time
}

// NewReporter begins timing a run at start.
func NewReporter(start time.Time) *Reporter {
	return &Reporter{Start: start, lastReport: start}
}

// ShouldReport reports whether at least MinInterval has passed since the
// last report, given the current time now.
func (r *Reporter) ShouldReport(now time.Time) bool {
	return now.Sub(r.lastReport) >= MinInterval
}

// MarkReported records that a report was just emitted at now.
func (r *Reporter) MarkReported(now time.Time) {
	r.lastReport = now
}

// Line formats one '$'-prefixed progress line.
func Line(now time.Time, start time.Time, totalFound, totalProcessed, seedsRemaining int64, vendor clhost.Vendor) string {
	elapsed := now.Sub(start)
	rate := float64(0)
	if elapsed > 0 {
		rate = float64(totalProcessed) / elapsed.Seconds()
	}
	var etaSeconds float64
	if rate > 0 {
		etaSeconds = float64(seedsRemaining) / rate
	}

	rarity := 0.0
	if totalProcessed > 0 {
		rarity = 100.0 * float64(totalFound) / float64(totalProcessed)
	}

	return fmt.Sprintf("$Found %d valid seeds of %s searched so far. (%.8f%% Rarity!) %s. %s %.1fK/s [%s]\n",
		totalFound, formatCount(totalProcessed), rarity, elapsedString(elapsed), etaString(etaSeconds), rate/1000.0, vendor.String())
}

// CompletionLine formats the final, always-emitted summary line.
func CompletionLine(start, end time.Time, totalFound, totalProcessed int64) string {
	elapsed := end.Sub(start)
	return fmt.Sprintf("$Search Complete! Found %d valid seeds out of %s searched %s.\n",
		totalFound, formatCount(totalProcessed), elapsedString(elapsed))
}

func elapsedString(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if minutes > 0 {
		return fmt.Sprintf("in %d minutes and %d seconds", minutes, seconds)
	}
	return fmt.Sprintf("in %d seconds", seconds)
}

func etaString(etaSeconds float64) string {
	days := int(etaSeconds / (60 * 60 * 24))
	hours := int((etaSeconds - float64(days*60*60*24)) / 3600)
	minutes := int((etaSeconds - float64(days*60*60*24) - float64(hours*3600)) / 60)
	seconds := int(etaSeconds) % 60

	switch {
	case days >= 1:
		return fmt.Sprintf("(ETA: %d days %d hours)", days, hours)
	case hours >= 1:
		return fmt.Sprintf("(ETA: %d hours %d minutes)", hours, minutes)
	case minutes >= 1:
		return fmt.Sprintf("(ETA: %d minutes %d seconds)", minutes, seconds)
	default:
		return fmt.Sprintf("(ETA: %d seconds)", int(etaSeconds))
	}
}

// formatCount renders a count with a B/M/K suffix, matching
// format_number's thresholds.
func formatCount(n int64) string {
	f := float64(n)
	switch {
	case f >= 1e9:
		return fmt.Sprintf("%.2fB", f/1e9)
	case f >= 1e6:
		return fmt.Sprintf("%.2fM", f/1e6)
	case f >= 1e3:
		return fmt.Sprintf("%.2fK", f/1e3)
	default:
		return fmt.Sprintf("%.2f", f)
	}
}
