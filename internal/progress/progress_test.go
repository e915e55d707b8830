package progress

import (
	"testing"
	"time"

	"github.com/Amr-9/ouija-go/internal/clhost"
)

func TestShouldReportRateLimits(t *testing.T) {
	start := time.Unix(0, 0)
	r := NewReporter(start)
	if r.ShouldReport(start.Add(100 * time.Millisecond)) {
		t.Error("should not report before MinInterval elapses")
	}
	if !r.ShouldReport(start.Add(300 * time.Millisecond)) {
		t.Error("should report once MinInterval has elapsed")
	}
}

func TestMarkReportedResetsWindow(t *testing.T) {
	start := time.Unix(0, 0)
	r := NewReporter(start)
	r.MarkReported(start.Add(300 * time.Millisecond))
	if r.ShouldReport(start.Add(400 * time.Millisecond)) {
		t.Error("should not report again before another MinInterval")
	}
}

func TestFormatCountSuffixes(t *testing.T) {
	cases := map[int64]string{
		500:        "500.00",
		1500:       "1.50K",
		2500000:    "2.50M",
		3000000000: "3.00B",
	}
	for n, want := range cases {
		if got := formatCount(n); got != want {
			t.Errorf("formatCount(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLineStartsWithDollar(t *testing.T) {
	start := time.Unix(0, 0)
	now := start.Add(2 * time.Second)
	line := Line(now, start, 3, 1000, 500, clhost.VendorAMD)
	if len(line) == 0 || line[0] != '$' {
		t.Errorf("Line() must start with '$', got %q", line)
	}
}

func TestCompletionLineStartsWithDollar(t *testing.T) {
	start := time.Unix(0, 0)
	end := start.Add(5 * time.Second)
	line := CompletionLine(start, end, 10, 10000)
	if line[0] != '$' {
		t.Errorf("CompletionLine() must start with '$', got %q", line)
	}
}

func TestEtaStringGranularity(t *testing.T) {
	cases := []struct {
		seconds float64
		wantPfx string
	}{
		{10, "(ETA: 10 seconds)"},
		{90, "(ETA: 1 minutes"},
		{3700, "(ETA: 1 hours"},
		{100000, "(ETA: 1 days"},
	}
	for _, c := range cases {
		got := etaString(c.seconds)
		if len(got) < len(c.wantPfx) || got[:len(c.wantPfx)] != c.wantPfx {
			t.Errorf("etaString(%v) = %q, want prefix %q", c.seconds, got, c.wantPfx)
		}
	}
}
