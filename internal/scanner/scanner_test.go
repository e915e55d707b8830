package scanner

import (
	"bytes"
	"testing"

	"github.com/Amr-9/ouija-go/internal/filterconfig"
	"github.com/Amr-9/ouija-go/internal/resultrecord"
)

func record(t *testing.T, seedStr string, score uint16) []byte {
	t.Helper()
	raw := make([]byte, resultrecord.Size)
	copy(raw, seedStr)
	raw[10] = byte(score)
	raw[11] = byte(score >> 8)
	return raw
}

func TestScanEmitsAboveCutoff(t *testing.T) {
	cfg := filterconfig.Default()
	batch := append(record(t, "AAAAAAAA", 50), record(t, "BBBBBBBB", 150)...)

	var buf bytes.Buffer
	state := NewCutoffState(100, false)
	state, err := Scan(&buf, batch, cfg, state)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if state.TotalFound != 1 {
		t.Errorf("TotalFound = %d, want 1", state.TotalFound)
	}
	if state.TotalScanned != 2 {
		t.Errorf("TotalScanned = %d, want 2", state.TotalScanned)
	}
	got := buf.String()
	want := "|BBBBBBBB,150\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestScanSkipsEmptySlots(t *testing.T) {
	cfg := filterconfig.Default()
	batch := make([]byte, resultrecord.Size) // all-zero: empty slot

	var buf bytes.Buffer
	state, err := Scan(&buf, batch, cfg, NewCutoffState(0, false))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if state.TotalScanned != 1 {
		t.Errorf("TotalScanned = %d, want 1 (slot is still attempted even though empty)", state.TotalScanned)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestScanAutoModeRaisesCutoff(t *testing.T) {
	cfg := filterconfig.Default()
	batch := record(t, "AAAAAAAA", 200)

	var buf bytes.Buffer
	state := NewCutoffState(0, true)
	state, err := Scan(&buf, batch, cfg, state)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if state.Cutoff != 200 {
		t.Errorf("Cutoff = %d, want 200", state.Cutoff)
	}
}

func TestScanAutoModeFirstBatchSkipsAtOrBelowCutoff(t *testing.T) {
	cfg := filterconfig.Default()
	batch := record(t, "AAAAAAAA", 50)

	var buf bytes.Buffer
	state := NewCutoffState(50, true)
	state, err := Scan(&buf, batch, cfg, state)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if state.TotalFound != 0 {
		t.Errorf("TotalFound = %d, want 0 (first batch, score == cutoff)", state.TotalFound)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on first-batch auto skip, got %q", buf.String())
	}
}

func TestScanAutoModeSecondBatchReportsAtCutoff(t *testing.T) {
	cfg := filterconfig.Default()
	state := NewCutoffState(50, true)

	var buf bytes.Buffer
	state, err := Scan(&buf, record(t, "AAAAAAAA", 30), cfg, state) // establishes first_batch=false
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if state.FirstBatch {
		t.Fatal("FirstBatch should be false after one Scan call")
	}

	buf.Reset()
	state, err = Scan(&buf, record(t, "BBBBBBBB", 50), cfg, state)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if state.TotalFound != 1 {
		t.Errorf("TotalFound = %d, want 1 on second batch at cutoff", state.TotalFound)
	}
}

func TestScanWithWantsColumns(t *testing.T) {
	cfg := filterconfig.Default()
	cfg.Wants = []filterconfig.Desire{{Value: 1}, {Value: 2}}
	raw := record(t, "AAAAAAAA", 10)
	raw[14] = 7
	raw[15] = 9

	var buf bytes.Buffer
	if _, err := Scan(&buf, raw, cfg, NewCutoffState(0, false)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := "|AAAAAAAA,10,7,9\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
