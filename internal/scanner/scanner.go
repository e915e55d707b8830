// Package scanner scans a decoded batch of result records against a
// score cutoff, emits matching rows, and tracks the auto-cutoff state.
package scanner

import (
	"fmt"
	"io"

	"github.com/Amr-9/ouija-go/internal/filterconfig"
	"github.com/Amr-9/ouija-go/internal/resultrecord"
)

// CutoffState is the mutable state the scanner threads through
// successive batches: the current score cutoff, whether it auto-raises,
// and whether the very first batch is still special-cased.
type CutoffState struct {
	Cutoff     int
	AutoMode   bool
	FirstBatch bool
	TotalFound int64
	// TotalScanned is every seed attempted so far, including slots the
	// kernel left empty (no qualifying result) — matches the original
	// dispatcher's total_processed, which increments by batch_size
	// regardless of how many slots were non-empty.
	TotalScanned int64
}

// NewCutoffState builds the initial state for a run. A negative initial
// cutoff is not meaningful; callers pass the user-supplied -c value, or
// 1 (the -c default) together with AutoMode=true for "auto".
func NewCutoffState(initial int, auto bool) CutoffState {
	return CutoffState{Cutoff: initial, AutoMode: auto, FirstBatch: true}
}

// Scan walks batch (a slice of consecutive resultrecord.Size-byte raw
// records), writes matching rows prefixed with '|' to w, and returns the
// updated cutoff state. Rows are written to an internal buffer and
// flushed to w once per call, never mid-batch, so a progress line can
// never interleave with a batch's rows.
func Scan(w io.Writer, batch []byte, cfg filterconfig.FilterConfig, state CutoffState) (CutoffState, error) {
	n := len(batch) / resultrecord.Size
	batchHighScore := state.Cutoff

	var out []byte
	for i := 0; i < n; i++ {
		raw := batch[i*resultrecord.Size : (i+1)*resultrecord.Size]
		state.TotalScanned++
		if resultrecord.Empty(raw) {
			continue
		}
		rec, err := resultrecord.Decode(raw)
		if err != nil {
			return state, fmt.Errorf("scanner: decode record %d: %w", i, err)
		}

		score := int(rec.TotalScore)
		if score > batchHighScore {
			batchHighScore = score
		}

		// The first batch in auto mode is still establishing its
		// cutoff; scores at or below the not-yet-finalized cutoff are
		// skipped rather than reported, matching the synchronous
		// single-buffer first-batch special case.
		if state.FirstBatch && state.AutoMode && score <= state.Cutoff {
			continue
		}

		if score >= state.Cutoff {
			state.TotalFound++
			out = appendRow(out, cfg, rec)
		}
	}

	if state.AutoMode && batchHighScore > state.Cutoff {
		state.Cutoff = batchHighScore
		if state.FirstBatch {
			out = append(out, fmt.Sprintf("$[AUTO] First batch cutoff set to %d\n", state.Cutoff)...)
		}
	}
	state.FirstBatch = false

	if len(out) > 0 {
		if _, err := w.Write(out); err != nil {
			return state, fmt.Errorf("scanner: write rows: %w", err)
		}
	}
	return state, nil
}

func appendRow(buf []byte, cfg filterconfig.FilterConfig, rec resultrecord.Record) []byte {
	buf = append(buf, '|')
	buf = append(buf, rec.Seed.String()...)
	buf = append(buf, ',')
	buf = appendInt(buf, int64(rec.TotalScore))
	if cfg.ScoreNaturalNegatives {
		buf = append(buf, ',')
		buf = appendInt(buf, int64(rec.NaturalNegativeJokers))
	}
	if cfg.ScoreDesiredNegatives {
		buf = append(buf, ',')
		buf = appendInt(buf, int64(rec.DesiredNegativeJokers))
	}
	for w := 0; w < len(cfg.Wants) && w < len(rec.ScoreWants); w++ {
		buf = append(buf, ',')
		buf = appendInt(buf, int64(rec.ScoreWants[w]))
	}
	buf = append(buf, '\n')
	return buf
}

func appendInt(buf []byte, v int64) []byte {
	return append(buf, []byte(fmt.Sprintf("%d", v))...)
}
