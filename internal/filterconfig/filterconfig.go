// Package filterconfig holds the validated filter configuration handed
// to the kernel: needs/wants to score for, the search depth, and the
// deck/stake selection.
package filterconfig

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// MaxDesires mirrors resultrecord.MaxDesires / MAX_DESIRES_HOST; kept as
// a separate constant so this package has no dependency on the wire
// decoder, only on the shape the kernel config buffer requires.
const MaxDesires = 32

// Edition sentinels, named after the item table's RETRY/No_Edition
// constants (original_source/Ouija-cli/lib/host_items.h). The concrete
// integer values come from the item table, which is out of scope; only
// these two sentinels are compared against by name here.
const (
	EditionAny  int32 = -1
	EditionNone int32 = 0
)

// Desire is one Need or Want entry: an item/joker value, an optional
// edition constraint, and the ante by which it must appear.
type Desire struct {
	Value        int32
	JokerEdition int32
	DesireByAnte int32
}

// FilterConfig is the validated, ready-to-marshal configuration for one
// search run.
type FilterConfig struct {
	Needs                 []Desire
	Wants                 []Desire
	MaxSearchAnte         int32
	Deck                  int32
	Stake                 int32
	FilterName            string
	ScoreNaturalNegatives bool
	ScoreDesiredNegatives bool
}

// Default returns the zero-value configuration the engine falls back to
// when no --config is given or the given one can't be loaded: no
// needs/wants, search through ante 8, named "ouija_template".
func Default() FilterConfig {
	return FilterConfig{
		MaxSearchAnte: 8,
		FilterName:    "ouija_template",
	}
}

// Validate enforces the invariants: at most MaxDesires needs and wants,
// no duplicate (value, edition) pair within wants, and a search ante
// clamped into [1,8] (out-of-range values are clamped and reported via
// the returned warning rather than rejected outright).
func (c *FilterConfig) Validate() (warning string, err error) {
	if len(c.Needs) > MaxDesires {
		return "", fmt.Errorf("filterconfig: %d needs exceeds maximum of %d", len(c.Needs), MaxDesires)
	}
	if len(c.Wants) > MaxDesires {
		return "", fmt.Errorf("filterconfig: %d wants exceeds maximum of %d", len(c.Wants), MaxDesires)
	}

	seen := make(map[[2]int32]bool, len(c.Wants))
	for _, w := range c.Wants {
		key := [2]int32{w.Value, w.JokerEdition}
		if seen[key] {
			return "", fmt.Errorf("filterconfig: duplicate want (value=%d, edition=%d)", w.Value, w.JokerEdition)
		}
		seen[key] = true
	}

	if c.MaxSearchAnte < 1 || c.MaxSearchAnte > 8 {
		clamped := c.MaxSearchAnte
		if clamped < 1 {
			clamped = 1
		} else if clamped > 8 {
			clamped = 8
		}
		warning = fmt.Sprintf("max_search_ante %d out of range [1,8], clamped to %d", c.MaxSearchAnte, clamped)
		c.MaxSearchAnte = clamped
	}

	if c.FilterName == "" {
		c.FilterName = "ouija_template"
	}

	return warning, nil
}

// CSVHeader builds the '+'-prefixed header row, matching the column set
// the optimized dispatcher printed: Seed, Score, optional Natural/
// Desired Negative Jokers columns, then one column per Want named
// "<edition>_<value>" when the want has a real edition constraint, or
// just "<value>" otherwise.
func (c FilterConfig) CSVHeader() string {
	var b strings.Builder
	b.WriteString("+Seed,Score")
	if c.ScoreNaturalNegatives {
		b.WriteString(",Natural Negative Jokers")
	}
	if c.ScoreDesiredNegatives {
		b.WriteString(",Desired Negative Jokers")
	}
	for _, w := range c.Wants {
		b.WriteByte(',')
		if w.JokerEdition != EditionAny && w.JokerEdition != EditionNone {
			fmt.Fprintf(&b, "%d_%d", w.JokerEdition, w.Value)
		} else {
			fmt.Fprintf(&b, "%d", w.Value)
		}
	}
	return b.String()
}

// desireWireSize is the per-Desire encoded size: value, jokeredition,
// desireByAnte, each a little-endian int32, matching HostDesire's field
// order in the original config loader.
const desireWireSize = 4 * 3

// WireSize is the total size of the buffer MarshalCL produces: two
// int32 counts, MaxDesires HostDesire-shaped entries each for Needs and
// Wants, then maxSearchAnte/deck/stake (int32 each) and two bool flags
// padded to 4 bytes apiece.
const WireSize = 4 + 4 + desireWireSize*MaxDesires*2 + 4 + 4 + 4 + 4 + 4

// MarshalCL encodes the configuration into the fixed-layout buffer the
// kernel's config argument expects, mirroring OuijaConfig's field order:
// numNeeds, numWants, Needs[32], Wants[32], maxSearchAnte, deck, stake,
// scoreNaturalNegatives, scoreDesiredNegatives. Needs/Wants beyond the
// slice's length are left zeroed, matching a C array default-initialized
// to zero.
func (c FilterConfig) MarshalCL() []byte {
	buf := make([]byte, WireSize)
	off := 0

	binary.LittleEndian.PutUint32(buf[off:], uint32(len(c.Needs)))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(c.Wants)))
	off += 4

	writeDesires := func(desires []Desire) {
		for i := 0; i < MaxDesires; i++ {
			var d Desire
			if i < len(desires) {
				d = desires[i]
			}
			binary.LittleEndian.PutUint32(buf[off:], uint32(d.Value))
			off += 4
			binary.LittleEndian.PutUint32(buf[off:], uint32(d.JokerEdition))
			off += 4
			binary.LittleEndian.PutUint32(buf[off:], uint32(d.DesireByAnte))
			off += 4
		}
	}
	writeDesires(c.Needs)
	writeDesires(c.Wants)

	binary.LittleEndian.PutUint32(buf[off:], uint32(c.MaxSearchAnte))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(c.Deck))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(c.Stake))
	off += 4
	if c.ScoreNaturalNegatives {
		buf[off] = 1
	}
	off += 4
	if c.ScoreDesiredNegatives {
		buf[off] = 1
	}
	off += 4

	return buf
}
