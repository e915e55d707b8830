// Package resultrecord decodes the fixed 46-byte OuijaHostResult record
// the search kernel writes for every candidate seed.
package resultrecord

import (
	"fmt"

	"github.com/Amr-9/ouija-go/internal/seed"
)

// MaxDesires is MAX_DESIRES_HOST from the kernel's host result header.
const MaxDesires = 32

// Size is the wire size of one record in bytes: seed[9] + padding[1] +
// total_score(u16) + natural_negative_jokers(u8) +
// desired_negative_jokers(u8) + score_wants[32].
const Size = 9 + 1 + 2 + 1 + 1 + MaxDesires

// Record is the decoded form of one OuijaHostResult slot.
type Record struct {
	Seed                  seed.Value
	TotalScore            uint16
	NaturalNegativeJokers uint8
	DesiredNegativeJokers uint8
	ScoreWants            [MaxDesires]uint8
}

// Empty reports whether a raw record slot was never written by the
// kernel. SEEDCHARS never renders a NUL byte, so a leading zero byte is
// an unambiguous "nothing here" sentinel — see seed.Chars.
func Empty(raw []byte) bool {
	return len(raw) > 0 && raw[0] == 0
}

// Decode parses one Size-byte slot. The seed bytes are the raw rendered
// SEEDCHARS characters (not the packed digit form seed.Value.String()
// would need to re-encode), so Decode also re-parses them back into a
// seed.Value via seed.Parse for arithmetic/comparison convenience
// elsewhere in the pipeline.
func Decode(raw []byte) (Record, error) {
	var r Record
	if len(raw) < Size {
		return r, fmt.Errorf("resultrecord: buffer of %d bytes shorter than record size %d", len(raw), Size)
	}

	// seed[9] holds up to 8 rendered characters plus a NUL terminator;
	// trim at the first NUL the way s_to_c8_host left it.
	n := 0
	for n < 8 && raw[n] != 0 {
		n++
	}
	v, err := seed.Parse(string(raw[:n]))
	if err != nil {
		return r, err
	}
	r.Seed = v

	r.TotalScore = uint16(raw[10]) | uint16(raw[11])<<8
	r.NaturalNegativeJokers = raw[12]
	r.DesiredNegativeJokers = raw[13]
	copy(r.ScoreWants[:], raw[14:14+MaxDesires])
	return r, nil
}
