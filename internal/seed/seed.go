// Package seed implements the base-35 seed encoding used by the search
// kernel: eight fixed-width characters drawn from SEEDCHARS, treated as
// a big-endian base-35 number.
package seed

import "fmt"

// Chars is the fixed alphabet rendered seeds are made of. Index i is the
// digit value i; the digit value never collides with the NUL byte, which
// is what makes the empty-slot sentinel in resultrecord safe.
const Chars = "123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	base   = int64(len(Chars))
	length = 8
)

// Space is the total number of distinct seeds, 35^8.
var Space = pow(base, length)

func pow(b int64, n int) int64 {
	r := int64(1)
	for i := 0; i < n; i++ {
		r *= b
	}
	return r
}

// Value is a seed expressed as an integer in [0, Space).
type Value int64

// charNum maps a SEEDCHARS rune to its digit value. Unknown characters
// map to 0, matching the original host's fallback behavior.
func charNum(c byte) int64 {
	switch {
	case c >= '1' && c <= '9':
		return int64(c - '1')
	case c >= 'A' && c <= 'Z':
		return int64(c-'A') + 9
	default:
		return 0
	}
}

// Parse decodes an up-to-8-character SEEDCHARS string into a Value.
// Shorter strings are treated as right-padded with the zero digit ('1'),
// matching s_new_c8_host's behavior of leaving trailing bytes at zero.
func Parse(s string) (Value, error) {
	if len(s) > length {
		return 0, fmt.Errorf("seed: %q longer than %d characters", s, length)
	}
	var v int64
	for i := 0; i < len(s); i++ {
		v = v*base + charNum(s[i])
	}
	for i := len(s); i < length; i++ {
		v *= base
	}
	return Value(v), nil
}

// String renders a Value as its 8-character SEEDCHARS representation.
func (v Value) String() string {
	var buf [length]byte
	n := int64(v)
	for i := length - 1; i >= 0; i-- {
		buf[i] = Chars[n%base]
		n /= base
	}
	return string(buf[:])
}

// Add returns v+n, matching s_skip_host's carry-propagating increment.
// The result wraps modulo Space, since the search space is a fixed ring
// of 35^8 seeds.
func (v Value) Add(n int64) Value {
	sum := (int64(v) + n) % Space
	if sum < 0 {
		sum += Space
	}
	return Value(sum)
}
