// Package pulse encodes decimal digits as timed long/short indicator pulses.
package pulse

import (
	"fmt"
	"strings"
)

// Kind is the length class of one pulse.
type Kind uint8

const (
	Short Kind = iota
	Long
)

// Timing constants, in milliseconds. The message is carried entirely by
// relative durations, so these are fixed.
const (
	ShortOnMs   = 500
	ShortRestMs = 500
	LongOnMs    = 2000
	LongRestMs  = 500
	// GapMs follows every pulse, after its rest.
	GapMs = 1000
	// SettleMs follows every code.
	SettleMs = 2000
)

// OnMs is how long the indicator is asserted.
func (k Kind) OnMs() uint64 {
	if k == Long {
		return LongOnMs
	}
	return ShortOnMs
}

// RestMs is how long the indicator is de-asserted right after the pulse.
func (k Kind) RestMs() uint64 {
	if k == Long {
		return LongRestMs
	}
	return ShortRestMs
}

// DurationMs is the full slot of one pulse: on, rest and the inter-pulse gap.
func (k Kind) DurationMs() uint64 { return k.OnMs() + k.RestMs() + GapMs }

func (k Kind) String() string {
	if k == Long {
		return "long"
	}
	return "short"
}

// CodeLen is the number of pulses in every code.
const CodeLen = 5

// Code is the pulse pattern of one digit.
type Code [CodeLen]Kind

// String renders the code with '.' for short and '-' for long.
func (c Code) String() string {
	var b strings.Builder
	for _, k := range c {
		if k == Long {
			b.WriteByte('-')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// DurationMs is the time to play c, excluding the settle delay.
func (c Code) DurationMs() uint64 {
	var d uint64
	for _, k := range c {
		d += k.DurationMs()
	}
	return d
}

// Table maps each decimal digit to its code.
type Table [10]Code

// NewTable builds the numeral alphabet: 1-5 start with n shorts, 6-9 start
// with n-5 longs, 0 is all longs.
func NewTable() *Table {
	var t Table
	for d := 0; d < 10; d++ {
		var c Code
		switch {
		case d == 0:
			for i := range c {
				c[i] = Long
			}
		case d <= 5:
			for i := range c {
				if i < d {
					c[i] = Short
				} else {
					c[i] = Long
				}
			}
		default:
			for i := range c {
				if i < d-5 {
					c[i] = Long
				} else {
					c[i] = Short
				}
			}
		}
		t[d] = c
	}
	return &t
}

// Lookup returns the code for digit.
func (t *Table) Lookup(digit int) (Code, bool) {
	if digit < 0 || digit > 9 {
		return Code{}, false
	}
	return t[digit], true
}

// Encode splits n into width decimal digits, most significant first, and
// returns their codes.
func (t *Table) Encode(n, width int) ([]Code, error) {
	if width <= 0 {
		return nil, fmt.Errorf("pulse: invalid width %d", width)
	}
	if n < 0 {
		return nil, fmt.Errorf("pulse: negative number %d", n)
	}
	digits := make([]int, width)
	v := n
	for i := width - 1; i >= 0; i-- {
		digits[i] = v % 10
		v /= 10
	}
	if v != 0 {
		return nil, fmt.Errorf("pulse: %d does not fit in %d digits", n, width)
	}

	codes := make([]Code, 0, width)
	for _, d := range digits {
		c, ok := t.Lookup(d)
		if !ok {
			return nil, fmt.Errorf("pulse: no code for digit %d", d)
		}
		codes = append(codes, c)
	}
	return codes, nil
}
