package piart

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDigit is returned when a digit sequence contains a character
// outside '0'..'9'.
var ErrInvalidDigit = errors.New("piart: invalid digit")

//go:embed pi_digits.txt
var piDigits string

// pi is validated once at package init; the embedded data is trusted.
var pi = DigitSequence{s: strings.TrimSpace(piDigits)}

// DigitSequence is an immutable sequence of decimal digit characters,
// indexed from 0. The zero value is an empty sequence.
type DigitSequence struct {
	s string
}

// Pi returns the embedded digits of pi, starting with the leading "3".
func Pi() DigitSequence {
	return pi
}

// NewDigitSequence validates s and wraps it as a DigitSequence.
func NewDigitSequence(s string) (DigitSequence, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return DigitSequence{}, fmt.Errorf("%w: %q at index %d", ErrInvalidDigit, s[i], i)
		}
	}
	return DigitSequence{s: s}, nil
}

// MustDigitSequence is like NewDigitSequence but panics on error.
func MustDigitSequence(s string) DigitSequence {
	d, err := NewDigitSequence(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Len returns the number of digits in the sequence.
func (d DigitSequence) Len() int {
	return len(d.s)
}

// At returns the digit character at index i. It panics if i is out of range.
func (d DigitSequence) At(i int) byte {
	return d.s[i]
}

// Slice returns the digits in [start, end) as a string.
func (d DigitSequence) Slice(start, end int) string {
	return d.s[start:end]
}

// String returns the full sequence.
func (d DigitSequence) String() string {
	return d.s
}

// Window returns the start index actually used by cfg and the digits its
// grid shows, clamped the same way as Render.
func (d DigitSequence) Window(cfg ViewConfig) (int, string) {
	return d.segment(cfg.StartOffset, cfg.DigitCount)
}

// segment applies the renderer's clamping rule and returns the start index
// actually used together with the visible digits. An empty sequence yields
// (0, "").
func (d DigitSequence) segment(start, count int) (int, string) {
	if len(d.s) == 0 {
		return 0, ""
	}
	safeStart := max(0, min(start, len(d.s)-1))
	safeEnd := min(safeStart+max(count, 0), len(d.s))
	return safeStart, d.s[safeStart:safeEnd]
}
