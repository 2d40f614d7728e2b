// Package duration converts keypad digit entries into countdown durations and
// splits durations into display components.
//
// Keypad entries are packed HHMMSS values read right-aligned: "500" is five
// minutes, "10500" is one hour five minutes. Components of 60 or more are not
// validated, they roll into the next unit through plain arithmetic.
package duration

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Max is the saturating ceiling for parsed entries (99h 59m 59s)
const Max = 359999 * time.Second

// MaxEntryLen is the maximum number of digits held by an Entry
const MaxEntryLen = 6

var (
	// ErrMalformed reports an entry that is empty or contains non-digit characters
	ErrMalformed = errors.New("malformed entry")
	// ErrSaturated reports an entry whose value was clamped to Max
	ErrSaturated = errors.New("entry saturated")
)

// Components holds the display fields of a duration
type Components struct {
	Hours   int
	Minutes int
	Seconds int
	Millis  int

	// HoursWrapped is set when Hours was reduced modulo 60 by Format
	HoursWrapped bool
}

// ParseEntry converts a packed HHMMSS digit string into a duration.
// Malformed input yields 0, values past Max saturate to Max.
func ParseEntry(raw string) time.Duration {
	d, _ := ParseEntryChecked(raw)
	return d
}

// ParseEntryChecked is ParseEntry with an explicit degraded-input signal.
// The returned duration is always the one ParseEntry would produce.
func ParseEntryChecked(raw string) (time.Duration, error) {
	n, err := parseDigits(raw)
	if err != nil {
		return 0, err
	}

	seconds := n % 100
	seconds += ((n / 100) % 100) * 60
	seconds += ((n / 10000) % 100) * 3600

	d := time.Duration(seconds) * time.Second
	if d > Max {
		return Max, fmt.Errorf("%q decodes to %s: %w", raw, d, ErrSaturated)
	}
	return d, nil
}

// parseDigits accepts only [0-9]+, signs are rejected unlike strconv.Atoi
func parseDigits(raw string) (uint64, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty entry: %w", ErrMalformed)
	}
	if strings.IndexFunc(raw, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, fmt.Errorf("entry %q has non-digit characters: %w", raw, ErrMalformed)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("entry %q: %w", raw, errors.Join(ErrMalformed, err))
	}
	return n, nil
}

// Format splits d into display components. The hour field wraps modulo 60,
// matching the long-standing display behavior; HoursWrapped flags when that
// hid part of the value. Negative durations format as zero.
func Format(d time.Duration) Components {
	ms := millis(d)
	hours := ms / 1000 / 3600
	return Components{
		Hours:        int(hours % 60),
		Minutes:      int((ms / 1000 / 60) % 60),
		Seconds:      int((ms / 1000) % 60),
		Millis:       int(ms % 1000),
		HoursWrapped: hours >= 60,
	}
}

// FormatUnwrapped is Format without the hour modulo
func FormatUnwrapped(d time.Duration) Components {
	c := Format(d)
	c.Hours = int(millis(d) / 1000 / 3600)
	c.HoursWrapped = false
	return c
}

// FormatPacked splits a keypad entry into hours, minutes and seconds as typed,
// without normalizing components of 60 or more
func FormatPacked(raw string) Components {
	n, err := parseDigits(raw)
	if err != nil {
		return Components{}
	}
	return Components{
		Hours:   int((n / 10000) % 100),
		Minutes: int((n / 100) % 100),
		Seconds: int(n % 100),
	}
}

// Pad renders v left-padded with '0' to width; wider values are not truncated
func Pad(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// Text renders the components as "HHh MMm SSs" with an optional "mmmms" suffix
func (c Components) Text(showMillis bool) string {
	var sb strings.Builder
	sb.WriteString(Pad(c.Hours, 2))
	if c.HoursWrapped {
		sb.WriteByte('+')
	}
	sb.WriteString("h ")
	sb.WriteString(Pad(c.Minutes, 2))
	sb.WriteString("m ")
	sb.WriteString(Pad(c.Seconds, 2))
	sb.WriteByte('s')
	if showMillis {
		sb.WriteByte(' ')
		sb.WriteString(Pad(c.Millis, 3))
		sb.WriteString("ms")
	}
	return sb.String()
}

// maxDigits is the packed entry for Max
const maxDigits = "995959"

// Digits renders the components back into a packed HHMMSS entry.
// Hours past 99 do not fit two digits and saturate to the entry for Max.
func (c Components) Digits() string {
	if c.Hours > 99 {
		return maxDigits
	}
	return Pad(c.Hours, 2) + Pad(c.Minutes%100, 2) + Pad(c.Seconds%100, 2)
}

func millis(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return d.Milliseconds()
}
