package duration

import "time"

// Entry accumulates keypad digits, holding at most MaxEntryLen of them
type Entry struct {
	digits []byte
}

// Append adds a digit, returns false if d is not a digit or the entry is full
func (e *Entry) Append(d rune) bool {
	if d < '0' || d > '9' || len(e.digits) >= MaxEntryLen {
		return false
	}
	e.digits = append(e.digits, byte(d))
	return true
}

// Backspace drops the last digit, no-op on an empty entry
func (e *Entry) Backspace() bool {
	if len(e.digits) == 0 {
		return false
	}
	e.digits = e.digits[:len(e.digits)-1]
	return true
}

// Clear empties the entry
func (e *Entry) Clear() {
	e.digits = e.digits[:0]
}

func (e *Entry) String() string {
	return string(e.digits)
}

func (e *Entry) Len() int {
	return len(e.digits)
}

func (e *Entry) Empty() bool {
	return len(e.digits) == 0
}

// Packed returns the preview components of the current digits
func (e *Entry) Packed() Components {
	return FormatPacked(e.String())
}

// Duration parses the current digits, an empty entry yields 0
func (e *Entry) Duration() time.Duration {
	return ParseEntry(e.String())
}
