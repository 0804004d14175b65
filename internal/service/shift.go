package service

import "time"

// Shift windows on the plant clock: shift 1 covers 06:00–14:00, shift 2
// 14:00–22:00, shift 3 wraps overnight.
const (
	shift1Start = 6
	shift2Start = 14
	shift2End   = 22
)

// ShiftOf buckets a timestamp into shift 1, 2 or 3 by its wall-clock hour.
// The timestamp must already be in the plant's timezone; no conversion is
// applied here.
func ShiftOf(t time.Time) int {
	switch h := t.Hour(); {
	case h >= shift1Start && h < shift2Start:
		return 1
	case h >= shift2Start && h < shift2End:
		return 2
	default:
		return 3
	}
}
