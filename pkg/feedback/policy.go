package feedback

import "time"

// EditWindow is how long after creation a record's comment and rating may
// still be changed.
const EditWindow = 5 * time.Minute

// RemainingEditTime reports how much of the edit window is left, never
// negative. It is a pure function of its two inputs so the UI can recompute
// it on every clock tick without touching anything else.
func RemainingEditTime(createdAt, now time.Time) time.Duration {
	left := EditWindow - now.Sub(createdAt)
	if left < 0 {
		return 0
	}
	return left
}

// IsEditable reports whether the record may still be edited at now.
func IsEditable(createdAt, now time.Time) bool {
	return RemainingEditTime(createdAt, now) > 0
}
