package analysis

import "time"

// hoursPerDay converts an elapsed duration to fractional days.
const hoursPerDay = 24.0

// DurationDays returns the elapsed time between created and solved in
// fractional days, or nil when either timestamp is missing. Negative values
// (solved before created) are passed through unchanged.
func DurationDays(created, solved *time.Time) *float64 {
	if created == nil || solved == nil {
		return nil
	}
	d := solved.Sub(*created).Hours() / hoursPerDay
	return &d
}
