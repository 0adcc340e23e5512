package metering

import "time"

// Clock abstracts wall-clock time so the month key is deterministic in
// tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func SystemClock() Clock {
	return systemClock{}
}

// MonthKey renders the usage period key for t, e.g. "2026-09".
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
