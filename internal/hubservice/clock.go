// FilePath: internal/hubservice/clock.go
package hubservice

import "time"

// Clock abstracts time so the aggregation engine and the staleness windows
// can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return systemClock{}
}
