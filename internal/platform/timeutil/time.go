package timeutil

import (
	"time"
)

// RFC3339Millis is RFC 3339 UTC with fixed millisecond precision.
// Use this format for timestamps returned in API payloads.
const RFC3339Millis = "2006-01-02T15:04:05.000Z"

// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision.
// Use this format for log timestamps where higher precision is needed.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// Clock returns the current time. Handlers take a Clock so tests can pin "now".
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// FormatMillis renders t in UTC as RFC3339Millis, e.g. "2024-01-15T10:30:00.000Z".
func FormatMillis(t time.Time) string {
	return t.UTC().Format(RFC3339Millis)
}
