package interfaces

import "time"

// TimeProvider supplies the current time for TTL checks and refresh timestamps.
// Injected so tests can move the clock instead of sleeping.
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns current time (UTC in prod, a controlled time in tests).
	Now() time.Time
}
