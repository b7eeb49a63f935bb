package clock

import "time"

// Clock provides the current time. Services take a Clock so tests can pin
// timestamps.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
