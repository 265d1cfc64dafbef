package steppedtime

import (
	"github.com/noodlebox/hightime"
)

// See [hightime.Instant].
type Time = hightime.Instant

// See [hightime.Duration].
type Duration = hightime.Duration

// Helpers for generating Duration values. They panic if n is out of range.

// Seconds returns a Duration value representing n seconds, kept to the
// femtosecond.
func (*Clock) Seconds(n float64) Duration {
	return hightime.Must(hightime.NewDuration(hightime.Seconds(n)))
}

// Milliseconds returns a Duration value representing n milliseconds.
func (*Clock) Milliseconds(n int64) Duration {
	return hightime.Must(hightime.NewDuration(hightime.Milliseconds(n)))
}

// Microseconds returns a Duration value representing n microseconds.
func (*Clock) Microseconds(n int64) Duration {
	return hightime.Must(hightime.NewDuration(hightime.Microseconds(n)))
}

// Nanoseconds returns a Duration value representing n nanoseconds.
func (*Clock) Nanoseconds(n int64) Duration {
	return hightime.Must(hightime.NewDuration(hightime.Nanoseconds(n)))
}

// Femtoseconds returns a Duration value representing n femtoseconds.
func (*Clock) Femtoseconds(n int64) Duration {
	return hightime.Must(hightime.NewDuration(hightime.Femtoseconds(n)))
}

// Yoctoseconds returns a Duration value representing n yoctoseconds.
func (*Clock) Yoctoseconds(n int64) Duration {
	return hightime.Must(hightime.NewDuration(hightime.Yoctoseconds(n)))
}

// ParseDuration parses a duration string such as "1.5h" or "3us250fs". See
// [hightime.ParseDuration].
func (*Clock) ParseDuration(s string) (Duration, error) {
	return hightime.ParseDuration(s)
}
