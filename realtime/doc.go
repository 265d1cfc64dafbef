// Package realtime provides a clock over the host wall clock that works
// with [hightime.Instant] and [hightime.Duration] values. Readings carry
// the host's nanosecond precision; waits round up to whole nanoseconds.
// [Timer] and [Ticker] expose their channels through a C method, to work
// around the limitation of interfaces not being able to specify fields.
package realtime
