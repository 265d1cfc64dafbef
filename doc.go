// Package hightime provides time values with yoctosecond (1e-24 s)
// resolution: [Instant], a point in time, and [Duration], an elapsed span.
//
// Both extend the standard library's microsecond-level fields with two
// further tiers, femtoseconds and yoctoseconds, each in [0, 999999999].
// Calendar and zone rules for the upper fields are delegated to [time];
// everything below the microsecond is exact fixed-point arithmetic on
// big integers.
//
// Durations are built from any mix of units, integral or fractional:
//
//	d, err := hightime.NewDuration(hightime.Days(1.5), hightime.Femtoseconds(250))
//
// Operations that can leave the representable range return an error
// rather than wrapping. Both types are immutable and safe for concurrent
// use.
//
// The subpackages supply clocks in the manner of [time]: steppedtime is a
// manually advanced clock for simulations, and realtime reads the host
// wall clock.
package hightime
