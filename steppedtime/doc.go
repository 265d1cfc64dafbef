// Package steppedtime provides a clock that advances only when stepped,
// for simulations that need yoctosecond-resolution time under full
// control. It works with [hightime.Instant] and [hightime.Duration] values.
package steppedtime
