package hightime

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"time"

	"github.com/cespare/xxhash/v2"
	inf "gopkg.in/inf.v0"
)

const maxDays = 999_999_999

// A Duration represents an elapsed span of time down to the yoctosecond.
//
// It is held as five tiers: whole days, seconds (0-86399), microseconds
// (0-999999), femtoseconds (0-999999999) and yoctoseconds (0-999999999).
// The sign lives entirely in the day count, so -1 femtosecond is
// -1 day + 86399s + 999999us + 999999999fs. Days range over
// ±999999999.
//
// Durations are immutable and comparable; two Durations are == exactly when
// they describe the same span. The zero value is a zero-length Duration.
type Duration struct {
	days    int64
	seconds int32
	usec    int32
	fsec    int32
	ysec    int32
}

var (
	// MinDuration is the most negative Duration.
	MinDuration = Duration{days: -maxDays}

	// MaxDuration is the most positive Duration.
	MaxDuration = Duration{
		days:    maxDays,
		seconds: 86399,
		usec:    999_999,
		fsec:    999_999_999,
		ysec:    999_999_999,
	}

	// DurationResolution is the smallest difference between two unequal
	// Durations.
	DurationResolution = Duration{ysec: 1}
)

// NewDuration returns the Duration that is the sum of units.
//
// Every magnitude is taken as an exact rational, then rounded to the
// granularity of its unit: weeks and days to 1 microsecond, hours to 1
// nanosecond, minutes to 1 picosecond, seconds to 1 femtosecond,
// milliseconds to 1 attosecond, and every smaller unit to 15 decimal places
// of itself. The sum is rounded to the nearest yoctosecond, ties to even.
// Contributions too small to survive that rounding are dropped silently.
func NewDuration(units ...Unit) (Duration, error) {
	total, err := normalize(units)
	if err != nil {
		return Duration{}, err
	}
	return FromYoctoseconds(total)
}

func normalize(units []Unit) (*big.Int, error) {
	total := new(big.Rat)
	for _, u := range units {
		if u.err != nil {
			return nil, u.err
		}
		total.Add(total, u.contribution())
	}
	return roundHalfEven(total), nil
}

// FromYoctoseconds returns the Duration of n yoctoseconds.
func FromYoctoseconds(n *big.Int) (Duration, error) {
	days, rem := floorDivMod(n, ysPerDay)
	if !days.IsInt64() || days.Int64() < -maxDays || days.Int64() > maxDays {
		return Duration{}, fmt.Errorf("%w: days=%v; must have magnitude <= %d", ErrOverflow, days, maxDays)
	}
	secs, rem := new(big.Int).QuoRem(rem, ysPerSecond, new(big.Int))
	usec, rem := new(big.Int).QuoRem(rem, ysPerMicrosecond, new(big.Int))
	fsec, ysec := new(big.Int).QuoRem(rem, ysPerFemtosecond, new(big.Int))
	return Duration{
		days:    days.Int64(),
		seconds: int32(secs.Int64()),
		usec:    int32(usec.Int64()),
		fsec:    int32(fsec.Int64()),
		ysec:    int32(ysec.Int64()),
	}, nil
}

// FromStd returns the Duration equal to the standard library duration d.
func FromStd(d time.Duration) Duration {
	out, _ := FromYoctoseconds(new(big.Int).Mul(big.NewInt(int64(d)), ysPerNanosecond))
	return out
}

// Must returns v, panicking if err is non-nil. It is intended for
// initializing variables from constant arguments.
func Must[T Duration | Instant](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Days returns the whole-day tier, which carries the sign of d.
func (d Duration) Days() int64 { return d.days }

// Seconds returns the seconds tier, in [0, 86399].
func (d Duration) Seconds() int { return int(d.seconds) }

// Microseconds returns the microseconds tier, in [0, 999999].
func (d Duration) Microseconds() int { return int(d.usec) }

// Femtoseconds returns the femtoseconds tier, in [0, 999999999].
func (d Duration) Femtoseconds() int { return int(d.fsec) }

// Yoctoseconds returns the yoctoseconds tier, in [0, 999999999].
func (d Duration) Yoctoseconds() int { return int(d.ysec) }

// Fields returns all five tiers of d.
func (d Duration) Fields() (days int64, seconds, microseconds, femtoseconds, yoctoseconds int) {
	return d.days, int(d.seconds), int(d.usec), int(d.fsec), int(d.ysec)
}

// TotalYoctoseconds flattens d into a single count of yoctoseconds.
func (d Duration) TotalYoctoseconds() *big.Int {
	n := big.NewInt(d.days)
	n.Mul(n, big.NewInt(secondsPerDay))
	n.Add(n, big.NewInt(int64(d.seconds)))
	n.Mul(n, big.NewInt(microsPerSecond))
	n.Add(n, big.NewInt(int64(d.usec)))
	n.Mul(n, big.NewInt(fsPerMicrosecond))
	n.Add(n, big.NewInt(int64(d.fsec)))
	n.Mul(n, ysPerFemtosecond)
	return n.Add(n, big.NewInt(int64(d.ysec)))
}

// TotalSeconds returns d in seconds as the nearest float64.
func (d Duration) TotalSeconds() float64 {
	f, _ := new(big.Rat).SetFrac(d.TotalYoctoseconds(), ysPerSecond).Float64()
	return f
}

// PreciseTotalSeconds returns d in seconds as an exact decimal with 24
// fractional digits.
func (d Duration) PreciseTotalSeconds() *inf.Dec {
	return inf.NewDecBig(d.TotalYoctoseconds(), 24)
}

// Std returns d as a standard library duration, truncated toward zero to
// whole nanoseconds. It fails with ErrOverflow when d exceeds the range of
// time.Duration.
func (d Duration) Std() (time.Duration, error) {
	ns := new(big.Int).Quo(d.TotalYoctoseconds(), ysPerNanosecond)
	if !ns.IsInt64() {
		return 0, fmt.Errorf("%w: %v does not fit time.Duration", ErrOverflow, d)
	}
	return time.Duration(ns.Int64()), nil
}

// IsZero reports whether d is a zero-length span.
func (d Duration) IsZero() bool {
	return d == Duration{}
}

// Sign returns -1, 0 or +1 according to the sign of d.
func (d Duration) Sign() int {
	switch {
	case d.days < 0:
		return -1
	case d.IsZero():
		return 0
	}
	return 1
}

// Compare returns -1 if d is shorter than u, +1 if longer, and 0 if equal.
func (d Duration) Compare(u Duration) int {
	return d.TotalYoctoseconds().Cmp(u.TotalYoctoseconds())
}

// Equal reports whether d and u are the same span.
func (d Duration) Equal(u Duration) bool {
	return d == u
}

// Hash returns a hash of d consistent with Equal.
func (d Duration) Hash() uint64 {
	var b [24]byte
	binary.BigEndian.PutUint64(b[0:], uint64(d.days))
	binary.BigEndian.PutUint32(b[8:], uint32(d.seconds))
	binary.BigEndian.PutUint32(b[12:], uint32(d.usec))
	binary.BigEndian.PutUint32(b[16:], uint32(d.fsec))
	binary.BigEndian.PutUint32(b[20:], uint32(d.ysec))
	return xxhash.Sum64(b[:])
}

// Units returns the non-zero tiers of d as constructor arguments, such that
// NewDuration(d.Units()...) reproduces d.
func (d Duration) Units() []Unit {
	var units []Unit
	if d.days != 0 {
		units = append(units, Days(d.days))
	}
	if d.seconds != 0 {
		units = append(units, Seconds(d.seconds))
	}
	if d.usec != 0 {
		units = append(units, Microseconds(d.usec))
	}
	if d.fsec != 0 {
		units = append(units, Femtoseconds(d.fsec))
	}
	if d.ysec != 0 {
		units = append(units, Yoctoseconds(d.ysec))
	}
	return units
}

// DurationState is the persisted form of a Duration: the thirteen
// constructor slots in their historical order, with only the five tiers
// populated.
type DurationState struct {
	_            struct{} `cbor:",toarray"`
	Days         int64
	Seconds      int64
	Microseconds int64
	Milliseconds int64
	Minutes      int64
	Hours        int64
	Weeks        int64
	Nanoseconds  int64
	Picoseconds  int64
	Femtoseconds int64
	Attoseconds  int64
	Zeptoseconds int64
	Yoctoseconds int64
}

// State returns the persisted form of d.
func (d Duration) State() DurationState {
	return DurationState{
		Days:         d.days,
		Seconds:      int64(d.seconds),
		Microseconds: int64(d.usec),
		Femtoseconds: int64(d.fsec),
		Yoctoseconds: int64(d.ysec),
	}
}

// FromState rebuilds a Duration from its persisted form. Every slot is
// honoured, so hand-written states need not be normalized.
func FromState(s DurationState) (Duration, error) {
	return NewDuration(
		Days(s.Days),
		Seconds(s.Seconds),
		Microseconds(s.Microseconds),
		Milliseconds(s.Milliseconds),
		Minutes(s.Minutes),
		Hours(s.Hours),
		Weeks(s.Weeks),
		Nanoseconds(s.Nanoseconds),
		Picoseconds(s.Picoseconds),
		Femtoseconds(s.Femtoseconds),
		Attoseconds(s.Attoseconds),
		Zeptoseconds(s.Zeptoseconds),
		Yoctoseconds(s.Yoctoseconds),
	)
}
