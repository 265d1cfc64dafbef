package hightime

import (
	"fmt"
	"time"
)

// asDuration widens the duration kinds Equal and Compare accept.
func asDuration(v any) (Duration, bool) {
	switch x := v.(type) {
	case Duration:
		return x, true
	case time.Duration:
		return FromStd(x), true
	}
	return Duration{}, false
}

// asInstant widens the point-in-time kinds Equal and Compare accept. A
// time.Time outside years 1..9999 has no Instant and is reported as not
// convertible.
func asInstant(v any) (Instant, bool) {
	switch x := v.(type) {
	case Instant:
		return x, true
	case time.Time:
		t, err := FromTime(x)
		return t, err == nil
	}
	return Instant{}, false
}

// Equal reports whether a and b denote the same span or the same point in
// time. Each operand may be a Duration, time.Duration, Instant or
// time.Time; sub-microsecond tiers missing from the standard types are
// zero. Operands of unrelated kinds are unequal. Equal never fails.
func Equal(a, b any) bool {
	if x, ok := asDuration(a); ok {
		y, ok := asDuration(b)
		return ok && x == y
	}
	if x, ok := asInstant(a); ok {
		y, ok := asInstant(b)
		return ok && x.Equal(y)
	}
	return false
}

// Compare orders a against b, returning -1, 0 or +1. The operands are
// widened as in Equal. It fails with ErrType if they are of unrelated
// kinds and with ErrNaiveAware if one Instant is naive and the other is
// not.
func Compare(a, b any) (int, error) {
	if x, ok := asDuration(a); ok {
		if y, ok := asDuration(b); ok {
			return x.Compare(y), nil
		}
	} else if x, ok := asInstant(a); ok {
		if y, ok := asInstant(b); ok {
			return x.Compare(y)
		}
	}
	return 0, fmt.Errorf("%w: cannot compare %T to %T", ErrType, a, b)
}
