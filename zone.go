package hightime

import "time"

// A Fold disambiguates a wall clock reading that a location repeats or
// skips. Fold 0 selects the offset in effect before the transition and
// Fold 1 the offset after it. Outside transitions it has no effect.
type Fold uint8

// MustLoadLocation is like time.LoadLocation but panics on error.
func MustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func offsetAt(loc *time.Location, unix int64) int {
	_, off := time.Unix(unix, 0).In(loc).Zone()
	return off
}

// resolveOffset returns the offset, in seconds east of UTC, that loc
// applies to the wall clock reading w. w holds the local fields in UTC.
//
// The candidates are the offsets in effect a day either side of the
// reading. A candidate is consistent when converting back through it
// lands on the same offset. Two consistent candidates mean the hour is
// repeated; none means it was skipped.
func resolveOffset(w time.Time, loc *time.Location, fold Fold) int {
	local := w.Unix()
	before := offsetAt(loc, local-secondsPerDay)
	after := offsetAt(loc, local+secondsPerDay)
	if before == after {
		if off := offsetAt(loc, local-int64(before)); off != before {
			return off
		}
		return before
	}
	beforeOK := offsetAt(loc, local-int64(before)) == before
	afterOK := offsetAt(loc, local-int64(after)) == after
	switch {
	case beforeOK && afterOK, !beforeOK && !afterOK:
		if fold == 0 {
			return before
		}
		return after
	case beforeOK:
		return before
	}
	return after
}

// foldOf reports which reading of t's wall clock t is.
func foldOf(t time.Time) Fold {
	_, off := t.Zone()
	w := wallOf(t)
	if resolveOffset(w, t.Location(), 0) != off {
		return 1
	}
	return 0
}

// wallOf returns the local fields of t held in UTC, truncated to the
// microsecond.
func wallOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1000*1000, time.UTC)
}
