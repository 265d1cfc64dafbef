package hightime

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"time"
)

const (
	minYear = 1
	maxYear = 9999

	// seconds from 0001-01-01 to the Unix epoch
	originToUnix = 62135596800
)

// An Instant is a point in time with yoctosecond precision.
//
// The calendar fields down to the microsecond, the location and the fold
// behave as they would on a time.Time. Below the microsecond an Instant
// carries two further tiers, femtoseconds and yoctoseconds, each in
// [0, 999999999].
//
// An Instant with a nil location is naive: it names a wall clock reading
// with no zone attached. Naive and aware Instants cannot be subtracted or
// ordered against each other.
//
// Instants are immutable and comparable, but == compares representations;
// use Equal to compare points in time across locations.
type Instant struct {
	wall time.Time
	loc  *time.Location
	fsec uint32
	ysec uint32
	fold Fold
}

var (
	// MinInstant is the earliest naive Instant, which is also the zero
	// value.
	MinInstant = Instant{}

	// MaxInstant is the latest naive Instant.
	MaxInstant = Instant{
		wall: time.Date(maxYear, time.December, 31, 23, 59, 59, 999_999_000, time.UTC),
		fsec: 999_999_999,
		ysec: 999_999_999,
	}

	// InstantResolution is the smallest difference between two unequal
	// Instants.
	InstantResolution = DurationResolution
)

var fieldNames = [...]string{
	"year", "month", "day", "hour", "minute", "second",
	"microsecond", "femtosecond", "yoctosecond",
}

type fieldSet struct {
	v    [len(fieldNames)]int64
	loc  *time.Location
	fold Fold
}

var fieldLimits = [len(fieldNames)][2]int64{
	{minYear, maxYear},
	{1, 12},
	{1, 31},
	{0, 23},
	{0, 59},
	{0, 59},
	{0, 999_999},
	{0, maxSubMicrosecond},
	{0, maxSubMicrosecond},
}

func (f *fieldSet) build() (Instant, error) {
	for i, lim := range fieldLimits {
		if f.v[i] < lim[0] || f.v[i] > lim[1] {
			return Instant{}, rangeErr(fieldNames[i], f.v[i], lim[0], lim[1])
		}
	}
	year, month := int(f.v[0]), time.Month(f.v[1])
	if dim := daysIn(year, month); f.v[2] > int64(dim) {
		return Instant{}, rangeErr("day", f.v[2], 1, int64(dim))
	}
	if f.fold > 1 {
		return Instant{}, rangeErr("fold", f.fold, 0, 1)
	}
	return Instant{
		wall: time.Date(year, month, int(f.v[2]), int(f.v[3]), int(f.v[4]), int(f.v[5]), int(f.v[6])*1000, time.UTC),
		loc:  f.loc,
		fsec: uint32(f.v[7]),
		ysec: uint32(f.v[8]),
		fold: f.fold,
	}, nil
}

func (t Instant) fields() fieldSet {
	return fieldSet{
		v: [...]int64{
			int64(t.wall.Year()), int64(t.wall.Month()), int64(t.wall.Day()),
			int64(t.wall.Hour()), int64(t.wall.Minute()), int64(t.wall.Second()),
			int64(t.wall.Nanosecond() / 1000), int64(t.fsec), int64(t.ysec),
		},
		loc:  t.loc,
		fold: t.fold,
	}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date returns the Instant with the given fields in loc, or a naive
// Instant if loc is nil. Fields outside their ranges are rejected rather
// than normalized.
func Date(year int, month time.Month, day, hour, min, sec, usec, fsec, ysec int, loc *time.Location) (Instant, error) {
	f := fieldSet{
		v: [...]int64{
			int64(year), int64(month), int64(day), int64(hour), int64(min), int64(sec),
			int64(usec), int64(fsec), int64(ysec),
		},
		loc: loc,
	}
	return f.build()
}

// New returns the Instant described by positional arguments, in the order
// year, month, day, hour, minute, second, microsecond, femtosecond,
// yoctosecond. Year, month and day are required; the rest default to zero.
//
// Each field must be integer-like: any Go integer kind (including
// time.Month), a *big.Int, or a value with an Int64() (int64, error)
// method such as json.Number. Floats, strings and other kinds fail with
// ErrType.
//
// A trailing *time.Location, or an untyped nil, sets the location; with
// none the Instant is naive. A Fold argument may appear anywhere.
func New(args ...any) (Instant, error) {
	var (
		f      fieldSet
		n      int
		hasLoc bool
	)
	for _, arg := range args {
		switch v := arg.(type) {
		case Fold:
			f.fold = v
			continue
		case *time.Location:
			if hasLoc {
				return Instant{}, fmt.Errorf("%w: location given twice", ErrType)
			}
			f.loc, hasLoc = v, true
			continue
		case nil:
			if hasLoc {
				return Instant{}, fmt.Errorf("%w: location given twice", ErrType)
			}
			hasLoc = true
			continue
		}
		if hasLoc {
			return Instant{}, fmt.Errorf("%w: positional field after location", ErrType)
		}
		if n == len(fieldNames) {
			return Instant{}, fmt.Errorf("%w: at most %d positional fields, got %d", ErrType, len(fieldNames), n+1)
		}
		i, err := toInt(fieldNames[n], arg)
		if err != nil {
			return Instant{}, err
		}
		f.v[n] = i
		n++
	}
	if n < 3 {
		return Instant{}, fmt.Errorf("%w: missing required field %q", ErrType, fieldNames[n])
	}
	return f.build()
}

type int64er interface {
	Int64() (int64, error)
}

func toInt(field string, v any) (int64, error) {
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			break
		}
		if !x.IsInt64() {
			return 0, fieldErr(field, x, ErrRange)
		}
		return x.Int64(), nil
	case int64er:
		i, err := x.Int64()
		if err != nil {
			return 0, fieldErr(field, v, fmt.Errorf("%w: %v", ErrType, err))
		}
		return i, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.Uint() > math.MaxInt64 {
			return 0, fieldErr(field, v, ErrRange)
		}
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return 0, fieldErr(field, v, fmt.Errorf("%w: integer argument expected, got float", ErrType))
	}
	return 0, fieldErr(field, v, fmt.Errorf("%w: an integer is required (got type %T)", ErrType, v))
}

// FromTime returns the aware Instant equal to t, in t's location. The
// nanoseconds of t below the microsecond become femtoseconds.
func FromTime(t time.Time) (Instant, error) {
	if y := t.Year(); y < minYear || y > maxYear {
		return Instant{}, fmt.Errorf("%w: year %d", ErrOverflow, y)
	}
	return Instant{
		wall: wallOf(t),
		loc:  t.Location(),
		fsec: uint32(t.Nanosecond()%1000) * 1_000_000,
		fold: foldOf(t),
	}, nil
}

// Now returns the current time in loc. With a nil loc it returns the
// local wall clock reading as a naive Instant.
func Now(loc *time.Location) Instant {
	now := time.Now()
	if loc != nil {
		now = now.In(loc)
	}
	t, err := FromTime(now)
	if err != nil {
		panic(err)
	}
	if loc == nil {
		t.loc = nil
	}
	return t
}

// FromTimestamp returns the Instant ts seconds after the Unix epoch,
// rounded to the nearest yoctosecond, in loc. With a nil loc the result is
// the local wall clock reading as a naive Instant.
func FromTimestamp[N Number](ts N, loc *time.Location) (Instant, error) {
	r, err := toRat(ts)
	if err != nil {
		return Instant{}, fieldErr("timestamp", ts, err)
	}
	n := roundHalfEven(r.Mul(r, new(big.Rat).SetInt(ysPerSecond)))
	n.Add(n, unixOriginYocto)
	target := loc
	if target == nil {
		target = time.Local
	}
	t, err := fromUTCYocto(n, target)
	if err != nil {
		return Instant{}, err
	}
	if loc == nil {
		t.loc = nil
	}
	return t, nil
}

// Year returns the year, in [1, 9999].
func (t Instant) Year() int { return t.wall.Year() }

// Month returns the month of the year.
func (t Instant) Month() time.Month { return t.wall.Month() }

// Day returns the day of the month.
func (t Instant) Day() int { return t.wall.Day() }

// Hour returns the hour, in [0, 23].
func (t Instant) Hour() int { return t.wall.Hour() }

// Minute returns the minute, in [0, 59].
func (t Instant) Minute() int { return t.wall.Minute() }

// Second returns the second, in [0, 59].
func (t Instant) Second() int { return t.wall.Second() }

// Microsecond returns the microsecond, in [0, 999999].
func (t Instant) Microsecond() int { return t.wall.Nanosecond() / 1000 }

// Femtosecond returns the femtosecond tier, in [0, 999999999].
func (t Instant) Femtosecond() int { return int(t.fsec) }

// Yoctosecond returns the yoctosecond tier, in [0, 999999999].
func (t Instant) Yoctosecond() int { return int(t.ysec) }

// Location returns the location of t, or nil if t is naive.
func (t Instant) Location() *time.Location { return t.loc }

// Fold returns the fold of t.
func (t Instant) Fold() Fold { return t.fold }

// IsAware reports whether t has a location.
func (t Instant) IsAware() bool { return t.loc != nil }

// Offset returns the offset of t in seconds east of UTC. It is zero for
// naive Instants.
func (t Instant) Offset() int {
	if t.loc == nil {
		return 0
	}
	return resolveOffset(t.wall, t.loc, t.fold)
}

// Zone returns the abbreviated zone name and offset in effect at t. Both
// are empty for naive Instants.
func (t Instant) Zone() (name string, offset int) {
	if t.loc == nil {
		return "", 0
	}
	return t.Time().Zone()
}

// Ordinal returns the proleptic Gregorian ordinal of t's date, where
// 0001-01-01 is day 1.
func (t Instant) Ordinal() int {
	return int((t.wall.Unix()+originToUnix)/secondsPerDay) + 1
}

// Weekday returns the day of the week.
func (t Instant) Weekday() time.Weekday { return t.wall.Weekday() }

// YearDay returns the day of the year, in [1, 366].
func (t Instant) YearDay() int { return t.wall.YearDay() }

// Time returns t as a time.Time, truncated to the nanosecond. A naive
// Instant maps to the same wall clock reading in UTC.
func (t Instant) Time() time.Time {
	ns := int64(t.wall.Nanosecond()) + int64(t.fsec)/1_000_000
	if t.loc == nil {
		return time.Unix(t.wall.Unix(), ns).UTC()
	}
	return time.Unix(t.wall.Unix()-int64(t.Offset()), ns).In(t.loc)
}

// Naive returns t with its location removed, keeping the wall clock
// reading.
func (t Instant) Naive() Instant {
	t.loc = nil
	return t
}

// A Field overrides one field in Replace.
type Field func(*fieldSet)

func setField(i int, v int) Field {
	return func(f *fieldSet) { f.v[i] = int64(v) }
}

// SetYear overrides the year.
func SetYear(year int) Field { return setField(0, year) }

// SetMonth overrides the month.
func SetMonth(month time.Month) Field { return setField(1, int(month)) }

// SetDay overrides the day of the month.
func SetDay(day int) Field { return setField(2, day) }

// SetHour overrides the hour.
func SetHour(hour int) Field { return setField(3, hour) }

// SetMinute overrides the minute.
func SetMinute(min int) Field { return setField(4, min) }

// SetSecond overrides the second.
func SetSecond(sec int) Field { return setField(5, sec) }

// SetMicrosecond overrides the microsecond.
func SetMicrosecond(usec int) Field { return setField(6, usec) }

// SetFemtosecond overrides the femtosecond tier.
func SetFemtosecond(fsec int) Field { return setField(7, fsec) }

// SetYoctosecond overrides the yoctosecond tier.
func SetYoctosecond(ysec int) Field { return setField(8, ysec) }

// SetLocation overrides the location. A nil loc makes the result naive.
func SetLocation(loc *time.Location) Field {
	return func(f *fieldSet) { f.loc = loc }
}

// SetFold overrides the fold.
func SetFold(fold Fold) Field {
	return func(f *fieldSet) { f.fold = fold }
}

// Replace returns t with the given fields overridden. The wall clock
// reading is kept when only the location changes; use In to convert.
func (t Instant) Replace(fields ...Field) (Instant, error) {
	f := t.fields()
	for _, set := range fields {
		set(&f)
	}
	return f.build()
}
