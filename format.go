package hightime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// A Timespec selects the last component ISOFormat writes.
type Timespec string

const (
	TimespecAuto         Timespec = "auto"
	TimespecHours        Timespec = "hours"
	TimespecMinutes      Timespec = "minutes"
	TimespecSeconds      Timespec = "seconds"
	TimespecMilliseconds Timespec = "milliseconds"
	TimespecMicroseconds Timespec = "microseconds"
	TimespecNanoseconds  Timespec = "nanoseconds"
	TimespecPicoseconds  Timespec = "picoseconds"
	TimespecFemtoseconds Timespec = "femtoseconds"
	TimespecAttoseconds  Timespec = "attoseconds"
	TimespecZeptoseconds Timespec = "zeptoseconds"
	TimespecYoctoseconds Timespec = "yoctoseconds"
)

// fractional digits written after the decimal point
var timespecDigits = map[Timespec]int{
	TimespecSeconds:      0,
	TimespecMilliseconds: 3,
	TimespecMicroseconds: 6,
	TimespecNanoseconds:  9,
	TimespecPicoseconds:  12,
	TimespecFemtoseconds: 15,
	TimespecAttoseconds:  18,
	TimespecZeptoseconds: 21,
	TimespecYoctoseconds: 24,
}

// ParseTimespec validates s as a Timespec.
func ParseTimespec(s string) (Timespec, error) {
	spec := Timespec(strings.ToLower(strings.TrimSpace(s)))
	switch spec {
	case TimespecAuto, TimespecHours, TimespecMinutes:
		return spec, nil
	}
	if _, ok := timespecDigits[spec]; ok {
		return spec, nil
	}
	return "", fmt.Errorf("%w: unknown timespec %q", ErrRange, s)
}

// subDigits returns the 24 fractional digits of t's second.
func (t Instant) subDigits() string {
	return fmt.Sprintf("%06d%09d%09d", t.Microsecond(), t.fsec, t.ysec)
}

// autoDigits returns the fewest fractional digits, in steps of three from
// six, that show every non-zero digit of t's second. It is 0 for a whole
// second.
func (t Instant) autoDigits() int {
	digits := strings.TrimRight(t.subDigits(), "0")
	if digits == "" {
		return 0
	}
	return max(6, (len(digits)+2)/3*3)
}

// ISOFormat returns t in ISO 8601 form, YYYY-MM-DDTHH:MM:SS.fff..., with
// sep between date and time and the offset appended for aware Instants.
//
// With TimespecAuto the fraction is omitted for a whole second and
// otherwise uses the coarsest of microseconds through yoctoseconds that
// shows every non-zero digit. Other timespecs truncate. ISOFormat panics
// on an unknown Timespec; use ParseTimespec for untrusted input.
func (t Instant) ISOFormat(sep rune, spec Timespec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d-%02d-%02d%c%02d", t.Year(), int(t.Month()), t.Day(), sep, t.Hour())
	switch spec {
	case TimespecHours:
	case TimespecMinutes:
		fmt.Fprintf(&b, ":%02d", t.Minute())
	default:
		digits, ok := timespecDigits[spec]
		if spec == TimespecAuto {
			digits, ok = t.autoDigits(), true
		}
		if !ok {
			panic("hightime.Instant.ISOFormat: unknown timespec " + strconv.Quote(string(spec)))
		}
		fmt.Fprintf(&b, ":%02d:%02d", t.Minute(), t.Second())
		if digits > 0 {
			b.WriteByte('.')
			b.WriteString(t.subDigits()[:digits])
		}
	}
	if t.loc != nil {
		b.WriteString(formatOffset(t.Offset()))
	}
	return b.String()
}

func formatOffset(off int) string {
	sign := byte('+')
	if off < 0 {
		sign, off = '-', -off
	}
	s := fmt.Sprintf("%c%02d:%02d", sign, off/3600, off/60%60)
	if off%60 != 0 {
		s += fmt.Sprintf(":%02d", off%60)
	}
	return s
}

// String returns t in ISO 8601 form with a space separator.
func (t Instant) String() string {
	return t.ISOFormat(' ', TimespecAuto)
}

// Format returns t formatted by time.Time.Format. Layout verbs finer than
// the nanosecond are not available; use ISOFormat for the full precision.
func (t Instant) Format(layout string) string {
	return t.Time().Format(layout)
}

// Args returns the arguments to New that rebuild t: the date, the hour and
// minute, then as many of second, microsecond, femtosecond and yoctosecond
// as the last non-zero one needs, the location if t is aware, and the fold
// if set.
func (t Instant) Args() []any {
	args := []any{t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute()}
	sub := []int{t.Second(), t.Microsecond(), int(t.fsec), int(t.ysec)}
	for len(sub) > 0 && sub[len(sub)-1] == 0 {
		sub = sub[:len(sub)-1]
	}
	for _, v := range sub {
		args = append(args, v)
	}
	if t.loc != nil {
		args = append(args, t.loc)
	}
	if t.fold != 0 {
		args = append(args, t.fold)
	}
	return args
}

// GoString returns a Go expression that evaluates to t.
func (t Instant) GoString() string {
	parts := make([]string, 0, 11)
	for _, a := range t.Args() {
		switch v := a.(type) {
		case *time.Location:
			parts = append(parts, locationGoString(v, t.Offset()))
		case Fold:
			parts = append(parts, fmt.Sprintf("hightime.Fold(%d)", v))
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return "hightime.Must(hightime.New(" + strings.Join(parts, ", ") + "))"
}

// locationGoString writes loc as a Go expression. Zones that do not load
// by name, such as the fixed zones Parse returns, are written with the
// offset in effect at the Instant.
func locationGoString(loc *time.Location, offset int) string {
	switch loc {
	case time.UTC:
		return "time.UTC"
	case time.Local:
		return "time.Local"
	}
	name := loc.String()
	if _, err := time.LoadLocation(name); name == "" || err != nil {
		return fmt.Sprintf("time.FixedZone(%q, %d)", name, offset)
	}
	return fmt.Sprintf("hightime.MustLoadLocation(%q)", name)
}

// String returns d in the form "[N day[s], ]H:MM:SS[.ffffff]", followed by
// nine femtosecond digits and then nine yoctosecond digits as needed. The
// microsecond block is written out as zeros when only the finer tiers are
// non-zero.
func (d Duration) String() string {
	var b strings.Builder
	if d.days != 0 {
		plural := "s"
		if d.days == 1 || d.days == -1 {
			plural = ""
		}
		fmt.Fprintf(&b, "%d day%s, ", d.days, plural)
	}
	s := int(d.seconds)
	fmt.Fprintf(&b, "%d:%02d:%02d", s/3600, s/60%60, s%60)
	if d.usec != 0 || d.fsec != 0 || d.ysec != 0 {
		fmt.Fprintf(&b, ".%06d", d.usec)
	}
	if d.fsec != 0 || d.ysec != 0 {
		fmt.Fprintf(&b, "%09d", d.fsec)
		if d.ysec != 0 {
			fmt.Fprintf(&b, "%09d", d.ysec)
		}
	}
	return b.String()
}

// GoString returns a Go expression that evaluates to d.
func (d Duration) GoString() string {
	units := d.Units()
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = u.GoString()
	}
	return "hightime.Must(hightime.NewDuration(" + strings.Join(parts, ", ") + "))"
}
