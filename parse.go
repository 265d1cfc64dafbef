package hightime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	inf "gopkg.in/inf.v0"
)

// Parse parses an ISO 8601 date and time as written by ISOFormat:
//
//	YYYY-MM-DD[<sep>HH[:MM[:SS[.fraction]]]][Z|±HH:MM[:SS]]
//
// sep is any single character. The fraction may carry up to 24 digits.
// Without an offset the result is naive; a zero offset or Z gives UTC and
// any other offset a fixed zone.
func Parse(s string) (Instant, error) {
	bad := func(reason string) (Instant, error) {
		return Instant{}, fmt.Errorf("%w: cannot parse %q as an instant: %s", ErrRange, s, reason)
	}
	if len(s) < 10 || s[4] != '-' || s[7] != '-' {
		return bad("expected YYYY-MM-DD")
	}
	var f fieldSet
	for i, span := range [][2]int{{0, 4}, {5, 7}, {8, 10}} {
		n, ok := atoi(s[span[0]:span[1]])
		if !ok {
			return bad("bad " + fieldNames[i])
		}
		f.v[i] = n
	}
	rest := s[10:]
	if rest != "" {
		_, size := utf8.DecodeRuneInString(rest)
		rest = rest[size:]
		var err error
		if rest, err = parseClock(rest, &f); err != nil {
			return bad(err.Error())
		}
	}
	if rest != "" {
		loc, err := parseOffset(rest)
		if err != nil {
			return bad(err.Error())
		}
		f.loc = loc
	}
	return f.build()
}

func parseClock(s string, f *fieldSet) (string, error) {
	for i := 3; i <= 5; i++ {
		if i > 3 {
			if s == "" || s[0] != ':' {
				return s, nil
			}
			s = s[1:]
		}
		if len(s) < 2 {
			return s, fmt.Errorf("bad %s", fieldNames[i])
		}
		n, ok := atoi(s[:2])
		if !ok {
			return s, fmt.Errorf("bad %s", fieldNames[i])
		}
		f.v[i] = n
		s = s[2:]
	}
	if s == "" || (s[0] != '.' && s[0] != ',') {
		return s, nil
	}
	s = s[1:]
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || end > 24 {
		return s, fmt.Errorf("fraction must have 1 to 24 digits")
	}
	frac := s[:end] + strings.Repeat("0", 24-end)
	for i, span := range [][2]int{{0, 6}, {6, 15}, {15, 24}} {
		n, _ := atoi(frac[span[0]:span[1]])
		f.v[6+i] = n
	}
	return s[end:], nil
}

func parseOffset(s string) (*time.Location, error) {
	if s == "Z" || s == "z" {
		return time.UTC, nil
	}
	if len(s) < 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return nil, fmt.Errorf("bad offset %q", s)
	}
	h, okh := atoi(s[1:3])
	m, okm := atoi(s[4:6])
	var sec int64
	oks := true
	switch {
	case len(s) == 9 && s[6] == ':':
		sec, oks = atoi(s[7:9])
	case len(s) != 6:
		oks = false
	}
	if !okh || !okm || !oks || h > 23 || m > 59 || sec > 59 {
		return nil, fmt.Errorf("bad offset %q", s)
	}
	off := int(h*3600 + m*60 + sec)
	if s[0] == '-' {
		off = -off
	}
	if off == 0 {
		return time.UTC, nil
	}
	return time.FixedZone("", off), nil
}

func atoi(s string) (int64, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

var unitSymbols = map[string]unitKind{
	"w":  unitWeeks,
	"d":  unitDays,
	"h":  unitHours,
	"m":  unitMinutes,
	"s":  unitSeconds,
	"ms": unitMilliseconds,
	"us": unitMicroseconds,
	"µs": unitMicroseconds,
	"μs": unitMicroseconds,
	"ns": unitNanoseconds,
	"ps": unitPicoseconds,
	"fs": unitFemtoseconds,
	"as": unitAttoseconds,
	"zs": unitZeptoseconds,
	"ys": unitYoctoseconds,
}

// ParseDuration parses a signed sequence of decimal numbers, each with a
// unit suffix, such as "1d2h", "-1.5s" or "3us250fs". Valid units are w,
// d, h, m, s, ms, us (or µs), ns, ps, fs, as, zs and ys. Each component
// is rounded as the matching unit constructor rounds it.
func ParseDuration(s string) (Duration, error) {
	orig := s
	bad := func() (Duration, error) {
		return Duration{}, fmt.Errorf("%w: invalid duration %q", ErrRange, orig)
	}
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "0" {
		return Duration{}, nil
	}
	if s == "" {
		return bad()
	}
	var units []Unit
	for s != "" {
		end := 0
		for end < len(s) && (s[end] == '.' || ('0' <= s[end] && s[end] <= '9')) {
			end++
		}
		num := s[:end]
		s = s[end:]
		if num == "" || num == "." {
			return bad()
		}
		end = 0
		for end < len(s) && s[end] != '.' && (s[end] < '0' || s[end] > '9') {
			end++
		}
		kind, ok := unitSymbols[s[:end]]
		if !ok {
			return bad()
		}
		s = s[end:]
		dec, ok := new(inf.Dec).SetString(num)
		if !ok {
			return bad()
		}
		if neg {
			dec.Neg(dec)
		}
		units = append(units, newUnit(kind, dec))
	}
	return NewDuration(units...)
}

// Compact returns d as a sequence of its non-zero tiers, such as
// "1d2s3us4fs5ys". A negative d is written as "-" followed by |d|. The
// zero Duration is "0s". ParseDuration reverses it.
func (d Duration) Compact() string {
	if d.IsZero() {
		return "0s"
	}
	var b strings.Builder
	if d.days < 0 {
		b.WriteByte('-')
		abs, err := d.Neg()
		if err != nil {
			return d.String()
		}
		d = abs
	}
	for _, u := range d.Units() {
		b.WriteString(u.String())
	}
	return b.String()
}
