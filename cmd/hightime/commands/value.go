package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	inf "gopkg.in/inf.v0"

	"github.com/noodlebox/hightime"
)

// ParseValue reads an argument as an Instant or a Duration. Instants are
// ISO 8601 text or "@" followed by Unix seconds, which are placed in loc.
// Anything else is read by hightime.ParseDuration.
func ParseValue(s string, loc *time.Location) (any, error) {
	if ts, ok := strings.CutPrefix(s, "@"); ok {
		return parseTimestamp(ts, loc)
	}
	if len(s) >= 10 && s[4] == '-' {
		t, err := hightime.Parse(s)
		if err != nil {
			return nil, err
		}
		logrus.WithField("value", s).Debug("parsed instant")
		return t, nil
	}
	d, err := hightime.ParseDuration(s)
	if err != nil {
		return nil, err
	}
	logrus.WithField("value", s).Debug("parsed duration")
	return d, nil
}

func parseTimestamp(s string, loc *time.Location) (hightime.Instant, error) {
	if n, err := cast.ToInt64E(s); err == nil && !strings.ContainsAny(s, ".eE") {
		logrus.WithField("seconds", n).Debug("parsed integer timestamp")
		return hightime.FromTimestamp(n, loc)
	}
	if dec, ok := new(inf.Dec).SetString(s); ok {
		logrus.WithField("seconds", dec).Debug("parsed decimal timestamp")
		return hightime.FromTimestamp(dec, loc)
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return hightime.Instant{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	logrus.WithField("seconds", f).Debug("parsed float timestamp")
	return hightime.FromTimestamp(f, loc)
}

// ParseInstant is ParseValue restricted to Instants.
func ParseInstant(s string, loc *time.Location) (hightime.Instant, error) {
	v, err := ParseValue(s, loc)
	if err != nil {
		return hightime.Instant{}, err
	}
	t, ok := v.(hightime.Instant)
	if !ok {
		return hightime.Instant{}, fmt.Errorf("%q is not an instant", s)
	}
	return t, nil
}

// ParseDurations reads every argument as a Duration.
func ParseDurations(args []string) ([]hightime.Duration, error) {
	out := make([]hightime.Duration, 0, len(args))
	for _, a := range args {
		d, err := hightime.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
