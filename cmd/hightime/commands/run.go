package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/noodlebox/hightime"
	"github.com/noodlebox/hightime/realtime"
)

// Options control how values are read and printed.
type Options struct {
	Spec     hightime.Timespec
	Sep      rune
	Loc      *time.Location
	GoSyntax bool
}

// DefaultOptions prints instants at automatic precision with a 'T'
// separator.
func DefaultOptions() Options {
	return Options{Spec: hightime.TimespecAuto, Sep: 'T'}
}

func printValue(w io.Writer, v any, opts Options) error {
	var s string
	switch x := v.(type) {
	case hightime.Instant:
		s = x.ISOFormat(opts.Sep, opts.Spec)
		if opts.GoSyntax {
			s = x.GoString()
		}
	case hightime.Duration:
		s = x.String()
		if opts.GoSyntax {
			s = x.GoString()
		}
	default:
		return fmt.Errorf("cannot print %T", v)
	}
	_, err := fmt.Fprintln(w, s)
	return err
}

// RunNorm sums the given durations and prints the normalized result in
// its display, compact and total-seconds forms.
func RunNorm(args []string, opts Options, w io.Writer) error {
	ds, err := ParseDurations(args)
	if err != nil {
		return err
	}
	var sum hightime.Duration
	for _, d := range ds {
		if sum, err = sum.Add(d); err != nil {
			return err
		}
	}
	logrus.WithField("terms", len(ds)).Debug("normalized")
	if err := printValue(w, sum, opts); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", sum.Compact(), sum.PreciseTotalSeconds())
	return err
}

// RunAdd adds durations to a base Instant or Duration.
func RunAdd(base string, deltas []string, opts Options, w io.Writer) error {
	v, err := ParseValue(base, opts.Loc)
	if err != nil {
		return err
	}
	ds, err := ParseDurations(deltas)
	if err != nil {
		return err
	}
	for _, d := range ds {
		switch x := v.(type) {
		case hightime.Instant:
			v, err = x.Add(d)
		case hightime.Duration:
			v, err = x.Add(d)
		}
		if err != nil {
			return err
		}
	}
	return printValue(w, v, opts)
}

// RunSub prints a-b. Two Instants give a Duration; an Instant less a
// Duration gives an Instant; two Durations give a Duration.
func RunSub(a, b string, opts Options, w io.Writer) error {
	x, err := ParseValue(a, opts.Loc)
	if err != nil {
		return err
	}
	y, err := ParseValue(b, opts.Loc)
	if err != nil {
		return err
	}
	var out any
	switch x := x.(type) {
	case hightime.Instant:
		switch y := y.(type) {
		case hightime.Instant:
			out, err = x.Sub(y)
		case hightime.Duration:
			out, err = x.SubDuration(y)
		}
	case hightime.Duration:
		y, ok := y.(hightime.Duration)
		if !ok {
			return fmt.Errorf("%w: cannot subtract an instant from a duration", hightime.ErrType)
		}
		out, err = x.Sub(y)
	}
	if err != nil {
		return err
	}
	return printValue(w, out, opts)
}

// RunFmt reprints each value.
func RunFmt(values []string, opts Options, w io.Writer) error {
	for _, s := range values {
		v, err := ParseValue(s, opts.Loc)
		if err != nil {
			return err
		}
		if err := printValue(w, v, opts); err != nil {
			return err
		}
	}
	return nil
}

// RunNow prints the current time read from the host clock.
func RunNow(opts Options, w io.Writer) error {
	c := realtime.NewClock(opts.Loc)
	return printValue(w, c.Now(), opts)
}
