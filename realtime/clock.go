package realtime

import (
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/noodlebox/hightime"
)

// See [hightime.Instant].
type Time = hightime.Instant

// See [hightime.Duration].
type Duration = hightime.Duration

// See [time.Location].
type Location = time.Location

// See [time.Month].
type Month = time.Month

// See [time.UTC].
var UTC = time.UTC

// See [time.Local].
var Local = time.Local

var ysPerNanosecond = new(big.Int).Exp(big.NewInt(10), big.NewInt(15), nil)

// Clock reads the host wall clock. Its methods are thread-safe and Clock
// objects may be copied freely. The zero-value of a Clock produces naive
// local Instants.
type Clock struct {
	loc *Location
}

// NewClock returns a new Clock producing Instants in loc, or naive local
// Instants if loc is nil.
func NewClock(loc *Location) Clock {
	return Clock{loc: loc}
}

// Location returns the location of the Instants c produces.
func (c Clock) Location() *Location {
	return c.loc
}

// toStd converts d for the host timer, rounding up to a whole nanosecond
// so that waits are never short. Durations beyond the host range saturate.
func toStd(d Duration) time.Duration {
	ns, rem := new(big.Int).QuoRem(d.TotalYoctoseconds(), ysPerNanosecond, new(big.Int))
	if rem.Sign() > 0 {
		ns.Add(ns, big.NewInt(1))
	}
	switch {
	case !ns.IsInt64() && ns.Sign() > 0:
		return math.MaxInt64
	case !ns.IsInt64():
		return math.MinInt64
	}
	return time.Duration(ns.Int64())
}

// Now returns the current time.
func (c Clock) Now() Time {
	return hightime.Now(c.loc)
}

// ParseDuration parses a duration string. See [hightime.ParseDuration].
func (Clock) ParseDuration(s string) (Duration, error) {
	return hightime.ParseDuration(s)
}

// Since returns the time elapsed since t. It is shorthand for
// clock.Now().Sub(t).
func (c Clock) Since(t Time) (Duration, error) {
	return c.Now().Sub(t)
}

// Until returns the duration until t. It is shorthand for t.Sub(clock.Now()).
func (c Clock) Until(t Time) (Duration, error) {
	return t.Sub(c.Now())
}

// Sleep pauses the current goroutine for at least the duration d. A negative
// or zero duration causes Sleep to return immediately.
func (Clock) Sleep(d Duration) {
	time.Sleep(toStd(d))
}

// Timer wraps a host timer to deliver Instants.
type Timer struct {
	c <-chan Time
	t *time.Timer
}

// C returns the channel on which the tick is delivered. It is nil for
// Timers made by AfterFunc.
func (t *Timer) C() <-chan Time {
	return t.c
}

// Reset changes the timer to expire after duration d. It returns true if
// the timer had been active.
func (t *Timer) Reset(d Duration) bool {
	return t.t.Reset(toStd(d))
}

// Stop prevents the Timer from firing. It returns true if the call stops
// the timer.
func (t *Timer) Stop() bool {
	return t.t.Stop()
}

// NewTimer creates a new Timer that will send the current time on its
// channel after at least duration d.
func (c Clock) NewTimer(d Duration) *Timer {
	ch := make(chan Time, 1)
	tm := time.AfterFunc(toStd(d), func() {
		select {
		case ch <- c.Now():
		default:
		}
	})
	return &Timer{c: ch, t: tm}
}

// After waits for the duration to elapse and then sends the current time on
// the returned channel. It is equivalent to clock.NewTimer(d).C().
func (c Clock) After(d Duration) <-chan Time {
	return c.NewTimer(d).c
}

// AfterFunc waits for the duration to elapse and then calls f in its own
// goroutine. It returns a Timer that can be used to cancel the call using
// its Stop method.
func (Clock) AfterFunc(d Duration, f func()) *Timer {
	return &Timer{t: time.AfterFunc(toStd(d), f)}
}

// Ticker delivers the current time at intervals. Ticks are dropped for
// slow receivers.
type Ticker struct {
	c      <-chan Time
	t      *time.Timer
	period time.Duration

	mu      sync.Mutex
	stopped bool
}

// C returns the channel on which the ticks are delivered.
func (t *Ticker) C() <-chan Time {
	return t.c
}

// Reset stops the ticker and resets its period to d. The next tick arrives
// after d.
func (t *Ticker) Reset(d Duration) {
	if d.Sign() <= 0 {
		panic("non-positive interval for realtime.Ticker.Reset")
	}
	t.mu.Lock()
	t.period = toStd(d)
	t.stopped = false
	t.t.Reset(t.period)
	t.mu.Unlock()
}

// Stop turns off the ticker.
func (t *Ticker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.t.Stop()
	t.mu.Unlock()
}

// NewTicker returns a new Ticker containing a channel that will send the
// current time on the channel after each tick. The duration d must be
// greater than zero; if not, NewTicker will panic.
func (c Clock) NewTicker(d Duration) *Ticker {
	if d.Sign() <= 0 {
		panic("non-positive interval for realtime.Clock.NewTicker")
	}
	ch := make(chan Time, 1)
	tk := &Ticker{c: ch, period: toStd(d)}
	tk.mu.Lock()
	defer tk.mu.Unlock()
	tk.t = time.AfterFunc(tk.period, func() {
		select {
		case ch <- c.Now():
		default:
		}
		tk.mu.Lock()
		if !tk.stopped {
			tk.t.Reset(tk.period)
		}
		tk.mu.Unlock()
	})
	return tk
}

// Tick is a convenience wrapper for NewTicker providing access to the
// ticking channel only. Unlike NewTicker, Tick will return nil if d <= 0.
func (c Clock) Tick(d Duration) <-chan Time {
	if d.Sign() <= 0 {
		return nil
	}
	return c.NewTicker(d).c
}

// Generic returns c as a hightime.Clock.
func (c Clock) Generic() hightime.Clock[Time, Duration] {
	return generic{c}
}

type generic struct{ Clock }

func (g generic) NewTicker(d Duration) hightime.Ticker[Time, Duration] {
	return g.Clock.NewTicker(d)
}

func (g generic) NewTimer(d Duration) hightime.Timer[Time, Duration] {
	return g.Clock.NewTimer(d)
}

func (g generic) AfterFunc(d Duration, f func()) hightime.Timer[Time, Duration] {
	return g.Clock.AfterFunc(d, f)
}

// Wall clock (Location dependent) implementation

// Date returns the Instant with the given fields in the clock's location.
// See [hightime.Date].
func (c Clock) Date(year int, month Month, day, hour, min, sec, usec, fsec, ysec int) (Time, error) {
	return hightime.Date(year, month, day, hour, min, sec, usec, fsec, ysec, c.loc)
}

// Parse parses an ISO 8601 timestamp. See [hightime.Parse].
func (Clock) Parse(value string) (Time, error) {
	return hightime.Parse(value)
}

// Unix returns the Instant sec seconds and nsec nanoseconds after the Unix
// epoch, in the clock's location.
func (c Clock) Unix(sec int64, nsec int64) (Time, error) {
	t := time.Unix(sec, nsec)
	if c.loc != nil {
		return hightime.FromTime(t.In(c.loc))
	}
	out, err := hightime.FromTime(t)
	return out.Naive(), err
}

// See [time.LoadLocation].
func (Clock) LoadLocation(name string) (*Location, error) {
	return time.LoadLocation(name)
}
