package steppedtime

import (
	"sync"

	"github.com/noodlebox/hightime"
)

// Clock is a clock that only moves when told to. Timers and Tickers fire
// synchronously from Set and Step as their deadlines are reached.
type Clock struct {
	now   Time
	queue queue

	mu sync.Mutex
}

// NewClock returns a new Clock reading at. Whether at is naive or aware
// fixes the kind of every Instant the clock handles.
func NewClock(at Time) *Clock {
	return &Clock{now: at}
}

func (c *Clock) lock()   { c.mu.Lock() }
func (c *Clock) unlock() { c.mu.Unlock() }

// Set moves the clock to now. It fails with hightime.ErrNaiveAware if now
// is naive and the clock is aware, or the other way around.
//
// If any timers are active, a value of `now` earlier than the previous
// setting may lead to undefined behavior.
func (c *Clock) Set(now Time) error {
	c.lock()
	defer c.unlock()
	if now.IsAware() != c.now.IsAware() {
		return hightime.ErrNaiveAware
	}
	c.now = now

	// Check whether we're due for any scheduled events
	c.checkSchedule()
	return nil
}

// Step advances the clock by dt. It fails with hightime.ErrOverflow, and
// leaves the clock unchanged, if the result leaves the calendar range.
//
// If any timers are active, a negative value for dt may lead to undefined
// behavior.
func (c *Clock) Step(dt Duration) error {
	c.lock()
	defer c.unlock()
	now, err := c.now.Add(dt)
	if err != nil {
		return err
	}
	c.now = now

	// Check whether we're due for any scheduled events
	c.checkSchedule()
	return nil
}

// Now returns the current reading.
func (c *Clock) Now() (now Time) {
	c.lock()
	now = c.now
	c.unlock()
	return
}

// Since returns the time elapsed since t.
func (c *Clock) Since(t Time) (Duration, error) {
	return c.Now().Sub(t)
}

// Until returns the duration until t.
func (c *Clock) Until(t Time) (Duration, error) {
	return t.Sub(c.Now())
}

// Sleep blocks until the clock has been stepped past d from now. A
// negative or zero duration causes Sleep to return immediately.
func (c *Clock) Sleep(d Duration) {
	if d.Sign() <= 0 {
		return
	}

	ch := make(chan struct{})
	c.lock()
	c.schedule(&timer{
		f:    func(Time) { close(ch) },
		when: c.deadline(d),
	})
	c.unlock()
	<-ch
}

type Ticker struct {
	c <-chan Time
	t *timer
	s *Clock
}

func (t *Ticker) C() <-chan Time {
	return t.c
}

func (t *Ticker) Reset(d Duration) {
	if d.Sign() <= 0 {
		panic("non-positive interval for steppedtime.Ticker.Reset")
	}
	if t.t == nil {
		panic("Reset called on uninitialized steppedtime.Ticker")
	}

	t.s.lock()
	t.t.when = t.s.deadline(d)
	t.t.period = d
	t.s.reschedule(t.t)
	t.s.unlock()
}

func (t *Ticker) Stop() {
	if t.t == nil {
		panic("Stop called on uninitialized steppedtime.Ticker")
	}

	t.s.lock()
	t.s.unschedule(t.t)
	t.s.unlock()
}

func (c *Clock) NewTicker(d Duration) *Ticker {
	if d.Sign() <= 0 {
		panic("non-positive interval for steppedtime.Clock.NewTicker")
	}

	ch := make(chan Time, 1)
	c.lock()
	tm := &timer{
		f: func(when Time) {
			select {
			case ch <- when:
			default:
			}
		},
		when:   c.deadline(d),
		period: d,
	}
	c.schedule(tm)
	c.unlock()
	return &Ticker{ch, tm, c}
}

func (c *Clock) Tick(d Duration) <-chan Time {
	if d.Sign() <= 0 {
		return nil
	}

	return c.NewTicker(d).c
}

type Timer struct {
	c <-chan Time
	t *timer
	s *Clock
}

func (t *Timer) C() <-chan Time {
	return t.c
}

func (t *Timer) Reset(d Duration) (active bool) {
	if t.t == nil {
		panic("Reset called on uninitialized steppedtime.Timer")
	}

	t.s.lock()
	t.t.when = t.s.deadline(d)
	active = (t.t.index != -1)
	t.s.reschedule(t.t)
	t.s.unlock()
	return
}

func (t *Timer) Stop() (active bool) {
	if t.t == nil {
		panic("Stop called on uninitialized steppedtime.Timer")
	}

	t.s.lock()
	active = (t.t.index != -1)
	t.s.unschedule(t.t)
	t.s.unlock()
	return
}

func (c *Clock) NewTimer(d Duration) *Timer {
	ch := make(chan Time, 1)
	c.lock()
	tm := &timer{
		f: func(when Time) {
			select {
			case ch <- when:
			default:
			}
		},
		when: c.deadline(d),
	}
	c.schedule(tm)
	c.unlock()
	return &Timer{ch, tm, c}
}

func (c *Clock) After(d Duration) <-chan Time {
	return c.NewTimer(d).c
}

func (c *Clock) AfterFunc(d Duration, f func()) *Timer {
	c.lock()
	tm := &timer{
		f:    func(Time) { go f() },
		when: c.deadline(d),
	}
	c.schedule(tm)
	c.unlock()
	return &Timer{t: tm, s: c}
}

// Generic returns c as a hightime.Clock.
func (c *Clock) Generic() hightime.Clock[Time, Duration] {
	return generic{c}
}

type generic struct{ *Clock }

func (g generic) NewTicker(d Duration) hightime.Ticker[Time, Duration] {
	return g.Clock.NewTicker(d)
}

func (g generic) NewTimer(d Duration) hightime.Timer[Time, Duration] {
	return g.Clock.NewTimer(d)
}

func (g generic) AfterFunc(d Duration, f func()) hightime.Timer[Time, Duration] {
	return g.Clock.AfterFunc(d, f)
}
