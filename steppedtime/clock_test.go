package steppedtime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noodlebox/hightime"
	. "github.com/noodlebox/hightime/steppedtime"
)

var start = hightime.Must(hightime.New(2020, 4, 21, 15, 29, 34))

func seconds(n float64) Duration {
	return hightime.Must(hightime.NewDuration(hightime.Seconds(n)))
}

func received(ch <-chan Time) (Time, bool) {
	select {
	case v := <-ch:
		return v, true
	default:
		return Time{}, false
	}
}

func TestSetStep(t *testing.T) {
	c := NewClock(start)
	assert.Equal(t, start, c.Now())

	require.NoError(t, c.Step(seconds(90)))
	assert.Equal(t, hightime.Must(hightime.New(2020, 4, 21, 15, 31, 4)), c.Now())

	since, err := c.Since(start)
	require.NoError(t, err)
	assert.Equal(t, seconds(90), since)
	until, err := c.Until(start)
	require.NoError(t, err)
	assert.Equal(t, seconds(-90), until)

	later := hightime.Must(hightime.New(2021, 1, 1))
	require.NoError(t, c.Set(later))
	assert.Equal(t, later, c.Now())

	aware := hightime.Must(hightime.New(2021, 1, 1, 0, 0, time.UTC))
	assert.ErrorIs(t, c.Set(aware), hightime.ErrNaiveAware)
	assert.Equal(t, later, c.Now())

	require.NoError(t, c.Set(hightime.MaxInstant))
	assert.ErrorIs(t, c.Step(c.Yoctoseconds(1)), hightime.ErrOverflow)
	assert.Equal(t, hightime.MaxInstant, c.Now())
}

func TestHelpers(t *testing.T) {
	c := NewClock(start)
	assert.Equal(t, c.Milliseconds(1500), c.Seconds(1.5))
	assert.Equal(t, c.Microseconds(1), c.Nanoseconds(1000))
	assert.Equal(t, c.Femtoseconds(1), c.Yoctoseconds(1_000_000_000))

	d, err := c.ParseDuration("1s250fs")
	require.NoError(t, err)
	assert.Equal(t, "1s250fs", d.Compact())
}

func TestTimer(t *testing.T) {
	c := NewClock(start)
	tm := c.NewTimer(seconds(1))

	require.NoError(t, c.Step(seconds(0.5)))
	_, ok := received(tm.C())
	assert.False(t, ok)

	short, err := seconds(0.5).Sub(c.Yoctoseconds(1))
	require.NoError(t, err)
	require.NoError(t, c.Step(short))
	_, ok = received(tm.C())
	assert.False(t, ok, "fired before the deadline")

	require.NoError(t, c.Step(c.Yoctoseconds(1)))
	when, ok := received(tm.C())
	require.True(t, ok)
	assert.Equal(t, c.Now(), when)

	assert.False(t, tm.Stop())
	assert.False(t, tm.Reset(seconds(2)))
	require.NoError(t, c.Step(seconds(2)))
	_, ok = received(tm.C())
	assert.True(t, ok)
}

func TestTimerStop(t *testing.T) {
	c := NewClock(start)
	tm := c.NewTimer(seconds(1))
	assert.True(t, tm.Stop())

	require.NoError(t, c.Step(seconds(5)))
	_, ok := received(tm.C())
	assert.False(t, ok)

	assert.Panics(t, func() { new(Timer).Stop() })
	assert.Panics(t, func() { new(Timer).Reset(seconds(1)) })
}

func TestTimerReset(t *testing.T) {
	c := NewClock(start)
	tm := c.NewTimer(seconds(1))
	assert.True(t, tm.Reset(seconds(3)))

	require.NoError(t, c.Step(seconds(2)))
	_, ok := received(tm.C())
	assert.False(t, ok)

	require.NoError(t, c.Step(seconds(1)))
	_, ok = received(c.After(c.Seconds(0)))
	assert.False(t, ok, "zero timers fire on the next step")
	_, ok = received(tm.C())
	assert.True(t, ok)
}

func TestTicker(t *testing.T) {
	c := NewClock(start)
	tk := c.NewTicker(seconds(1))

	require.NoError(t, c.Step(seconds(1)))
	_, ok := received(tk.C())
	assert.True(t, ok)

	// Ticks are dropped for slow receivers and the period restarts from
	// the reading that fired it.
	require.NoError(t, c.Step(seconds(2.5)))
	_, ok = received(tk.C())
	assert.True(t, ok)
	_, ok = received(tk.C())
	assert.False(t, ok)
	require.NoError(t, c.Step(seconds(0.5)))
	_, ok = received(tk.C())
	assert.False(t, ok)
	require.NoError(t, c.Step(seconds(0.5)))
	_, ok = received(tk.C())
	assert.True(t, ok)

	tk.Reset(seconds(10))
	require.NoError(t, c.Step(seconds(5)))
	_, ok = received(tk.C())
	assert.False(t, ok)
	require.NoError(t, c.Step(seconds(5)))
	_, ok = received(tk.C())
	assert.True(t, ok)

	tk.Stop()
	require.NoError(t, c.Step(seconds(20)))
	_, ok = received(tk.C())
	assert.False(t, ok)

	assert.Panics(t, func() { c.NewTicker(Duration{}) })
	assert.Panics(t, func() { tk.Reset(seconds(-1)) })
	assert.Nil(t, c.Tick(Duration{}))
	assert.NotNil(t, c.Tick(seconds(1)))
}

func TestTickerAtEndOfRange(t *testing.T) {
	c := NewClock(hightime.Must(hightime.New(9999, 12, 31, 23, 59, 58)))
	tk := c.NewTicker(seconds(1))

	require.NoError(t, c.Set(hightime.MaxInstant))
	_, ok := received(tk.C())
	assert.True(t, ok)

	// The next deadline cannot move past the end, so the ticker retires.
	assert.ErrorIs(t, c.Step(seconds(1)), hightime.ErrOverflow)
	_, ok = received(tk.C())
	assert.False(t, ok)
}

func TestTimerClampsDeadline(t *testing.T) {
	c := NewClock(hightime.Must(hightime.New(9999, 12, 30)))
	tm := c.NewTimer(hightime.Must(hightime.NewDuration(hightime.Days(10))))

	require.NoError(t, c.Set(hightime.Must(hightime.New(9999, 12, 31, 23, 59, 59))))
	_, ok := received(tm.C())
	assert.False(t, ok)

	require.NoError(t, c.Set(hightime.MaxInstant))
	_, ok = received(tm.C())
	assert.True(t, ok)
}

func TestAfterFunc(t *testing.T) {
	c := NewClock(start)
	done := make(chan struct{})
	tm := c.AfterFunc(seconds(1), func() { close(done) })
	assert.Nil(t, tm.C())

	require.NoError(t, c.Step(seconds(1)))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("AfterFunc did not run")
	}

	ran := false
	tm = c.AfterFunc(seconds(1), func() { ran = true })
	assert.True(t, tm.Stop())
	require.NoError(t, c.Step(seconds(1)))
	assert.False(t, ran)
}

func TestSleep(t *testing.T) {
	c := NewClock(start)
	c.Sleep(Duration{})
	c.Sleep(seconds(-1))

	done := make(chan struct{})
	go func() {
		c.Sleep(seconds(1))
		close(done)
	}()

	for i := 0; i < 100; i++ {
		require.NoError(t, c.Step(seconds(1)))
		select {
		case <-done:
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
	t.Fatal("Sleep did not return")
}

func TestGeneric(t *testing.T) {
	c := NewClock(start)
	g := c.Generic()

	var tm hightime.Timer[Time, Duration] = g.NewTimer(seconds(1))
	require.NoError(t, c.Step(seconds(1)))
	_, ok := received(tm.C())
	assert.True(t, ok)

	var tk hightime.Ticker[Time, Duration] = g.NewTicker(seconds(1))
	tk.Stop()

	assert.Equal(t, c.Now(), g.Now())
}

func benchmark(b *testing.B, bench func(n int)) {
	b.ReportAllocs()
	b.ResetTimer()
	bench(b.N)
}

func BenchmarkStep(b *testing.B) {
	c := NewClock(start)
	d := c.Microseconds(1)
	benchmark(b, func(n int) {
		for i := 0; i < n; i++ {
			_ = c.Step(d)
		}
	})
}

func BenchmarkTimerReset(b *testing.B) {
	c := NewClock(start)
	tm := c.NewTimer(c.Microseconds(1))
	d := c.Microseconds(1)
	benchmark(b, func(n int) {
		for i := 0; i < n; i++ {
			tm.Reset(d)
			_ = c.Step(d)
		}
	})
}
