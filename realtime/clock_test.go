package realtime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noodlebox/hightime"
	. "github.com/noodlebox/hightime/realtime"
)

func millis(n int64) Duration {
	return hightime.Must(hightime.NewDuration(hightime.Milliseconds(n)))
}

func TestNow(t *testing.T) {
	naive := NewClock(nil)
	assert.False(t, naive.Now().IsAware())
	assert.Nil(t, naive.Location())

	c := NewClock(UTC)
	before := time.Now()
	now := c.Now()
	after := time.Now()
	assert.Same(t, UTC, now.Location())
	assert.False(t, now.Time().Before(before.Truncate(time.Microsecond)))
	assert.False(t, now.Time().After(after))

	since, err := c.Since(now)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, since.Sign(), 0)

	_, err = c.Until(naive.Now())
	assert.ErrorIs(t, err, hightime.ErrNaiveAware)
}

func TestSleep(t *testing.T) {
	c := NewClock(UTC)
	start := time.Now()
	c.Sleep(millis(20))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	// Sub-nanosecond sleeps round up instead of returning at once.
	c.Sleep(hightime.Must(hightime.NewDuration(hightime.Yoctoseconds(1))))
	c.Sleep(Duration{})
	c.Sleep(hightime.MinDuration)
}

func TestTimer(t *testing.T) {
	c := NewClock(UTC)
	tm := c.NewTimer(millis(10))
	select {
	case when := <-tm.C():
		assert.True(t, when.IsAware())
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire")
	}
	assert.False(t, tm.Stop())

	tm = c.NewTimer(hightime.MaxDuration)
	assert.True(t, tm.Stop())
	assert.False(t, tm.Reset(millis(1)))
	select {
	case <-tm.C():
	case <-time.After(5 * time.Second):
		t.Fatal("reset timer did not fire")
	}

	select {
	case <-c.After(millis(1)):
	case <-time.After(5 * time.Second):
		t.Fatal("After did not fire")
	}
}

func TestAfterFunc(t *testing.T) {
	c := NewClock(nil)
	done := make(chan struct{})
	tm := c.AfterFunc(millis(1), func() { close(done) })
	assert.Nil(t, tm.C())
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("AfterFunc did not run")
	}
}

func TestTicker(t *testing.T) {
	c := NewClock(nil)
	tk := c.NewTicker(millis(5))
	for i := 0; i < 3; i++ {
		select {
		case when := <-tk.C():
			assert.False(t, when.IsAware())
		case <-time.After(5 * time.Second):
			t.Fatal("ticker did not tick")
		}
	}

	tk.Reset(millis(1))
	select {
	case <-tk.C():
	case <-time.After(5 * time.Second):
		t.Fatal("reset ticker did not tick")
	}

	tk.Stop()
	// Drain a tick that raced with Stop.
	time.Sleep(10 * time.Millisecond)
	select {
	case <-tk.C():
	default:
	}
	select {
	case <-tk.C():
		t.Fatal("stopped ticker ticked")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Panics(t, func() { c.NewTicker(Duration{}) })
	assert.Panics(t, func() { tk.Reset(millis(-1)) })
	assert.Nil(t, c.Tick(Duration{}))
}

func TestWallClock(t *testing.T) {
	c := NewClock(UTC)

	d, err := c.Date(2020, time.April, 21, 15, 29, 34, 0, 0, 40)
	require.NoError(t, err)
	assert.Equal(t, "2020-04-21 15:29:34.000000000000000000000040+00:00", d.String())

	u, err := c.Unix(1587482974, 1500)
	require.NoError(t, err)
	assert.Equal(t, "2020-04-21 15:29:34.000001500+00:00", u.String())
	assert.Equal(t, 500_000_000, u.Femtosecond())

	naive, err := NewClock(nil).Unix(0, 0)
	require.NoError(t, err)
	assert.False(t, naive.IsAware())

	p, err := c.Parse("2020-04-21T15:29:34Z")
	require.NoError(t, err)
	assert.True(t, p.Equal(hightime.Must(hightime.New(2020, 4, 21, 15, 29, 34, UTC))))

	dur, err := c.ParseDuration("1.5s")
	require.NoError(t, err)
	assert.Equal(t, millis(1500), dur)

	loc, err := c.LoadLocation("UTC")
	require.NoError(t, err)
	assert.Same(t, UTC, loc)
}

func TestGeneric(t *testing.T) {
	var g hightime.Clock[Time, Duration] = NewClock(UTC).Generic()
	tm := g.NewTimer(millis(1))
	select {
	case <-tm.C():
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire")
	}
	g.NewTicker(millis(1)).Stop()
	g.AfterFunc(millis(1), func() {}).Stop()
}
