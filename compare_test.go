package hightime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/noodlebox/hightime"
)

func TestEqualMixed(t *testing.T) {
	d := dur(t, Seconds(90), Nanoseconds(5))
	assert.True(t, Equal(d, 90*time.Second+5*time.Nanosecond))
	assert.True(t, Equal(90*time.Second+5*time.Nanosecond, d))
	assert.False(t, Equal(d, 90*time.Second))
	assert.False(t, Equal(dur(t, Seconds(90), Femtoseconds(1)), 90*time.Second))

	i := date(t, 2020, 4, 21, 15, 29, 34, 1, 0, 0, time.UTC)
	std := time.Date(2020, 4, 21, 16, 29, 34, 1000, hours(1))
	assert.True(t, Equal(i, std))
	assert.True(t, Equal(std, i))
	assert.False(t, Equal(i.Naive(), std))

	assert.False(t, Equal(d, i))
	assert.False(t, Equal(i, d))
	assert.False(t, Equal(d, 90))
	assert.False(t, Equal("90s", d))
	assert.False(t, Equal(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC), MaxInstant))
}

func TestCompareMixed(t *testing.T) {
	d := dur(t, Seconds(1), Yoctoseconds(1))

	c, err := Compare(d, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = Compare(time.Second, d)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = Compare(time.Duration(0), Duration{})
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	i := date(t, 2020, 4, 21, 0, 0, 0, 0, 0, 1, time.UTC)
	c, err = Compare(i, time.Date(2020, 4, 21, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	_, err = Compare(i, i.Naive())
	assert.ErrorIs(t, err, ErrNaiveAware)
	assert.ErrorIs(t, err, ErrType)

	_, err = Compare(d, i)
	assert.ErrorIs(t, err, ErrType)
	_, err = Compare(1.5, d)
	assert.ErrorIs(t, err, ErrType)
	_, err = Compare(i, "2020-04-21")
	assert.ErrorIs(t, err, ErrType)
}
