package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noodlebox/hightime"
)

func utcOptions() Options {
	opts := DefaultOptions()
	opts.Loc = time.UTC
	return opts
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HIGHTIME_TIMESPEC", "femtoseconds")
	t.Setenv("HIGHTIME_TZ", "UTC")
	t.Setenv("HIGHTIME_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Config{Timespec: "femtoseconds", TZ: "UTC", LogLevel: "debug"}, cfg)

	spec, err := cfg.Spec()
	require.NoError(t, err)
	assert.Equal(t, hightime.TimespecFemtoseconds, spec)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Same(t, time.UTC, loc)
}

func TestConfigLocation(t *testing.T) {
	loc, err := Config{}.Location()
	require.NoError(t, err)
	assert.Nil(t, loc)

	loc, err = Config{TZ: "Local"}.Location()
	require.NoError(t, err)
	assert.Same(t, time.Local, loc)

	_, err = Config{TZ: "Nowhere/Special"}.Location()
	assert.Error(t, err)

	_, err = Config{Timespec: "fortnights"}.Spec()
	assert.ErrorIs(t, err, hightime.ErrRange)
}

func TestSetupLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	require.NoError(t, SetupLogging("debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.Error(t, SetupLogging("loud"))
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue("2020-04-21T15:29:34", nil)
	require.NoError(t, err)
	assert.IsType(t, hightime.Instant{}, v)

	v, err = ParseValue("-90s", nil)
	require.NoError(t, err)
	assert.Equal(t, hightime.Must(hightime.NewDuration(hightime.Seconds(-90))), v)

	i, err := ParseInstant("@-1", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "1969-12-31T23:59:59+00:00", i.ISOFormat('T', hightime.TimespecAuto))

	i, err = ParseInstant("@1.000000000000000000000001", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 1, i.Yoctosecond())

	i, err = ParseInstant("@1e9", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2001, i.Year())

	_, err = ParseInstant("@soon", nil)
	assert.Error(t, err)
	_, err = ParseInstant("1d", nil)
	assert.Error(t, err)
	_, err = ParseValue("2020-13-01", nil)
	assert.ErrorIs(t, err, hightime.ErrRange)
}

func TestRunNorm(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunNorm([]string{"1.5h", "90s", "250fs"}, DefaultOptions(), &buf))
	assert.Equal(t, "1:31:30.000000000000250\n5490s250fs\n5490.000000000000250000000000\n", buf.String())

	buf.Reset()
	opts := DefaultOptions()
	opts.GoSyntax = true
	require.NoError(t, RunNorm([]string{"1d"}, opts, &buf))
	assert.Equal(t, "hightime.Must(hightime.NewDuration(hightime.Days(1)))\n1d\n86400.000000000000000000000000\n", buf.String())

	assert.ErrorIs(t, RunNorm([]string{"999999999d", "1d"}, DefaultOptions(), &buf), hightime.ErrOverflow)
	assert.Error(t, RunNorm([]string{"1x"}, DefaultOptions(), &buf))
}

func TestRunAdd(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunAdd("2020-04-20T23:59:59", []string{"1s", "1ys"}, DefaultOptions(), &buf))
	assert.Equal(t, "2020-04-21T00:00:00.000000000000000000000001\n", buf.String())

	buf.Reset()
	require.NoError(t, RunAdd("1d", []string{"-1s"}, DefaultOptions(), &buf))
	assert.Equal(t, "23:59:59\n", buf.String())

	assert.ErrorIs(t, RunAdd("9999-12-31T00:00:00", []string{"1d"}, DefaultOptions(), &buf), hightime.ErrOverflow)
}

func TestRunSub(t *testing.T) {
	tests := []struct {
		a, b     string
		expected string
	}{
		{"2020-04-21T00:00:00", "2020-04-20T23:59:59.000000000000000000000001", "0:00:00.999999999999999999999999\n"},
		{"2020-04-21T00:00:00", "1d", "2020-04-20T00:00:00\n"},
		{"1d", "1s", "23:59:59\n"},
		{"2020-04-21T01:00:00+01:00", "2020-04-21T00:00:00Z", "0:00:00\n"},
	}
	for _, tt := range tests {
		t.Run(tt.a+"-"+tt.b, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RunSub(tt.a, tt.b, DefaultOptions(), &buf))
			assert.Equal(t, tt.expected, buf.String())
		})
	}

	var buf bytes.Buffer
	assert.ErrorIs(t, RunSub("1d", "2020-04-21", DefaultOptions(), &buf), hightime.ErrType)
	assert.ErrorIs(t, RunSub("2020-04-21", "2020-04-21Z", DefaultOptions(), &buf), hightime.ErrRange)
	assert.ErrorIs(t, RunSub("2020-04-21", "2020-04-21T00:00:00Z", DefaultOptions(), &buf), hightime.ErrNaiveAware)
}

func TestRunFmt(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunFmt([]string{"@0", "@1.5", "1h30m"}, utcOptions(), &buf))
	assert.Equal(t, "1970-01-01T00:00:00+00:00\n1970-01-01T00:00:01.500000+00:00\n1:30:00\n", buf.String())

	buf.Reset()
	opts := DefaultOptions()
	opts.Spec = hightime.TimespecSeconds
	opts.Sep = ' '
	require.NoError(t, RunFmt([]string{"2020-04-20T15:10:33.976508569718000529850102"}, opts, &buf))
	assert.Equal(t, "2020-04-20 15:10:33\n", buf.String())

	buf.Reset()
	opts.GoSyntax = true
	require.NoError(t, RunFmt([]string{"2020-04-21T00:00:00Z"}, opts, &buf))
	assert.Equal(t, "hightime.Must(hightime.New(2020, 4, 21, 0, 0, time.UTC))\n", buf.String())
}

func TestRunNow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunNow(utcOptions(), &buf))
	out := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(out, "+00:00"), out)

	now, err := hightime.Parse(out)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), now.Time(), time.Minute)
}

func TestRunEncode(t *testing.T) {
	tests := []struct {
		value, format string
		expected      string
	}{
		{"1d2s", "json", "\"1d2s\"\n"},
		{"1d2s", "text", "1d2s\n"},
		{"2020-04-21T15:29:34.5+01:00", "json", "\"2020-04-21T15:29:34.500000+01:00\"\n"},
		{"1d", "binary", "0000000000000001" + strings.Repeat("0", 32) + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format+" "+tt.value, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RunEncode(tt.value, tt.format, DefaultOptions(), &buf))
			assert.Equal(t, tt.expected, buf.String())
		})
	}

	var buf bytes.Buffer
	require.NoError(t, RunEncode("1h30m", "yaml", DefaultOptions(), &buf))
	assert.Equal(t, "5400s\n", buf.String())

	assert.Error(t, RunEncode("1d", "xml", DefaultOptions(), &buf))
}

func TestEncodeDecodeCBOR(t *testing.T) {
	tests := []struct {
		value, kind string
	}{
		{"2020-04-20T15:10:33.976508569718000529850102", "instant"},
		{"2020-04-20T15:10:33.976508569718000529850102-05:00", "instant"},
		{"-1d2s3us4fs5ys", "duration"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var enc bytes.Buffer
			require.NoError(t, RunEncode(tt.value, "cbor", DefaultOptions(), &enc))

			var dec, want bytes.Buffer
			require.NoError(t, RunDecode(strings.TrimSpace(enc.String()), tt.kind, DefaultOptions(), &dec))
			require.NoError(t, RunFmt([]string{tt.value}, DefaultOptions(), &want))
			assert.Equal(t, want.String(), dec.String())
		})
	}

	var buf bytes.Buffer
	assert.Error(t, RunDecode("zz", "instant", DefaultOptions(), &buf))
	assert.Error(t, RunDecode("00", "moment", DefaultOptions(), &buf))
}
