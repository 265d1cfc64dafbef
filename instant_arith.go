package hightime

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"time"

	"github.com/cespare/xxhash/v2"
	inf "gopkg.in/inf.v0"
)

const maxOrdinal = 3_652_059

var unixOriginYocto = mulPow10(originToUnix, 24)

// sinceOrigin returns the wall clock reading of t as a Duration since
// 0001-01-01 00:00, ignoring any offset.
func (t Instant) sinceOrigin() Duration {
	secs := t.wall.Unix() + originToUnix
	return Duration{
		days:    secs / secondsPerDay,
		seconds: int32(secs % secondsPerDay),
		usec:    int32(t.wall.Nanosecond() / 1000),
		fsec:    int32(t.fsec),
		ysec:    int32(t.ysec),
	}
}

// utcYocto returns t in yoctoseconds since 0001-01-01 00:00 UTC. Naive
// Instants are taken as UTC.
func (t Instant) utcYocto() *big.Int {
	n := t.sinceOrigin().TotalYoctoseconds()
	if off := t.Offset(); off != 0 {
		n.Sub(n, mulPow10(int64(off), 24))
	}
	return n
}

// fromOrigin rebuilds an Instant from a wall clock reading expressed as a
// Duration since 0001-01-01 00:00.
func fromOrigin(d Duration, loc *time.Location) (Instant, error) {
	if d.days < 0 || d.days >= maxOrdinal {
		return Instant{}, fmt.Errorf("%w: date value out of range", ErrOverflow)
	}
	secs := d.days*secondsPerDay + int64(d.seconds) - originToUnix
	return Instant{
		wall: time.Unix(secs, int64(d.usec)*1000).UTC(),
		loc:  loc,
		fsec: uint32(d.fsec),
		ysec: uint32(d.ysec),
	}, nil
}

// fromUTCYocto returns the aware Instant in loc for n yoctoseconds since
// 0001-01-01 00:00 UTC.
func fromUTCYocto(n *big.Int, loc *time.Location) (Instant, error) {
	secs, rem := floorDivMod(n, ysPerSecond)
	if !secs.IsInt64() {
		return Instant{}, fmt.Errorf("%w: date value out of range", ErrOverflow)
	}
	usec, rem := new(big.Int).QuoRem(rem, ysPerMicrosecond, new(big.Int))
	fsec, ysec := new(big.Int).QuoRem(rem, ysPerFemtosecond, new(big.Int))
	t, err := FromTime(time.Unix(secs.Int64()-originToUnix, usec.Int64()*1000).In(loc))
	if err != nil {
		return Instant{}, err
	}
	t.fsec, t.ysec = uint32(fsec.Uint64()), uint32(ysec.Uint64())
	return t, nil
}

// Add returns t+d, keeping t's location. The wall clock reading is
// advanced; offsets are not re-resolved, and the fold of the result is 0.
func (t Instant) Add(d Duration) (Instant, error) {
	sum, err := t.sinceOrigin().Add(d)
	if err != nil {
		return Instant{}, fmt.Errorf("%w: date value out of range", ErrOverflow)
	}
	return fromOrigin(sum, t.loc)
}

// SubDuration returns t-d.
func (t Instant) SubDuration(d Duration) (Instant, error) {
	neg, err := d.Neg()
	if err != nil {
		return Instant{}, err
	}
	return t.Add(neg)
}

// Sub returns the Duration t-u. Instants sharing a location are subtracted
// by wall clock; otherwise both are first brought to UTC. It fails with
// ErrNaiveAware if exactly one of t and u is naive.
func (t Instant) Sub(u Instant) (Duration, error) {
	if t.IsAware() != u.IsAware() {
		return Duration{}, ErrNaiveAware
	}
	if t.loc == u.loc {
		return t.sinceOrigin().Sub(u.sinceOrigin())
	}
	return FromYoctoseconds(new(big.Int).Sub(t.utcYocto(), u.utcYocto()))
}

// Equal reports whether t and u are the same point in time. A naive and
// an aware Instant are never equal.
func (t Instant) Equal(u Instant) bool {
	d, err := t.Sub(u)
	return err == nil && d.IsZero()
}

// Compare returns -1, 0 or +1 as t is before, equal to or after u. It
// fails with ErrNaiveAware if exactly one of t and u is naive.
func (t Instant) Compare(u Instant) (int, error) {
	d, err := t.Sub(u)
	if err != nil {
		return 0, err
	}
	return d.Sign(), nil
}

// Before reports whether t is before u. It panics if exactly one of t and
// u is naive.
func (t Instant) Before(u Instant) bool {
	return t.mustCompare(u, "Before") < 0
}

// After reports whether t is after u. It panics if exactly one of t and u
// is naive.
func (t Instant) After(u Instant) bool {
	return t.mustCompare(u, "After") > 0
}

func (t Instant) mustCompare(u Instant, method string) int {
	c, err := t.Compare(u)
	if err != nil {
		panic("hightime.Instant." + method + ": " + err.Error())
	}
	return c
}

// IsZero reports whether t is the zero Instant, 0001-01-01 00:00 naive.
func (t Instant) IsZero() bool {
	return t == Instant{}
}

// Hash returns a hash of t consistent with Equal. Aware Instants hash by
// their UTC point in time, so equal instants in different locations hash
// alike. The offset is always taken with fold 0, since Sub ignores fold
// between Instants sharing a location.
func (t Instant) Hash() uint64 {
	if t.loc != nil {
		t.fold = 0
		d, _ := FromYoctoseconds(t.utcYocto())
		return d.Hash()
	}
	var b [17]byte
	b[0] = 'n'
	binary.BigEndian.PutUint64(b[1:], uint64(t.wall.Unix()))
	binary.BigEndian.PutUint32(b[9:], uint32(t.wall.Nanosecond()/1000))
	binary.BigEndian.PutUint32(b[13:], t.fsec)
	h := xxhash.New()
	h.Write(b[:])
	binary.BigEndian.PutUint32(b[:4], t.ysec)
	h.Write(b[:4])
	return h.Sum64()
}

// unixYocto returns t in yoctoseconds since the Unix epoch. Naive
// Instants are taken as local time.
func (t Instant) unixYocto() *big.Int {
	if t.loc == nil {
		t.loc = time.Local
	}
	return new(big.Int).Sub(t.utcYocto(), unixOriginYocto)
}

// Timestamp returns t as seconds since the Unix epoch, as the nearest
// float64. Naive Instants are taken as local time.
func (t Instant) Timestamp() float64 {
	f, _ := new(big.Rat).SetFrac(t.unixYocto(), ysPerSecond).Float64()
	return f
}

// PreciseTimestamp returns t as seconds since the Unix epoch, exactly.
// Naive Instants are taken as local time.
func (t Instant) PreciseTimestamp() *inf.Dec {
	return inf.NewDecBig(t.unixYocto(), 24)
}

// In returns the same point in time in loc. A naive t is taken as local
// time; a nil loc means time.Local.
func (t Instant) In(loc *time.Location) (Instant, error) {
	if loc == nil {
		loc = time.Local
	}
	if t.loc == nil {
		t.loc = time.Local
	}
	return fromUTCYocto(t.utcYocto(), loc)
}

// UTC returns t in UTC.
func (t Instant) UTC() (Instant, error) {
	return t.In(time.UTC)
}
