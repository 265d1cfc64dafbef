package hightime

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// baseTime returns the time.Time carrying t's calendar fields down to the
// microsecond. Naive Instants are held in UTC and aware ones in a fixed
// zone at their resolved offset, which is all the host binary form keeps.
func (t Instant) baseTime() time.Time {
	if t.loc == nil {
		return t.wall
	}
	off := t.Offset()
	return time.Unix(t.wall.Unix()-int64(off), int64(t.wall.Nanosecond())).In(time.FixedZone("", off))
}

// instantFromBase reverses baseTime. A UTC base decodes as naive.
func instantFromBase(base time.Time) (Instant, error) {
	if base.Location() != time.UTC {
		return FromTime(base)
	}
	if y := base.Year(); y < minYear || y > maxYear {
		return Instant{}, fmt.Errorf("%w: year %d", ErrOverflow, y)
	}
	return Instant{wall: wallOf(base)}, nil
}

func checkSubMicro(fsec, ysec uint32) error {
	if int64(fsec) > maxSubMicrosecond {
		return rangeErr("femtosecond", fsec, 0, maxSubMicrosecond)
	}
	if int64(ysec) > maxSubMicrosecond {
		return rangeErr("yoctosecond", ysec, 0, maxSubMicrosecond)
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler. The encoding is the
// time.Time binary form of the fields down to the microsecond followed by
// the femtosecond and yoctosecond tiers as big-endian uint32s. The
// location is kept only as a fixed offset, and the fold is not kept.
func (t Instant) MarshalBinary() ([]byte, error) {
	b, err := t.baseTime().MarshalBinary()
	if err != nil {
		return nil, err
	}
	b = binary.BigEndian.AppendUint32(b, t.fsec)
	return binary.BigEndian.AppendUint32(b, t.ysec), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Instant) UnmarshalBinary(data []byte) error {
	if len(data) <= 8 {
		return fmt.Errorf("%w: Instant.UnmarshalBinary: short data", ErrRange)
	}
	n := len(data) - 8
	var base time.Time
	if err := base.UnmarshalBinary(data[:n]); err != nil {
		return fmt.Errorf("%w: Instant.UnmarshalBinary: %v", ErrRange, err)
	}
	fsec := binary.BigEndian.Uint32(data[n:])
	ysec := binary.BigEndian.Uint32(data[n+4:])
	if err := checkSubMicro(fsec, ysec); err != nil {
		return err
	}
	out, err := instantFromBase(base)
	if err != nil {
		return err
	}
	out.fsec, out.ysec = fsec, ysec
	*t = out
	return nil
}

// MarshalText implements encoding.TextMarshaler using ISOFormat.
func (t Instant) MarshalText() ([]byte, error) {
	return []byte(t.ISOFormat('T', TimespecAuto)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (t *Instant) UnmarshalText(data []byte) error {
	out, err := Parse(string(data))
	if err != nil {
		return err
	}
	*t = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Instant) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ISOFormat('T', TimespecAuto))
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves t
// unchanged.
func (t *Instant) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: Instant.UnmarshalJSON: %v", ErrType, err)
	}
	return t.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer. Every Instant, including MinInstant, is
// stored as ISO 8601 text.
func (t Instant) Value() (driver.Value, error) {
	return t.ISOFormat('T', TimespecAuto), nil
}

// Scan implements sql.Scanner. It accepts ISO 8601 text, a time.Time, or
// integer Unix seconds, which give a UTC Instant.
func (t *Instant) Scan(value any) error {
	var (
		out Instant
		err error
	)
	switch v := value.(type) {
	case nil:
		*t = Instant{}
		return nil
	case time.Time:
		out, err = FromTime(v)
	case string:
		out, err = Parse(v)
	case []byte:
		out, err = Parse(string(v))
	case int64:
		out, err = FromTimestamp(v, time.UTC)
	default:
		return fmt.Errorf("%w: invalid field type '%v' for Instant", ErrType, reflect.TypeOf(value))
	}
	if err != nil {
		return err
	}
	*t = out
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler. The encoding is the
// day count as a big-endian int64 followed by the four lower tiers as
// big-endian uint32s.
func (d Duration) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 24)
	b = binary.BigEndian.AppendUint64(b, uint64(d.days))
	for _, v := range [...]int32{d.seconds, d.usec, d.fsec, d.ysec} {
		b = binary.BigEndian.AppendUint32(b, uint32(v))
	}
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *Duration) UnmarshalBinary(data []byte) error {
	if len(data) != 24 {
		return fmt.Errorf("%w: Duration.UnmarshalBinary: want 24 bytes, got %d", ErrRange, len(data))
	}
	out := Duration{
		days:    int64(binary.BigEndian.Uint64(data)),
		seconds: int32(binary.BigEndian.Uint32(data[8:])),
		usec:    int32(binary.BigEndian.Uint32(data[12:])),
		fsec:    int32(binary.BigEndian.Uint32(data[16:])),
		ysec:    int32(binary.BigEndian.Uint32(data[20:])),
	}
	// Rebuilding through the flattened total rejects unnormalized tiers.
	n, err := FromYoctoseconds(out.TotalYoctoseconds())
	if err != nil {
		return err
	}
	if n != out {
		return fmt.Errorf("%w: Duration.UnmarshalBinary: tiers not normalized", ErrRange)
	}
	*d = out
	return nil
}

// MarshalText implements encoding.TextMarshaler using Compact.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Compact()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseDuration.
func (d *Duration) UnmarshalText(data []byte) error {
	out, err := ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Compact())
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves d
// unchanged.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: Duration.UnmarshalJSON: %v", ErrType, err)
	}
	return d.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer.
func (d Duration) Value() (driver.Value, error) {
	return d.Compact(), nil
}

// Scan implements sql.Scanner. It accepts the Compact text form, or an
// integer count of nanoseconds as time.Duration stores it.
func (d *Duration) Scan(value any) error {
	var (
		out Duration
		err error
	)
	switch v := value.(type) {
	case nil:
		*d = Duration{}
		return nil
	case string:
		out, err = ParseDuration(v)
	case []byte:
		out, err = ParseDuration(string(v))
	case int64:
		out = FromStd(time.Duration(v))
	default:
		return fmt.Errorf("%w: invalid field type '%v' for Duration", ErrType, reflect.TypeOf(value))
	}
	if err != nil {
		return err
	}
	*d = out
	return nil
}
