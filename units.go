package hightime

import (
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/spf13/cast"
	inf "gopkg.in/inf.v0"
)

// Number is the set of magnitudes accepted by the unit constructors.
// Integer kinds and the arbitrary-precision types are taken exactly; floats
// are taken at the value of their shortest decimal representation.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		*big.Int | *big.Rat | *inf.Dec
}

type unitKind uint8

const (
	unitWeeks unitKind = iota
	unitDays
	unitHours
	unitMinutes
	unitSeconds
	unitMilliseconds
	unitMicroseconds
	unitNanoseconds
	unitPicoseconds
	unitFemtoseconds
	unitAttoseconds
	unitZeptoseconds
	unitYoctoseconds
)

// unitInfo describes one constructor unit. A magnitude given in the unit is
// first rounded to a whole number of steps (steps per unit), which bounds
// the precision a large unit can carry. ys is the unit length in
// yoctoseconds.
type unitInfo struct {
	name   string
	symbol string
	ys     *big.Int
	steps  *big.Int
}

var unitTable = [...]unitInfo{
	unitWeeks:        {"Weeks", "w", mulPow10(7*86400, 24), mulPow10(7*86400, 6)},
	unitDays:         {"Days", "d", mulPow10(86400, 24), mulPow10(86400, 6)},
	unitHours:        {"Hours", "h", mulPow10(3600, 24), mulPow10(3600, 9)},
	unitMinutes:      {"Minutes", "m", mulPow10(60, 24), mulPow10(60, 12)},
	unitSeconds:      {"Seconds", "s", pow10(24), pow10(15)},
	unitMilliseconds: {"Milliseconds", "ms", pow10(21), pow10(15)},
	unitMicroseconds: {"Microseconds", "us", pow10(18), pow10(15)},
	unitNanoseconds:  {"Nanoseconds", "ns", pow10(15), pow10(15)},
	unitPicoseconds:  {"Picoseconds", "ps", pow10(12), pow10(15)},
	unitFemtoseconds: {"Femtoseconds", "fs", pow10(9), pow10(15)},
	unitAttoseconds:  {"Attoseconds", "as", pow10(6), pow10(15)},
	unitZeptoseconds: {"Zeptoseconds", "zs", pow10(3), pow10(15)},
	unitYoctoseconds: {"Yoctoseconds", "ys", pow10(0), pow10(15)},
}

// A Unit is one magnitude argument to [NewDuration], built with one of the
// unit constructors such as [Seconds] or [Femtoseconds]. The zero Unit
// contributes nothing.
type Unit struct {
	kind  unitKind
	value *big.Rat
	err   error
}

func newUnit(kind unitKind, v any) Unit {
	r, err := toRat(v)
	if err != nil {
		return Unit{kind: kind, err: fieldErr(unitTable[kind].name, v, err)}
	}
	return Unit{kind: kind, value: r}
}

// Weeks returns a Unit of v weeks, kept to 1 microsecond.
func Weeks[N Number](v N) Unit { return newUnit(unitWeeks, v) }

// Days returns a Unit of v days, kept to 1 microsecond.
func Days[N Number](v N) Unit { return newUnit(unitDays, v) }

// Hours returns a Unit of v hours, kept to 1 nanosecond.
func Hours[N Number](v N) Unit { return newUnit(unitHours, v) }

// Minutes returns a Unit of v minutes, kept to 1 picosecond.
func Minutes[N Number](v N) Unit { return newUnit(unitMinutes, v) }

// Seconds returns a Unit of v seconds, kept to 1 femtosecond.
func Seconds[N Number](v N) Unit { return newUnit(unitSeconds, v) }

// Milliseconds returns a Unit of v milliseconds, kept to 1 attosecond.
func Milliseconds[N Number](v N) Unit { return newUnit(unitMilliseconds, v) }

// Microseconds returns a Unit of v microseconds, kept to 1 zeptosecond.
func Microseconds[N Number](v N) Unit { return newUnit(unitMicroseconds, v) }

// Nanoseconds returns a Unit of v nanoseconds.
func Nanoseconds[N Number](v N) Unit { return newUnit(unitNanoseconds, v) }

// Picoseconds returns a Unit of v picoseconds.
func Picoseconds[N Number](v N) Unit { return newUnit(unitPicoseconds, v) }

// Femtoseconds returns a Unit of v femtoseconds.
func Femtoseconds[N Number](v N) Unit { return newUnit(unitFemtoseconds, v) }

// Attoseconds returns a Unit of v attoseconds.
func Attoseconds[N Number](v N) Unit { return newUnit(unitAttoseconds, v) }

// Zeptoseconds returns a Unit of v zeptoseconds.
func Zeptoseconds[N Number](v N) Unit { return newUnit(unitZeptoseconds, v) }

// Yoctoseconds returns a Unit of v yoctoseconds.
func Yoctoseconds[N Number](v N) Unit { return newUnit(unitYoctoseconds, v) }

// String returns the unit in suffix notation, e.g. "1.5h".
func (u Unit) String() string {
	if u.value == nil {
		return "0" + unitTable[u.kind].symbol
	}
	return u.value.FloatString(decimals(u.value)) + unitTable[u.kind].symbol
}

// GoString returns the constructor call that builds u.
func (u Unit) GoString() string {
	v := "0"
	switch {
	case u.value == nil:
	case u.value.IsInt():
		v = u.value.Num().String()
	default:
		v = fmt.Sprintf("big.NewRat(%s, %s)", u.value.Num(), u.value.Denom())
	}
	return fmt.Sprintf("hightime.%s(%s)", unitTable[u.kind].name, v)
}

// contribution returns the length of u in yoctoseconds, after rounding the
// magnitude to whole steps of the unit.
func (u Unit) contribution() *big.Rat {
	if u.value == nil {
		return new(big.Rat)
	}
	info := unitTable[u.kind]
	steps := roundHalfEven(new(big.Rat).Mul(u.value, new(big.Rat).SetInt(info.steps)))
	return new(big.Rat).SetFrac(steps.Mul(steps, info.ys), info.steps)
}

// toRat converts a magnitude to an exact rational.
func toRat(v any) (*big.Rat, error) {
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			return nil, ErrType
		}
		return new(big.Rat).SetInt(x), nil
	case *big.Rat:
		if x == nil {
			return nil, ErrType
		}
		return new(big.Rat).Set(x), nil
	case *inf.Dec:
		if x == nil {
			return nil, ErrType
		}
		return decRat(x), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Rat).SetInt64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Rat).SetFrac(new(big.Int).SetUint64(rv.Uint()), big.NewInt(1)), nil
	case reflect.Float32:
		return floatRat(float32(rv.Float()))
	case reflect.Float64:
		return floatRat(rv.Float())
	}
	return nil, ErrType
}

// floatRat promotes a float through its shortest decimal representation,
// so that 0.1 is taken as 1/10 rather than its binary approximation.
func floatRat[F float32 | float64](f F) (*big.Rat, error) {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return nil, fmt.Errorf("%w: %v is not finite", ErrRange, f)
	}
	s, err := cast.ToStringE(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrType, err)
	}
	d, ok := new(inf.Dec).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse %q", ErrType, s)
	}
	return decRat(d), nil
}

func decRat(d *inf.Dec) *big.Rat {
	unscaled := d.UnscaledBig()
	scale := int64(d.Scale())
	if scale >= 0 {
		return new(big.Rat).SetFrac(unscaled, pow10(scale))
	}
	return new(big.Rat).SetInt(new(big.Int).Mul(unscaled, pow10(-scale)))
}

// decimals returns the number of fractional digits needed to print r
// exactly, or 24 when r is not a terminating decimal.
func decimals(r *big.Rat) int {
	den := new(big.Int).Set(r.Denom())
	twos := 0
	for den.Bit(0) == 0 && den.Cmp(bigOne) > 0 {
		den.Rsh(den, 1)
		twos++
	}
	fives := 0
	five := big.NewInt(5)
	q, m := new(big.Int), new(big.Int)
	for den.Cmp(bigOne) > 0 {
		q.QuoRem(den, five, m)
		if m.Sign() != 0 {
			return 24
		}
		den.Set(q)
		fives++
	}
	return max(twos, fives)
}
