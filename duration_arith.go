package hightime

import (
	"fmt"
	"math/big"
)

// Add returns d+u.
func (d Duration) Add(u Duration) (Duration, error) {
	return FromYoctoseconds(new(big.Int).Add(d.TotalYoctoseconds(), u.TotalYoctoseconds()))
}

// Sub returns d-u.
func (d Duration) Sub(u Duration) (Duration, error) {
	return FromYoctoseconds(new(big.Int).Sub(d.TotalYoctoseconds(), u.TotalYoctoseconds()))
}

// Neg returns -d.
func (d Duration) Neg() (Duration, error) {
	return FromYoctoseconds(new(big.Int).Neg(d.TotalYoctoseconds()))
}

// Abs returns |d|.
func (d Duration) Abs() (Duration, error) {
	if d.days < 0 {
		return d.Neg()
	}
	return d, nil
}

// Mul returns d scaled by n. The result is exact.
func (d Duration) Mul(n int64) (Duration, error) {
	return d.MulBig(big.NewInt(n))
}

// MulBig returns d scaled by n. The result is exact.
func (d Duration) MulBig(n *big.Int) (Duration, error) {
	return FromYoctoseconds(new(big.Int).Mul(d.TotalYoctoseconds(), n))
}

// MulFloat returns d scaled by f, rounded to the nearest yoctosecond. f is
// taken at the value of its shortest decimal representation, so 0.1 scales
// by exactly one tenth.
func (d Duration) MulFloat(f float64) (Duration, error) {
	r, err := floatRat(f)
	if err != nil {
		return Duration{}, fieldErr("factor", f, err)
	}
	return d.mulRat(r)
}

// MulRat returns d scaled by r, rounded to the nearest yoctosecond.
func (d Duration) MulRat(r *big.Rat) (Duration, error) {
	return d.mulRat(r)
}

func (d Duration) mulRat(r *big.Rat) (Duration, error) {
	total := new(big.Rat).SetInt(d.TotalYoctoseconds())
	return FromYoctoseconds(roundHalfEven(total.Mul(total, r)))
}

// FloorDiv returns the number of whole u that fit in d, rounded toward
// negative infinity.
func (d Duration) FloorDiv(u Duration) (*big.Int, error) {
	if u.IsZero() {
		return nil, fmt.Errorf("%w: %v // %v", ErrDivisionByZero, d, u)
	}
	q, _ := floorDivMod(d.TotalYoctoseconds(), u.TotalYoctoseconds())
	return q, nil
}

// FloorDivInt returns d divided by n, rounded toward negative infinity to
// a whole yoctosecond.
func (d Duration) FloorDivInt(n int64) (Duration, error) {
	if n == 0 {
		return Duration{}, fmt.Errorf("%w: %v // 0", ErrDivisionByZero, d)
	}
	q, _ := floorDivMod(d.TotalYoctoseconds(), big.NewInt(n))
	return FromYoctoseconds(q)
}

// Div returns the ratio d/u as the nearest float64.
func (d Duration) Div(u Duration) (float64, error) {
	r, err := d.DivRat(u)
	if err != nil {
		return 0, err
	}
	f, _ := r.Float64()
	return f, nil
}

// DivRat returns the exact ratio d/u.
func (d Duration) DivRat(u Duration) (*big.Rat, error) {
	if u.IsZero() {
		return nil, fmt.Errorf("%w: %v / %v", ErrDivisionByZero, d, u)
	}
	return new(big.Rat).SetFrac(d.TotalYoctoseconds(), u.TotalYoctoseconds()), nil
}

// DivInt returns d divided by n, rounded to the nearest yoctosecond, ties
// to even.
func (d Duration) DivInt(n int64) (Duration, error) {
	if n == 0 {
		return Duration{}, fmt.Errorf("%w: %v / 0", ErrDivisionByZero, d)
	}
	return d.mulRat(new(big.Rat).SetFrac(bigOne, big.NewInt(n)))
}

// DivFloat returns d divided by f, rounded to the nearest yoctosecond.
func (d Duration) DivFloat(f float64) (Duration, error) {
	if f == 0 {
		return Duration{}, fmt.Errorf("%w: %v / 0", ErrDivisionByZero, d)
	}
	r, err := floatRat(f)
	if err != nil {
		return Duration{}, fieldErr("divisor", f, err)
	}
	return d.mulRat(r.Inv(r))
}

// Mod returns the remainder of d divided by u. The result has the sign of
// u.
func (d Duration) Mod(u Duration) (Duration, error) {
	_, r, err := d.DivMod(u)
	return r, err
}

// DivMod returns both the floored quotient and the remainder of d divided
// by u, such that q*u + r == d.
func (d Duration) DivMod(u Duration) (*big.Int, Duration, error) {
	if u.IsZero() {
		return nil, Duration{}, fmt.Errorf("%w: divmod(%v, %v)", ErrDivisionByZero, d, u)
	}
	q, r := floorDivMod(d.TotalYoctoseconds(), u.TotalYoctoseconds())
	rem, err := FromYoctoseconds(r)
	if err != nil {
		return nil, Duration{}, err
	}
	return q, rem, nil
}
