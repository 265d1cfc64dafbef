package hightime

import (
	"math/big"

	inf "gopkg.in/inf.v0"
)

var bigOne = big.NewInt(1)

// Fixed-point ladder, in yoctoseconds.
var (
	ysPerFemtosecond  = pow10(9)
	ysPerMicrosecond  = pow10(18)
	ysPerSecond       = pow10(24)
	ysPerDay          = mulPow10(86400, 24)
	ysPerNanosecond   = pow10(15)
	fsPerMicrosecond  = int64(1_000_000_000)
	secondsPerDay     = int64(86400)
	microsPerSecond   = int64(1_000_000)
	maxSubMicrosecond = int64(999_999_999)
)

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

func mulPow10(x, n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(x), pow10(n))
}

// roundHalfEven rounds r to the nearest integer, ties to even.
func roundHalfEven(r *big.Rat) *big.Int {
	if r.IsInt() {
		return new(big.Int).Set(r.Num())
	}
	q := new(inf.Dec).QuoRound(
		inf.NewDecBig(r.Num(), 0),
		inf.NewDecBig(r.Denom(), 0),
		0,
		inf.RoundHalfEven,
	)
	return new(big.Int).Set(q.UnscaledBig())
}

// floorDivMod returns the floored quotient and the remainder, which takes
// the sign of b. b must be non-zero.
func floorDivMod(a, b *big.Int) (q, r *big.Int) {
	q, r = new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && r.Sign() != b.Sign() {
		q.Sub(q, bigOne)
		r.Add(r, b)
	}
	return q, r
}
