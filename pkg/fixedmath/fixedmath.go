// Package fixedmath provides wide-integer helpers for chained scaled-integer
// arithmetic. Every quantity is a signed fixed-point value: an integer v at
// scale Ek represents the real number v / 10^k. Intermediate products are kept
// on big.Int so that multiply-before-divide chains never truncate early.
package fixedmath

import (
	"errors"
	"math/big"

	"github.com/govalues/decimal"
	"golang.org/x/exp/constraints"
)

const (
	E4 int64 = 10_000
	E8 int64 = 100_000_000
)

var (
	BigE4  = big.NewInt(E4)
	BigE8  = big.NewInt(E8)
	BigE12 = big.NewInt(1_000_000_000_000)
	BigE16 = new(big.Int).Mul(BigE8, BigE8)

	ErrOverflow = errors.New("integer overflow")
)

var pow10 = [...]int64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000,
	1_000_000_000, 10_000_000_000, 100_000_000_000, 1_000_000_000_000,
	10_000_000_000_000, 100_000_000_000_000, 1_000_000_000_000_000,
	10_000_000_000_000_000, 100_000_000_000_000_000, 1_000_000_000_000_000_000,
}

// Big widens any signed integer to a fresh big.Int.
func Big[T constraints.Signed](v T) *big.Int {
	return big.NewInt(int64(v))
}

// Scaled returns v * 10^pow as a fresh big.Int. pow must be in [0, 18].
func Scaled[T constraints.Signed](v T, pow int) *big.Int {
	return new(big.Int).Mul(big.NewInt(int64(v)), big.NewInt(pow10[pow]))
}

// Pow10 returns 10^n as a fresh big.Int. n must be in [0, 18].
func Pow10(n int) *big.Int {
	return big.NewInt(pow10[n])
}

// MulDiv computes (a * b) / den without mutating its operands. The division
// truncates toward zero, matching native integer division for negative
// results. den must be non-zero.
func MulDiv(a, b, den *big.Int) *big.Int {
	return new(big.Int).Quo(new(big.Int).Mul(a, b), den)
}

// QuoInt64 divides a by den, truncating toward zero.
func QuoInt64(a *big.Int, den int64) *big.Int {
	return new(big.Int).Quo(a, big.NewInt(den))
}

func ToInt64(v *big.Int) (int64, error) {
	if v.IsInt64() {
		return v.Int64(), nil
	}
	return 0, ErrOverflow
}

func ToInt64Unsafe(v *big.Int) int64 {
	if v.IsInt64() {
		return v.Int64()
	}
	panic(ErrOverflow)
}

// FormatScaled renders a fixed-point value at the given decimal scale as a
// human readable string, e.g. FormatScaled(52850000, 8) == "0.52850000".
func FormatScaled(v int64, scale int) string {
	d, err := decimal.New(v, scale)
	if err != nil {
		return "<overflow>"
	}
	return d.String()
}
