package numerics

import (
	"math/big"

	"github.com/quantfix/bsfixed/pkg/fixedmath"
)

var (
	two = big.NewInt(2)

	oneE4 = big.NewInt(fixedmath.E4)
	twoE4 = big.NewInt(2 * fixedmath.E4)

	// ln(2) at scale E8, truncated.
	ln2E8 = big.NewInt(69_314_718)

	// Bowling logistic coefficients: Phi(z) ~= 1/(1+exp(-(1.5976 z + 0.07056 z^3))).
	cdfLinearE4 = big.NewInt(15_976)
	cdfCubicE5  = big.NewInt(7_056)

	// Phi saturates to 0 or 1 well before |z| = 40.
	cdfSaturationE4 = big.NewInt(400_000)
)

// Std is the reference Primitives implementation. It is stateless and safe
// for concurrent use.
type Std struct{}

// Sqrt returns the floor square root of x. x must be non-negative.
func (Std) Sqrt(x *big.Int) *big.Int {
	return new(big.Int).Sqrt(x)
}

// LogApprox approximates 1e4 * ln(ratio/1e4). The ratio is first halved or
// doubled into [1e4, 2e4), accumulating ln(2) steps, then the remainder is
// expanded with the atanh series 2(y + y^3/3 + y^5/5 + ...) where
// y = (r-1e4)/(r+1e4). The series runs at scale E8 and the result is reduced
// to E4 at the end, truncating toward zero.
func (Std) LogApprox(ratioE4 *big.Int) *big.Int {
	if ratioE4.Sign() <= 0 {
		panic("numerics: log of non-positive ratio")
	}

	r := new(big.Int).Set(ratioE4)
	halvings := int64(0)
	for r.Cmp(twoE4) >= 0 {
		r.Quo(r, two)
		halvings++
	}
	for r.Cmp(oneE4) < 0 {
		r.Mul(r, two)
		halvings--
	}

	num := new(big.Int).Sub(r, oneE4)
	den := new(big.Int).Add(r, oneE4)
	y := fixedmath.MulDiv(num, fixedmath.BigE8, den)
	y2 := fixedmath.MulDiv(y, y, fixedmath.BigE8)

	sum := new(big.Int).Set(y)
	term := new(big.Int).Set(y)
	for k := int64(3); k <= 25; k += 2 {
		term = fixedmath.MulDiv(term, y2, fixedmath.BigE8)
		if term.Sign() == 0 {
			break
		}
		sum.Add(sum, fixedmath.QuoInt64(term, k))
	}

	logE8 := new(big.Int).Mul(sum, two)
	logE8.Add(logE8, new(big.Int).Mul(big.NewInt(halvings), ln2E8))
	return new(big.Int).Quo(logE8, fixedmath.BigE4)
}

// NormalCdfApprox approximates 1e8 * Phi(z/1e4) with the Bowling logistic
// form. The exponent is evaluated on |z| and the result mirrored through
// Phi(-z) = 1 - Phi(z), which keeps the approximation exactly symmetric and
// pins NormalCdfApprox(0) == 5e7.
func (Std) NormalCdfApprox(zE4 *big.Int) *big.Int {
	if zE4.CmpAbs(cdfSaturationE4) >= 0 {
		if zE4.Sign() > 0 {
			return new(big.Int).Set(fixedmath.BigE8)
		}
		return new(big.Int)
	}

	a := new(big.Int).Abs(zE4)

	// u (E8) = 1.5976*|z| + 0.07056*|z|^3
	u := new(big.Int).Mul(a, cdfLinearE4)
	cube := new(big.Int).Mul(new(big.Int).Mul(a, a), a)
	u.Add(u, fixedmath.MulDiv(cube, cdfCubicE5, fixedmath.Pow10(9)))

	den := new(big.Int).Add(fixedmath.BigE8, expNegE8(u))
	phi := new(big.Int).Quo(fixedmath.BigE16, den)
	if zE4.Sign() >= 0 {
		return phi
	}
	return new(big.Int).Sub(fixedmath.BigE8, phi)
}

// expNegE8 returns 1e8 * exp(-x/1e8) for non-negative x. x is reduced by
// multiples of ln(2), the remainder expanded with the alternating Taylor
// series, and the result shifted down by the reduced power of two.
func expNegE8(x *big.Int) *big.Int {
	q := new(big.Int).Quo(x, ln2E8)
	if !q.IsInt64() || q.Int64() > 63 {
		return new(big.Int)
	}
	r := new(big.Int).Rem(x, ln2E8)

	sum := new(big.Int).Set(fixedmath.BigE8)
	term := new(big.Int).Set(fixedmath.BigE8)
	for n := int64(1); n <= 20; n++ {
		term = fixedmath.MulDiv(term, r, new(big.Int).Mul(fixedmath.BigE8, big.NewInt(n)))
		if term.Sign() == 0 {
			break
		}
		if n%2 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
	}

	return sum.Rsh(sum, uint(q.Int64()))
}
