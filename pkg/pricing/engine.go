// Package pricing computes European call option quantities with scaled
// integer arithmetic only: the Black-Scholes premium at a zero risk-free rate
// and the option delta N(d1). Results are deterministic and bit-reproducible
// across executors.
//
// Prices are plain integers (E0), volatility and rate are at scale E8,
// intermediate log-moneyness terms at scale E4. Every derived ratio is formed
// as (numerator * scaleFactor) / denominator in that order, on big.Int, so no
// precision is lost before the division.
package pricing

import (
	"math/big"

	"github.com/quantfix/bsfixed/pkg/fixedmath"
	"github.com/quantfix/bsfixed/pkg/numerics"
)

// Exclusive input bounds.
const (
	MaxPrice         int64 = 10_000_000_000_000 // E0
	MaxVolatility    int64 = 10 * fixedmath.E8  // E8, 1000% annualized
	MaxUntilMaturity int64 = 31_536_000         // seconds, one year
)

// sqrt(seconds per year) at scale E8.
var yearSqrtE8 = big.NewInt(561_569_229_926)

// Engine derives d1/d2 from market inputs and combines the injected
// primitives into the closed-form values. It is stateless and safe for
// concurrent use.
type Engine struct {
	prim numerics.Primitives
}

func New(prim numerics.Primitives) *Engine {
	return &Engine{prim: prim}
}

// Default returns an engine backed by the reference primitives.
func Default() *Engine {
	return New(numerics.Std{})
}

// ComputeDelta returns N(d1), the call delta, at scale E8.
//
//	d1 = ln(S/K)/sigmaT + r*sqrt(t)/(vol*sqrtYear) + sigmaT/2
//
// where sigmaT = vol*sqrt(t)/sqrtYear is the volatility over the remaining
// life of the option. riskFreeRate (E8) is unconstrained beyond overflow
// safety; the remaining inputs are validated against the domain bounds.
func (e *Engine) ComputeDelta(spotPrice, strikePrice, riskFreeRate, volatility, untilMaturity int64) (int64, error) {
	if err := validate(spotPrice, strikePrice, volatility, untilMaturity); err != nil {
		return 0, err
	}

	scaledSigma, logMoneyness, sqrtT, err := e.deriveTerms(spotPrice, strikePrice, volatility, untilMaturity)
	if err != nil {
		return 0, err
	}

	// d1 (E4) = log*1e8/sigma + rate*sqrt(t)*1e12/(vol*sqrtYear) + sigma/2e4
	d1 := fixedmath.MulDiv(logMoneyness, fixedmath.BigE8, scaledSigma)
	rateNum := new(big.Int).Mul(fixedmath.Big(riskFreeRate), sqrtT)
	rateDen := new(big.Int).Mul(fixedmath.Big(volatility), yearSqrtE8)
	d1.Add(d1, fixedmath.MulDiv(rateNum, fixedmath.BigE12, rateDen))
	d1.Add(d1, fixedmath.QuoInt64(scaledSigma, 2*fixedmath.E4))

	nD1, err := e.cdf(d1)
	if err != nil {
		return 0, err
	}
	return fixedmath.ToInt64Unsafe(nD1), nil
}

// ComputePremium returns the call premium for a zero risk-free rate, in the
// same unit scale as spotPrice and strikePrice:
//
//	premium = S*N(d1) - K*N(d2)
//
// The result is the raw signed combination. Deep out of the money near
// expiry the approximation error can dominate a near-zero premium and push
// it slightly negative; callers that need a non-negative premium clamp it
// themselves.
func (e *Engine) ComputePremium(spotPrice, strikePrice, volatility, untilMaturity int64) (int64, error) {
	if err := validate(spotPrice, strikePrice, volatility, untilMaturity); err != nil {
		return 0, err
	}

	scaledSigma, logMoneyness, _, err := e.deriveTerms(spotPrice, strikePrice, volatility, untilMaturity)
	if err != nil {
		return 0, err
	}

	d1 := fixedmath.MulDiv(logMoneyness, fixedmath.BigE8, scaledSigma)
	d1.Add(d1, fixedmath.QuoInt64(scaledSigma, 2*fixedmath.E4))

	nD1, err := e.cdf(d1)
	if err != nil {
		return 0, err
	}

	d2 := new(big.Int).Sub(d1, fixedmath.QuoInt64(scaledSigma, fixedmath.E4))
	nD2, err := e.cdf(d2)
	if err != nil {
		return 0, err
	}

	premium := new(big.Int).Sub(
		new(big.Int).Mul(fixedmath.Big(spotPrice), nD1),
		new(big.Int).Mul(fixedmath.Big(strikePrice), nD2),
	)
	premium.Quo(premium, fixedmath.BigE8)

	v, err := fixedmath.ToInt64(premium)
	if err != nil {
		return 0, &ArithmeticError{Reason: "premium exceeds int64"}
	}
	return v, nil
}

// deriveTerms computes the shared E8/E4 intermediates: the scaled sigma, the
// log of the moneyness ratio, and sqrt(untilMaturity).
func (e *Engine) deriveTerms(spotPrice, strikePrice, volatility, untilMaturity int64) (scaledSigma, logMoneyness, sqrtT *big.Int, err error) {
	// moneyness (E4) = spot*1e4/strike, truncating toward zero
	moneyness := new(big.Int).Quo(fixedmath.Scaled(spotPrice, 4), fixedmath.Big(strikePrice))

	// spot*1e4 below strike truncates the ratio to zero, where the log is
	// undefined; that must surface as a defect, not a panic.
	if moneyness.Sign() == 0 {
		return nil, nil, nil, &ArithmeticError{Reason: "moneyness ratio truncated to zero"}
	}

	sqrtT = e.prim.Sqrt(fixedmath.Big(untilMaturity))

	// scaledSigma (E8) = vol*sqrt(t)*1e8/sqrtYear
	volSqrtT := new(big.Int).Mul(fixedmath.Big(volatility), sqrtT)
	scaledSigma = fixedmath.MulDiv(volSqrtT, fixedmath.BigE8, yearSqrtE8)

	// Structurally non-zero for validated inputs, but truncation at tiny
	// vol*sqrt(t) products must surface as a defect, not divide by zero.
	if scaledSigma.Sign() == 0 {
		return nil, nil, nil, &ArithmeticError{Reason: "scaled sigma truncated to zero"}
	}

	logMoneyness = e.prim.LogApprox(moneyness)
	return scaledSigma, logMoneyness, sqrtT, nil
}

func (e *Engine) cdf(z *big.Int) (*big.Int, error) {
	n := e.prim.NormalCdfApprox(z)
	if n.Sign() < 0 || n.Cmp(fixedmath.BigE8) > 0 {
		return nil, &ArithmeticError{Reason: "normal cdf outside [0, 1e8]"}
	}
	return n, nil
}

func validate(spotPrice, strikePrice, volatility, untilMaturity int64) error {
	if spotPrice <= 0 || spotPrice >= MaxPrice {
		return &DomainError{Field: "spotPrice", Reason: "must be in (0, 1e13)"}
	}
	if strikePrice <= 0 || strikePrice >= MaxPrice {
		return &DomainError{Field: "strikePrice", Reason: "must be in (0, 1e13)"}
	}
	if volatility <= 0 || volatility >= MaxVolatility {
		return &DomainError{Field: "volatility", Reason: "must be in (0, 10e8)"}
	}
	if untilMaturity <= 0 || untilMaturity >= MaxUntilMaturity {
		return &DomainError{Field: "untilMaturity", Reason: "must be in (0, 31536000) seconds"}
	}
	return nil
}
