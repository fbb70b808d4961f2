package pricing

import (
	"errors"
	"math/big"
	"testing"

	"github.com/quantfix/bsfixed/pkg/fixedmath"
	"github.com/quantfix/bsfixed/pkg/numerics"
)

// 30-day at-the-money scenario at 50% annualized volatility.
const (
	atmSpot   int64 = 1_000
	atmStrike int64 = 1_000
	atmVol    int64 = 50_000_000
	atmExpiry int64 = 2_592_000
)

func Test_ComputeDelta_BoundaryRejection(t *testing.T) {
	tests := []struct {
		name   string
		spot   int64
		strike int64
		vol    int64
		expiry int64
		field  string
	}{
		{"zero spot", 0, atmStrike, atmVol, atmExpiry, "spotPrice"},
		{"negative spot", -1, atmStrike, atmVol, atmExpiry, "spotPrice"},
		{"spot at upper bound", MaxPrice, atmStrike, atmVol, atmExpiry, "spotPrice"},
		{"zero strike", atmSpot, 0, atmVol, atmExpiry, "strikePrice"},
		{"negative strike", atmSpot, -5, atmVol, atmExpiry, "strikePrice"},
		{"strike at upper bound", atmSpot, MaxPrice, atmVol, atmExpiry, "strikePrice"},
		{"zero volatility", atmSpot, atmStrike, 0, atmExpiry, "volatility"},
		{"negative volatility", atmSpot, atmStrike, -atmVol, atmExpiry, "volatility"},
		{"volatility at upper bound", atmSpot, atmStrike, MaxVolatility, atmExpiry, "volatility"},
		{"zero maturity", atmSpot, atmStrike, atmVol, 0, "untilMaturity"},
		{"negative maturity", atmSpot, atmStrike, atmVol, -1, "untilMaturity"},
		{"maturity at one year", atmSpot, atmStrike, atmVol, MaxUntilMaturity, "untilMaturity"},
	}

	engine := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, deltaErr := engine.ComputeDelta(tt.spot, tt.strike, 0, tt.vol, tt.expiry)
			_, premiumErr := engine.ComputePremium(tt.spot, tt.strike, tt.vol, tt.expiry)

			for _, err := range []error{deltaErr, premiumErr} {
				var domainErr *DomainError
				if !errors.As(err, &domainErr) {
					t.Fatalf("expected DomainError, got %v", err)
				}
				if domainErr.Field != tt.field {
					t.Errorf("rejected field %q, want %q", domainErr.Field, tt.field)
				}
			}
		})
	}
}

func Test_Validate_FixedOrder(t *testing.T) {
	// Multiple violations report the first check in spot, strike,
	// volatility, maturity order.
	engine := Default()
	_, err := engine.ComputeDelta(0, 0, 0, 0, 0)

	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if domainErr.Field != "spotPrice" {
		t.Errorf("first rejected field %q, want spotPrice", domainErr.Field)
	}
}

func Test_ComputeDelta_AtTheMoneyRegression(t *testing.T) {
	engine := Default()

	delta, err := engine.ComputeDelta(atmSpot, atmStrike, 0, atmVol, atmExpiry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// d1 = sigmaT/2 ~ 0.0716, so delta sits a little above 0.5.
	if delta <= 50_000_000 || delta >= 56_000_000 {
		t.Errorf("ATM delta = %d, want slightly above 5e7", delta)
	}
	if delta < 0 || delta > fixedmath.E8 {
		t.Errorf("delta %d outside [0, 1e8]", delta)
	}
}

func Test_ComputePremium_AtTheMoneyRegression(t *testing.T) {
	engine := Default()

	premium, err := engine.ComputePremium(atmSpot, atmStrike, atmVol, atmExpiry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if premium <= 0 || premium >= atmSpot {
		t.Errorf("ATM premium = %d, want strictly between 0 and %d", premium, atmSpot)
	}
	// Closed-form value is ~57 in spot units.
	if premium < 45 || premium > 70 {
		t.Errorf("ATM premium = %d, want near 57", premium)
	}
}

func Test_ComputeDelta_MonotonicInSpot(t *testing.T) {
	engine := Default()

	prev := int64(-1)
	for spot := int64(200); spot <= 5_000; spot += 100 {
		delta, err := engine.ComputeDelta(spot, atmStrike, 0, atmVol, atmExpiry)
		if err != nil {
			t.Fatalf("spot %d: %v", spot, err)
		}
		if delta < 0 || delta > fixedmath.E8 {
			t.Fatalf("spot %d: delta %d outside [0, 1e8]", spot, delta)
		}
		if delta < prev {
			t.Fatalf("delta decreased at spot %d: %d -> %d", spot, prev, delta)
		}
		prev = delta
	}
}

func Test_ComputePremium_MonotonicInSpot(t *testing.T) {
	engine := Default()

	prev := int64(-1 << 62)
	for spot := int64(200); spot <= 5_000; spot += 100 {
		premium, err := engine.ComputePremium(spot, atmStrike, atmVol, atmExpiry)
		if err != nil {
			t.Fatalf("spot %d: %v", spot, err)
		}
		if premium < prev {
			t.Fatalf("premium decreased at spot %d: %d -> %d", spot, prev, premium)
		}
		prev = premium
	}
}

func Test_ComputePremium_VanishesDeepOutOfTheMoney(t *testing.T) {
	engine := Default()

	premium, err := engine.ComputePremium(1, 1_000, atmVol, atmExpiry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if premium < -1 || premium > 1 {
		t.Errorf("deep OTM premium = %d, want ~0", premium)
	}
}

func Test_ComputeDelta_RateLiftsDelta(t *testing.T) {
	engine := Default()

	flat, err := engine.ComputeDelta(atmSpot, atmStrike, 0, atmVol, atmExpiry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lifted, err := engine.ComputeDelta(atmSpot, atmStrike, 5_000_000, atmVol, atmExpiry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lifted <= flat {
		t.Errorf("delta with 5%% rate = %d, want above zero-rate delta %d", lifted, flat)
	}
}

func Test_Idempotence(t *testing.T) {
	engine := Default()

	d1, err1 := engine.ComputeDelta(atmSpot, atmStrike, 3_000_000, atmVol, atmExpiry)
	d2, err2 := engine.ComputeDelta(atmSpot, atmStrike, 3_000_000, atmVol, atmExpiry)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if d1 != d2 {
		t.Errorf("delta not reproducible: %d vs %d", d1, d2)
	}

	p1, err1 := engine.ComputePremium(atmSpot, atmStrike, atmVol, atmExpiry)
	p2, err2 := engine.ComputePremium(atmSpot, atmStrike, atmVol, atmExpiry)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if p1 != p2 {
		t.Errorf("premium not reproducible: %d vs %d", p1, p2)
	}
}

func Test_MoneynessTruncation(t *testing.T) {
	// spot*1e4 < strike truncates the moneyness ratio to zero even though
	// both prices sit inside the domain; the log is undefined there and must
	// come back as an arithmetic defect, never a panic.
	engine := Default()

	_, deltaErr := engine.ComputeDelta(1, 10_001, 0, atmVol, atmExpiry)
	_, premiumErr := engine.ComputePremium(1, 10_001, atmVol, atmExpiry)

	for _, err := range []error{deltaErr, premiumErr} {
		var arithErr *ArithmeticError
		if !errors.As(err, &arithErr) {
			t.Fatalf("expected ArithmeticError, got %v", err)
		}
		var domainErr *DomainError
		if errors.As(err, &domainErr) {
			t.Errorf("error must not be a DomainError")
		}
	}
}

func Test_ScaledSigmaTruncation(t *testing.T) {
	// vol of 1e-8 over one second truncates sigma to zero; that must surface
	// as an arithmetic defect, not a divide by zero.
	engine := Default()

	_, err := engine.ComputeDelta(atmSpot, atmStrike, 0, 1, 1)

	var arithErr *ArithmeticError
	if !errors.As(err, &arithErr) {
		t.Fatalf("expected ArithmeticError, got %v", err)
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		t.Errorf("error must not be a DomainError")
	}
}

// recordingPrimitives wires the reference implementation through while
// capturing the values the engine hands to the primitive layer.
type recordingPrimitives struct {
	numerics.Std
	logInputs []*big.Int
	cdfInputs []*big.Int
}

func (r *recordingPrimitives) LogApprox(ratioE4 *big.Int) *big.Int {
	r.logInputs = append(r.logInputs, new(big.Int).Set(ratioE4))
	return numerics.Std{}.LogApprox(ratioE4)
}

func (r *recordingPrimitives) NormalCdfApprox(zE4 *big.Int) *big.Int {
	r.cdfInputs = append(r.cdfInputs, new(big.Int).Set(zE4))
	return numerics.Std{}.NormalCdfApprox(zE4)
}

func Test_AtTheMoneyDerivation(t *testing.T) {
	rec := &recordingPrimitives{}
	engine := New(rec)

	if _, err := engine.ComputePremium(atmSpot, atmStrike, atmVol, atmExpiry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// spot == strike, so the moneyness ratio is exactly 1e4 and the log term
	// drops out, leaving d1 as the symmetric drift term sigmaT/2e4.
	if len(rec.logInputs) != 1 || rec.logInputs[0].Int64() != fixedmath.E4 {
		t.Fatalf("log inputs = %v, want exactly [1e4]", rec.logInputs)
	}

	sqrtT := new(big.Int).Sqrt(big.NewInt(atmExpiry))
	scaledSigma := fixedmath.MulDiv(
		new(big.Int).Mul(big.NewInt(atmVol), sqrtT),
		fixedmath.BigE8,
		big.NewInt(561_569_229_926),
	)
	wantD1 := fixedmath.QuoInt64(scaledSigma, 2*fixedmath.E4)
	wantD2 := new(big.Int).Sub(wantD1, fixedmath.QuoInt64(scaledSigma, fixedmath.E4))

	if len(rec.cdfInputs) != 2 {
		t.Fatalf("expected 2 cdf calls, got %d", len(rec.cdfInputs))
	}
	if rec.cdfInputs[0].Cmp(wantD1) != 0 {
		t.Errorf("d1 = %s, want %s", rec.cdfInputs[0], wantD1)
	}
	if rec.cdfInputs[1].Cmp(wantD2) != 0 {
		t.Errorf("d2 = %s, want %s", rec.cdfInputs[1], wantD2)
	}
}

// brokenPrimitives violates the cdf range contract.
type brokenPrimitives struct{}

func (brokenPrimitives) Sqrt(x *big.Int) *big.Int            { return new(big.Int).Sqrt(x) }
func (brokenPrimitives) LogApprox(ratioE4 *big.Int) *big.Int { return new(big.Int) }
func (brokenPrimitives) NormalCdfApprox(zE4 *big.Int) *big.Int {
	return big.NewInt(2 * fixedmath.E8)
}

func Test_PrimitiveContractViolation(t *testing.T) {
	engine := New(brokenPrimitives{})

	_, err := engine.ComputeDelta(atmSpot, atmStrike, 0, atmVol, atmExpiry)

	var arithErr *ArithmeticError
	if !errors.As(err, &arithErr) {
		t.Fatalf("expected ArithmeticError, got %v", err)
	}
}
