package pricing

import (
	"go.uber.org/zap/zapcore"

	"github.com/quantfix/bsfixed/pkg/fixedmath"
)

// DeltaQuote pairs delta inputs with the computed result for structured
// logging.
type DeltaQuote struct {
	SpotPrice     int64
	StrikePrice   int64
	RiskFreeRate  int64
	Volatility    int64
	UntilMaturity int64
	Delta         int64
}

func (q DeltaQuote) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("spot_price", q.SpotPrice)
	enc.AddInt64("strike_price", q.StrikePrice)
	enc.AddString("risk_free_rate", fixedmath.FormatScaled(q.RiskFreeRate, 8))
	enc.AddString("volatility", fixedmath.FormatScaled(q.Volatility, 8))
	enc.AddInt64("until_maturity_sec", q.UntilMaturity)
	enc.AddString("delta", fixedmath.FormatScaled(q.Delta, 8))
	return nil
}

// PremiumQuote pairs premium inputs with the computed result for structured
// logging. Premium carries the engine's raw signed value.
type PremiumQuote struct {
	SpotPrice     int64
	StrikePrice   int64
	Volatility    int64
	UntilMaturity int64
	Premium       int64
}

func (q PremiumQuote) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("spot_price", q.SpotPrice)
	enc.AddInt64("strike_price", q.StrikePrice)
	enc.AddString("volatility", fixedmath.FormatScaled(q.Volatility, 8))
	enc.AddInt64("until_maturity_sec", q.UntilMaturity)
	enc.AddInt64("premium", q.Premium)
	return nil
}
