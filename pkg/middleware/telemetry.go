// Package middleware decorates the pricing engine with cross-cutting
// concerns. The engine itself stays pure; anything that logs or counts lives
// here.
package middleware

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quantfix/bsfixed/pkg/pricing"
)

// Telemetry wraps an engine and logs every priced call under a fresh quote
// ID. Counters are not synchronized; wrap per goroutine or guard externally
// when sharing.
type Telemetry struct {
	logger *zap.Logger
	engine *pricing.Engine

	deltaCounter    int64
	premiumCounter  int64
	rejectedCounter int64
}

func NewTelemetry(logger *zap.Logger, engine *pricing.Engine) *Telemetry {
	return &Telemetry{
		logger: logger,
		engine: engine,
	}
}

func (telemetry *Telemetry) ComputeDelta(spotPrice, strikePrice, riskFreeRate, volatility, untilMaturity int64) (int64, error) {
	quoteID := uuid.Must(uuid.NewV7())

	delta, err := telemetry.engine.ComputeDelta(spotPrice, strikePrice, riskFreeRate, volatility, untilMaturity)
	if err != nil {
		telemetry.rejectedCounter++
		telemetry.logger.Warn("delta rejected",
			zap.Stringer("quote_id", quoteID),
			zap.Error(err))
		return 0, err
	}

	telemetry.deltaCounter++
	telemetry.logger.Info("delta",
		zap.Stringer("quote_id", quoteID),
		zap.Object("quote", pricing.DeltaQuote{
			SpotPrice:     spotPrice,
			StrikePrice:   strikePrice,
			RiskFreeRate:  riskFreeRate,
			Volatility:    volatility,
			UntilMaturity: untilMaturity,
			Delta:         delta,
		}))
	return delta, nil
}

func (telemetry *Telemetry) ComputePremium(spotPrice, strikePrice, volatility, untilMaturity int64) (int64, error) {
	quoteID := uuid.Must(uuid.NewV7())

	premium, err := telemetry.engine.ComputePremium(spotPrice, strikePrice, volatility, untilMaturity)
	if err != nil {
		telemetry.rejectedCounter++
		telemetry.logger.Warn("premium rejected",
			zap.Stringer("quote_id", quoteID),
			zap.Error(err))
		return 0, err
	}

	telemetry.premiumCounter++
	telemetry.logger.Info("premium",
		zap.Stringer("quote_id", quoteID),
		zap.Object("quote", pricing.PremiumQuote{
			SpotPrice:     spotPrice,
			StrikePrice:   strikePrice,
			Volatility:    volatility,
			UntilMaturity: untilMaturity,
			Premium:       premium,
		}))
	return premium, nil
}

func (telemetry *Telemetry) PrintStatistics() {
	telemetry.logger.Info("telemetry statistics",
		zap.Int64("delta_quotes", telemetry.deltaCounter),
		zap.Int64("premium_quotes", telemetry.premiumCounter),
		zap.Int64("rejected_quotes", telemetry.rejectedCounter))
}
