package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/quantfix/bsfixed/pkg/data/duckdb"
	"github.com/quantfix/bsfixed/pkg/dbg"
	"github.com/quantfix/bsfixed/pkg/fixedmath"
	"github.com/quantfix/bsfixed/pkg/middleware"
	"github.com/quantfix/bsfixed/pkg/pricing"
)

func main() {
	logger := dbg.New(os.Getenv("PRICETABLE_ENV") == "prod")
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	telemetry := middleware.NewTelemetry(logger, pricing.Default())

	if len(os.Args) > 1 {
		if err := priceDatabase(ctx, telemetry, os.Args[1]); err != nil {
			logger.Fatal("error pricing scenarios", zap.Error(err))
		}
	} else {
		priceGrid(telemetry)
	}

	telemetry.PrintStatistics()
}

// priceDatabase reprices every scenario row in the database. Rows rejected
// with a DomainError are already logged by the telemetry layer and skipped;
// anything else aborts the run.
func priceDatabase(ctx context.Context, telemetry *middleware.Telemetry, dataSourceName string) error {
	reader := duckdb.NewReader(dataSourceName)
	if err := reader.Connect(); err != nil {
		return err
	}
	defer reader.Close()

	return reader.LoadScenarios(ctx, ScenarioTable, func(s duckdb.Scenario) error {
		if _, err := telemetry.ComputePremium(s.SpotPrice, s.StrikePrice, s.Volatility, s.UntilMaturity); err != nil {
			return skipDomainErrors(err)
		}
		if _, err := telemetry.ComputeDelta(s.SpotPrice, s.StrikePrice, 0, s.Volatility, s.UntilMaturity); err != nil {
			return skipDomainErrors(err)
		}
		return nil
	})
}

func skipDomainErrors(err error) error {
	var domainErr *pricing.DomainError
	if errors.As(err, &domainErr) {
		return nil
	}
	return err
}

func priceGrid(telemetry *middleware.Telemetry) {
	for _, maturity := range GridMaturities {
		for _, vol := range GridVolatilities {
			for _, spot := range GridSpots {
				premium, err := telemetry.ComputePremium(spot, GridStrike, vol, maturity)
				if err != nil {
					continue
				}
				delta, err := telemetry.ComputeDelta(spot, GridStrike, 0, vol, maturity)
				if err != nil {
					continue
				}
				// display-side clamp; the engine result stays raw
				if premium < 0 {
					premium = 0
				}
				fmt.Printf("t=%8ds vol=%s spot=%5d strike=%5d premium=%5d delta=%s\n",
					maturity, fixedmath.FormatScaled(vol, 8), spot, GridStrike,
					premium, fixedmath.FormatScaled(delta, 8))
			}
		}
	}
}
