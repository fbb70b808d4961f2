package main

const ScenarioTable = "scenarios"

var (
	GridStrike = int64(1_000)

	GridSpots = []int64{500, 750, 900, 1_000, 1_100, 1_250, 1_500}

	// 25%, 50% and 100% annualized, E8.
	GridVolatilities = []int64{25_000_000, 50_000_000, 100_000_000}

	// 7, 30 and 90 days, in seconds.
	GridMaturities = []int64{604_800, 2_592_000, 7_776_000}
)
