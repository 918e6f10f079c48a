package pricing

import (
	"github.com/sblrm/cultural-trip-planner/pkg"
)

// tiered flat-plus-per-km fare tables for public transport, keyed by distance
// band and optimization mode. fastest picks premium services: flight above
// 400 km, express train otherwise.
const (
	flightDistanceThresholdKm = 400.0

	flightBaseFare  = 400000.0
	flightRatePerKm = 1200.0

	expressTrainBaseFare  = 80000.0
	expressTrainRatePerKm = 600.0

	economyShortBandKm  = 50.0
	economyMediumBandKm = 200.0

	economyShortBaseFare  = 15000.0
	economyShortRatePerKm = 500.0

	economyMediumBaseFare  = 30000.0
	economyMediumRatePerKm = 400.0

	economyLongBaseFare  = 50000.0
	economyLongRatePerKm = 300.0
)

func fareCost(distanceKm float64, opt pkg.OptimizationMode) float64 {
	if opt == pkg.FASTEST {
		if distanceKm > flightDistanceThresholdKm {
			return flightBaseFare + distanceKm*flightRatePerKm
		}
		return expressTrainBaseFare + distanceKm*expressTrainRatePerKm
	}

	switch {
	case distanceKm < economyShortBandKm:
		return economyShortBaseFare + distanceKm*economyShortRatePerKm
	case distanceKm <= economyMediumBandKm:
		return economyMediumBaseFare + distanceKm*economyMediumRatePerKm
	default:
		return economyLongBaseFare + distanceKm*economyLongRatePerKm
	}
}
