package routedata

import (
	"context"
	"errors"

	"github.com/sblrm/cultural-trip-planner/pkg"
	"github.com/sblrm/cultural-trip-planner/pkg/datastructure"
	"github.com/sblrm/cultural-trip-planner/pkg/geo"
)

// ErrProviderUnavailable routing data source failed or is not configured.
// always recovered locally by falling back to the haversine estimate; never
// surfaced to the planner's caller.
var ErrProviderUnavailable = errors.New("routing data provider unavailable")

// Provider fetches distance and duration between two coordinates from a live
// routing service. the planner must stay correct with this always returning
// ErrProviderUnavailable.
type Provider interface {
	FetchRoute(ctx context.Context, from, to geo.Coordinate, mode pkg.OptimizationMode) (datastructure.RouteSample, error)
}

// average speed by optimization mode, km/h, for estimated edges
func averageSpeedKmh(mode pkg.OptimizationMode) float64 {
	switch mode {
	case pkg.FASTEST:
		return 60.0
	case pkg.CHEAPEST:
		return 35.0
	case pkg.BALANCED:
		return 45.0
	default:
		return 45.0
	}
}

// traffic buffer inflating the naive duration estimate
func trafficBuffer(mode pkg.OptimizationMode) float64 {
	switch mode {
	case pkg.FASTEST:
		return 1.15
	case pkg.CHEAPEST:
		return 1.30
	case pkg.BALANCED:
		return 1.20
	default:
		return 1.20
	}
}

// EstimateRoute haversine fallback used whenever no live routing data is
// available, and by the search heuristic regardless of availability.
func EstimateRoute(from, to geo.Coordinate, mode pkg.OptimizationMode) datastructure.RouteSample {
	return EstimateRouteFromDistance(geo.HaversineDistance(from, to), mode)
}

func EstimateRouteFromDistance(distanceKm float64, mode pkg.OptimizationMode) datastructure.RouteSample {
	duration := distanceKm / averageSpeedKmh(mode) * 60.0 * trafficBuffer(mode)
	return datastructure.RouteSample{
		DistanceKm:      distanceKm,
		DurationMinutes: duration,
		Provenance:      datastructure.ProvenanceEstimated,
	}
}
