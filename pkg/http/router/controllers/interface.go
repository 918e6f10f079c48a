package controllers

import (
	"context"
	"time"

	"github.com/sblrm/cultural-trip-planner/pkg/datastructure"
)

type TripService interface {
	PlanRoute(ctx context.Context, startLat, startLon float64, destinationIds []int64,
		maxStops int, optimizationMode, transportMode string, departure time.Time) (*datastructure.Route, error)
	NearbyDestinations(lat, lon, radiusKm float64) []datastructure.Destination
}
