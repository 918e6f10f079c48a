package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/sblrm/cultural-trip-planner/pkg"
	"github.com/sblrm/cultural-trip-planner/pkg/datastructure"
	"github.com/sblrm/cultural-trip-planner/pkg/engine"
	"github.com/sblrm/cultural-trip-planner/pkg/engine/search"
	"github.com/sblrm/cultural-trip-planner/pkg/geo"
	"github.com/sblrm/cultural-trip-planner/pkg/spatialindex"
	"github.com/sblrm/cultural-trip-planner/pkg/util"
	"go.uber.org/zap"
)

var ErrRouteNotPlannable = errors.New("could not plan a route")

// TripService application service between the HTTP layer and the planner.
type TripService struct {
	log     *zap.Logger
	planner *engine.TripPlanner
	index   *spatialindex.Rtree
	catalog []datastructure.Destination
	byId    map[int64]datastructure.Destination
}

func NewTripService(log *zap.Logger, planner *engine.TripPlanner,
	index *spatialindex.Rtree, catalog []datastructure.Destination) *TripService {

	byId := make(map[int64]datastructure.Destination, len(catalog))
	for _, d := range catalog {
		byId[d.Id] = d
	}

	return &TripService{
		log:     log,
		planner: planner,
		index:   index,
		catalog: catalog,
		byId:    byId,
	}
}

// PlanRoute plans an itinerary over the requested destinations, or the whole
// catalog when no ids are given.
func (ts *TripService) PlanRoute(ctx context.Context, startLat, startLon float64,
	destinationIds []int64, maxStops int, optimizationMode, transportMode string,
	departure time.Time) (*datastructure.Route, error) {

	opt, ok := pkg.GetOptimizationMode(optimizationMode)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"unknown optimization mode %q", optimizationMode)
	}
	transport, ok := pkg.GetTransportMode(transportMode)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"unknown transport mode %q", transportMode)
	}

	candidates := ts.catalog
	if len(destinationIds) > 0 {
		candidates = make([]datastructure.Destination, 0, len(destinationIds))
		for _, id := range destinationIds {
			d, ok := ts.byId[id]
			if !ok {
				return nil, util.WrapErrorf(nil, util.ErrNotFound,
					"destination %d is not in the catalog", id)
			}
			candidates = append(candidates, d)
		}
	}

	route, err := ts.planner.PlanRoute(ctx, engine.PlanRequest{
		Start:            geo.NewCoordinate(startLat, startLon),
		Candidates:       candidates,
		MaxStops:         maxStops,
		OptimizationMode: opt,
		TransportMode:    transport,
		Departure:        departure,
	})
	if err != nil {
		switch {
		case errors.Is(err, search.ErrNoRouteFound):
			return nil, util.WrapErrorf(err, util.ErrNotFound, "%v", ErrRouteNotPlannable)
		case errors.Is(err, search.ErrPlanningTimedOut):
			return nil, util.WrapErrorf(err, util.ErrTimeout,
				"planning timed out, retry with fewer stops")
		default:
			return nil, err
		}
	}

	return route, nil
}

// NearbyDestinations catalog entries within radiusKm of the query point.
func (ts *TripService) NearbyDestinations(lat, lon, radiusKm float64) []datastructure.Destination {
	return ts.index.SearchWithinRadius(lat, lon, radiusKm)
}
