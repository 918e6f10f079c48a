package engine

import (
	"context"
	"time"

	"github.com/sblrm/cultural-trip-planner/pkg"
	"github.com/sblrm/cultural-trip-planner/pkg/concurrent"
	"github.com/sblrm/cultural-trip-planner/pkg/datastructure"
	"github.com/sblrm/cultural-trip-planner/pkg/engine/search"
	"github.com/sblrm/cultural-trip-planner/pkg/geo"
	"github.com/sblrm/cultural-trip-planner/pkg/prediction"
	"github.com/sblrm/cultural-trip-planner/pkg/pricing"
	"github.com/sblrm/cultural-trip-planner/pkg/routedata"
	"github.com/sblrm/cultural-trip-planner/pkg/util"
	"go.uber.org/zap"
)

const (
	defaultPlanningTimeout = 30 * time.Second
	defaultPrefetchWorkers = 4
)

// PlanRequest one trip planning invocation.
type PlanRequest struct {
	Start            geo.Coordinate
	Candidates       []datastructure.Destination
	MaxStops         int
	OptimizationMode pkg.OptimizationMode
	TransportMode    pkg.TransportMode
	Departure        time.Time

	// TrafficLevel optional; estimated from the departure time when nil.
	TrafficLevel *pkg.TrafficLevel
}

// TripPlanner orchestrates routing data, pricing and search for a single
// planning request. concurrent requests share only the routing-data cache
// inside the provider.
type TripPlanner struct {
	log             *zap.Logger
	provider        routedata.Provider
	predictor       *prediction.HybridPredictor
	timeout         time.Duration
	prefetchWorkers int
}

type Option func(*TripPlanner)

func WithTimeout(d time.Duration) Option {
	return func(tp *TripPlanner) {
		tp.timeout = d
	}
}

func WithPrefetchWorkers(n int) Option {
	return func(tp *TripPlanner) {
		tp.prefetchWorkers = n
	}
}

// NewTripPlanner. provider may be nil: the planner then runs entirely on
// haversine estimates.
func NewTripPlanner(log *zap.Logger, provider routedata.Provider,
	predictor *prediction.HybridPredictor, opts ...Option) *TripPlanner {

	tp := &TripPlanner{
		log:             log,
		provider:        provider,
		predictor:       predictor,
		timeout:         defaultPlanningTimeout,
		prefetchWorkers: defaultPrefetchWorkers,
	}
	for _, opt := range opts {
		opt(tp)
	}
	return tp
}

// PlanRoute selects and orders up to MaxStops destinations minimizing the
// requested objective and returns the complete scored itinerary.
func (tp *TripPlanner) PlanRoute(ctx context.Context, req PlanRequest) (*datastructure.Route, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if len(req.Candidates) == 0 {
		return nil, search.ErrNoRouteFound
	}

	departure := req.Departure
	if departure.IsZero() {
		departure = time.Now()
	}

	traffic := pricing.EstimateTrafficLevel(departure)
	if req.TrafficLevel != nil {
		traffic = *req.TrafficLevel
	}

	if tp.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tp.timeout)
		defer cancel()
	}

	tp.prefetchFirstHops(ctx, req)

	evaluator := search.NewEdgeEvaluator(tp.provider, tp.predictor,
		req.TransportMode, req.OptimizationMode, departure, traffic)
	astar := search.NewAStar(tp.log, evaluator, req.Start, req.Candidates, req.MaxStops)

	route, err := astar.Run(ctx)
	if err != nil {
		return nil, err
	}

	coords := make([]geo.Coordinate, 0, len(route.Nodes)+1)
	coords = append(coords, req.Start)
	for _, n := range route.Nodes {
		coords = append(coords, n.Destination.Coordinate)
	}
	route.Polyline = geo.PolylineFromCoords(coords)

	tripPrediction := tp.predictor.Predict(ctx, prediction.Features{
		DistanceKm:       route.TotalDistanceKm,
		DurationMinutes:  route.TotalDurationMinutes,
		OptimizationMode: req.OptimizationMode,
		TransportMode:    req.TransportMode,
		Departure:        departure,
		TrafficLevel:     traffic,
	})
	route.CostPrediction = &tripPrediction

	tp.log.Info("route planned",
		zap.Int("stops", len(route.Nodes)),
		zap.String("optimization_mode", req.OptimizationMode.String()),
		zap.String("transport_mode", req.TransportMode.String()),
		zap.String("data_source", string(route.DataSource)),
		zap.Float64("total_distance_km", route.TotalDistanceKm),
		zap.Float64("total_cost", route.TotalCost))

	return route, nil
}

func validate(req PlanRequest) error {
	if !req.Start.Valid() {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"start coordinate (%v, %v) is not a valid WGS84 point", req.Start.Lat, req.Start.Lon)
	}
	if req.MaxStops <= 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"max stops must be positive, got %d", req.MaxStops)
	}
	for _, c := range req.Candidates {
		if !c.Coordinate.Valid() {
			return util.WrapErrorf(nil, util.ErrBadParamInput,
				"destination %d (%s) has an invalid coordinate", c.Id, c.Name)
		}
	}
	return nil
}

// prefetchFirstHops warms the provider cache with the start->candidate edges
// the first expansion will need, so the search loop issues fewer serial
// network calls.
func (tp *TripPlanner) prefetchFirstHops(ctx context.Context, req PlanRequest) {
	if tp.provider == nil || len(req.Candidates) < 2 {
		return
	}

	pool := concurrent.NewWorkerPool[geo.Coordinate, error](tp.prefetchWorkers, len(req.Candidates))
	pool.Start(func(to geo.Coordinate) error {
		_, err := tp.provider.FetchRoute(ctx, req.Start, to, req.OptimizationMode)
		return err
	})

	for _, c := range req.Candidates {
		pool.AddJob(c.Coordinate)
	}
	pool.Close()
	pool.Wait()

	for range pool.CollectResults() {
		// cache warmup only, failures fall back to estimates in the search
	}
}
