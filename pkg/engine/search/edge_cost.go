package search

import (
	"context"
	"time"

	"github.com/sblrm/cultural-trip-planner/pkg"
	"github.com/sblrm/cultural-trip-planner/pkg/datastructure"
	"github.com/sblrm/cultural-trip-planner/pkg/geo"
	"github.com/sblrm/cultural-trip-planner/pkg/prediction"
	"github.com/sblrm/cultural-trip-planner/pkg/routedata"
)

// balanced mode mixes minutes and rupiah on one scale. tunables, not physics:
// the defaults keep neither term numerically dominant.
var (
	BalancedDurationWeight = 100.0
	BalancedCostScale      = 1000.0
)

// EdgeEvaluator produces the route sample, cost prediction and scalar edge
// cost for one candidate expansion. provider failures degrade to haversine
// estimates here and never bubble further up.
type EdgeEvaluator struct {
	provider  routedata.Provider
	predictor *prediction.HybridPredictor
	transport pkg.TransportMode
	opt       pkg.OptimizationMode
	departure time.Time
	traffic   pkg.TrafficLevel
}

func NewEdgeEvaluator(provider routedata.Provider, predictor *prediction.HybridPredictor,
	transport pkg.TransportMode, opt pkg.OptimizationMode,
	departure time.Time, traffic pkg.TrafficLevel) *EdgeEvaluator {

	return &EdgeEvaluator{
		provider:  provider,
		predictor: predictor,
		transport: transport,
		opt:       opt,
		departure: departure,
		traffic:   traffic,
	}
}

func (ev *EdgeEvaluator) Evaluate(ctx context.Context, from, to geo.Coordinate) (
	datastructure.RouteSample, prediction.Result, float64) {

	sample := ev.sample(ctx, from, to)
	pred := ev.predictor.Predict(ctx, prediction.Features{
		DistanceKm:       sample.DistanceKm,
		DurationMinutes:  sample.DurationMinutes,
		OptimizationMode: ev.opt,
		TransportMode:    ev.transport,
		Departure:        ev.departure,
		TrafficLevel:     ev.traffic,
	})

	return sample, pred, ev.edgeCost(sample.DurationMinutes, pred.FinalCost)
}

func (ev *EdgeEvaluator) sample(ctx context.Context, from, to geo.Coordinate) datastructure.RouteSample {
	if ev.provider != nil {
		if sample, err := ev.provider.FetchRoute(ctx, from, to, ev.opt); err == nil {
			return sample
		}
	}
	return routedata.EstimateRoute(from, to, ev.opt)
}

func (ev *EdgeEvaluator) edgeCost(durationMinutes, monetaryCost float64) float64 {
	switch ev.opt {
	case pkg.FASTEST:
		return durationMinutes
	case pkg.CHEAPEST:
		return monetaryCost
	case pkg.BALANCED:
		return durationMinutes*BalancedDurationWeight + monetaryCost/BalancedCostScale
	default:
		return durationMinutes*BalancedDurationWeight + monetaryCost/BalancedCostScale
	}
}

// HeuristicCost lower-bound edge cost for a straight-line distance. always
// uses the haversine estimate and rule-based pricing, cheap enough to call
// once per candidate per expansion.
func (ev *EdgeEvaluator) HeuristicCost(distanceKm float64) float64 {
	sample := routedata.EstimateRouteFromDistance(distanceKm, ev.opt)
	if ev.opt == pkg.FASTEST {
		return sample.DurationMinutes
	}

	rule := ev.predictor.RulePrice(sample.DistanceKm, ev.departure, ev.traffic, ev.transport, ev.opt)
	return ev.edgeCost(sample.DurationMinutes, rule.TotalCost)
}
