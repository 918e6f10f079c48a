package search

import (
	"context"
	"errors"
	"math"

	da "github.com/sblrm/cultural-trip-planner/pkg/datastructure"
	"github.com/sblrm/cultural-trip-planner/pkg/geo"
	"github.com/sblrm/cultural-trip-planner/pkg/util"
	"go.uber.org/zap"
)

var (
	// ErrNoRouteFound no destinations supplied or the frontier drained without
	// a complete itinerary.
	ErrNoRouteFound = errors.New("no route could be planned from the given destinations")

	// ErrPlanningTimedOut the planning deadline expired mid-search. a partial
	// route is never returned.
	ErrPlanningTimedOut = errors.New("route planning deadline exceeded")
)

// AStar informed search over a destination-selection state space. a state is
// the set of destinations visited so far in a fixed order, standing at the
// last one; expanding appends one unvisited destination.
//
// Every state reaching the target stop count is a valid complete itinerary,
// so the search does not stop at the first goal popped: it drains the
// frontier tracking the minimum-g complete route, pruning states that can no
// longer beat it (edge costs are non-negative).
type AStar struct {
	log        *zap.Logger
	evaluator  *EdgeEvaluator
	start      geo.Coordinate
	candidates []da.Destination
	maxStops   int

	numExpandedStates int
}

func NewAStar(log *zap.Logger, evaluator *EdgeEvaluator, start geo.Coordinate,
	candidates []da.Destination, maxStops int) *AStar {

	return &AStar{
		log:        log,
		evaluator:  evaluator,
		start:      start,
		candidates: candidates,
		maxStops:   maxStops,
	}
}

// searchState owned exclusively by the planning request that created it,
// discarded when the search completes.
type searchState struct {
	visited  []bool
	position geo.Coordinate
	nodes    []da.RouteNode
	g        float64
	anyLive  bool
}

func (s *searchState) stops() int {
	return len(s.nodes)
}

// Run executes the search to completion, synchronously.
func (a *AStar) Run(ctx context.Context) (*da.Route, error) {
	if len(a.candidates) == 0 {
		return nil, ErrNoRouteFound
	}

	// fewer destinations than requested yields a shorter complete route
	// instead of failing
	target := util.MinInt(a.maxStops, len(a.candidates))

	startState := &searchState{
		visited:  make([]bool, len(a.candidates)),
		position: a.start,
	}

	states := []*searchState{startState}
	pq := da.NewFourAryHeap[int]()
	pq.Insert(da.NewPriorityQueueNode(a.heuristic(startState, target), 0))

	var best *searchState

	for !pq.IsEmpty() {
		if util.StopConcurrentOperation(ctx) {
			return nil, ErrPlanningTimedOut
		}

		node, err := pq.ExtractMin()
		if err != nil {
			break
		}
		state := states[node.GetItem()]
		a.numExpandedStates++

		if best != nil && state.g >= best.g {
			continue
		}

		if state.stops() == target {
			if best == nil || state.g < best.g {
				best = state
			}
			continue
		}

		for i := range a.candidates {
			if state.visited[i] {
				continue
			}

			next := a.expand(ctx, state, i)
			states = append(states, next)
			f := next.g + a.heuristic(next, target)
			pq.Insert(da.NewPriorityQueueNode(f, len(states)-1))
		}
	}

	if best == nil {
		return nil, ErrNoRouteFound
	}

	route := da.NewRoute(best.nodes)
	if best.anyLive {
		route.DataSource = da.ProvenanceLive
	}

	a.log.Debug("route search finished",
		zap.Int("expanded_states", a.numExpandedStates),
		zap.Int("stops", len(route.Nodes)),
		zap.Float64("best_g", best.g))

	return route, nil
}

// expand appends candidate i to state and returns the successor state.
func (a *AStar) expand(ctx context.Context, state *searchState, i int) *searchState {
	cand := a.candidates[i]
	sample, pred, edgeCost := a.evaluator.Evaluate(ctx, state.position, cand.Coordinate)

	visited := make([]bool, len(state.visited))
	copy(visited, state.visited)
	visited[i] = true

	nodes := make([]da.RouteNode, len(state.nodes), len(state.nodes)+1)
	copy(nodes, state.nodes)
	breakdown := pred.RuleBreakdown
	nodes = append(nodes, da.RouteNode{
		Destination:     cand,
		DistanceKm:      sample.DistanceKm,
		DurationMinutes: sample.DurationMinutes,
		Cost:            pred.FinalCost,
		Pricing:         &breakdown,
	})

	return &searchState{
		visited:  visited,
		position: cand.Coordinate,
		nodes:    nodes,
		g:        state.g + edgeCost,
		anyLive:  state.anyLive || sample.Provenance == da.ProvenanceLive,
	}
}

// heuristic admissible remaining-cost estimate: the edge cost to the single
// nearest unvisited destination by haversine distance. straight-line distance
// under-estimates any real edge, and the per-mode cost functions are
// monotonic non-negative in distance.
func (a *AStar) heuristic(state *searchState, target int) float64 {
	if state.stops() >= target {
		return 0
	}

	nearest := math.MaxFloat64
	found := false
	for i := range a.candidates {
		if state.visited[i] {
			continue
		}
		d := geo.HaversineDistance(state.position, a.candidates[i].Coordinate)
		if d < nearest {
			nearest = d
			found = true
		}
	}
	if !found {
		return 0
	}

	return a.evaluator.HeuristicCost(nearest)
}
