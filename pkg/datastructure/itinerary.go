package datastructure

import (
	"github.com/sblrm/cultural-trip-planner/pkg/geo"
	"github.com/sblrm/cultural-trip-planner/pkg/prediction"
	"github.com/sblrm/cultural-trip-planner/pkg/pricing"
)

// Provenance tags whether a value came from a live routing service or a
// local haversine estimate.
type Provenance string

const (
	ProvenanceLive      Provenance = "live"
	ProvenanceEstimated Provenance = "estimated"
)

// Destination one catalog entry. owned by the (external) destination catalog,
// the planner only reads it.
type Destination struct {
	Id                   int64          `json:"id"`
	Name                 string         `json:"name"`
	City                 string         `json:"city"`
	Province             string         `json:"province"`
	Coordinate           geo.Coordinate `json:"coordinate"`
	AdmissionPrice       float64        `json:"admission_price"`
	VisitDurationMinutes float64        `json:"visit_duration_minutes"`
	OpenHour             string         `json:"open_hour"`
	CloseHour            string         `json:"close_hour"`
	Transportation       []string       `json:"transportation,omitempty"`
}

// RouteSample distance and duration of one edge, live or estimated. short
// lived; a cache entry is a value, not a mutable record.
type RouteSample struct {
	DistanceKm      float64    `json:"distance_km"`
	DurationMinutes float64    `json:"duration_minutes"`
	Provenance      Provenance `json:"provenance"`
}

// RouteNode one stop of a planned itinerary, immutable once part of a
// returned route.
type RouteNode struct {
	Destination     Destination        `json:"destination"`
	DistanceKm      float64            `json:"distance_km"`
	DurationMinutes float64            `json:"duration_minutes"`
	Cost            float64            `json:"cost"`
	Pricing         *pricing.Breakdown `json:"pricing,omitempty"`
}

// Route ordered itinerary plus aggregate totals. DataSource is live when any
// edge used live routing data.
type Route struct {
	Nodes                []RouteNode `json:"nodes"`
	TotalDistanceKm      float64     `json:"total_distance_km"`
	TotalDurationMinutes float64     `json:"total_duration_minutes"`
	TotalCost            float64     `json:"total_cost"`
	DataSource           Provenance  `json:"data_source"`
	Polyline             string      `json:"polyline,omitempty"`

	// CostPrediction route-level reconciliation of rule-based and learned
	// estimates over the aggregate trip.
	CostPrediction *prediction.Result `json:"cost_prediction,omitempty"`
}

// NewRoute builds a route from the winning search path, in path order, and
// aggregates the totals.
func NewRoute(nodes []RouteNode) *Route {
	r := &Route{
		Nodes:      nodes,
		DataSource: ProvenanceEstimated,
	}
	for _, n := range nodes {
		r.TotalDistanceKm += n.DistanceKm
		r.TotalDurationMinutes += n.DurationMinutes
		r.TotalCost += n.Cost
	}
	return r
}
