package controllers

import (
	"github.com/sblrm/cultural-trip-planner/pkg/datastructure"
)

type planRouteRequest struct {
	StartLat         float64 `json:"start_lat" validate:"required,min=-90,max=90"`
	StartLon         float64 `json:"start_lon" validate:"required,min=-180,max=180"`
	DestinationIds   []int64 `json:"destination_ids"`
	MaxStops         int     `json:"max_stops" validate:"required,min=1,max=10"`
	OptimizationMode string  `json:"optimization_mode" validate:"required,oneof=fastest cheapest balanced"`
	TransportMode    string  `json:"transport_mode" validate:"required"`

	// DepartureTime RFC3339, optional. defaults to now.
	DepartureTime string `json:"departure_time"`
}

type planRouteResponse struct {
	Route *datastructure.Route `json:"route"`
}

func NewPlanRouteResponse(route *datastructure.Route) planRouteResponse {
	return planRouteResponse{Route: route}
}

type nearbyDestinationsRequest struct {
	Lat      float64 `validate:"min=-90,max=90"`
	Lon      float64 `validate:"min=-180,max=180"`
	RadiusKm float64 `validate:"required,gt=0,max=500"`
}

type nearbyDestinationsResponse struct {
	Destinations []datastructure.Destination `json:"destinations"`
	Count        int                         `json:"count"`
}

func NewNearbyDestinationsResponse(dests []datastructure.Destination) nearbyDestinationsResponse {
	return nearbyDestinationsResponse{
		Destinations: dests,
		Count:        len(dests),
	}
}
