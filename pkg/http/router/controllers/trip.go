package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/sblrm/cultural-trip-planner/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type tripAPI struct {
	tripService TripService
	log         *zap.Logger
}

func New(tripService TripService, log *zap.Logger) *tripAPI {
	return &tripAPI{
		tripService: tripService,
		log:         log,
	}
}

func (api *tripAPI) Routes(group *helper.RouteGroup) {
	group.POST("/planRoute", api.planRoute)
	group.GET("/nearbyDestinations", api.nearbyDestinations)
}

func (api *tripAPI) planRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request planRouteRequest
		err     error
	)

	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	departure := time.Time{}
	if request.DepartureTime != "" {
		departure, err = time.Parse(time.RFC3339, request.DepartureTime)
		if err != nil {
			api.BadRequestResponse(w, r,
				errors.New("departure_time must be a valid RFC3339 timestamp"))
			return
		}
	}

	route, err := api.tripService.PlanRoute(r.Context(), request.StartLat, request.StartLon,
		request.DestinationIds, request.MaxStops, request.OptimizationMode,
		request.TransportMode, departure)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewPlanRouteResponse(route)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *tripAPI) nearbyDestinations(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearbyDestinationsRequest
		err     error
	)

	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	request.RadiusKm, err = strconv.ParseFloat(query.Get("radius_km"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("radius_km is required and must be a valid float"))
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	dests := api.tripService.NearbyDestinations(request.Lat, request.Lon, request.RadiusKm)

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewNearbyDestinationsResponse(dests)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
