package routedata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sblrm/cultural-trip-planner/pkg"
	"github.com/sblrm/cultural-trip-planner/pkg/datastructure"
	"github.com/sblrm/cultural-trip-planner/pkg/geo"
	"github.com/sblrm/cultural-trip-planner/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	orsBaseURL = "https://api.openrouteservice.org"
	orsProfile = "driving-car"

	// free tier allows 40 requests/minute
	orsRequestsPerMinute = 40
)

// ORSProvider live routing data from OpenRouteService, with response caching
// and client side rate limiting. every failure is mapped to
// ErrProviderUnavailable so the search falls back to estimates.
type ORSProvider struct {
	client  *http.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
	cache   Cache
	log     *zap.Logger
}

func NewORSProvider(apiKey string, cache Cache, log *zap.Logger) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ors api key is empty")
	}
	return &ORSProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: orsBaseURL,
		limiter: rate.NewLimiter(rate.Limit(orsRequestsPerMinute)/60.0, orsRequestsPerMinute),
		cache:   cache,
		log:     log,
	}, nil
}

// SetBaseURL for tests.
func (p *ORSProvider) SetBaseURL(url string) {
	p.baseURL = url
}

type orsDirectionsRequest struct {
	Coordinates [][]float64      `json:"coordinates"`
	Options     *orsRouteOptions `json:"options,omitempty"`
}

type orsRouteOptions struct {
	AvoidFeatures []string `json:"avoid_features,omitempty"`
}

type orsDirectionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"summary"`
	} `json:"routes"`
}

func (p *ORSProvider) FetchRoute(ctx context.Context, from, to geo.Coordinate,
	mode pkg.OptimizationMode) (datastructure.RouteSample, error) {

	if p.cache != nil {
		if sample, ok := p.cache.Get(ctx, CacheKey(from, to, mode)); ok {
			return sample, nil
		}
	}

	sample, err := p.fetchLive(ctx, from, to, mode)
	if err != nil {
		return datastructure.RouteSample{}, err
	}

	if p.cache != nil {
		p.cache.Put(ctx, CacheKey(from, to, mode), sample)
	}
	return sample, nil
}

func (p *ORSProvider) fetchLive(ctx context.Context, from, to geo.Coordinate,
	mode pkg.OptimizationMode) (datastructure.RouteSample, error) {

	if err := p.limiter.Wait(ctx); err != nil {
		return datastructure.RouteSample{}, util.WrapErrorf(err, ErrProviderUnavailable,
			"ors rate limiter wait")
	}

	// ors takes [lon, lat] pairs
	reqBody := orsDirectionsRequest{
		Coordinates: [][]float64{
			{from.Lon, from.Lat},
			{to.Lon, to.Lat},
		},
	}
	if mode == pkg.CHEAPEST {
		reqBody.Options = &orsRouteOptions{AvoidFeatures: []string{"tollways"}}
	}

	buf, err := json.Marshal(reqBody)
	if err != nil {
		return datastructure.RouteSample{}, util.WrapErrorf(err, ErrProviderUnavailable,
			"ors marshal request")
	}

	url := fmt.Sprintf("%s/v2/directions/%s", p.baseURL, orsProfile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return datastructure.RouteSample{}, util.WrapErrorf(err, ErrProviderUnavailable,
			"ors build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Warn("ors request failed, falling back to estimates", zap.Error(err))
		return datastructure.RouteSample{}, util.WrapErrorf(err, ErrProviderUnavailable,
			"ors request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.Warn("ors returned non-200, falling back to estimates",
			zap.Int("status", resp.StatusCode))
		return datastructure.RouteSample{}, util.WrapErrorf(nil, ErrProviderUnavailable,
			"ors status %d", resp.StatusCode)
	}

	var parsed orsDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return datastructure.RouteSample{}, util.WrapErrorf(err, ErrProviderUnavailable,
			"ors decode response")
	}
	if len(parsed.Routes) == 0 {
		return datastructure.RouteSample{}, util.WrapErrorf(nil, ErrProviderUnavailable,
			"ors empty route set")
	}

	summary := parsed.Routes[0].Summary
	return datastructure.RouteSample{
		DistanceKm:      summary.Distance / 1000.0,
		DurationMinutes: summary.Duration / 60.0,
		Provenance:      datastructure.ProvenanceLive,
	}, nil
}
