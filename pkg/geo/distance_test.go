package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKnownDistance(t *testing.T) {
	// Jakarta (Monas) to Yogyakarta (Tugu), roughly 430 km great-circle
	jakarta := NewCoordinate(-6.2088, 106.8456)
	yogyakarta := NewCoordinate(-7.7956, 110.3695)

	dist := HaversineDistance(jakarta, yogyakarta)
	assert.InDelta(t, 430.0, dist, 10.0)
}

func TestHaversineZeroAndSymmetry(t *testing.T) {
	a := NewCoordinate(-7.6079, 110.2038)
	b := NewCoordinate(-7.7520, 110.4915)

	assert.Equal(t, 0.0, HaversineDistance(a, a))
	assert.InDelta(t, HaversineDistance(a, b), HaversineDistance(b, a), 1e-9)
	assert.Greater(t, HaversineDistance(a, b), 0.0)
}

func TestHaversineShortDistance(t *testing.T) {
	// Keraton Yogyakarta to Taman Sari, a few hundred meters
	keraton := NewCoordinate(-7.8053, 110.3644)
	tamanSari := NewCoordinate(-7.8099, 110.3594)

	dist := HaversineDistance(keraton, tamanSari)
	assert.Greater(t, dist, 0.3)
	assert.Less(t, dist, 1.5)
}

func TestCoordinateValid(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinate
		want bool
	}{
		{"yogyakarta", NewCoordinate(-7.7956, 110.3695), true},
		{"north pole", NewCoordinate(90, 0), true},
		{"antimeridian", NewCoordinate(0, -180), true},
		{"lat out of range", NewCoordinate(91, 0), false},
		{"lon out of range", NewCoordinate(0, 181), false},
		{"nan lat", NewCoordinate(math.NaN(), 110), false},
		{"nan lon", NewCoordinate(-7.8, math.NaN()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Valid())
		})
	}
}

func TestGetDestinationPointRoundTrip(t *testing.T) {
	start := NewCoordinate(-7.7956, 110.3695)

	lat, lon := GetDestinationPoint(start.Lat, start.Lon, 45, 10.0)
	dist := HaversineDistance(start, NewCoordinate(lat, lon))
	assert.InDelta(t, 10.0, dist, 0.05)
}
