package spatialindex

import (
	"testing"

	"github.com/sblrm/cultural-trip-planner/pkg/datastructure"
	"github.com/sblrm/cultural-trip-planner/pkg/geo"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func buildTestIndex() *Rtree {
	dests := []datastructure.Destination{
		{Id: 1, Name: "Candi Borobudur", Coordinate: geo.Coordinate{Lat: -7.6079, Lon: 110.2038}},
		{Id: 2, Name: "Candi Prambanan", Coordinate: geo.Coordinate{Lat: -7.7520, Lon: 110.4915}},
		{Id: 3, Name: "Keraton Yogyakarta", Coordinate: geo.Coordinate{Lat: -7.8053, Lon: 110.3644}},
		{Id: 4, Name: "Taman Sari", Coordinate: geo.Coordinate{Lat: -7.8099, Lon: 110.3594}},
		{Id: 5, Name: "Jalan Malioboro", Coordinate: geo.Coordinate{Lat: -7.7926, Lon: 110.3656}},
	}
	rt := NewRtree()
	rt.Build(dests, zap.NewNop())
	return rt
}

func resultIds(dests []datastructure.Destination) map[int64]bool {
	ids := make(map[int64]bool, len(dests))
	for _, d := range dests {
		ids[d.Id] = true
	}
	return ids
}

func TestSearchWithinRadiusCityCenter(t *testing.T) {
	rt := buildTestIndex()

	// 5 km around the Yogyakarta city center covers the keraton cluster but
	// not the temples outside town
	got := resultIds(rt.SearchWithinRadius(-7.8014, 110.3647, 5))

	assert.True(t, got[3])
	assert.True(t, got[4])
	assert.True(t, got[5])
	assert.False(t, got[1])
	assert.False(t, got[2])
}

func TestSearchWithinRadiusWide(t *testing.T) {
	rt := buildTestIndex()

	got := rt.SearchWithinRadius(-7.8014, 110.3647, 60)
	assert.Len(t, got, 5)
}

func TestSearchWithinRadiusNoHits(t *testing.T) {
	rt := buildTestIndex()

	// Jakarta is ~430 km away from every indexed destination
	got := rt.SearchWithinRadius(-6.2088, 106.8456, 50)
	assert.Empty(t, got)
}

func TestSearchRadiusIsGreatCircleFiltered(t *testing.T) {
	rt := buildTestIndex()

	for _, d := range rt.SearchWithinRadius(-7.8014, 110.3647, 3) {
		dist := geo.CalculateHaversineDistance(-7.8014, 110.3647, d.Coordinate.Lat, d.Coordinate.Lon)
		assert.LessOrEqual(t, dist, 3.0)
	}
}
