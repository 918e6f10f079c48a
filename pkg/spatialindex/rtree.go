package spatialindex

import (
	"math"

	"github.com/sblrm/cultural-trip-planner/pkg/datastructure"
	"github.com/sblrm/cultural-trip-planner/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree spatial index over the destination catalog, used for the
// nearby-destination lookup on the map surface.
type Rtree struct {
	tr *rtree.RTreeG[datastructure.Destination]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Destination]
	return &Rtree{
		tr: &tr,
	}
}

// Build index every destination as a point entry.
func (rt *Rtree) Build(dests []datastructure.Destination, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("destinations", len(dests)))
	for _, d := range dests {
		point := [2]float64{d.Coordinate.Lon, d.Coordinate.Lat}
		rt.tr.Insert(point, point, d)
	}
	log.Info("R-tree spatial index built.")
}

// SearchWithinRadius all destinations within radius (in km) from the query
// point. bounding box candidates are filtered by great-circle distance.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Destination {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius*math.Sqrt2)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius*math.Sqrt2)

	results := make([]datastructure.Destination, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, d datastructure.Destination) bool {
			if geo.CalculateHaversineDistance(qLat, qLon, d.Coordinate.Lat, d.Coordinate.Lon) <= radius {
				results = append(results, d)
			}
			return true
		})
	return results
}
