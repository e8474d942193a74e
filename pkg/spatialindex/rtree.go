package spatialindex

import (
	"math"

	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/farrel-a-h/Anchorx/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// VertexIndex is an r-tree over graph vertex coordinates, used to restrict a
// run to a rectangular region and to snap arbitrary coordinates to the
// nearest graph vertex.
type VertexIndex struct {
	tr *rtree.RTreeG[datastructure.Index]
}

func NewVertexIndex() *VertexIndex {
	var tr rtree.RTreeG[datastructure.Index]
	return &VertexIndex{
		tr: &tr,
	}
}

func (vi *VertexIndex) Build(g datastructure.GeoGraph, logger *zap.Logger) {
	logger.Info("building vertex spatial index...")
	n := g.NumberOfVertices()
	for v := 0; v < n; v++ {
		lat, lon := g.GetVertexCoordinates(datastructure.Index(v))
		vi.tr.Insert([2]float64{lon, lat}, [2]float64{lon, lat}, datastructure.Index(v))
	}
	logger.Info("vertex spatial index built", zap.Int("vertices", n))
}

// InBoundingBox returns every vertex inside [minLat, minLon, maxLat, maxLon].
func (vi *VertexIndex) InBoundingBox(minLat, minLon, maxLat, maxLon float64) []datastructure.Index {
	results := make([]datastructure.Index, 0)
	vi.tr.Search([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
		func(min, max [2]float64, data datastructure.Index) bool {
			results = append(results, data)
			return true
		})
	return results
}

// NearestVertex snaps a coordinate to the closest indexed vertex.
func (vi *VertexIndex) NearestVertex(lat, lon float64) (datastructure.Index, bool) {
	best := datastructure.Index(0)
	bestDist := math.MaxFloat64
	found := false
	vi.tr.Nearby(rtree.BoxDist[float64, datastructure.Index]([2]float64{lon, lat}, [2]float64{lon, lat}, nil),
		func(min, max [2]float64, data datastructure.Index, dist float64) bool {
			d := geo.CalculateHaversineDistance(lat, lon, min[1], min[0])
			if d < bestDist {
				bestDist = d
				best = data
				found = true
			}
			// box-distance order: the first candidate is the nearest point
			return false
		})
	return best, found
}
