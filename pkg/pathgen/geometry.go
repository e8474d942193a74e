package pathgen

import (
	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/twpayne/go-polyline"
)

// PathGeometry encodes the vertex chain of a path as a google polyline string
// for diagnostics output. needs the cover view for edge endpoints and the geo
// view for coordinates.
func PathGeometry(g interface {
	datastructure.CoverGraph
	datastructure.GeoGraph
}, p Path) string {
	if len(p.Edges) == 0 {
		return ""
	}

	coords := make([][]float64, 0, len(p.Edges)+1)
	first := g.GetEdge(p.Edges[0])
	lat, lon := g.GetVertexCoordinates(first.GetTail())
	coords = append(coords, []float64{lat, lon})
	for _, eid := range p.Edges {
		e := g.GetEdge(eid)
		lat, lon := g.GetVertexCoordinates(e.GetHead())
		coords = append(coords, []float64{lat, lon})
	}
	return string(polyline.EncodeCoords(coords))
}
