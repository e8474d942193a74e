package datastructure

import (
	"github.com/farrel-a-h/Anchorx/pkg/geo"
)

type Index uint32

type Vertex struct {
	lat   float64
	lon   float64
	id    Index
	level int32 // contraction level when the input graph is a ch graph, 0 otherwise
}

func NewVertex(lat, lon float64, id Index) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
		id:  id,
	}
}

func NewVertexWithLevel(lat, lon float64, id Index, level int32) *Vertex {
	return &Vertex{
		lat:   lat,
		lon:   lon,
		id:    id,
		level: level,
	}
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetLevel() int32 {
	return v.level
}

type Edge struct {
	weight float64
	id     Index
	tail   Index
	head   Index
}

func NewEdge(id, tail, head Index, weight float64) *Edge {
	return &Edge{
		id:     id,
		tail:   tail,
		head:   head,
		weight: weight,
	}
}

func (e *Edge) GetID() Index {
	return e.id
}

func (e *Edge) GetTail() Index {
	return e.tail
}

func (e *Edge) GetHead() Index {
	return e.head
}

func (e *Edge) GetWeight() float64 {
	return e.weight
}

// capability views of a graph. each pipeline stage takes only the view it
// needs, so a concrete graph can be loaded without the parts a stage never
// touches.

// GeoGraph exposes vertex identifiers and coordinates.
type GeoGraph interface {
	NumberOfVertices() int
	GetVertex(id Index) *Vertex
	GetVertexCoordinates(id Index) (float64, float64)
}

// SearchGraph exposes vertex adjacency for shortest path searches.
type SearchGraph interface {
	NumberOfVertices() int
	NumberOfEdges() int
	ForOutEdgesOf(v Index, fn func(e *Edge))
}

// CoverGraph exposes edge lookups for the covering stage.
type CoverGraph interface {
	NumberOfEdges() int
	GetEdge(id Index) *Edge
}

// Graph is a static graph in compressed sparse row form. implements GeoGraph,
// SearchGraph and CoverGraph.
type Graph struct {
	vertices []*Vertex
	edges    []*Edge
	firstOut []Index // firstOut[v] = index of v's first out edge in outEdges
	outEdges []Index // edge ids grouped by tail
}

func NewGraph(vertices []*Vertex, edges []*Edge) *Graph {
	n := len(vertices)

	outDegree := make([]Index, n+1)
	for _, e := range edges {
		outDegree[e.tail+1]++
	}
	firstOut := make([]Index, n+1)
	for v := 1; v <= n; v++ {
		firstOut[v] = firstOut[v-1] + outDegree[v]
	}

	outEdges := make([]Index, len(edges))
	next := make([]Index, n)
	copy(next, firstOut[:n])
	for _, e := range edges {
		outEdges[next[e.tail]] = e.id
		next[e.tail]++
	}

	return &Graph{
		vertices: vertices,
		edges:    edges,
		firstOut: firstOut,
		outEdges: outEdges,
	}
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) GetVertex(id Index) *Vertex {
	return g.vertices[id]
}

func (g *Graph) GetVertices() []*Vertex {
	return g.vertices
}

func (g *Graph) GetVertexCoordinates(id Index) (float64, float64) {
	v := g.vertices[id]
	return v.lat, v.lon
}

func (g *Graph) GetVertexCoordinate(id Index) geo.Coordinate {
	v := g.vertices[id]
	return geo.NewCoordinate(v.lat, v.lon)
}

func (g *Graph) GetEdge(id Index) *Edge {
	return g.edges[id]
}

func (g *Graph) ForOutEdgesOf(v Index, fn func(e *Edge)) {
	for i := g.firstOut[v]; i < g.firstOut[v+1]; i++ {
		fn(g.edges[g.outEdges[i]])
	}
}
