package datastructure

import "testing"

func buildTestGraph() *Graph {
	vertices := []*Vertex{
		NewVertex(50.0, 8.0, 0),
		NewVertex(50.1, 8.1, 1),
		NewVertex(50.2, 8.2, 2),
		NewVertexWithLevel(50.3, 8.3, 3, 7),
	}
	edges := []*Edge{
		NewEdge(0, 0, 1, 1.0),
		NewEdge(1, 1, 2, 2.0),
		NewEdge(2, 0, 2, 5.0),
		NewEdge(3, 2, 3, 1.0),
	}
	return NewGraph(vertices, edges)
}

func TestGraphCounts(t *testing.T) {
	g := buildTestGraph()
	if g.NumberOfVertices() != 4 {
		t.Errorf("NumberOfVertices() = %d, want 4", g.NumberOfVertices())
	}
	if g.NumberOfEdges() != 4 {
		t.Errorf("NumberOfEdges() = %d, want 4", g.NumberOfEdges())
	}
}

func TestGraphOutEdges(t *testing.T) {
	g := buildTestGraph()

	testCases := []struct {
		name      string
		vertex    Index
		wantEdges []Index
	}{
		{name: "two out edges", vertex: 0, wantEdges: []Index{0, 2}},
		{name: "one out edge", vertex: 1, wantEdges: []Index{1}},
		{name: "no out edges", vertex: 3, wantEdges: []Index{}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]Index, 0)
			g.ForOutEdgesOf(tt.vertex, func(e *Edge) {
				if e.GetTail() != tt.vertex {
					t.Errorf("edge %d has tail %d, want %d", e.GetID(), e.GetTail(), tt.vertex)
				}
				got = append(got, e.GetID())
			})
			if len(got) != len(tt.wantEdges) {
				t.Fatalf("out edges of %d = %v, want %v", tt.vertex, got, tt.wantEdges)
			}
			seen := make(map[Index]bool)
			for _, id := range got {
				seen[id] = true
			}
			for _, id := range tt.wantEdges {
				if !seen[id] {
					t.Errorf("out edges of %d = %v, missing edge %d", tt.vertex, got, id)
				}
			}
		})
	}
}

func TestGraphVertexAccess(t *testing.T) {
	g := buildTestGraph()

	v := g.GetVertex(3)
	if v.GetID() != 3 || v.GetLevel() != 7 {
		t.Errorf("GetVertex(3) = id %d level %d, want id 3 level 7", v.GetID(), v.GetLevel())
	}

	lat, lon := g.GetVertexCoordinates(1)
	if lat != 50.1 || lon != 8.1 {
		t.Errorf("GetVertexCoordinates(1) = (%v, %v), want (50.1, 8.1)", lat, lon)
	}

	c := g.GetVertexCoordinate(2)
	if c.Lat != 50.2 || c.Lon != 8.2 {
		t.Errorf("GetVertexCoordinate(2) = %v, want (50.2, 8.2)", c)
	}

	e := g.GetEdge(2)
	if e.GetTail() != 0 || e.GetHead() != 2 || e.GetWeight() != 5.0 {
		t.Errorf("GetEdge(2) = (%d -> %d, %v)", e.GetTail(), e.GetHead(), e.GetWeight())
	}
}
