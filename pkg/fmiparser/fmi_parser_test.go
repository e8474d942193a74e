package fmiparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/farrel-a-h/Anchorx/pkg/util"
	"go.uber.org/zap"
)

func writeTempGraph(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "graph.fmi")
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp graph: %v", err)
	}
	return filename
}

const chGraph = `# Id : test
# Timestamp : 1619374936
# Type: maxspeed-ch

3
2
0 100 49.50 9.50 0 2
1 101 49.60 9.60 0 0
2 102 49.70 9.70 0 1
0 1 120 13 50
1 2 80 13 50
`

func TestParseCHGraph(t *testing.T) {
	g, err := NewFMIParser().Parse(writeTempGraph(t, chGraph), zap.NewNop())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if g.NumberOfVertices() != 3 {
		t.Errorf("NumberOfVertices() = %d, want 3", g.NumberOfVertices())
	}
	if g.NumberOfEdges() != 2 {
		t.Errorf("NumberOfEdges() = %d, want 2", g.NumberOfEdges())
	}

	lat, lon := g.GetVertexCoordinates(1)
	if lat != 49.60 || lon != 9.60 {
		t.Errorf("vertex 1 at (%v, %v), want (49.60, 9.60)", lat, lon)
	}
	if level := g.GetVertex(0).GetLevel(); level != 2 {
		t.Errorf("vertex 0 contraction level = %d, want 2", level)
	}

	e := g.GetEdge(0)
	if e.GetTail() != 0 || e.GetHead() != 1 || e.GetWeight() != 120 {
		t.Errorf("edge 0 = (%d -> %d, %v), want (0 -> 1, 120)", e.GetTail(), e.GetHead(), e.GetWeight())
	}
}

func TestParsePlainGraphWithoutLevels(t *testing.T) {
	content := `# Type: maxspeed

2
1
0 100 50.0 8.0 0
1 101 50.1 8.1 0
0 1 60 13 50
`
	g, err := NewFMIParser().Parse(writeTempGraph(t, content), zap.NewNop())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if level := g.GetVertex(0).GetLevel(); level != 0 {
		t.Errorf("vertex 0 level = %d, want 0 for the plain variant", level)
	}
	g.ForOutEdgesOf(0, func(e *datastructure.Edge) {
		if e.GetHead() != 1 {
			t.Errorf("edge head = %d, want 1", e.GetHead())
		}
	})
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{
			name:    "empty graph",
			content: "0\n0\n",
		},
		{
			name:    "malformed coordinate",
			content: "1\n0\n0 100 999.0 8.0 0\n",
		},
		{
			name:    "truncated node section",
			content: "2\n0\n0 100 50.0 8.0 0\n",
		},
		{
			name:    "edge endpoint out of range",
			content: "1\n1\n0 100 50.0 8.0 0\n0 5 60 13 50\n",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFMIParser().Parse(writeTempGraph(t, tt.content), zap.NewNop())
			if !util.HasCode(err, util.ErrBadParamInput) {
				t.Errorf("Parse error = %v, want bad param", err)
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := NewFMIParser().Parse(filepath.Join(t.TempDir(), "absent.fmi"), zap.NewNop())
	if err == nil {
		t.Error("expected error for a missing file")
	}
}
