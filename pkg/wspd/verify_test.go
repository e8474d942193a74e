package wspd

import (
	"testing"

	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/farrel-a-h/Anchorx/pkg/geo"
	"github.com/farrel-a-h/Anchorx/pkg/util"
	"go.uber.org/zap"
)

// haversineOracle answers with the straight-line distance, so every
// verification record comes out with zero relative error.
type haversineOracle struct {
	g datastructure.GeoGraph
}

func (o *haversineOracle) Distance(source, target datastructure.Index) (float64, error) {
	sLat, sLon := o.g.GetVertexCoordinates(source)
	tLat, tLon := o.g.GetVertexCoordinates(target)
	return geo.CalculateHaversineDistance(sLat, sLon, tLat, tLon), nil
}

type disconnectedOracle struct{}

func (o *disconnectedOracle) Distance(source, target datastructure.Index) (float64, error) {
	return 0, util.WrapErrorf(nil, util.ErrDisconnected, "vertex %d is not reachable from vertex %d", target, source)
}

func TestVerifyGeometryPasses(t *testing.T) {
	g := fourCornerGraph()
	tree := buildTree(t, g, 64)
	d, err := NewPairDecomposer(tree, 0.1, 2, zap.NewNop())
	if err != nil {
		t.Fatalf("NewPairDecomposer: %v", err)
	}
	pairs, err := d.Decompose()
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	results, err := d.VerifyGeometry(pairs, g, &haversineOracle{g: g}, 0.05)
	if err != nil {
		t.Fatalf("VerifyGeometry: %v", err)
	}
	if len(results) != len(pairs) {
		t.Fatalf("verified %d pairs, want %d", len(results), len(pairs))
	}
	for _, r := range results {
		if !r.Connected || !r.Pass {
			t.Errorf("pair (%d, %d): connected=%v pass=%v relErr=%v",
				r.Pair.A, r.Pair.B, r.Connected, r.Pass, r.RelativeError)
		}
	}
}

func TestVerifyGeometryRecordsDisconnected(t *testing.T) {
	g := fourCornerGraph()
	tree := buildTree(t, g, 64)
	d, err := NewPairDecomposer(tree, 0.1, 2, zap.NewNop())
	if err != nil {
		t.Fatalf("NewPairDecomposer: %v", err)
	}
	pairs, err := d.Decompose()
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	results, err := d.VerifyGeometry(pairs, g, &disconnectedOracle{}, 0.05)
	if err != nil {
		t.Fatalf("VerifyGeometry: %v", err)
	}
	for _, r := range results {
		if r.Connected || r.Pass {
			t.Errorf("pair (%d, %d) recorded as connected against a disconnected oracle", r.Pair.A, r.Pair.B)
		}
	}
}

func TestVerifyGeometryRejectsTolerance(t *testing.T) {
	tree := buildTree(t, fourCornerGraph(), 64)
	d, err := NewPairDecomposer(tree, 0.1, 2, zap.NewNop())
	if err != nil {
		t.Fatalf("NewPairDecomposer: %v", err)
	}
	if _, err := d.VerifyGeometry(nil, fourCornerGraph(), &disconnectedOracle{}, 0); !util.HasCode(err, util.ErrBadParamInput) {
		t.Errorf("VerifyGeometry(tolerance 0) error = %v, want bad param", err)
	}
}
