package wspd

import (
	"math"

	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/farrel-a-h/Anchorx/pkg/geo"
	"github.com/farrel-a-h/Anchorx/pkg/util"
	"go.uber.org/zap"
)

// DistanceOracle is the distance half of the external shortest path oracle.
type DistanceOracle interface {
	Distance(source, target datastructure.Index) (float64, error)
}

// PairVerification is the diagnostic record of one geometric accuracy check.
type PairVerification struct {
	Pair           SeparatedPair
	SourceVertex   datastructure.Index
	TargetVertex   datastructure.Index
	EstimateKm     float64 // straight-line distance between the representatives
	OracleDistance float64
	RelativeError  float64
	Connected      bool
	Pass           bool
}

// VerifyGeometry checks, for each emitted pair, how far the geometric
// separation estimate deviates from the true graph distance between the two
// representative vertices. tolerance is the accepted relative error. this is
// a diagnostic pass only: it never changes which pairs were emitted, and
// failures are recorded, not fatal.
func (d *PairDecomposer) VerifyGeometry(pairs []SeparatedPair, g datastructure.GeoGraph,
	oracle DistanceOracle, tolerance float64) ([]PairVerification, error) {

	if tolerance <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "tolerance must be > 0, got %v", tolerance)
	}

	results := make([]PairVerification, 0, len(pairs))
	failures := 0
	for _, p := range pairs {
		s, t, ok := d.Representatives(p)
		if !ok {
			continue
		}

		rec := PairVerification{Pair: p, SourceVertex: s, TargetVertex: t}

		sLat, sLon := g.GetVertexCoordinates(s)
		tLat, tLon := g.GetVertexCoordinates(t)
		rec.EstimateKm = geo.CalculateHaversineDistance(sLat, sLon, tLat, tLon)

		dist, err := oracle.Distance(s, t)
		if err != nil {
			if util.HasCode(err, util.ErrDisconnected) {
				results = append(results, rec)
				failures++
				continue
			}
			return nil, err
		}

		rec.Connected = true
		rec.OracleDistance = dist
		if dist > 0 {
			rec.RelativeError = math.Abs(rec.EstimateKm-dist) / dist
		}
		rec.Pass = rec.RelativeError <= tolerance
		if !rec.Pass {
			failures++
		}
		results = append(results, rec)
	}

	d.logger.Info("geometric verification done",
		zap.Int("pairs", len(results)),
		zap.Int("failures", failures),
		zap.Float64("tolerance", tolerance))
	return results, nil
}
