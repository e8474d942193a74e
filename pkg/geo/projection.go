package geo

import (
	"math"

	"github.com/farrel-a-h/Anchorx/pkg/util"
)

// MercatorProject maps (lat, lon) in degrees to plane coordinates (x, y).
func MercatorProject(lat, lon float64) (float64, float64) {
	x := util.DegreeToRadians(lon)
	y := math.Atanh(math.Sin(util.DegreeToRadians(lat)))
	return x, y
}

// InverseMercatorProject maps plane coordinates (x, y) back to (lat, lon) in degrees.
func InverseMercatorProject(x, y float64) (float64, float64) {
	lat := util.RadiansToDegree(math.Atan(math.Sinh(y)))
	lon := util.RadiansToDegree(x)
	return lat, lon
}

// MinMaxScaler scales projected coordinates to the unit square and back.
type MinMaxScaler struct {
	xMin, xMax float64
	yMin, yMax float64
}

func NewMinMaxScaler(xs, ys []float64) *MinMaxScaler {
	s := &MinMaxScaler{
		xMin: math.MaxFloat64,
		xMax: -math.MaxFloat64,
		yMin: math.MaxFloat64,
		yMax: -math.MaxFloat64,
	}
	for i := range xs {
		if xs[i] > s.xMax {
			s.xMax = xs[i]
		}
		if xs[i] < s.xMin {
			s.xMin = xs[i]
		}
		if ys[i] > s.yMax {
			s.yMax = ys[i]
		}
		if ys[i] < s.yMin {
			s.yMin = ys[i]
		}
	}
	// degenerate input (all points identical, or a single point). avoid division by zero.
	if s.xMax == s.xMin {
		s.xMax = s.xMin + 1
	}
	if s.yMax == s.yMin {
		s.yMax = s.yMin + 1
	}
	return s
}

func (s *MinMaxScaler) Scale(x, y float64) (float64, float64) {
	return (x - s.xMin) / (s.xMax - s.xMin), (y - s.yMin) / (s.yMax - s.yMin)
}

func (s *MinMaxScaler) InverseScale(x, y float64) (float64, float64) {
	return (s.xMax-s.xMin)*x + s.xMin, (s.yMax-s.yMin)*y + s.yMin
}

// Projector converts geographic coordinates to the projected, uniformly scaled
// plane and retains the scaling parameters so arbitrary plane points (cell
// corners, not just input nodes) can be mapped back to geographic coordinates.
type Projector struct {
	scaler *MinMaxScaler
}

// NewProjector fits a projector to the given coordinates. coordinates must be
// valid (finite, in range); the caller filters beforehand.
func NewProjector(coords []Coordinate) (*Projector, error) {
	xs := make([]float64, len(coords))
	ys := make([]float64, len(coords))
	for i, c := range coords {
		if !c.IsValid() {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"non-finite or out-of-range coordinate (%v, %v)", c.Lat, c.Lon)
		}
		xs[i], ys[i] = MercatorProject(c.Lat, c.Lon)
	}
	return &Projector{scaler: NewMinMaxScaler(xs, ys)}, nil
}

// Project maps a geographic coordinate into the unit square.
func (p *Projector) Project(c Coordinate) (float64, float64) {
	x, y := MercatorProject(c.Lat, c.Lon)
	return p.scaler.Scale(x, y)
}

// Inverse maps a unit-square point back to a geographic coordinate.
func (p *Projector) Inverse(x, y float64) Coordinate {
	px, py := p.scaler.InverseScale(x, y)
	lat, lon := InverseMercatorProject(px, py)
	return NewCoordinate(lat, lon)
}
