package quadtree

import (
	"math"
	"sort"

	"github.com/farrel-a-h/Anchorx/pkg"
	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/farrel-a-h/Anchorx/pkg/geo"
	"github.com/farrel-a-h/Anchorx/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// subtrees above this point count are built concurrently
	parallelBuildThreshold = 4096
	// bound on the depth at which sibling subtrees may still fork goroutines
	parallelBuildMaxDepth = 4
)

// Point is a projected 2D coordinate plus the identifier of the originating
// graph vertex. immutable once projected.
type Point struct {
	x, y  float64
	id    datastructure.Index
	level int32
}

func NewPoint(x, y float64, id datastructure.Index, level int32) Point {
	return Point{x: x, y: y, id: id, level: level}
}

func (p Point) GetX() float64 {
	return p.x
}

func (p Point) GetY() float64 {
	return p.y
}

func (p Point) GetID() datastructure.Index {
	return p.id
}

func (p Point) GetLevel() int32 {
	return p.level
}

const noChild int32 = -1

// Cell is one square of the quadtree. cells live in the tree's arena and
// reference their children by arena index, so separated pairs downstream can
// hold plain indices instead of pointers into the tree.
type Cell struct {
	children               [4]int32 // arena indices in a,b,c,d order, noChild when absent
	xmin, xmax, ymin, ymax float64
	points                 []Point // leaf cells only
	name                   string
	size                   int32               // number of points in this subtree
	minID                  datastructure.Index // smallest point id in this subtree, valid when size > 0
}

func (c *Cell) Name() string {
	return c.name
}

func (c *Cell) IsLeaf() bool {
	return c.children[0] == noChild && c.children[1] == noChild &&
		c.children[2] == noChild && c.children[3] == noChild
}

func (c *Cell) Size() int {
	return int(c.size)
}

// ChildAt returns the arena index of the q-th child (a, b, c, d order), or a
// negative value when absent.
func (c *Cell) ChildAt(q int) int32 {
	return c.children[q]
}

func (c *Cell) Bounds() (xmin, xmax, ymin, ymax float64) {
	return c.xmin, c.xmax, c.ymin, c.ymax
}

// MinPointID returns the smallest vertex id contained in this subtree.
func (c *Cell) MinPointID() (datastructure.Index, bool) {
	if c.size == 0 {
		return 0, false
	}
	return c.minID, true
}

// Points returns the points stored directly in this cell (leaf cells only;
// inner cells store no points).
func (c *Cell) Points() []Point {
	return c.points
}

// Diameter of the cell bounding square. a cell holding at most one point has
// diameter 0 by definition, any other cell uses its side length.
func (c *Cell) Diameter() float64 {
	if c.size <= 1 {
		return 0.0
	}
	return c.xmax - c.xmin
}

// Distance returns the minimal corner-to-corner distance between the two
// cells' bounding squares.
func (c *Cell) Distance(other *Cell) float64 {
	sx := [4]float64{c.xmin, c.xmin, c.xmax, c.xmax}
	sy := [4]float64{c.ymin, c.ymax, c.ymin, c.ymax}
	ox := [4]float64{other.xmin, other.xmin, other.xmax, other.xmax}
	oy := [4]float64{other.ymin, other.ymax, other.ymin, other.ymax}

	best := math.MaxFloat64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			dx := sx[i] - ox[j]
			dy := sy[i] - oy[j]
			d := math.Sqrt(dx*dx + dy*dy)
			if d < best {
				best = d
			}
		}
	}
	return best
}

// QuadTree is a hierarchical spatial index over projected vertex coordinates.
// read-only after construction.
type QuadTree struct {
	cells     []Cell
	projector *geo.Projector
	pointLeaf map[datastructure.Index]int32 // vertex id -> containing leaf arena index
	maxDepth  int
}

// NewQuadTree projects all graph vertices to the unit square and partitions
// them by recursive quadrant splitting. a cell splits into four equal-area
// children while it holds more than one point and neither the depth limit nor
// the minimum cell size has been reached. construction is a pure function of
// the vertex set and maxDepth; the tree shape does not depend on how the work
// was scheduled.
func NewQuadTree(g datastructure.GeoGraph, maxDepth int, logger *zap.Logger) (*QuadTree, error) {
	ids := make([]datastructure.Index, g.NumberOfVertices())
	for i := range ids {
		ids[i] = datastructure.Index(i)
	}
	return NewQuadTreeFromVertices(g, ids, maxDepth, logger)
}

// NewQuadTreeFromVertices indexes only the given vertices (e.g. a bounding
// box selection); points keep their original graph vertex ids.
func NewQuadTreeFromVertices(g datastructure.GeoGraph, ids []datastructure.Index, maxDepth int, logger *zap.Logger) (*QuadTree, error) {
	if maxDepth < 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "max tree depth must be >= 0, got %d", maxDepth)
	}

	n := len(ids)
	coords := make([]geo.Coordinate, n)
	for i, id := range ids {
		lat, lon := g.GetVertexCoordinates(id)
		coords[i] = geo.NewCoordinate(lat, lon)
	}

	projector, err := geo.NewProjector(coords)
	if err != nil {
		return nil, err
	}

	points := make([]Point, n)
	for i, id := range ids {
		x, y := projector.Project(coords[i])
		points[i] = NewPoint(x, y, id, g.GetVertex(id).GetLevel())
	}

	logger.Info("building quadtree", zap.Int("points", n), zap.Int("maxDepth", maxDepth))

	b := builder{maxDepth: maxDepth}
	cells := b.buildCell(0.0, 1.0, 0.0, 1.0, points, 0, "")

	tree := &QuadTree{
		cells:     cells,
		projector: projector,
		pointLeaf: make(map[datastructure.Index]int32, n),
		maxDepth:  maxDepth,
	}
	for i := range tree.cells {
		for _, p := range tree.cells[i].points {
			tree.pointLeaf[p.id] = int32(i)
		}
	}

	logger.Info("quadtree built", zap.Int("cells", len(tree.cells)))
	return tree, nil
}

type builder struct {
	maxDepth int
}

// buildCell creates a subtree as a local arena with the subtree root at index
// 0 and child indices relative to that arena. sibling subtrees may be built
// concurrently; the merge order is fixed (a, b, c, d), so arena layout is
// deterministic.
func (b *builder) buildCell(xmin, xmax, ymin, ymax float64, points []Point, depth int, name string) []Cell {
	if len(points) <= 1 || depth >= b.maxDepth || xmax-xmin <= pkg.MIN_CELL_SIZE {
		return []Cell{b.newLeaf(xmin, xmax, ymin, ymax, points, name)}
	}

	xhalf := xmin + (xmax-xmin)/2.0
	yhalf := ymin + (ymax-ymin)/2.0

	var quadrants [4][]Point
	for _, p := range points {
		if p.x > xhalf {
			if p.y > yhalf {
				quadrants[1] = append(quadrants[1], p) // b, top right
			} else {
				quadrants[3] = append(quadrants[3], p) // d, bottom right
			}
		} else {
			if p.y > yhalf {
				quadrants[0] = append(quadrants[0], p) // a, top left
			} else {
				quadrants[2] = append(quadrants[2], p) // c, bottom left
			}
		}
	}

	bounds := [4][4]float64{
		{xmin, xhalf, yhalf, ymax}, // a
		{xhalf, xmax, yhalf, ymax}, // b
		{xmin, xhalf, ymin, yhalf}, // c
		{xhalf, xmax, ymin, yhalf}, // d
	}
	symbols := [4]byte{
		pkg.QUADRANT_TOP_LEFT,
		pkg.QUADRANT_TOP_RIGHT,
		pkg.QUADRANT_BOTTOM_LEFT,
		pkg.QUADRANT_BOTTOM_RIGHT,
	}

	var subtrees [4][]Cell
	if len(points) >= parallelBuildThreshold && depth < parallelBuildMaxDepth {
		var eg errgroup.Group
		for q := 0; q < 4; q++ {
			q := q
			eg.Go(func() error {
				bb := bounds[q]
				subtrees[q] = b.buildCell(bb[0], bb[1], bb[2], bb[3], quadrants[q], depth+1, string(symbols[q])+name)
				return nil
			})
		}
		_ = eg.Wait()
	} else {
		for q := 0; q < 4; q++ {
			bb := bounds[q]
			subtrees[q] = b.buildCell(bb[0], bb[1], bb[2], bb[3], quadrants[q], depth+1, string(symbols[q])+name)
		}
	}

	root := Cell{
		xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax,
		name:  name,
		minID: math.MaxUint32,
	}
	out := []Cell{root}
	for q := 0; q < 4; q++ {
		offset := int32(len(out))
		out[0].children[q] = offset
		for _, c := range subtrees[q] {
			for k := range c.children {
				if c.children[k] != noChild {
					c.children[k] += offset
				}
			}
			out = append(out, c)
		}
		sub := &out[offset]
		out[0].size += sub.size
		if sub.size > 0 && sub.minID < out[0].minID {
			out[0].minID = sub.minID
		}
	}
	return out
}

func (b *builder) newLeaf(xmin, xmax, ymin, ymax float64, points []Point, name string) Cell {
	// ch-level descending, id ascending. keeps high-level vertices first for
	// representative picks while staying deterministic.
	sort.Slice(points, func(i, j int) bool {
		if points[i].level != points[j].level {
			return points[i].level > points[j].level
		}
		return points[i].id < points[j].id
	})

	leaf := Cell{
		children: [4]int32{noChild, noChild, noChild, noChild},
		xmin:     xmin, xmax: xmax, ymin: ymin, ymax: ymax,
		points: points,
		name:   name,
		size:   int32(len(points)),
		minID:  math.MaxUint32,
	}
	for _, p := range points {
		if p.id < leaf.minID {
			leaf.minID = p.id
		}
	}
	return leaf
}

func (t *QuadTree) Root() *Cell {
	return &t.cells[0]
}

func (t *QuadTree) CellAt(i int32) *Cell {
	return &t.cells[i]
}

func (t *QuadTree) NumCells() int {
	return len(t.cells)
}

func (t *QuadTree) Projector() *geo.Projector {
	return t.projector
}

func quadrantIndex(symbol byte) int {
	switch symbol {
	case pkg.QUADRANT_TOP_LEFT:
		return 0
	case pkg.QUADRANT_TOP_RIGHT:
		return 1
	case pkg.QUADRANT_BOTTOM_LEFT:
		return 2
	case pkg.QUADRANT_BOTTOM_RIGHT:
		return 3
	default:
		return -1
	}
}

// CellByName resolves a cell by its name, reading quadrant symbols from the
// end of the name. descending stops at the deepest existing cell on the named
// path.
func (t *QuadTree) CellByName(name string) (*Cell, error) {
	cur := int32(0)
	for i := len(name) - 1; i >= 0; i-- {
		q := quadrantIndex(name[i])
		if q < 0 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "cell name %q contains symbol not in [abcd]", name)
		}
		next := t.cells[cur].children[q]
		if next == noChild {
			break
		}
		cur = next
	}
	return &t.cells[cur], nil
}

// AncestorsOfPoint returns the root-to-leaf cell chain containing the vertex.
func (t *QuadTree) AncestorsOfPoint(id datastructure.Index) ([]*Cell, error) {
	leaf, ok := t.pointLeaf[id]
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "vertex %d is not indexed", id)
	}

	name := t.cells[leaf].name
	chain := []*Cell{&t.cells[0]}
	cur := int32(0)
	for i := len(name) - 1; i >= 0; i-- {
		cur = t.cells[cur].children[quadrantIndex(name[i])]
		chain = append(chain, &t.cells[cur])
	}
	return chain, nil
}

// CellCorners inverse-projects the cell's bounding square corners back to
// geographic coordinates, in order bottom-left, top-left, bottom-right,
// top-right. cell corners generally are not graph vertices, so this goes
// through the projector's inverse scaling.
func (t *QuadTree) CellCorners(c *Cell) [4]geo.Coordinate {
	return [4]geo.Coordinate{
		t.projector.Inverse(c.xmin, c.ymin),
		t.projector.Inverse(c.xmin, c.ymax),
		t.projector.Inverse(c.xmax, c.ymin),
		t.projector.Inverse(c.xmax, c.ymax),
	}
}

// PointsIn collects every point of the cell's subtree.
func (t *QuadTree) PointsIn(c *Cell) []Point {
	if c.IsLeaf() {
		out := make([]Point, len(c.points))
		copy(out, c.points)
		return out
	}
	var out []Point
	for _, ch := range c.children {
		if ch != noChild {
			out = append(out, t.PointsIn(&t.cells[ch])...)
		}
	}
	return out
}
