package pkg

const (
	INF_WEIGHT float64 = 1e15

	// quadrant symbols. a cell's name is its own symbol prepended to its parent's
	// name, so a cell's ancestor chain can be read from the end of the name.
	// define:  a b
	//          c d
	// and the root: ""
	QUADRANT_TOP_LEFT     byte = 'a'
	QUADRANT_TOP_RIGHT    byte = 'b'
	QUADRANT_BOTTOM_LEFT  byte = 'c'
	QUADRANT_BOTTOM_RIGHT byte = 'd'

	// cells with a side length below this are never split further, even if they
	// still hold more than one point. coordinates are scaled to the unit square.
	MIN_CELL_SIZE = 1e-12

	DEFAULT_EPSILON        = 0.5
	DEFAULT_MAX_TREE_DEPTH = 64
)

const (
	DEBUG = false
)
