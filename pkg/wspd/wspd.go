package wspd

import (
	"runtime"
	"sort"
	"sync"

	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/farrel-a-h/Anchorx/pkg/quadtree"
	"github.com/farrel-a-h/Anchorx/pkg/util"
	"go.uber.org/zap"
)

// SeparatedPair references two quadtree cells by arena index, A <= B. the
// quadtree owns the cells; a pair is only an index pair and stays valid as
// long as the tree is alive.
type SeparatedPair struct {
	A int32
	B int32
}

func newSeparatedPair(a, b int32) SeparatedPair {
	if a > b {
		a, b = b, a
	}
	return SeparatedPair{A: a, B: b}
}

// canonical key, order independent because A <= B.
func (p SeparatedPair) key() uint64 {
	return uint64(uint32(p.A))<<32 | uint64(uint32(p.B))
}

// PairDecomposer computes a well separated pair decomposition of a quadtree:
// a set of cell pairs (A, B) with dist(A, B) >= epsilon * max(diam(A), diam(B))
// such that every distinct point pair is represented by exactly one cell pair.
type PairDecomposer struct {
	tree       *quadtree.QuadTree
	epsilon    float64
	numWorkers int
	logger     *zap.Logger

	droppedLeafPairs int
}

func NewPairDecomposer(tree *quadtree.QuadTree, epsilon float64, numWorkers int, logger *zap.Logger) (*PairDecomposer, error) {
	if epsilon <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "epsilon must be > 0, got %v", epsilon)
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &PairDecomposer{
		tree:       tree,
		epsilon:    epsilon,
		numWorkers: numWorkers,
		logger:     logger,
	}, nil
}

// DroppedLeafPairs counts worklist pairs that were neither separated nor
// splittable (both sides depth-capped leaves). only non-zero when the tree
// was built with a depth limit low enough to leave multi-point leaves.
func (d *PairDecomposer) DroppedLeafPairs() int {
	return d.droppedLeafPairs
}

type worklist struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   [][2]int32
	pending int // popped but not yet finished items keep the workers alive
}

func newWorklist(seed [2]int32) *worklist {
	w := &worklist{items: [][2]int32{seed}, pending: 1}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *worklist) push(items ...[2]int32) {
	w.mu.Lock()
	w.items = append(w.items, items...)
	w.pending += len(items)
	w.cond.Broadcast()
	w.mu.Unlock()
}

// pop blocks until an item is available or all work is finished.
func (w *worklist) pop() ([2]int32, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for len(w.items) == 0 && w.pending > 0 {
		w.cond.Wait()
	}
	if len(w.items) == 0 {
		return [2]int32{}, false
	}
	item := w.items[len(w.items)-1]
	w.items = w.items[:len(w.items)-1]
	return item, true
}

func (w *worklist) done() {
	w.mu.Lock()
	w.pending--
	if w.pending == 0 {
		w.cond.Broadcast()
	}
	w.mu.Unlock()
}

// Decompose runs the recursive splitting over an explicit worklist seeded with
// (root, root). worklist items are independent once pushed and are processed
// by a pool of workers; emitted pairs are deduplicated through their canonical
// key, so the result does not depend on scheduling. the returned slice is
// sorted by (A, B).
func (d *PairDecomposer) Decompose() ([]SeparatedPair, error) {
	root := d.tree.Root()
	if root.Size() <= 1 {
		// zero pairs by definition
		return nil, nil
	}

	var (
		emitMu  sync.Mutex
		emitted = make(map[uint64]SeparatedPair)
		dropped int
	)

	wl := newWorklist([2]int32{0, 0})

	var wg sync.WaitGroup
	for i := 0; i < d.numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				item, ok := wl.pop()
				if !ok {
					return
				}
				pairs, emit, drop := d.process(item)
				if len(pairs) > 0 {
					wl.push(pairs...)
				}
				if emit != nil {
					emitMu.Lock()
					emitted[emit.key()] = *emit
					emitMu.Unlock()
				}
				if drop {
					emitMu.Lock()
					dropped++
					emitMu.Unlock()
				}
				wl.done()
			}
		}()
	}
	wg.Wait()

	d.droppedLeafPairs = dropped
	if dropped > 0 {
		d.logger.Warn("dropped unseparable leaf pairs", zap.Int("count", dropped))
	}

	out := make([]SeparatedPair, 0, len(emitted))
	for _, p := range emitted {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})

	d.logger.Info("wspd done",
		zap.Float64("epsilon", d.epsilon),
		zap.Int("pairs", len(out)))
	return out, nil
}

// process handles one worklist pair: returns sub-pairs to push, an optional
// pair to emit, and whether the pair was dropped as unsplittable.
func (d *PairDecomposer) process(item [2]int32) (push [][2]int32, emit *SeparatedPair, drop bool) {
	u, v := item[0], item[1]
	cu, cv := d.tree.CellAt(u), d.tree.CellAt(v)

	// a single point paired with itself carries no separation information
	if u == v && cu.Size() <= 1 {
		return nil, nil, false
	}

	// order so that cu is the side with the larger diameter; ties broken by
	// arena index so the traversal is identity-determined.
	if cv.Diameter() > cu.Diameter() || (cv.Diameter() == cu.Diameter() && v < u) {
		u, v = v, u
		cu, cv = cv, cu
	}

	if u != v && d.wellSeparated(cu, cv) {
		p := newSeparatedPair(u, v)
		return nil, &p, false
	}

	// split the larger cell; if it is a leaf, split the other side instead
	splitCell, other := cu, v
	if splitCell.IsLeaf() {
		splitCell, other = cv, u
	}
	if splitCell.IsLeaf() {
		// neither side splittable: depth-capped leaves too close together
		return nil, nil, true
	}

	for q := 0; q < 4; q++ {
		child := splitCell.ChildAt(q)
		if child < 0 {
			continue
		}
		if d.tree.CellAt(child).Size() == 0 {
			// empty quadrants contribute no point pairs
			continue
		}
		push = append(push, [2]int32{child, other})
	}
	return push, nil, false
}

// wellSeparated reports dist(A, B) >= epsilon * max(diam(A), diam(B)).
func (d *PairDecomposer) wellSeparated(a, b *quadtree.Cell) bool {
	diam := a.Diameter()
	if bd := b.Diameter(); bd > diam {
		diam = bd
	}
	return a.Distance(b) >= d.epsilon*diam
}

// Representatives returns the deterministic representative vertex of each side
// of a pair: the smallest contained vertex id.
func (d *PairDecomposer) Representatives(p SeparatedPair) (datastructure.Index, datastructure.Index, bool) {
	a, aok := d.tree.CellAt(p.A).MinPointID()
	b, bok := d.tree.CellAt(p.B).MinPointID()
	return a, b, aok && bok
}
