package pathgen

import (
	"sort"
	"strconv"
	"strings"

	"github.com/farrel-a-h/Anchorx/pkg/concurrent"
	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/farrel-a-h/Anchorx/pkg/quadtree"
	"github.com/farrel-a-h/Anchorx/pkg/util"
	"github.com/farrel-a-h/Anchorx/pkg/wspd"
	"go.uber.org/zap"
)

// Oracle is the external shortest path oracle. implementations must report
// util.ErrDisconnected (wrapped or bare) when no path exists.
type Oracle interface {
	Distance(source, target datastructure.Index) (float64, error)
	ShortestPath(source, target datastructure.Index) (float64, []datastructure.Index, error)
}

// OracleFactory builds one oracle per worker. oracles with reusable search
// state are not shareable between goroutines.
type OracleFactory func() Oracle

// Path is one distinct shortest path of the universe: an ordered edge id
// sequence plus bookkeeping about how many separated pairs produced it.
// Weight is the number of point pairs the producing cell pairs represent,
// used for diagnostics and greedy weighting, never for covering correctness.
type Path struct {
	Edges  []datastructure.Index
	Weight uint64
	Pairs  int // number of distinct separated pairs that materialized to this path
}

// Universe is the deduplicated path collection consumed by the solver.
type Universe struct {
	Paths        []Path
	DroppedPairs int // pairs whose representatives were disconnected
}

// PathMaterializer resolves every separated pair to the shortest path between
// the pair's representative vertices.
type PathMaterializer struct {
	tree       *quadtree.QuadTree
	newOracle  OracleFactory
	numWorkers int
	logger     *zap.Logger
}

func NewPathMaterializer(tree *quadtree.QuadTree, newOracle OracleFactory, numWorkers int, logger *zap.Logger) *PathMaterializer {
	return &PathMaterializer{
		tree:       tree,
		newOracle:  newOracle,
		numWorkers: numWorkers,
		logger:     logger,
	}
}

type pathJob struct {
	source datastructure.Index
	target datastructure.Index
	weight uint64
}

type pathResult struct {
	edges        []datastructure.Index
	weight       uint64
	disconnected bool
	err          error
}

// Materialize queries the oracle once per pair, concurrently, and collects the
// deduplicated path universe. identical edge sequences are merged, summing
// their weights; disconnected pairs are dropped and counted, never fatal.
func (m *PathMaterializer) Materialize(pairs []wspd.SeparatedPair) (*Universe, error) {
	jobs := make([]pathJob, 0, len(pairs))
	for _, p := range pairs {
		a := m.tree.CellAt(p.A)
		b := m.tree.CellAt(p.B)
		s, sok := a.MinPointID()
		t, tok := b.MinPointID()
		if !sok || !tok {
			continue
		}
		// canonical direction so (A,B) and (B,A) materialize identically
		if t < s {
			s, t = t, s
		}
		jobs = append(jobs, pathJob{
			source: s,
			target: t,
			weight: uint64(a.Size()) * uint64(b.Size()),
		})
	}
	return m.materializeJobs(jobs)
}

// MaterializeEndpoints resolves explicit source/target vertex pairs, for pair
// sources other than the decomposition (e.g. random baseline pairs). each
// pair carries weight 1.
func (m *PathMaterializer) MaterializeEndpoints(endpoints [][2]datastructure.Index) (*Universe, error) {
	jobs := make([]pathJob, 0, len(endpoints))
	for _, ep := range endpoints {
		s, t := ep[0], ep[1]
		if s == t {
			continue
		}
		if t < s {
			s, t = t, s
		}
		jobs = append(jobs, pathJob{source: s, target: t, weight: 1})
	}
	return m.materializeJobs(jobs)
}

func (m *PathMaterializer) materializeJobs(jobs []pathJob) (*Universe, error) {
	pool := concurrent.NewWorkerPool[pathJob, pathResult](m.numWorkers, m.numWorkers*2)
	pool.StartEach(func() concurrent.JobFunc[pathJob, pathResult] {
		oracle := m.newOracle()
		return func(job pathJob) pathResult {
			_, edges, err := oracle.ShortestPath(job.source, job.target)
			if err != nil {
				if util.HasCode(err, util.ErrDisconnected) {
					return pathResult{disconnected: true}
				}
				return pathResult{err: err}
			}
			return pathResult{edges: edges, weight: job.weight}
		}
	})

	go func() {
		for _, job := range jobs {
			pool.AddJob(job)
		}
		pool.Close()
	}()
	go pool.Wait()

	byKey := make(map[string]*Path)
	dropped := 0
	var firstErr error
	for res := range pool.CollectResults() {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		if res.disconnected {
			dropped++
			continue
		}
		key := edgeKey(res.edges)
		if p, ok := byKey[key]; ok {
			p.Weight += res.weight
			p.Pairs++
		} else {
			byKey[key] = &Path{Edges: res.edges, Weight: res.weight, Pairs: 1}
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	universe := &Universe{
		Paths:        make([]Path, 0, len(keys)),
		DroppedPairs: dropped,
	}
	for _, k := range keys {
		universe.Paths = append(universe.Paths, *byKey[k])
	}

	if dropped > 0 {
		m.logger.Warn("dropped disconnected pairs", zap.Int("count", dropped))
	}
	m.logger.Info("path universe materialized",
		zap.Int("pairs", len(jobs)),
		zap.Int("distinctPaths", len(universe.Paths)))
	return universe, nil
}

func edgeKey(edges []datastructure.Index) string {
	var sb strings.Builder
	for i, e := range edges {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(uint64(e), 10))
	}
	return sb.String()
}
