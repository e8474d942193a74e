package hittingset

import (
	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/farrel-a-h/Anchorx/pkg/pathgen"
	"github.com/farrel-a-h/Anchorx/pkg/util"
	"go.uber.org/zap"
)

// Unlimited lets the greedy loop run until every path is covered.
const Unlimited = -1

// IterationRecord is an immutable snapshot of one greedy iteration.
type IterationRecord struct {
	Iteration   int
	Element     datastructure.Index
	CoveredNow  int // paths newly covered by this selection
	Remaining   int // paths still uncovered afterwards
	WeightedHit uint64
	LowerBound  int
}

// Result of one solver run. the landmark set only ever grows during a run and
// the iteration log is append-only.
type Result struct {
	Landmarks  []datastructure.Index
	Log        []IterationRecord
	LowerBound int

	Uncovered int  // paths left uncovered after the run
	Truncated bool // the iteration cap ended the run before full coverage
	Verified  bool // verification ran and found no defect
	Defects   int  // coverage-integrity mismatches found by verification
}

// Solver greedily selects the edge hitting the most currently uncovered
// paths, ties broken by smallest edge id. guarantees an H(d) approximation of
// the minimum hitting set, d being the maximum path length in edges.
type Solver struct {
	paths  []pathgen.Path
	logger *zap.Logger

	numElements  int
	elementPaths [][]int32 // edge id -> ids of paths containing it
}

func NewSolver(universe *pathgen.Universe, logger *zap.Logger) *Solver {
	s := &Solver{
		paths:  universe.Paths,
		logger: logger,
	}

	for _, p := range s.paths {
		for _, e := range p.Edges {
			if int(e)+1 > s.numElements {
				s.numElements = int(e) + 1
			}
		}
	}

	s.elementPaths = make([][]int32, s.numElements)
	for id, p := range s.paths {
		for _, e := range p.Edges {
			s.elementPaths[e] = append(s.elementPaths[e], int32(id))
		}
	}
	return s
}

// LowerBound computes a maximal disjoint-path packing: greedily take any path
// whose edges are all unused, mark its edges used, skip every path sharing a
// used edge. any hitting set needs one element per packed path and no element
// can serve two of them, so the packing size bounds the optimum from below.
func (s *Solver) LowerBound() int {
	used := make([]bool, s.numElements)
	lower := 0

	for _, p := range s.paths {
		if len(p.Edges) == 0 {
			continue
		}
		disjoint := true
		for _, e := range p.Edges {
			if used[e] {
				disjoint = false
				break
			}
		}
		if !disjoint {
			continue
		}
		for _, e := range p.Edges {
			used[e] = true
		}
		lower++
	}
	return lower
}

// Run executes the greedy loop for at most maxIter iterations (Unlimited for
// no cap) and optionally verifies the final coverage. reaching the cap is an
// intended truncation state, not an error.
func (s *Solver) Run(maxIter int, verify bool) (*Result, error) {
	if maxIter < Unlimited {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "iteration cap must be >= 0 or Unlimited, got %d", maxIter)
	}

	lower := s.LowerBound()
	result := &Result{LowerBound: lower}

	counts := make([]uint64, s.numElements) // weighted uncovered coverage per edge
	for _, p := range s.paths {
		for _, e := range p.Edges {
			counts[e] += p.Weight
		}
	}

	covered := make([]bool, len(s.paths))
	remaining := 0
	for _, p := range s.paths {
		if len(p.Edges) > 0 {
			remaining++
		}
	}

	iteration := 0
	for remaining > 0 {
		if maxIter != Unlimited && iteration >= maxIter {
			result.Truncated = true
			break
		}
		iteration++

		// scan ascending so the first maximum is the smallest edge id
		best := datastructure.Index(0)
		var bestCount uint64
		for e := 0; e < s.numElements; e++ {
			if counts[e] > bestCount {
				bestCount = counts[e]
				best = datastructure.Index(e)
			}
		}
		if bestCount == 0 {
			// only weight-0 paths left; nothing selectable
			break
		}

		coveredNow := 0
		var weightedHit uint64
		for _, pid := range s.elementPaths[best] {
			if covered[pid] {
				continue
			}
			covered[pid] = true
			coveredNow++
			weightedHit += s.paths[pid].Weight
			// incremental update: this path no longer counts for its edges
			for _, e := range s.paths[pid].Edges {
				counts[e] -= s.paths[pid].Weight
			}
		}
		remaining -= coveredNow

		result.Landmarks = append(result.Landmarks, best)
		result.Log = append(result.Log, IterationRecord{
			Iteration:   iteration,
			Element:     best,
			CoveredNow:  coveredNow,
			Remaining:   remaining,
			WeightedHit: weightedHit,
			LowerBound:  lower,
		})
	}
	result.Uncovered = remaining

	if verify {
		result.Defects = s.verifyCoverage(result.Landmarks, covered)
		result.Verified = result.Defects == 0
		if result.Defects > 0 {
			s.logger.Error("coverage verification failed",
				zap.Int("defects", result.Defects),
				zap.Error(util.ErrCoverageDefect))
		}
	}

	s.logger.Info("hitting set done",
		zap.Int("landmarks", len(result.Landmarks)),
		zap.Int("lowerBound", lower),
		zap.Int("uncovered", result.Uncovered),
		zap.Bool("truncated", result.Truncated))
	return result, nil
}

// verifyCoverage re-scans the full path universe: every path marked covered
// must contain a selected edge and every path containing a selected edge must
// be marked covered. symmetric so truncated runs can be checked too.
func (s *Solver) verifyCoverage(landmarks []datastructure.Index, covered []bool) int {
	selected := make(map[datastructure.Index]struct{}, len(landmarks))
	for _, l := range landmarks {
		selected[l] = struct{}{}
	}

	defects := 0
	for id, p := range s.paths {
		if len(p.Edges) == 0 {
			continue
		}
		hit := false
		for _, e := range p.Edges {
			if _, ok := selected[e]; ok {
				hit = true
				break
			}
		}
		if hit != covered[id] {
			defects++
		}
	}
	return defects
}
