package randpairs

import (
	"math/rand"

	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
)

// SourceTargetPair is a random query pair, used as a baseline alternative to
// wspd-derived pairs.
type SourceTargetPair struct {
	Source datastructure.Index
	Target datastructure.Index
}

// Generator draws uniform vertex pairs from a seeded source so benchmark runs
// are reproducible.
type Generator struct {
	rng         *rand.Rand
	numVertices int
}

func NewGenerator(numVertices int, seed int64) *Generator {
	return &Generator{
		rng:         rand.New(rand.NewSource(seed)),
		numVertices: numVertices,
	}
}

func (g *Generator) Generate(n int) []SourceTargetPair {
	pairs := make([]SourceTargetPair, n)
	for i := 0; i < n; i++ {
		pairs[i] = SourceTargetPair{
			Source: datastructure.Index(g.rng.Intn(g.numVertices)),
			Target: datastructure.Index(g.rng.Intn(g.numVertices)),
		}
	}
	return pairs
}
