package main

import (
	"flag"

	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/farrel-a-h/Anchorx/pkg/fmiparser"
	"github.com/farrel-a-h/Anchorx/pkg/logger"
	"github.com/farrel-a-h/Anchorx/pkg/pathgen"
	"github.com/farrel-a-h/Anchorx/pkg/quadtree"
	"github.com/farrel-a-h/Anchorx/pkg/randpairs"
	"github.com/farrel-a-h/Anchorx/pkg/routing"
	"github.com/farrel-a-h/Anchorx/pkg/spatialindex"
	"github.com/farrel-a-h/Anchorx/pkg/util"
	"github.com/farrel-a-h/Anchorx/pkg/wspd"
	"go.uber.org/zap"
)

var (
	epsilon      = flag.Float64("epsilon", 0, "separation parameter for the decomposition, overrides the config when > 0")
	maxTreeDepth = flag.Int("max_tree_depth", -1, "maximum quadtree depth, overrides the config when >= 0")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	config, err := util.ReadConfig()
	if err != nil {
		panic(err)
	}
	if *epsilon > 0 {
		config.Epsilon = *epsilon
	}
	if *maxTreeDepth >= 0 {
		config.MaxTreeDepth = *maxTreeDepth
	}

	graph, err := fmiparser.NewFMIParser().Parse(config.GraphFile, logger)
	if err != nil {
		panic(err)
	}

	newOracle := func() pathgen.Oracle {
		return routing.NewDijkstra(graph)
	}
	materializer := pathgen.NewPathMaterializer(nil, newOracle, config.NumWorkers, logger)

	var universe *pathgen.Universe
	switch config.PairSource {
	case "random":
		gen := randpairs.NewGenerator(graph.NumberOfVertices(), config.RandomSeed)
		endpoints := make([][2]datastructure.Index, 0, config.RandomPairs)
		for _, p := range gen.Generate(config.RandomPairs) {
			endpoints = append(endpoints, [2]datastructure.Index{p.Source, p.Target})
		}
		universe, err = materializer.MaterializeEndpoints(endpoints)
		if err != nil {
			panic(err)
		}
	default:
		universe, err = decompose(config, graph, newOracle, logger)
		if err != nil {
			panic(err)
		}
	}

	if err := pathgen.WritePaths(config.PathsFile, universe); err != nil {
		panic(err)
	}
	logger.Info("paths stored",
		zap.String("file", config.PathsFile),
		zap.Int("paths", len(universe.Paths)))
}

func decompose(config *util.Config, graph *datastructure.Graph, newOracle pathgen.OracleFactory,
	logger *zap.Logger) (*pathgen.Universe, error) {

	var (
		tree *quadtree.QuadTree
		err  error
	)
	if len(config.BoundingBox) == 4 {
		vi := spatialindex.NewVertexIndex()
		vi.Build(graph, logger)
		ids := vi.InBoundingBox(config.BoundingBox[0], config.BoundingBox[1],
			config.BoundingBox[2], config.BoundingBox[3])
		logger.Info("bounding box selection", zap.Int("vertices", len(ids)))
		tree, err = quadtree.NewQuadTreeFromVertices(graph, ids, config.MaxTreeDepth, logger)
	} else {
		tree, err = quadtree.NewQuadTree(graph, config.MaxTreeDepth, logger)
	}
	if err != nil {
		return nil, err
	}

	decomposer, err := wspd.NewPairDecomposer(tree, config.Epsilon, config.NumWorkers, logger)
	if err != nil {
		return nil, err
	}
	pairs, err := decomposer.Decompose()
	if err != nil {
		return nil, err
	}

	if config.VerifyGeometry {
		// diagnostic only, failures are logged inside
		if _, err := decomposer.VerifyGeometry(pairs, graph, newOracle(), config.GeometryTolerance); err != nil {
			return nil, err
		}
	}

	materializer := pathgen.NewPathMaterializer(tree, newOracle, config.NumWorkers, logger)
	return materializer.Materialize(pairs)
}
