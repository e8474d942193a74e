package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/farrel-a-h/Anchorx/pkg/hittingset"
	"github.com/farrel-a-h/Anchorx/pkg/logger"
	"github.com/farrel-a-h/Anchorx/pkg/pathgen"
	"github.com/farrel-a-h/Anchorx/pkg/util"
	"go.uber.org/zap"
)

var (
	maxIterations = flag.Int("max_iterations", -2, "iteration cap for the greedy solver, overrides the config when >= -1 (-1 = unlimited)")
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
	if *maxIterations >= hittingset.Unlimited {
		config.MaxIterations = *maxIterations
	}

	universe, err := pathgen.ReadPaths(config.PathsFile)
	if err != nil {
		panic(err)
	}
	logger.Info("path universe loaded",
		zap.String("file", config.PathsFile),
		zap.Int("paths", len(universe.Paths)))

	solver := hittingset.NewSolver(universe, logger)
	result, err := solver.Run(config.MaxIterations, config.VerifyCover)
	if err != nil {
		panic(err)
	}

	if err := writeLandmarks(config.LandmarksFile, result); err != nil {
		panic(err)
	}
	if err := writeIterations(config.IterationsFile, result); err != nil {
		panic(err)
	}

	logger.Info("landmark selection completed",
		zap.Int("landmarks", len(result.Landmarks)),
		zap.Int("lowerBound", result.LowerBound),
		zap.Int("uncovered", result.Uncovered),
		zap.Bool("truncated", result.Truncated),
		zap.Bool("verified", result.Verified))
}

func writeLandmarks(filename string, result *hittingset.Result) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, l := range result.Landmarks {
		fmt.Fprintf(w, "%d\n", l)
	}
	return w.Flush()
}

func writeIterations(filename string, result *hittingset.Result) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "iteration,element,covered,remaining,weighted_hit,lower_bound")
	for _, rec := range result.Log {
		fmt.Fprintf(w, "%d,%d,%d,%d,%d,%d\n",
			rec.Iteration, rec.Element, rec.CoveredNow, rec.Remaining, rec.WeightedHit, rec.LowerBound)
	}
	return w.Flush()
}
