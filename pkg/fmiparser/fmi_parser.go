package fmiparser

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/farrel-a-h/Anchorx/pkg/geo"
	"github.com/farrel-a-h/Anchorx/pkg/util"
	"go.uber.org/zap"
)

// FMIParser reads .fmi text graphs (maxspeed and maxspeed-ch variants).
//
// file structure:
//
//	# metadata lines
//	<blank>
//	[number of nodes]
//	[number of edges]
//	[id] [osmId] [lat] [lon] [elevation] [chlevel]?      // one per node
//	[source] [target] [weight] [type] [maxspeed] ...     // one per edge
type FMIParser struct{}

func NewFMIParser() *FMIParser {
	return &FMIParser{}
}

func (p *FMIParser) Parse(filename string, logger *zap.Logger) (*datastructure.Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)

	numNodes, err := readCount(scanner)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "reading node count from %s", filename)
	}
	numEdges, err := readCount(scanner)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "reading edge count from %s", filename)
	}
	if numNodes == 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "graph file %s contains no nodes", filename)
	}

	logger.Info("parsing fmi graph", zap.String("file", filename),
		zap.Int("nodes", numNodes), zap.Int("edges", numEdges))

	vertices := make([]*datastructure.Vertex, 0, numNodes)
	for i := 0; i < numNodes; i++ {
		fields, err := readRecord(scanner)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "node line %d of %s", i, filename)
		}
		if len(fields) < 5 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "node line %d of %s is malformed", i, filename)
		}
		lat, err := util.StringToFloat64(fields[2])
		if err != nil {
			return nil, err
		}
		lon, err := util.StringToFloat64(fields[3])
		if err != nil {
			return nil, err
		}
		if !geo.NewCoordinate(lat, lon).IsValid() {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"node line %d of %s has a malformed coordinate (%v, %v)", i, filename, lat, lon)
		}
		level := int64(0)
		if len(fields) >= 6 {
			// chgraph variant carries the contraction level as sixth column
			level, err = strconv.ParseInt(fields[5], 10, 32)
			if err != nil {
				return nil, err
			}
		}
		vertices = append(vertices, datastructure.NewVertexWithLevel(lat, lon, datastructure.Index(i), int32(level)))
	}

	edges := make([]*datastructure.Edge, 0, numEdges)
	for i := 0; i < numEdges; i++ {
		fields, err := readRecord(scanner)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "edge line %d of %s", i, filename)
		}
		if len(fields) < 3 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "edge line %d of %s is malformed", i, filename)
		}
		source, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, err
		}
		target, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, err
		}
		weight, err := util.StringToFloat64(fields[2])
		if err != nil {
			return nil, err
		}
		if source < 0 || source >= numNodes || target < 0 || target >= numNodes {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"edge line %d of %s references node outside [0, %d)", i, filename, numNodes)
		}
		edges = append(edges, datastructure.NewEdge(datastructure.Index(i),
			datastructure.Index(source), datastructure.Index(target), weight))
	}

	logger.Info("fmi graph parsed", zap.Int("vertices", len(vertices)), zap.Int("edges", len(edges)))
	return datastructure.NewGraph(vertices, edges), nil
}

// readCount skips metadata and blank lines and returns the next integer line.
func readCount(scanner *bufio.Scanner) (int, error) {
	fields, err := readRecord(scanner)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(fields[0])
}

// readRecord returns the fields of the next non-comment, non-blank line.
func readRecord(scanner *bufio.Scanner) ([]string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Fields(line), nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unexpected end of file")
}
