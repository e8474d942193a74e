package pathgen

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/farrel-a-h/Anchorx/pkg/util"
)

// WritePaths stores the path universe as bzip2 compressed text, one path per
// line: weight, pair count, then the edge ids.
func WritePaths(filename string, universe *Universe) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", len(universe.Paths), universe.DroppedPairs)
	for _, p := range universe.Paths {
		fmt.Fprintf(w, "%d %d", p.Weight, p.Pairs)
		for _, e := range p.Edges {
			fmt.Fprintf(w, " %d", e)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// ReadPaths loads a path universe written by WritePaths.
func ReadPaths(filename string) (*Universe, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(bz)
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)

	if !scanner.Scan() {
		return nil, util.WrapErrorf(scanner.Err(), util.ErrBadParamInput, "paths file %s has no header", filename)
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "paths file %s has a malformed header", filename)
	}
	numPaths, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, err
	}
	dropped, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, err
	}

	universe := &Universe{
		Paths:        make([]Path, 0, numPaths),
		DroppedPairs: dropped,
	}
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "paths file %s has a malformed line", filename)
		}
		weight, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, err
		}
		pairs, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, err
		}
		edges := make([]datastructure.Index, 0, len(fields)-2)
		for _, field := range fields[2:] {
			e, err := strconv.ParseUint(field, 10, 32)
			if err != nil {
				return nil, err
			}
			edges = append(edges, datastructure.Index(e))
		}
		universe.Paths = append(universe.Paths, Path{Edges: edges, Weight: weight, Pairs: pairs})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return universe, nil
}
