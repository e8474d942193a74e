package routing

import (
	"github.com/farrel-a-h/Anchorx/pkg"
	"github.com/farrel-a-h/Anchorx/pkg/datastructure"
	"github.com/farrel-a-h/Anchorx/pkg/util"
)

const notReached = -1

// RoutableGraph is what the oracle needs: adjacency for the search, edge
// lookup for path unpacking.
type RoutableGraph interface {
	datastructure.SearchGraph
	datastructure.CoverGraph
}

// Dijkstra is the in-tree reference implementation of the shortest path
// oracle. search state is reused between runs through a visited list, so one
// instance answers many queries cheaply; instances are not safe for
// concurrent use, callers run one per worker.
type Dijkstra struct {
	graph RoutableGraph

	dist      []float64
	prevEdge  []int64 // edge id used to settle each vertex, notReached when unsettled
	heapNodes []*datastructure.PriorityQueueNode[datastructure.Index]
	visited   []datastructure.Index

	pq *datastructure.MinHeap[datastructure.Index]
}

func NewDijkstra(graph RoutableGraph) *Dijkstra {
	n := graph.NumberOfVertices()
	d := &Dijkstra{
		graph:     graph,
		dist:      make([]float64, n),
		prevEdge:  make([]int64, n),
		heapNodes: make([]*datastructure.PriorityQueueNode[datastructure.Index], n),
		pq:        datastructure.NewFourAryHeap[datastructure.Index](),
	}
	for v := 0; v < n; v++ {
		d.dist[v] = pkg.INF_WEIGHT
		d.prevEdge[v] = notReached
	}
	return d
}

func (d *Dijkstra) reset() {
	for _, v := range d.visited {
		d.dist[v] = pkg.INF_WEIGHT
		d.prevEdge[v] = notReached
		d.heapNodes[v] = nil
	}
	d.visited = d.visited[:0]
	d.pq.Clear()
}

// Distance returns the shortest path distance between two vertices, or
// util.ErrDisconnected when no path exists.
func (d *Dijkstra) Distance(source, target datastructure.Index) (float64, error) {
	dist, _, err := d.ShortestPath(source, target)
	return dist, err
}

// ShortestPath returns the shortest path distance and the ordered edge id
// sequence from source to target.
func (d *Dijkstra) ShortestPath(source, target datastructure.Index) (float64, []datastructure.Index, error) {
	d.reset()

	d.dist[source] = 0
	d.visited = append(d.visited, source)
	d.heapNodes[source] = datastructure.NewPriorityQueueNode(0, source)
	d.pq.Insert(d.heapNodes[source])

	for !d.pq.IsEmpty() {
		node, err := d.pq.ExtractMin()
		if err != nil {
			return 0, nil, err
		}
		u := node.GetItem()
		if u == target {
			break
		}
		du := d.dist[u]

		d.graph.ForOutEdgesOf(u, func(e *datastructure.Edge) {
			v := e.GetHead()
			nd := du + e.GetWeight()
			if nd >= d.dist[v] {
				return
			}
			if d.dist[v] >= pkg.INF_WEIGHT {
				d.visited = append(d.visited, v)
			}
			d.dist[v] = nd
			d.prevEdge[v] = int64(e.GetID())
			if d.heapNodes[v] != nil && d.heapNodes[v].GetPos() >= 0 {
				_ = d.pq.DecreaseKey(d.heapNodes[v], nd)
			} else {
				d.heapNodes[v] = datastructure.NewPriorityQueueNode(nd, v)
				d.pq.Insert(d.heapNodes[v])
			}
		})
	}

	if d.dist[target] >= pkg.INF_WEIGHT {
		return 0, nil, util.WrapErrorf(nil, util.ErrDisconnected,
			"vertex %d is not reachable from vertex %d", target, source)
	}

	return d.dist[target], d.unpackPath(source, target), nil
}

// unpackPath walks prevEdge pointers from target back to source.
func (d *Dijkstra) unpackPath(source, target datastructure.Index) []datastructure.Index {
	var reversed []datastructure.Index
	cur := target
	for cur != source {
		eid := datastructure.Index(d.prevEdge[cur])
		reversed = append(reversed, eid)
		cur = d.graph.GetEdge(eid).GetTail()
	}
	return util.ReverseG(reversed)
}
