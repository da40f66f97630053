package datastructure

import (
	"math"

	"github.com/lintang-b-s/navigatorx-core/pkg"
	"github.com/lintang-b-s/navigatorx-core/pkg/util"
)

type Index uint32

// NO_EDGE marks a missing edge id, e.g. the skipped edges of a primitive edge.
const NO_EDGE Index = math.MaxUint32

type Vertex struct {
	lat float64
	lon float64
	id  Index
}

func NewVertex(lat, lon float64, id Index) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
		id:  id,
	}
}

// Edge. stored directed edge base->adj.
// origEdgeFirst is the original (pre-contraction) edge adjacent to base, origEdgeLast the one adjacent to adj.
// for a primitive edge both are the edge itself. shortcuts also remember the two edges they skip.
type Edge struct {
	edgeId        Index
	base          Index
	adj           Index
	origEdgeFirst Index
	origEdgeLast  Index
	access        pkg.AccessFlags
	skippedEdge1  Index
	skippedEdge2  Index
}

func (e *Edge) IsShortcut() bool {
	return e.skippedEdge1 != NO_EDGE
}

// Graph. routing graph that can be extended with shortcuts. adjacency[v] holds the ids of every
// edge incident to v (outgoing and incoming) in insertion order.
type Graph struct {
	vertices  []*Vertex
	edges     []*Edge
	adjacency [][]Index

	shortcutsCount int
}

func NewGraph(vertices []*Vertex) *Graph {
	return &Graph{
		vertices:  vertices,
		edges:     make([]*Edge, 0),
		adjacency: make([][]Index, len(vertices)),
	}
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) NumberOfShortcuts() int {
	return g.shortcutsCount
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	v := g.vertices[u]
	return v.lat, v.lon
}

func (g *Graph) GetDegree(u Index) int {
	return len(g.adjacency[u])
}

func (g *Graph) validNode(u Index) bool {
	return int(u) < len(g.vertices)
}

// AddEdge. adds an original edge base->adj and returns its id, which is also its original edge id.
func (g *Graph) AddEdge(base, adj Index, access pkg.AccessFlags) (Index, error) {
	if !g.validNode(base) || !g.validNode(adj) {
		return NO_EDGE, util.WrapErrorf(nil, util.ErrBadParamInput, "edge %d->%d references unknown vertex", base, adj)
	}
	id := Index(len(g.edges))
	g.appendEdge(&Edge{
		edgeId:        id,
		base:          base,
		adj:           adj,
		origEdgeFirst: id,
		origEdgeLast:  id,
		access:        access,
		skippedEdge1:  NO_EDGE,
		skippedEdge2:  NO_EDGE,
	})
	return id, nil
}

// AddShortcut. adds a shortcut base->adj replacing skippedEdge1 (incident to base) followed by
// skippedEdge2 (incident to adj). the shortcut keeps the first original edge of skippedEdge1 and the
// last original edge of skippedEdge2 so turn costs at base and adj can still be looked up.
func (g *Graph) AddShortcut(base, adj Index, access pkg.AccessFlags, skippedEdge1, skippedEdge2 Index) (Index, error) {
	if !g.validNode(base) || !g.validNode(adj) {
		return NO_EDGE, util.WrapErrorf(nil, util.ErrBadParamInput, "shortcut %d->%d references unknown vertex", base, adj)
	}

	origFirst, origLast, err := g.shortcutOrigEdges(base, adj, skippedEdge1, skippedEdge2)
	if err != nil {
		return NO_EDGE, err
	}

	id := Index(len(g.edges))
	g.appendEdge(&Edge{
		edgeId:        id,
		base:          base,
		adj:           adj,
		origEdgeFirst: origFirst,
		origEdgeLast:  origLast,
		access:        access,
		skippedEdge1:  skippedEdge1,
		skippedEdge2:  skippedEdge2,
	})
	g.shortcutsCount++
	return id, nil
}

// shortcutOrigEdges. first and last original edge of a shortcut base->adj over skippedEdge1 (incident to base)
// and skippedEdge2 (incident to adj).
func (g *Graph) shortcutOrigEdges(base, adj, skippedEdge1, skippedEdge2 Index) (Index, Index, error) {
	first, ok := g.GetEdgeState(skippedEdge1, base)
	if !ok {
		return NO_EDGE, NO_EDGE, util.WrapErrorf(nil, util.ErrBadParamInput, "skipped edge %d is not incident to %d",
			skippedEdge1, base)
	}
	via := first.GetAdjNode()
	second, ok := g.GetEdgeState(skippedEdge2, via)
	if !ok || second.GetAdjNode() != adj {
		return NO_EDGE, NO_EDGE, util.WrapErrorf(nil, util.ErrBadParamInput, "skipped edge %d does not connect %d and %d",
			skippedEdge2, via, adj)
	}
	return first.GetOrigEdgeFirst(), second.GetOrigEdgeLast(), nil
}

func (g *Graph) appendEdge(e *Edge) {
	g.edges = append(g.edges, e)
	g.adjacency[e.base] = append(g.adjacency[e.base], e.edgeId)
	if e.adj != e.base {
		g.adjacency[e.adj] = append(g.adjacency[e.adj], e.edgeId)
	}
}

func (g *Graph) GetEdge(e Index) *Edge {
	return g.edges[e]
}

// GetEdgeState. view of edge e as seen from baseNode. false if e is not incident to baseNode.
func (g *Graph) GetEdgeState(e Index, baseNode Index) (EdgeState, bool) {
	if int(e) >= len(g.edges) {
		return EdgeState{}, false
	}
	edge := g.edges[e]
	switch baseNode {
	case edge.base:
		return NewEdgeState(edge, false), true
	case edge.adj:
		return NewEdgeState(edge, true), true
	default:
		return EdgeState{}, false
	}
}

// ForEdges. visits every edge once, in its stored orientation.
func (g *Graph) ForEdges(handle func(e EdgeState)) {
	for _, e := range g.edges {
		handle(NewEdgeState(e, false))
	}
}

func (g *Graph) CreateEdgeExplorer(filter EdgeFilter) *EdgeExplorer {
	return &EdgeExplorer{graph: g, filter: filter}
}
