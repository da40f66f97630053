package datastructure

import "github.com/lintang-b-s/navigatorx-core/pkg"

// EdgeState. an edge viewed from one of its endpoints. reverse is true when the view runs against the
// stored orientation (base and adj swapped). original edge ids follow the view: GetOrigEdgeFirst is always
// the original edge adjacent to GetBaseNode.
type EdgeState struct {
	edge    *Edge
	reverse bool
}

func NewEdgeState(edge *Edge, reverse bool) EdgeState {
	return EdgeState{edge: edge, reverse: reverse}
}

func (s EdgeState) GetEdgeId() Index {
	return s.edge.edgeId
}

func (s EdgeState) IsReverse() bool {
	return s.reverse
}

func (s EdgeState) GetBaseNode() Index {
	if s.reverse {
		return s.edge.adj
	}
	return s.edge.base
}

func (s EdgeState) GetAdjNode() Index {
	if s.reverse {
		return s.edge.base
	}
	return s.edge.adj
}

func (s EdgeState) GetOrigEdgeFirst() Index {
	if s.reverse {
		return s.edge.origEdgeLast
	}
	return s.edge.origEdgeFirst
}

func (s EdgeState) GetOrigEdgeLast() Index {
	if s.reverse {
		return s.edge.origEdgeFirst
	}
	return s.edge.origEdgeLast
}

// GetAccessFlags. stored access flags, not mirrored. use the flag encoder together with IsReverse.
func (s EdgeState) GetAccessFlags() pkg.AccessFlags {
	return s.edge.access
}

func (s EdgeState) IsShortcut() bool {
	return s.edge.IsShortcut()
}

// GetSkippedEdges. the edges a shortcut replaces, in view order. NO_EDGE for primitive edges.
func (s EdgeState) GetSkippedEdges() (Index, Index) {
	if s.reverse {
		return s.edge.skippedEdge2, s.edge.skippedEdge1
	}
	return s.edge.skippedEdge1, s.edge.skippedEdge2
}

func (s EdgeState) Reversed() EdgeState {
	return EdgeState{edge: s.edge, reverse: !s.reverse}
}
