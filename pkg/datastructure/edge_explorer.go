package datastructure

type EdgeFilter interface {
	Accept(e EdgeState) bool
}

// EdgeExplorer. enumerates the edges incident to a node that pass its filter. it keeps no cursor:
// every call is an independent, finite scan, so one explorer can be shared between goroutines
// as long as the graph is not modified.
type EdgeExplorer struct {
	graph  *Graph
	filter EdgeFilter
}

// ForEdges. calls handle for every accepted edge incident to node, viewed with GetBaseNode() == node.
func (ex *EdgeExplorer) ForEdges(node Index, handle func(e EdgeState)) {
	for _, id := range ex.graph.adjacency[node] {
		edge := ex.graph.edges[id]
		state := NewEdgeState(edge, edge.base != node)
		if ex.filter != nil && !ex.filter.Accept(state) {
			continue
		}
		handle(state)
	}
}

// SetBaseNode. same sequence as ForEdges, collected into a slice.
func (ex *EdgeExplorer) SetBaseNode(node Index) []EdgeState {
	states := make([]EdgeState, 0, ex.graph.GetDegree(node))
	ex.ForEdges(node, func(e EdgeState) {
		states = append(states, e)
	})
	return states
}
