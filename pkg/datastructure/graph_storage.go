package datastructure

// GraphStorage. the graph plus its optional extensions. the turn cost table is absent for
// graphs imported without turn restrictions.
type GraphStorage struct {
	graph     *Graph
	turnCosts *TurnCostTable
}

func NewGraphStorage(graph *Graph) *GraphStorage {
	return &GraphStorage{graph: graph}
}

func NewGraphStorageWithTurnCosts(graph *Graph, turnCosts *TurnCostTable) *GraphStorage {
	return &GraphStorage{graph: graph, turnCosts: turnCosts}
}

func (gs *GraphStorage) GetGraph() *Graph {
	return gs.graph
}

func (gs *GraphStorage) SetTurnCostExtension(turnCosts *TurnCostTable) {
	gs.turnCosts = turnCosts
}

// TurnCostExtension. false when no turn cost table is attached to the graph.
func (gs *GraphStorage) TurnCostExtension() (*TurnCostTable, bool) {
	if gs.turnCosts == nil {
		return nil, false
	}
	return gs.turnCosts, true
}
