package edgefilter

import (
	"github.com/lintang-b-s/navigatorx-core/pkg"
	da "github.com/lintang-b-s/navigatorx-core/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-core/pkg/util"
	"github.com/lintang-b-s/navigatorx-core/pkg/vehicle"
	"go.uber.org/zap"
)

// TurnRestrictionsEdgeFilter. rejects every edge that takes part in a turn restriction, so the edge
// stays in the core and is never bypassed by a shortcut. a shortcut only keeps the first and last
// original edge of its chain, which is not enough to honour restrictions inside the chain.
//
// the explorers keep no cursor, so the filter itself is read-only after construction.
type TurnRestrictionsEdgeFilter struct {
	encoder     vehicle.FlagEncoder
	turnCosts   *da.TurnCostTable // nil: graph without turn restrictions
	inExplorer  *da.EdgeExplorer
	outExplorer *da.EdgeExplorer
}

func NewTurnRestrictionsEdgeFilter(encoder vehicle.FlagEncoder, graphStorage *da.GraphStorage,
	log *zap.Logger) (*TurnRestrictionsEdgeFilter, error) {
	if !encoder.IsRegistered() {
		return nil, util.WrapErrorf(nil, util.ErrConfiguration,
			"make sure you add the flag encoder %s to an encoding manager before using it elsewhere", encoder.Name())
	}

	turnCosts, ok := graphStorage.TurnCostExtension()
	if !ok {
		log.Debug("graph has no turn cost table, no edge has turn restrictions",
			zap.String("vehicle", encoder.Name()))
	}

	graph := graphStorage.GetGraph()
	return &TurnRestrictionsEdgeFilter{
		encoder:     encoder,
		turnCosts:   turnCosts,
		inExplorer:  graph.CreateEdgeExplorer(InEdges(encoder)),
		outExplorer: graph.CreateEdgeExplorer(OutEdges(encoder)),
	}, nil
}

func getOrigEdgeId(edge da.EdgeState, reverse bool) da.Index {
	if reverse {
		return edge.GetOrigEdgeFirst()
	}
	return edge.GetOrigEdgeLast()
}

// HasTurnRestrictions. checks the transitions at the adj node of edge. reverse=false looks at the edges
// leaving the adj node (edge -> next), reverse=true at the edges entering it (prev -> edge).
// all neighbours are checked, the results are or-ed.
func (f *TurnRestrictionsEdgeFilter) HasTurnRestrictions(edge da.EdgeState, reverse bool) bool {
	if f.turnCosts == nil {
		return false
	}

	explorer := f.outExplorer
	if reverse {
		explorer = f.inExplorer
	}

	prevOrNextOrigEdgeId := getOrigEdgeId(edge, reverse)
	hasTurnRestrictions := false
	explorer.ForEdges(edge.GetAdjNode(), func(iter da.EdgeState) {
		if getOrigEdgeId(iter, !reverse) == prevOrNextOrigEdgeId {
			// continuing on the same original edge is not a turn
			return
		}

		turnFlags := f.lookupTurnFlags(iter, prevOrNextOrigEdgeId, reverse)
		if f.encoder.IsTurnRestricted(turnFlags) {
			hasTurnRestrictions = true
		}
	})

	return hasTurnRestrictions
}

// lookupTurnFlags. key is always (incoming original edge, via, outgoing original edge).
func (f *TurnRestrictionsEdgeFilter) lookupTurnFlags(iter da.EdgeState, origEdgeId da.Index, reverse bool) pkg.TurnFlags {
	if reverse {
		return f.turnCosts.GetTurnCostFlags(iter.GetOrigEdgeLast(), iter.GetBaseNode(), origEdgeId)
	}
	return f.turnCosts.GetTurnCostFlags(origEdgeId, iter.GetBaseNode(), iter.GetOrigEdgeFirst())
}

// Accept. false if edge has a turn restriction in its own direction or in the opposite one.
func (f *TurnRestrictionsEdgeFilter) Accept(edge da.EdgeState) bool {
	reverse := edge.IsReverse()

	if f.HasTurnRestrictions(edge, reverse) {
		return false
	}
	if f.HasTurnRestrictions(edge, !reverse) {
		return false
	}
	return true
}

func (f *TurnRestrictionsEdgeFilter) String() string {
	return "turn_restrictions(" + f.encoder.Name() + ")"
}
