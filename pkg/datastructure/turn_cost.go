package datastructure

import (
	"sort"

	"github.com/lintang-b-s/navigatorx-core/pkg"
)

type turnCostKey struct {
	from Index // original edge entering via
	via  Index
	to   Index // original edge leaving via
}

// TurnCostTable. turn flags of (fromOrigEdge, viaNode, toOrigEdge) transitions.
// most transitions have no entry, a lookup for those returns pkg.NO_TURN_FLAGS.
type TurnCostTable struct {
	entries map[turnCostKey]pkg.TurnFlags
}

func NewTurnCostTable() *TurnCostTable {
	return &TurnCostTable{entries: make(map[turnCostKey]pkg.TurnFlags)}
}

// AddTurnInfo. ors flags into the entry, so every flag encoder can add its own bits to a shared entry.
func (t *TurnCostTable) AddTurnInfo(fromEdge, viaNode, toEdge Index, flags pkg.TurnFlags) {
	key := turnCostKey{from: fromEdge, via: viaNode, to: toEdge}
	t.entries[key] |= flags
}

// GetTurnCostFlags. safe on a nil table.
func (t *TurnCostTable) GetTurnCostFlags(fromEdge, viaNode, toEdge Index) pkg.TurnFlags {
	if t == nil {
		return pkg.NO_TURN_FLAGS
	}
	flags, ok := t.entries[turnCostKey{from: fromEdge, via: viaNode, to: toEdge}]
	if !ok {
		return pkg.NO_TURN_FLAGS
	}
	return flags
}

func (t *TurnCostTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// ForEach. visits entries ordered by (via, from, to).
func (t *TurnCostTable) ForEach(handle func(fromEdge, viaNode, toEdge Index, flags pkg.TurnFlags)) {
	if t == nil {
		return
	}
	keys := make([]turnCostKey, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].via != keys[j].via {
			return keys[i].via < keys[j].via
		}
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})

	for _, k := range keys {
		handle(k.from, k.via, k.to, t.entries[k])
	}
}
