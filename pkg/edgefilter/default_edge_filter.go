package edgefilter

import (
	da "github.com/lintang-b-s/navigatorx-core/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-core/pkg/vehicle"
)

// DefaultEdgeFilter. accepts edges the vehicle may traverse. with e viewed from its base node,
// out means base->adj is allowed and in means adj->base is allowed.
type DefaultEdgeFilter struct {
	encoder vehicle.FlagEncoder
	in      bool
	out     bool
}

func InEdges(encoder vehicle.FlagEncoder) *DefaultEdgeFilter {
	return &DefaultEdgeFilter{encoder: encoder, in: true}
}

func OutEdges(encoder vehicle.FlagEncoder) *DefaultEdgeFilter {
	return &DefaultEdgeFilter{encoder: encoder, out: true}
}

func AllEdges(encoder vehicle.FlagEncoder) *DefaultEdgeFilter {
	return &DefaultEdgeFilter{encoder: encoder, in: true, out: true}
}

func (f *DefaultEdgeFilter) Accept(e da.EdgeState) bool {
	access := e.GetAccessFlags()
	forward := f.encoder.IsForward(access)
	backward := f.encoder.IsBackward(access)
	if e.IsReverse() {
		forward, backward = backward, forward
	}
	return (f.out && forward) || (f.in && backward)
}

func (f *DefaultEdgeFilter) String() string {
	return f.encoder.Name() + ", in:" + boolString(f.in) + ", out:" + boolString(f.out)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
