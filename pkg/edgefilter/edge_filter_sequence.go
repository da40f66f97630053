package edgefilter

import (
	"fmt"
	"strings"

	da "github.com/lintang-b-s/navigatorx-core/pkg/datastructure"
)

// EdgeFilterSequence. accepts an edge only if every filter accepts it.
type EdgeFilterSequence struct {
	filters []da.EdgeFilter
}

func NewEdgeFilterSequence(filters ...da.EdgeFilter) *EdgeFilterSequence {
	return &EdgeFilterSequence{filters: filters}
}

func (s *EdgeFilterSequence) Add(filter da.EdgeFilter) {
	s.filters = append(s.filters, filter)
}

func (s *EdgeFilterSequence) Len() int {
	return len(s.filters)
}

func (s *EdgeFilterSequence) Accept(e da.EdgeState) bool {
	for _, filter := range s.filters {
		if !filter.Accept(e) {
			return false
		}
	}
	return true
}

func (s *EdgeFilterSequence) String() string {
	names := make([]string, 0, len(s.filters))
	for _, filter := range s.filters {
		names = append(names, fmt.Sprintf("%v", filter))
	}
	return strings.Join(names, ", ")
}
