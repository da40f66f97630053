package edgefilter

import (
	"testing"

	da "github.com/lintang-b-s/navigatorx-core/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

func TestDefaultEdgeFilter(t *testing.T) {
	enc := newTestEncoders(t)

	g := newTestGraph(2)
	oneway := addEdge(t, g, nodeX, nodeV, enc.car.AccessFlags(true, false))
	twoway := addEdge(t, g, nodeX, nodeV, enc.car.AccessFlags(true, true))
	bikeOnly := addEdge(t, g, nodeX, nodeV, enc.bike.AccessFlags(true, true))

	testCases := []struct {
		name   string
		filter *DefaultEdgeFilter
		edge   da.Index
		base   da.Index
		want   bool
	}{
		{name: "out along oneway", filter: OutEdges(enc.car), edge: oneway, base: nodeX, want: true},
		{name: "out against oneway", filter: OutEdges(enc.car), edge: oneway, base: nodeV, want: false},
		{name: "in along oneway", filter: InEdges(enc.car), edge: oneway, base: nodeX, want: false},
		{name: "in against oneway", filter: InEdges(enc.car), edge: oneway, base: nodeV, want: true},
		{name: "all oneway", filter: AllEdges(enc.car), edge: oneway, base: nodeV, want: true},
		{name: "out twoway reversed", filter: OutEdges(enc.car), edge: twoway, base: nodeV, want: true},
		{name: "in twoway", filter: InEdges(enc.car), edge: twoway, base: nodeX, want: true},
		{name: "other vehicle", filter: AllEdges(enc.car), edge: bikeOnly, base: nodeX, want: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Accept(view(t, g, tt.edge, tt.base)))
		})
	}

	assert.Equal(t, "car, in:true, out:false", InEdges(enc.car).String())
}

type edgeIdFilter struct {
	rejected da.Index
}

func (f edgeIdFilter) Accept(e da.EdgeState) bool {
	return e.GetEdgeId() != f.rejected
}

func TestEdgeFilterSequence(t *testing.T) {
	enc := newTestEncoders(t)
	g := newTestGraph(3)
	e0 := addEdge(t, g, nodeX, nodeV, enc.car.AccessFlags(true, false))
	e1 := addEdge(t, g, nodeV, nodeY, enc.car.AccessFlags(true, false))

	seq := NewEdgeFilterSequence()
	assert.Equal(t, 0, seq.Len())
	assert.True(t, seq.Accept(view(t, g, e0, nodeV)))

	seq.Add(OutEdges(enc.car))
	seq.Add(edgeIdFilter{rejected: e1})
	assert.Equal(t, 2, seq.Len())

	assert.True(t, seq.Accept(view(t, g, e0, nodeX)))
	assert.False(t, seq.Accept(view(t, g, e0, nodeV)))
	assert.False(t, seq.Accept(view(t, g, e1, nodeV)))
}
