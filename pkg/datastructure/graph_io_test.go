package datastructure

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-core/pkg"
	"github.com/lintang-b-s/navigatorx-core/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadGraph(t *testing.T) {
	g, _ := newChainGraph(t)
	table := NewTurnCostTable()
	table.AddTurnInfo(0, 1, 1, 5)
	table.AddTurnInfo(1, 2, 2, 1)
	gs := NewGraphStorageWithTurnCosts(g, table)

	filename := filepath.Join(t.TempDir(), "test.graph")
	require.NoError(t, gs.WriteGraph(filename))

	got, err := ReadGraphStorage(filename)
	require.NoError(t, err)

	gotGraph := got.GetGraph()
	assert.Equal(t, g.NumberOfVertices(), gotGraph.NumberOfVertices())
	assert.Equal(t, g.NumberOfEdges(), gotGraph.NumberOfEdges())
	assert.Equal(t, 1, gotGraph.NumberOfShortcuts())

	lat, lon := gotGraph.GetVertexCoordinates(3)
	assert.Equal(t, 3.0, lat)
	assert.Equal(t, -3.0, lon)

	shortcut, ok := gotGraph.GetEdgeState(3, 0)
	require.True(t, ok)
	assert.True(t, shortcut.IsShortcut())
	assert.Equal(t, Index(0), shortcut.GetOrigEdgeFirst())
	assert.Equal(t, Index(1), shortcut.GetOrigEdgeLast())

	// adjacency is rebuilt
	assert.Len(t, gotGraph.CreateEdgeExplorer(nil).SetBaseNode(2), 3)

	gotTable, ok := got.TurnCostExtension()
	require.True(t, ok)
	assert.Equal(t, 2, gotTable.Len())
	assert.Equal(t, pkg.TurnFlags(5), gotTable.GetTurnCostFlags(0, 1, 1))
	assert.Equal(t, pkg.NO_TURN_FLAGS, gotTable.GetTurnCostFlags(1, 1, 0))
}

func TestReadGraphWithoutTurnCosts(t *testing.T) {
	g, _ := newChainGraph(t)
	filename := filepath.Join(t.TempDir(), "no_turn_costs.graph")
	require.NoError(t, NewGraphStorage(g).WriteGraph(filename))

	got, err := ReadGraphStorage(filename)
	require.NoError(t, err)
	_, ok := got.TurnCostExtension()
	assert.False(t, ok)
}

func writeBz2(t *testing.T, content string) string {
	filename := filepath.Join(t.TempDir(), "bad.graph")
	f, err := os.Create(filename)
	require.NoError(t, err)
	defer f.Close()
	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, bz.Close())
	return filename
}

const (
	threeVertices = "0 0 0\n1 0 1\n2 0 2\n"
	edge01        = "0 0 1 0 0 1 4294967295 4294967295\n"
	edge12        = "1 1 2 1 1 1 4294967295 4294967295\n"
)

func TestReadGraphMalformed(t *testing.T) {
	testCases := []struct {
		name         string
		content      string
		wantBadParam bool
	}{
		{name: "bad header", content: "2 1\n", wantBadParam: true},
		{name: "non numeric header", content: "x 1 0 false\n"},
		{name: "truncated vertices", content: "2 0 0 false\n0 1 1\n", wantBadParam: true},
		{name: "huge vertex count", content: "4294967295 0 0 false\n", wantBadParam: true},
		{name: "huge edge count", content: "1 4294967295 0 false\n0 1 1\n", wantBadParam: true},
		{name: "huge turn cost count", content: "1 0 4294967295 true\n0 1 1\n", wantBadParam: true},
		{name: "vertex id does not match its line", content: "2 0 0 false\n0 0 0\n5 0 1\n", wantBadParam: true},
		{name: "edge with unknown vertex", content: "1 1 0 false\n0 1 1\n0 0 5 0 0 1 4294967295 4294967295\n", wantBadParam: true},
		{name: "edge ids out of order", content: "2 1 0 false\n0 1 1\n1 1 1\n3 0 1 3 3 1 4294967295 4294967295\n", wantBadParam: true},
		{name: "dangling skipped edges", content: "2 1 0 false\n0 1 1\n1 1 1\n0 0 1 7 9 3 5 6\n", wantBadParam: true},
		{name: "primitive edge with foreign original edges", content: "3 1 0 false\n" + threeVertices + "0 0 1 5 5 1 4294967295 4294967295\n", wantBadParam: true},
		{name: "shortcut skipping one edge", content: "3 3 0 false\n" + threeVertices + edge01 + edge12 + "2 0 2 0 1 1 0 4294967295\n", wantBadParam: true},
		{name: "shortcut over unconnected edges", content: "3 3 0 false\n" + threeVertices + edge01 + edge12 + "2 0 2 0 0 1 0 0\n", wantBadParam: true},
		{name: "shortcut with swapped original edges", content: "3 3 0 false\n" + threeVertices + edge01 + edge12 + "2 0 2 1 0 1 0 1\n", wantBadParam: true},
		{name: "shortcut skipping itself", content: "3 3 0 false\n" + threeVertices + edge01 + edge12 + "2 0 2 0 1 1 2 1\n", wantBadParam: true},
		{name: "bad turn cost", content: "1 0 1 true\n0 1 1\n1 2\n", wantBadParam: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraphStorage(writeBz2(t, tt.content))
			require.Error(t, err)
			if tt.wantBadParam {
				assert.True(t, errors.Is(err, util.ErrBadParamInput), err.Error())
			}
		})
	}

	_, err := ReadGraphStorage(filepath.Join(t.TempDir(), "missing.graph"))
	assert.Error(t, err)
}

func TestReadGraphShortcut(t *testing.T) {
	content := "3 3 0 false\n" + threeVertices + edge01 + edge12 + "2 0 2 0 1 1 0 1\n"
	gs, err := ReadGraphStorage(writeBz2(t, content))
	require.NoError(t, err)
	assert.Equal(t, 1, gs.GetGraph().NumberOfShortcuts())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("no space left on device")
}

func TestWriteGraphReportsWriterError(t *testing.T) {
	g, _ := newChainGraph(t)
	assert.Error(t, NewGraphStorage(g).writeGraph(failingWriter{}))

	assert.Error(t, NewGraphStorage(g).WriteGraph(filepath.Join(t.TempDir(), "missing", "test.graph")))
}
