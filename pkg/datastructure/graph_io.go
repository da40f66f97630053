package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-core/pkg"
	"github.com/lintang-b-s/navigatorx-core/pkg/util"
	"github.com/pkg/errors"
)

// maxPreallocated. upper bound for slice capacities taken from file headers.
const maxPreallocated = 1 << 16

// WriteGraph. bzip2 compressed text:
//
//	numVertices numEdges numTurnCosts hasTurnCosts
//	id lat lon                                              (numVertices lines)
//	edgeId base adj origFirst origLast access skip1 skip2   (numEdges lines)
//	from via to flags                                       (numTurnCosts lines)
func (gs *GraphStorage) WriteGraph(filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return gs.writeGraph(f)
}

func (gs *GraphStorage) writeGraph(out io.Writer) (err error) {
	bz, err := bzip2.NewWriter(out, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	// closing writes the bzip2 trailer
	defer func() {
		if cerr := bz.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(bz)
	g := gs.graph
	turnCosts, hasTurnCosts := gs.TurnCostExtension()

	fmt.Fprintf(w, "%d %d %d %t\n", g.NumberOfVertices(), g.NumberOfEdges(), turnCosts.Len(), hasTurnCosts)

	for _, v := range g.vertices {
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)
		fmt.Fprintf(w, "%d %s %s\n", v.id, latF, lonF)
	}

	for _, e := range g.edges {
		fmt.Fprintf(w, "%d %d %d %d %d %d %d %d\n",
			e.edgeId, e.base, e.adj, e.origEdgeFirst, e.origEdgeLast, e.access, e.skippedEdge1, e.skippedEdge2)
	}

	turnCosts.ForEach(func(fromEdge, viaNode, toEdge Index, flags pkg.TurnFlags) {
		fmt.Fprintf(w, "%d %d %d %d\n", fromEdge, viaNode, toEdge, flags)
	})

	return w.Flush()
}

func ReadGraphStorage(filename string) (*GraphStorage, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, errors.Wrap(err, "reading graph header")
	}
	tokens := util.Fields(line)
	if len(tokens) != 4 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "graph header: expected 4 fields, got %d", len(tokens))
	}

	numVertices, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, errors.Wrap(err, "graph header")
	}
	numEdges, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, errors.Wrap(err, "graph header")
	}
	numTurnCosts, err := ParseIndex(tokens[2])
	if err != nil {
		return nil, errors.Wrap(err, "graph header")
	}
	hasTurnCosts, err := strconv.ParseBool(tokens[3])
	if err != nil {
		return nil, errors.Wrap(err, "graph header")
	}

	// header counts are not trusted for allocation, a truncated file fails on the missing line
	vertices := make([]*Vertex, 0, util.MinInt(int(numVertices), maxPreallocated))
	for i := 0; i < int(numVertices); i++ {
		vertexLine, err := util.ReadLine(br)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "reading vertex %d", i)
		}
		v, err := parseVertex(vertexLine)
		if err != nil {
			return nil, errors.Wrapf(err, "vertex %d", i)
		}
		if v.id != Index(i) {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "vertex id %d on line of vertex %d", v.id, i)
		}
		vertices = append(vertices, v)
	}

	graph := NewGraph(vertices)
	for i := 0; i < int(numEdges); i++ {
		edgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "reading edge %d", i)
		}
		edge, err := parseEdge(edgeLine)
		if err != nil {
			return nil, errors.Wrapf(err, "edge %d", i)
		}
		if err = graph.restoreEdge(edge); err != nil {
			return nil, errors.Wrapf(err, "edge %d", i)
		}
	}

	gs := NewGraphStorage(graph)
	if !hasTurnCosts {
		return gs, nil
	}

	turnCosts := NewTurnCostTable()
	for i := 0; i < int(numTurnCosts); i++ {
		turnLine, err := util.ReadLine(br)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "reading turn cost %d", i)
		}
		tokens = util.Fields(turnLine)
		if len(tokens) != 4 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "turn cost %d: expected 4 fields, got %d", i, len(tokens))
		}
		ids := make([]Index, 3)
		for j := 0; j < 3; j++ {
			ids[j], err = ParseIndex(tokens[j])
			if err != nil {
				return nil, errors.Wrapf(err, "turn cost %d", i)
			}
		}
		flags, err := strconv.ParseUint(tokens[3], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "turn cost %d", i)
		}
		turnCosts.AddTurnInfo(ids[0], ids[1], ids[2], pkg.TurnFlags(flags))
	}
	gs.SetTurnCostExtension(turnCosts)

	return gs, nil
}

// restoreEdge. appends an edge read from disk, keeping its ids. the original edge ids must match what
// AddEdge/AddShortcut would have produced.
func (g *Graph) restoreEdge(e *Edge) error {
	if int(e.edgeId) != len(g.edges) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "edge id %d out of order, expected %d", e.edgeId, len(g.edges))
	}
	if !g.validNode(e.base) || !g.validNode(e.adj) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "edge %d references unknown vertex", e.edgeId)
	}

	origFirst, origLast := e.edgeId, e.edgeId
	switch {
	case e.skippedEdge1 == NO_EDGE && e.skippedEdge2 == NO_EDGE:
	case e.skippedEdge1 == NO_EDGE || e.skippedEdge2 == NO_EDGE:
		return util.WrapErrorf(nil, util.ErrBadParamInput, "shortcut %d skips only one edge", e.edgeId)
	default:
		var err error
		origFirst, origLast, err = g.shortcutOrigEdges(e.base, e.adj, e.skippedEdge1, e.skippedEdge2)
		if err != nil {
			return errors.Wrapf(err, "shortcut %d", e.edgeId)
		}
	}
	if e.origEdgeFirst != origFirst || e.origEdgeLast != origLast {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "edge %d: original edges %d,%d, expected %d,%d",
			e.edgeId, e.origEdgeFirst, e.origEdgeLast, origFirst, origLast)
	}

	g.appendEdge(e)
	if e.IsShortcut() {
		g.shortcutsCount++
	}
	return nil
}

func parseVertex(line string) (*Vertex, error) {
	tokens := util.Fields(line)
	if len(tokens) != 3 {
		return nil, fmt.Errorf("expected 3 fields, got %d", len(tokens))
	}
	id, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, err
	}
	lat, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return nil, err
	}
	return NewVertex(lat, lon, id), nil
}

func parseEdge(line string) (*Edge, error) {
	tokens := util.Fields(line)
	if len(tokens) != 8 {
		return nil, fmt.Errorf("expected 8 fields, got %d", len(tokens))
	}
	ids := make([]Index, 8)
	for i, token := range tokens {
		if i == 5 {
			continue
		}
		id, err := ParseIndex(token)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	access, err := strconv.ParseUint(tokens[5], 10, 64)
	if err != nil {
		return nil, err
	}

	return &Edge{
		edgeId:        ids[0],
		base:          ids[1],
		adj:           ids[2],
		origEdgeFirst: ids[3],
		origEdgeLast:  ids[4],
		access:        pkg.AccessFlags(access),
		skippedEdge1:  ids[6],
		skippedEdge2:  ids[7],
	}, nil
}

func ParseIndex(s string) (Index, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, fmt.Errorf("value %s overflows uint32", s)
	}
	return Index(u), nil
}
