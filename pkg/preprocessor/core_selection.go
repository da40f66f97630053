package preprocessor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dsnet/compress/bzip2"
	da "github.com/lintang-b-s/navigatorx-core/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-core/pkg/util"
	"github.com/pkg/errors"
)

// maxPreallocated. upper bound for slice capacities taken from file headers.
const maxPreallocated = 1 << 16

// CoreSelection. sorted ids of the core edges of a graph with numEdges edges.
type CoreSelection struct {
	numEdges  int
	coreEdges []da.Index
}

// newCoreSelection. isCore[e] marks edge e as a core edge.
func newCoreSelection(isCore []bool) *CoreSelection {
	coreEdges := make([]da.Index, 0)
	for e, core := range isCore {
		if core {
			coreEdges = append(coreEdges, da.Index(e))
		}
	}
	return &CoreSelection{numEdges: len(isCore), coreEdges: coreEdges}
}

func (c *CoreSelection) IsCore(e da.Index) bool {
	i := sort.Search(len(c.coreEdges), func(i int) bool {
		return c.coreEdges[i] >= e
	})
	return i < len(c.coreEdges) && c.coreEdges[i] == e
}

// Len. number of core edges
func (c *CoreSelection) Len() int {
	return len(c.coreEdges)
}

func (c *CoreSelection) NumberOfEdges() int {
	return c.numEdges
}

func (c *CoreSelection) Percentage() float64 {
	if c.numEdges == 0 {
		return 0
	}
	return float64(len(c.coreEdges)) / float64(c.numEdges) * 100
}

func (c *CoreSelection) CoreEdges() []da.Index {
	edges := make([]da.Index, len(c.coreEdges))
	copy(edges, c.coreEdges)
	return edges
}

// WriteCoreEdges. bzip2 compressed text: "numEdges numCoreEdges" followed by one core edge id per line, ascending.
func (c *CoreSelection) WriteCoreEdges(filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return c.writeCoreEdges(f)
}

func (c *CoreSelection) writeCoreEdges(out io.Writer) (err error) {
	bz, err := bzip2.NewWriter(out, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := bz.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(bz)
	fmt.Fprintf(w, "%d %d\n", c.numEdges, len(c.coreEdges))
	for _, e := range c.coreEdges {
		fmt.Fprintf(w, "%d\n", e)
	}
	return w.Flush()
}

func ReadCoreEdges(filename string) (*CoreSelection, error) {
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
		return nil, errors.Wrap(err, "reading core edges header")
	}
	tokens := util.Fields(line)
	if len(tokens) != 2 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "core edges header: expected 2 fields, got %d", len(tokens))
	}
	numEdges, err := da.ParseIndex(tokens[0])
	if err != nil {
		return nil, errors.Wrap(err, "core edges header")
	}
	numCore, err := da.ParseIndex(tokens[1])
	if err != nil {
		return nil, errors.Wrap(err, "core edges header")
	}
	if numCore > numEdges {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "%d core edges in a graph with %d edges", numCore, numEdges)
	}

	selection := &CoreSelection{
		numEdges:  int(numEdges),
		coreEdges: make([]da.Index, 0, util.MinInt(int(numCore), maxPreallocated)),
	}
	for i := 0; i < int(numCore); i++ {
		line, err = util.ReadLine(br)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "reading core edge %d", i)
		}
		e, err := da.ParseIndex(line)
		if err != nil {
			return nil, errors.Wrapf(err, "core edge %d", i)
		}
		if e >= numEdges {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "core edge %d out of range", e)
		}
		if n := len(selection.coreEdges); n > 0 && selection.coreEdges[n-1] >= e {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "core edge %d not in ascending order", e)
		}
		selection.coreEdges = append(selection.coreEdges, e)
	}
	return selection, nil
}
