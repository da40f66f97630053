package preprocessor

import (
	"context"
	"time"

	"github.com/lintang-b-s/navigatorx-core/pkg/concurrent"
	da "github.com/lintang-b-s/navigatorx-core/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-core/pkg/edgefilter"
	"github.com/lintang-b-s/navigatorx-core/pkg/util"
	"github.com/lintang-b-s/navigatorx-core/pkg/vehicle"
	"go.uber.org/zap"
)

const defaultEdgesPerJob = 4096

type edgeRange struct {
	from, to da.Index
}

type edgeRangeResult struct {
	from      da.Index
	core      []bool
	cancelled bool
}

// CoreSelector. marks the edges that must stay uncontracted. an edge is a core edge if the filter
// sequence (turn restrictions + extra filters) rejects it seen from either endpoint.
type CoreSelector struct {
	graphStorage *da.GraphStorage
	encoder      vehicle.FlagEncoder
	logger       *zap.Logger
	numWorkers   int
	edgesPerJob  int
	extraFilters []da.EdgeFilter
}

func NewCoreSelector(graphStorage *da.GraphStorage, encoder vehicle.FlagEncoder, logger *zap.Logger,
	numWorkers int) *CoreSelector {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &CoreSelector{
		graphStorage: graphStorage,
		encoder:      encoder,
		logger:       logger,
		numWorkers:   numWorkers,
		edgesPerJob:  defaultEdgesPerJob,
		extraFilters: make([]da.EdgeFilter, 0),
	}
}

// AddEdgeFilter. extra core criterion, shared by all workers so it must be read-only.
func (cs *CoreSelector) AddEdgeFilter(filter da.EdgeFilter) {
	cs.extraFilters = append(cs.extraFilters, filter)
}

func (cs *CoreSelector) SetEdgesPerJob(n int) {
	if n > 0 {
		cs.edgesPerJob = n
	}
}

// newWorkerFilters. one filter sequence per worker.
func (cs *CoreSelector) newWorkerFilters() ([]*edgefilter.EdgeFilterSequence, error) {
	filters := make([]*edgefilter.EdgeFilterSequence, cs.numWorkers)
	for i := 0; i < cs.numWorkers; i++ {
		trFilter, err := edgefilter.NewTurnRestrictionsEdgeFilter(cs.encoder, cs.graphStorage, cs.logger)
		if err != nil {
			return nil, err
		}
		seq := edgefilter.NewEdgeFilterSequence(trFilter)
		for _, f := range cs.extraFilters {
			seq.Add(f)
		}
		filters[i] = seq
	}
	return filters, nil
}

func (cs *CoreSelector) SelectCore(ctx context.Context) (*CoreSelection, error) {
	st := time.Now()
	graph := cs.graphStorage.GetGraph()
	numEdges := graph.NumberOfEdges()

	filters, err := cs.newWorkerFilters()
	if err != nil {
		return nil, err
	}

	cs.logger.Sugar().Infof("Selecting core edges of %d edges with %d workers, filters: %v...",
		numEdges, cs.numWorkers, filters[0])

	jobs := make([]edgeRange, 0, numEdges/cs.edgesPerJob+1)
	for from := 0; from < numEdges; from += cs.edgesPerJob {
		to := util.MinInt(from+cs.edgesPerJob, numEdges)
		jobs = append(jobs, edgeRange{from: da.Index(from), to: da.Index(to)})
	}

	selectRange := func(workerID int, job edgeRange) edgeRangeResult {
		if util.StopConcurrentOperation(ctx) {
			return edgeRangeResult{from: job.from, cancelled: true}
		}
		filter := filters[workerID]
		core := make([]bool, job.to-job.from)
		for e := job.from; e < job.to; e++ {
			state := da.NewEdgeState(graph.GetEdge(e), false)
			core[e-job.from] = !filter.Accept(state) || !filter.Accept(state.Reversed())
		}
		return edgeRangeResult{from: job.from, core: core}
	}

	workers := concurrent.NewWorkerPool[edgeRange, edgeRangeResult](cs.numWorkers, len(jobs))
	for _, job := range jobs {
		workers.AddJob(job)
	}
	workers.Close()
	workers.Start(selectRange)
	workers.Wait()

	isCore := make([]bool, numEdges)
	cancelled := false
	for res := range workers.CollectResults() {
		if res.cancelled {
			cancelled = true
			continue
		}
		copy(isCore[res.from:], res.core)
	}
	if cancelled {
		return nil, util.WrapErrorf(ctx.Err(), util.ErrInternalServerError, "core selection cancelled")
	}
	selection := newCoreSelection(isCore)

	cs.logger.Info("core selection done",
		zap.Int("edges", numEdges),
		zap.Int("coreEdges", selection.Len()),
		zap.Float64("corePercentage", selection.Percentage()),
		zap.Duration("took", time.Since(st)))

	return selection, nil
}
