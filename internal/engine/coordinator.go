package engine

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/lavantien/caroengine/internal/board"
	"github.com/lavantien/caroengine/internal/statlog"
)

// Coordinator runs lazy-SMP parallel search: a master worker performs
// the authoritative iterative-deepening search while N-1 helper
// workers search the same position on their own goroutines, sharing
// only the transposition table, to spread out the search tree without
// splitting work explicitly. Grounded on the endgame solver's
// iterativelyDeepenLazySMP (errgroup.Group plus a per-helper
// context.CancelFunc, torn down after the master's iteration
// completes).
type Coordinator struct {
	tt       *TranspositionTable
	workers  []*Worker
	stopFlag *atomic.Bool

	pub  *statlog.Publisher
	sink *statlog.Sink
}

// NewCoordinator builds a coordinator with one master worker (id 0)
// and numHelpers helper workers, all sharing tt. Every worker reports
// its per-depth telemetry through a single shared Publisher, drained
// by one Sink goroutine for the coordinator's lifetime (spec §5:
// single-producer-per-worker would require one Publisher per worker,
// but since only one Sink goroutine ever runs at a time here, workers
// share a Publisher and rely on its internal non-blocking Publish to
// stay consumer-agnostic).
func NewCoordinator(tt *TranspositionTable, numHelpers int) *Coordinator {
	c := &Coordinator{
		tt:       tt,
		stopFlag: &atomic.Bool{},
		pub:      statlog.NewPublisher(),
		sink:     statlog.NewSink(),
	}
	c.workers = make([]*Worker, numHelpers+1)
	for i := range c.workers {
		c.workers[i] = NewWorker(i, tt, c.stopFlag, nil)
		c.workers[i].pub = c.pub
	}
	go c.sink.Drain(c.pub)
	return c
}

// Close stops the telemetry sink. Callers that own a Coordinator for
// the lifetime of an Engine rather than a single search may skip this;
// it exists so short-lived coordinators (tests, the pondering
// coordinator) can release their drain goroutine deterministically.
func (c *Coordinator) Close() {
	c.pub.Close()
}

// StopFlag exposes the shared cancellation flag so a caller (e.g. the
// engine's time manager) can end the search early.
func (c *Coordinator) StopFlag() *atomic.Bool { return c.stopFlag }

// Search runs the master worker's own iterative-deepening loop to
// maxDepth while every helper worker runs its own iterative-deepening
// loop (via Worker.Run) concurrently for the whole search, each
// driving SearchDepth directly rather than Searcher.Search so no
// worker's killer/history/continuation/counter-move tables are reset
// between depths (spec §4.9: "each thread owns its own" ordering
// tables, accumulated for the search's lifetime, not wiped every
// iteration). Helper results are discarded; their only effect is
// populating the shared transposition table that the master
// subsequently probes. Returns the master's best move, score, and
// total node count across all workers.
func (c *Coordinator) Search(ctx context.Context, b board.Board, side board.Player, maxDepth int, firstRedCell board.Cell) (board.Move, int32, uint64) {
	c.stopFlag.Store(false)
	c.tt.NewSearch()
	for _, w := range c.workers {
		w.Reset()
	}

	master := c.workers[0]
	helpers := c.workers[1:]

	// Propagate ctx's deadline/cancellation into the shared stop flag
	// that both the master's loop below and every helper's Run loop
	// poll, for the whole lifetime of this Search call.
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			c.stopFlag.Store(true)
		case <-watchDone:
		}
	}()

	g, _ := errgroup.WithContext(ctx)
	for _, h := range helpers {
		h := h
		g.Go(func() error {
			h.Run(b, side, maxDepth, firstRedCell, c.stopFlag)
			return nil
		})
	}

	var bestMove board.Move
	var bestScore int32
	for depth := 1; depth <= maxDepth; depth++ {
		if c.stopFlag.Load() {
			break
		}
		m, score, ok := master.searcher.SearchDepth(b, side, depth, firstRedCell, bestScore)
		if !ok {
			break
		}
		bestScore = score
		if !m.IsNone() {
			bestMove = m
		}
		c.pub.Publish(statlog.Sample{
			WorkerID:  master.id,
			Depth:     depth,
			Nodes:     master.Nodes(),
			TTHitRate: c.tt.HitRate(),
			Score:     score,
		})
	}

	c.stopFlag.Store(true)
	close(watchDone)
	_ = g.Wait()

	var totalNodes uint64
	for _, w := range c.workers {
		totalNodes += w.Nodes()
	}
	return bestMove, bestScore, totalNodes
}
