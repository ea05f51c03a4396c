package engine

import (
	"math"
	"sync/atomic"

	"github.com/lavantien/caroengine/internal/board"
	"github.com/lavantien/caroengine/internal/statlog"
)

// lmrReductions is a precomputed table of late-move reductions, the
// same Stockfish-derived formula the teacher engine uses:
// (21.46 * log(depth)) * (21.46 * log(moveCount)) / 1024.
var lmrReductions [64][64]int

func init() {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			lmrReductions[d][m] = int(21.46 * math.Log(float64(d)) * 21.46 * math.Log(float64(m)) / 1024.0)
		}
	}
}

// WorkerResult is what a helper worker reports back to the lazy-SMP
// coordinator at the end of each completed iterative-deepening depth,
// mirroring the teacher's WorkerResult.
type WorkerResult struct {
	WorkerID int
	Depth    int
	Score    int32
	Move     board.Move
	Nodes    uint64
}

// Worker wraps a Searcher with the odd-ID depth skew and result
// reporting needed for lazy-SMP helper threads: every helper runs the
// exact same negamax as the master, but helper goroutines with an odd
// ID skip every even-depth iteration (see depthForIteration) so the
// pool explores a spread of depths instead of duplicating the master's
// work.
type Worker struct {
	id       int
	searcher *Searcher
	resultCh chan<- WorkerResult
	pub      *statlog.Publisher
}

// NewWorker creates a helper worker sharing tt and stopFlag with the
// master and every other helper.
func NewWorker(id int, tt *TranspositionTable, stopFlag *atomic.Bool, resultCh chan<- WorkerResult) *Worker {
	return &Worker{
		id:       id,
		searcher: NewSearcher(id, tt, stopFlag),
		resultCh: resultCh,
	}
}

func (w *Worker) ID() int          { return w.id }
func (w *Worker) Nodes() uint64    { return w.searcher.Nodes() }
func (w *Worker) Reset()           { w.searcher.Reset() }

// depthForIteration applies the odd-worker depth skew of spec §4.9:
// "odd-IDs skip every other iteration" to diversify exploration.
// Worker 0 (the master) never skips. Odd-numbered helpers skip every
// other outer iteration (even depths) rather than searching deeper,
// so the pool spends its skipped cycles letting other helpers and the
// master populate the shared TT instead of duplicating their depths.
func (w *Worker) depthForIteration(depth int) (d int, skip bool) {
	if w.id != 0 && w.id%2 == 1 && depth%2 == 0 {
		return 0, true
	}
	return depth, false
}

// Run drives its own iterative-deepening loop up to maxDepth, calling
// SearchDepth directly (never Searcher.Search) so this worker's
// killer/history/continuation/counter-move tables accumulate across
// depths instead of being wiped on every iteration (spec §4.9: "each
// thread owns its own" ordering tables). It pushes a WorkerResult to
// resultCh after every completed depth if one is set, until stopFlag
// is set or maxDepth is reached. It is meant to run on its own
// goroutine; the master worker (id 0) is driven directly by the
// coordinator instead since its result is the one returned to the
// caller.
func (w *Worker) Run(b board.Board, side board.Player, maxDepth int, firstRedCell board.Cell, stopFlag *atomic.Bool) {
	var bestScore int32
	for depth := 1; depth <= maxDepth; depth++ {
		if stopFlag.Load() {
			return
		}
		d, skip := w.depthForIteration(depth)
		if skip {
			continue
		}
		m, score, ok := w.searcher.SearchDepth(b, side, d, firstRedCell, bestScore)
		if stopFlag.Load() || !ok {
			return
		}
		bestScore = score
		if w.pub != nil {
			w.pub.Publish(statlog.Sample{
				WorkerID: w.id,
				Depth:    d,
				Nodes:    w.searcher.Nodes(),
				Score:    score,
			})
		}
		if w.resultCh != nil {
			w.resultCh <- WorkerResult{
				WorkerID: w.id,
				Depth:    d,
				Score:    score,
				Move:     m,
				Nodes:    w.searcher.Nodes(),
			}
		}
	}
}
