package engine

import (
	"sync/atomic"

	"github.com/lavantien/caroengine/internal/board"
	"github.com/lavantien/caroengine/internal/movegen"
	"github.com/lavantien/caroengine/internal/pattern"
)

// Search constants, matching the teacher engine's scale so the
// Pattern4 weight table (spec §4.3, up to 100,000 for Five) fits
// comfortably under Infinity.
const (
	Infinity  = 1_000_000
	MateScore = 900_000
	MaxPly    = 128
)

// quiescenceMaxPlies bounds quiescence extension (spec §4.7 step 1).
const quiescenceMaxPlies = 6

// nodeCheckMask sets how often a node checks the shared cancellation
// flag, matching spec §4.7's cancellation cadence and the teacher's
// `s.nodes&4095 == 0` polling pattern (rounded to a power of two near
// the spec's ~2048 nodes).
const nodeCheckMask = 2047

// PVTable stores the principal variation, identical in shape to the
// teacher engine's PVTable.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Searcher performs the alpha-beta/PVS search for one worker (thread 0
// or a lazy-SMP helper). Per-worker state (orderer, PV, eval stack) is
// never touched by another goroutine; only tt is shared.
type Searcher struct {
	id      int
	tt      *TranspositionTable
	orderer *movegen.MoveOrderer

	nodes    uint64
	stopFlag *atomic.Bool

	pv        PVTable
	evalStack [MaxPly]int

	firstRedCell board.Cell
	rootPly      int
}

func NewSearcher(id int, tt *TranspositionTable, stopFlag *atomic.Bool) *Searcher {
	return &Searcher{
		id:       id,
		tt:       tt,
		orderer:  movegen.NewMoveOrderer(),
		stopFlag: stopFlag,
	}
}

func (s *Searcher) Reset() {
	s.nodes = 0
	s.orderer.Clear()
}

func (s *Searcher) Nodes() uint64 { return s.nodes }

// Search runs an iterative-deepening PVS search to maxDepth, stopping
// early if stopFlag is set, and returns the best move and score found
// at the deepest completed iteration (spec §4.7's aspiration-window
// iterative deepening). It resets this Searcher's per-thread ordering
// tables once at entry, then drives SearchDepth itself — callers that
// already own an outer iterative-deepening loop (the lazy-SMP
// coordinator, worker helpers) should call SearchDepth directly instead
// so killer/history/continuation state accumulates across depths rather
// than being wiped on every call (spec §4.9: "each thread owns its own
// killer, history, continuation, and counter-move tables").
func (s *Searcher) Search(b board.Board, side board.Player, maxDepth int, firstRedCell board.Cell) (board.Move, int32) {
	s.Reset()

	var bestMove board.Move
	var bestScore int32

	for depth := 1; depth <= maxDepth; depth++ {
		if s.stopFlag.Load() {
			break
		}
		m, score, ok := s.SearchDepth(b, side, depth, firstRedCell, bestScore)
		if !ok {
			break
		}
		bestScore = score
		if !m.IsNone() {
			bestMove = m
		}
	}

	return bestMove, bestScore
}

// SearchDepth runs a single iterative-deepening iteration at depth,
// centering the aspiration window on prevScore (the previous
// iteration's result) per spec §4.7, without resetting this Searcher's
// ordering tables. It returns ok=false only if the search was
// cancelled mid-iteration, in which case the returned move/score must
// be discarded by the caller; the returned move is the no-move
// sentinel if this iteration never recorded a root PV (the caller
// should then keep whatever root move an earlier iteration found).
func (s *Searcher) SearchDepth(b board.Board, side board.Player, depth int, firstRedCell board.Cell, prevScore int32) (board.Move, int32, bool) {
	s.firstRedCell = firstRedCell

	delta := int32(50)
	var alpha, beta int32
	if depth >= 4 {
		alpha, beta = prevScore-delta, prevScore+delta
	} else {
		alpha, beta = -int32(Infinity), int32(Infinity)
	}

	var score int32
	for {
		score = s.negamax(&b, side, depth, 0, alpha, beta, board.NoMove)
		if s.stopFlag.Load() {
			return board.NoMove, 0, false
		}
		if score <= alpha {
			alpha -= delta
			delta *= 2
			continue
		}
		if score >= beta {
			beta += delta
			delta *= 2
			continue
		}
		break
	}

	if s.pv.length[0] == 0 {
		return board.NoMove, score, true
	}
	return s.pv.moves[0][0], score, true
}

// negamax implements spec §4.7's search: TT probe/cutoff, quiescence
// at the horizon, staged-picker move loop with late-move reduction and
// PVS null-window re-search, history/killer/continuation updates on
// cutoff, and TT store on exit.
func (s *Searcher) negamax(b *board.Board, side board.Player, depth, ply int, alpha, beta int32, prevMove board.Move) int32 {
	if s.nodes&nodeCheckMask == 0 && s.stopFlag.Load() {
		return 0
	}
	s.nodes++
	s.pv.length[ply] = ply

	var ttMove board.Move
	entry, found := s.tt.Probe(b.Hash)
	if found {
		ttMove = entry.Move
		// No TT cutoff at the root: the root must always record a PV move.
		if ply > 0 && int(entry.Depth) >= depth {
			score := AdjustScoreFromTT(entry.Score, ply)
			switch entry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score > alpha {
					alpha = score
				}
			case TTUpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(b, side, ply, alpha, beta, 0)
	}

	candidates := movegen.GenerateCandidates(b, side, s.firstRedCell)
	if len(candidates) == 0 {
		return 0 // board full: draw
	}

	moves := make([]board.Move, len(candidates))
	for i, c := range candidates {
		moves[i] = board.NewMove(c)
	}

	scores := s.orderer.ScoreMoves(b, side, moves, ply, ttMove, prevMove)

	bestScore := -int32(Infinity)
	bestMove := board.NoMove
	flag := TTUpperBound
	nonPV := beta-alpha <= 1
	improving := ply < 2 || s.evalStack[ply] > s.evalStack[ply-2]
	s.evalStack[ply] = int(pattern.Evaluate(b, side))

	for i := range moves {
		movegen.PickMove(moves, scores, i)
		m := moves[i]
		x, y := m.Cell().XY(b.N)

		nb, err := b.Place(x, y, side)
		if err != nil {
			continue // generator/TT disagreement; skip defensively at the leaf
		}

		if res := pattern.CheckWin(&nb, x, y, side); res.Won {
			childScore := int32(MateScore) - int32(ply+1)
			s.recordPV(ply, m)
			s.tt.Store(s.id, b.Hash, int8(depth), AdjustScoreToTT(childScore, ply), TTExact, m)
			return childScore
		}

		r := s.reduction(depth, i+1, m, ttMove, side, nonPV, improving)

		var score int32
		if i == 0 {
			score = -s.negamax(&nb, side.Other(), depth-1, ply+1, -beta, -alpha, m)
		} else {
			score = -s.negamax(&nb, side.Other(), depth-1-r, ply+1, -alpha-1, -alpha, m)
			if score > alpha && (r > 0 || score < beta) {
				score = -s.negamax(&nb, side.Other(), depth-1, ply+1, -beta, -alpha, m)
			}
		}

		if s.stopFlag.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				flag = TTExact
				s.recordPV(ply, m)
			}
		}

		if score >= beta {
			s.orderer.UpdateKillers(m, ply)
			s.orderer.UpdateHistory(side, m, depth, true)
			s.orderer.UpdateCounterMove(side, prevMove, m)
			s.orderer.UpdateContinuationHistory(side, prevMove, m, depth, true)
			for j := 0; j < i; j++ {
				s.orderer.UpdateHistory(side, moves[j], depth, false)
				s.orderer.UpdateContinuationHistory(side, prevMove, moves[j], depth, false)
			}
			s.tt.Store(s.id, b.Hash, int8(depth), AdjustScoreToTT(score, ply), TTLowerBound, bestMove)
			return score
		}
	}

	s.tt.Store(s.id, b.Hash, int8(depth), AdjustScoreToTT(bestScore, ply), flag, bestMove)
	return bestScore
}

// reduction computes the late-move reduction per spec §4.7: a base
// log-log term, +1 for a non-PV node that isn't improving, -2 for the
// TT move, and -1 per 4096 of history score, clamped to [0, depth-1].
func (s *Searcher) reduction(depth, moveCount int, m, ttMove board.Move, side board.Player, nonPV, improving bool) int {
	if moveCount <= 1 || depth < 3 {
		return 0
	}
	r := lmrReductions[clampIdx(depth)][clampIdx(moveCount)]
	if nonPV && !improving {
		r++
	}
	if m == ttMove {
		r -= 2
	}
	hist := s.orderer.GetHistoryScore(side, m)
	r -= hist / 4096
	if r < 0 {
		r = 0
	}
	if r > depth-1 {
		r = depth - 1
	}
	return r
}

func clampIdx(v int) int {
	if v < 1 {
		return 1
	}
	if v > 63 {
		return 63
	}
	return v
}

func (s *Searcher) recordPV(ply int, m board.Move) {
	s.pv.moves[ply][ply] = m
	for j := ply + 1; j < s.pv.length[ply+1]; j++ {
		s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
	}
	s.pv.length[ply] = s.pv.length[ply+1]
}

// quiescence extends the search through forcing moves only (spec
// §4.7 step 1: own or opponent category >= Block4), bounded to
// quiescenceMaxPlies beyond the horizon.
func (s *Searcher) quiescence(b *board.Board, side board.Player, ply int, alpha, beta int32, qply int) int32 {
	if s.stopFlag.Load() {
		return 0
	}
	s.nodes++

	standPat := int32(pattern.Evaluate(b, side))
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qply >= quiescenceMaxPlies || ply >= MaxPly-1 {
		return alpha
	}

	candidates := movegen.GenerateCandidates(b, side, s.firstRedCell)
	opp := side.Other()
	for _, c := range candidates {
		x, y := c.XY(b.N)
		own := pattern.Classify(b, x, y, side)
		theirs := pattern.Classify(b, x, y, opp)
		if own < pattern.Block4 && theirs < pattern.Block4 {
			continue
		}

		nb, err := b.Place(x, y, side)
		if err != nil {
			continue
		}
		if res := pattern.CheckWin(&nb, x, y, side); res.Won {
			return int32(MateScore) - int32(ply+1)
		}

		score := -s.quiescence(&nb, opp, ply+1, -beta, -alpha, qply+1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}
