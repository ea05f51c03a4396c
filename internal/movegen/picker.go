package movegen

import (
	"github.com/lavantien/caroengine/internal/board"
	"github.com/lavantien/caroengine/internal/pattern"
)

// MaxPly bounds killer-move table depth, mirroring the teacher
// engine's ordering.MaxPly.
const MaxPly = 128

// Move ordering priorities (spec §4.5's seven-stage picker, scored so
// a single descending sort produces the right stage order).
const (
	TTMoveScore      = 10_000_000
	MustBlockBase    = 9_000_000
	WinningBase      = 8_000_000
	ThreatCreateBase = 1_000_000
	KillerScore1     = 900_000
	KillerScore2     = 800_000
	CounterMoveScore = 790_000
)

// MoveOrderer holds the history, killer, counter-move, and
// continuation-history tables used to score and reorder candidate
// moves across a search, adapted from the teacher engine's
// engine.MoveOrderer to Caro's [player][cell] Butterfly scheme (spec's
// simplified history indexing, documented as a representation
// decision: a placement game has no "from" square).
type MoveOrderer struct {
	killers  [MaxPly][2]board.Move
	history  [2][board.MaxCells]int
	counter  [2][board.MaxCells]board.Move
	contHist [2][board.MaxCells][2][board.MaxCells]int
}

func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear resets killers and counter-moves and ages the history tables,
// the same decay-not-wipe approach as the teacher's ordering.Clear.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
	for p := range mo.history {
		for c := range mo.history[p] {
			mo.history[p][c] /= 2
		}
	}
	for p := range mo.counter {
		for c := range mo.counter[p] {
			mo.counter[p][c] = board.NoMove
		}
	}
	for p := range mo.contHist {
		for c := range mo.contHist[p] {
			for pp := range mo.contHist[p][c] {
				for cc := range mo.contHist[p][c][pp] {
					mo.contHist[p][c][pp][cc] /= 2
				}
			}
		}
	}
}

// historyBound is spec §3's RANGE: the bounded-update formula
// `value += bonus − value·|bonus|/RANGE` keeps every history cell
// within ±historyBound on its own, asymptotically, without ever
// clamping the stored value.
const historyBound = 30_000

// cutoffBonus is spec §4.7's bonus formula applied to history, killer,
// counter-move, and continuation-history tables on a beta cutoff:
// depth² + depth. Moves tried and rejected before the cutoff move
// receive the same magnitude as a penalty.
func cutoffBonus(depth int) int {
	return depth*depth + depth
}

// boundedUpdate applies spec §3's history formula, which keeps the
// stored value within ±historyBound without ever clamping it: each
// update shrinks toward bonus's sign in proportion to how close value
// already is to the bound.
func boundedUpdate(value, bonus int) int {
	return value + bonus - value*absInt(bonus)/historyBound
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// UpdateHistory applies spec §3's bounded update to the butterfly
// table for a cutoff (isGood) or a rejected quiet move tried before
// the cutoff (!isGood, equal-magnitude penalty).
func (mo *MoveOrderer) UpdateHistory(side board.Player, m board.Move, depth int, isGood bool) {
	idx := int(side) - 1
	c := int(m.Cell())
	bonus := cutoffBonus(depth)
	if !isGood {
		bonus = -bonus
	}
	mo.history[idx][c] = boundedUpdate(mo.history[idx][c], bonus)
}

func (mo *MoveOrderer) GetHistoryScore(side board.Player, m board.Move) int {
	return mo.history[int(side)-1][m.Cell()]
}

func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly || mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

func (mo *MoveOrderer) UpdateCounterMove(side board.Player, prevMove, counterMove board.Move) {
	if prevMove.IsNone() {
		return
	}
	mo.counter[int(side)-1][prevMove.Cell()] = counterMove
}

func (mo *MoveOrderer) GetCounterMove(side board.Player, prevMove board.Move) board.Move {
	if prevMove.IsNone() {
		return board.NoMove
	}
	return mo.counter[int(side)-1][prevMove.Cell()]
}

// UpdateContinuationHistory records that playing `m` after `prevMove`
// was good or bad, the Caro analogue of the teacher's countermove
// history (indexed by [prevPiece][prevTo][movePiece][moveTo]), bounded
// by the same spec §3 formula as the butterfly table.
func (mo *MoveOrderer) UpdateContinuationHistory(side board.Player, prevMove, m board.Move, depth int, isGood bool) {
	if prevMove.IsNone() {
		return
	}
	idx := int(side) - 1
	pc := int(prevMove.Cell())
	oidx := 1 - idx
	mc := int(m.Cell())
	bonus := cutoffBonus(depth)
	if !isGood {
		bonus = -bonus
	}
	mo.contHist[idx][mc][oidx][pc] = boundedUpdate(mo.contHist[idx][mc][oidx][pc], bonus)
}

func (mo *MoveOrderer) continuationScore(side board.Player, prevMove, m board.Move) int {
	if prevMove.IsNone() {
		return 0
	}
	return mo.contHist[int(side)-1][m.Cell()][1-(int(side)-1)][prevMove.Cell()]
}

// ScoreMoves assigns a stage-ordered score to every move in a
// candidate list, per spec §4.5: MustBlock > TTMove > Winning >
// ThreatCreate > Killer/Counter > history-scored quiet moves.
//
// Spec §3: "Must-block outranks TT move only when an opponent Five or
// Flex4 exists on the board; otherwise TT move is searched first
// unconditionally." That requires knowing, before scoring any single
// move, whether *any* candidate is a must-block reply to an opponent
// threat — so this first classifies every move's own/opponent pattern
// once, then scores using that board-wide fact.
func (mo *MoveOrderer) ScoreMoves(
	b *board.Board, side board.Player, moves []board.Move, ply int,
	ttMove, prevMove board.Move,
) []int {
	opp := side.Other()
	oppPatterns := make([]pattern.Pattern4, len(moves))
	ownPatterns := make([]pattern.Pattern4, len(moves))
	mustBlockExists := false
	for i, m := range moves {
		x, y := m.Cell().XY(b.N)
		oppPatterns[i] = pattern.Classify(b, x, y, opp)
		ownPatterns[i] = pattern.Classify(b, x, y, side)
		if oppPatterns[i].IsMustBlock() {
			mustBlockExists = true
		}
	}

	scores := make([]int, len(moves))
	counterMove := mo.GetCounterMove(side, prevMove)
	for i, m := range moves {
		scores[i] = mo.scoreMove(side, m, ply, ttMove, prevMove, counterMove, oppPatterns[i], ownPatterns[i], mustBlockExists)
	}
	return scores
}

func (mo *MoveOrderer) scoreMove(
	side board.Player, m board.Move, ply int,
	ttMove, prevMove, counterMove board.Move,
	oppPattern, ownPattern pattern.Pattern4, mustBlockExists bool,
) int {
	if oppPattern.IsMustBlock() {
		return MustBlockBase + oppPattern.Weight()
	}

	if m == ttMove {
		if !mustBlockExists {
			return TTMoveScore
		}
		// An opponent Five/Flex4 threat exists elsewhere on the board
		// and this stale TT move doesn't address it: still favor it
		// over ordinary quiet moves, but below the must-block tier.
		return MustBlockBase - 1
	}

	if ownPattern.IsWinning() {
		return WinningBase + ownPattern.Weight()
	}
	if ownPattern.IsThreatCreator() {
		return ThreatCreateBase + ownPattern.Weight()
	}

	if m == mo.killers[ply][0] {
		return KillerScore1
	}
	if m == mo.killers[ply][1] {
		return KillerScore2
	}
	if m == counterMove {
		return CounterMoveScore
	}

	return mo.GetHistoryScore(side, m) + mo.continuationScore(side, prevMove, m)/2
}

// PickMove selects the best-scored remaining move at or after index
// and swaps it into place, the same partial-selection-sort lazy
// picker as the teacher's engine.PickMove: only as many comparisons
// run as moves are actually examined by the caller.
func PickMove(moves []board.Move, scores []int, index int) {
	best := index
	for j := index + 1; j < len(moves); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves[index], moves[best] = moves[best], moves[index]
		scores[index], scores[best] = scores[best], scores[index]
	}
}
