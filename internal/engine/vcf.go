package engine

import (
	"github.com/lavantien/caroengine/internal/board"
	"github.com/lavantien/caroengine/internal/movegen"
	"github.com/lavantien/caroengine/internal/pattern"
)

// vcfMaxDepth is the default ply bound for a VCF search, matching the
// difficulty-independent default the engine falls back to.
const vcfMaxDepth = 20

// vcfTTDepth marks a VCF result stored in the transposition table as
// maximal-confidence: it is exact regardless of how deep the main
// search later probes it.
const vcfTTDepth = 127

// VCFResult reports whether the attacking side has a forced win by
// continuous fours, and if so the first move of the winning sequence.
type VCFResult struct {
	Winning  bool
	Sequence []board.Move
}

// VCFSolver searches for a forced win-by-continuous-fours from the
// side to move, alternating attacker and defender roles (spec §4.8):
// the attacker only ever plays moves that create a four-threat
// (Flex4, Block4, Flex4Flex3, or an immediate Five), and the defender
// must either concede (no block exists), play the single forced
// block, or the branch is pruned as unwinnable (more than one way to
// block means the attacker's sequence wasn't actually forcing).
//
// Grounded on the teacher engine's negamax shape (TT probe/store,
// shared cancellation flag) narrowed to a single-threat-type game
// tree, since the teacher has no direct analogue of a mate-threat
// solver.
type VCFSolver struct {
	tt           *TranspositionTable
	firstRedCell board.Cell
}

func NewVCFSolver(tt *TranspositionTable, firstRedCell board.Cell) *VCFSolver {
	return &VCFSolver{tt: tt, firstRedCell: firstRedCell}
}

// Solve runs the attacker/defender search to at most vcfMaxDepth plies
// from b, with attacker to move as side.
func (v *VCFSolver) Solve(b board.Board, side board.Player) VCFResult {
	seq := v.attack(&b, side, vcfMaxDepth)
	return VCFResult{Winning: seq != nil, Sequence: seq}
}

// attack enumerates the attacker's forcing moves (Pattern4 in {Flex4,
// Block4, Flex4Flex3, Five}) and recurses as defender for each. The
// first move that leads to a forced win is returned as the head of
// the winning sequence.
func (v *VCFSolver) attack(b *board.Board, side board.Player, depth int) []board.Move {
	if depth <= 0 {
		return nil
	}
	if entry, ok := v.tt.Probe(b.Hash); ok && entry.Flag == TTExact && int(entry.Depth) == vcfTTDepth {
		if entry.Score >= MateScore-int32(MaxPly) {
			return []board.Move{entry.Move}
		}
		return nil
	}

	for _, c := range movegen.GenerateCandidates(b, side, v.firstRedCell) {
		x, y := c.XY(b.N)
		p4 := pattern.Classify(b, x, y, side)
		if !isForcingFour(p4) {
			continue
		}

		nb, err := b.Place(x, y, side)
		if err != nil {
			continue
		}
		m := board.NewMove(c)

		if res := pattern.CheckWin(&nb, x, y, side); res.Won {
			v.tt.Store(0, b.Hash, vcfTTDepth, MateScore, TTExact, m)
			return []board.Move{m}
		}

		if rest := v.defend(&nb, side.Other(), depth-1); rest != nil {
			v.tt.Store(0, b.Hash, vcfTTDepth, MateScore, TTExact, m)
			return append([]board.Move{m}, rest...)
		}
	}

	v.tt.Store(0, b.Hash, vcfTTDepth, 0, TTExact, board.NoMove)
	return nil
}

// defend computes the forced blocks against the attacker's
// four-threats left by the last move. No block exists -> attacker has
// already won (nil continuation needed by caller); exactly one block
// -> play it and recurse as attacker; more than one -> this branch is
// not actually forcing and is pruned.
func (v *VCFSolver) defend(b *board.Board, defender board.Player, depth int) []board.Move {
	if depth <= 0 {
		return nil
	}
	attacker := defender.Other()

	var forcedBlocks []board.Cell
	for _, c := range movegen.GenerateCandidates(b, defender, v.firstRedCell) {
		x, y := c.XY(b.N)
		if pattern.Classify(b, x, y, attacker).IsMustBlock() {
			forcedBlocks = append(forcedBlocks, c)
		}
	}

	switch len(forcedBlocks) {
	case 0:
		// No block breaks the attacker's threat: attacker wins outright.
		return []board.Move{}
	case 1:
		c := forcedBlocks[0]
		x, y := c.XY(b.N)
		nb, err := b.Place(x, y, defender)
		if err != nil {
			return nil
		}
		m := board.NewMove(c)
		rest := v.attack(&nb, attacker, depth-1)
		if rest == nil {
			return nil
		}
		return append([]board.Move{m}, rest...)
	default:
		return nil
	}
}

// isForcingFour reports whether p4 is one of the attacker's allowed
// continuing threats in a VCF sequence.
func isForcingFour(p4 pattern.Pattern4) bool {
	switch p4 {
	case pattern.Five, pattern.Flex4, pattern.Block4, pattern.Flex4Flex3:
		return true
	default:
		return false
	}
}
