package pattern

import "github.com/lavantien/caroengine/internal/board"

// defenseMultiplier is the weight applied to the opponent's threats
// relative to the side to move's own threats (spec §4.3: a pending
// opponent threat is worth more than an equivalent own threat, since
// ignoring it loses the game outright).
const defenseMultiplierNum = 3
const defenseMultiplierDen = 2

// Evaluate computes the static evaluation of board b from the
// perspective of sideToMove, by summing the Pattern4 weight of every
// empty cell for both sides (the strongest threat each empty cell
// would create if played there), with the opponent's threats scaled
// by the defense multiplier.
//
// Grounded on the teacher's internal/engine/eval.go material-plus-PST
// summation pattern, replacing piece-square tables with per-cell
// threat-pattern weights.
func Evaluate(b *board.Board, sideToMove board.Player) int {
	opp := sideToMove.Other()
	var own, their int

	occupied := b.Red.Or(&b.Blue)
	for y := 0; y < b.N; y++ {
		for x := 0; x < b.N; x++ {
			c := board.NewCell(x, y, b.N)
			if occupied.Get(c) {
				continue
			}
			if !occupied.HasAnyAdjacent(x, y, 2, b.N) {
				continue
			}
			own += Classify(b, x, y, sideToMove).Weight()
			their += Classify(b, x, y, opp).Weight()
		}
	}

	return own - (their * defenseMultiplierNum / defenseMultiplierDen)
}
