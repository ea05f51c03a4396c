package pattern

import "github.com/lavantien/caroengine/internal/board"

// cellState is the 2-bit-per-cell encoding of spec §4.3: empty, own,
// opposite, or unused (out of bounds).
type cellState uint8

const (
	stEmpty cellState = iota
	stOwn
	stOpp
	stOOB
)

// direction is one of the four lines through a cell: horizontal,
// vertical, and the two diagonals.
type direction struct{ dx, dy int }

var directions = [4]direction{
	{1, 0},  // horizontal
	{0, 1},  // vertical
	{1, 1},  // diagonal ↘
	{1, -1}, // anti-diagonal ↗
}

// windowRadius is how far the line window extends on each side of the
// candidate cell (spec §4.3: "a window of ±5 cells").
const windowRadius = 5
const windowLen = windowRadius*2 + 1 // 11

// extractWindow builds the 11-cell window along dir centered on (x, y),
// from the perspective of `side` (the side hypothetically placing a
// stone at the center). Index windowRadius (5) is the center and is
// always stOwn, since the classifier evaluates the effect of placing
// there.
func extractWindow(b *board.Board, x, y int, dir direction, side board.Player) [windowLen]cellState {
	var w [windowLen]cellState
	opp := side.Other()
	for i := -windowRadius; i <= windowRadius; i++ {
		cx := x + i*dir.dx
		cy := y + i*dir.dy
		idx := i + windowRadius
		if !board.InBounds(cx, cy, b.N) {
			w[idx] = stOOB
			continue
		}
		if i == 0 {
			w[idx] = stOwn
			continue
		}
		c := board.NewCell(cx, cy, b.N)
		switch b.PlayerAt(c) {
		case side:
			w[idx] = stOwn
		case opp:
			w[idx] = stOpp
		default:
			w[idx] = stEmpty
		}
	}
	return w
}
