package movegen

import "github.com/lavantien/caroengine/internal/board"

// candidateRadius is the Chebyshev distance within which an empty
// cell is considered a candidate move: any empty cell adjacent enough
// to existing stones to matter for threat generation.
const candidateRadius = 2

// GenerateCandidates enumerates legal candidate moves for side on b.
// On an empty board it returns only the center cell (the canonical
// Caro opening move). Otherwise it returns every empty cell within
// candidateRadius of any occupied cell, deduplicated, in row-major
// order for determinism.
//
// firstRedCell is the cell of Red's first stone (board.NoCell if none
// placed yet or N/A); when the move about to be placed is the third
// stone of the game under the open-rule restriction (spec's fairness
// opening rule), candidates within Chebyshev distance 2 of
// firstRedCell are excluded.
func GenerateCandidates(b *board.Board, side board.Player, firstRedCell board.Cell) []board.Cell {
	if b.MoveCount == 0 {
		return []board.Cell{board.NewCell(b.N/2, b.N/2, b.N)}
	}

	occupied := b.Red.Or(&b.Blue)
	var candidates board.BitBoard

	applyOpenRule := side == board.Red && b.MoveCount == 2 && firstRedCell != board.NoCell

	occupied.IterSet(func(c board.Cell) bool {
		x, y := c.XY(b.N)
		for dy := -candidateRadius; dy <= candidateRadius; dy++ {
			ny := y + dy
			if ny < 0 || ny >= b.N {
				continue
			}
			for dx := -candidateRadius; dx <= candidateRadius; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx := x + dx
				if nx < 0 || nx >= b.N {
					continue
				}
				nc := board.NewCell(nx, ny, b.N)
				if occupied.Get(nc) {
					continue
				}
				if applyOpenRule && board.Chebyshev(nc, firstRedCell, b.N) <= 2 {
					continue
				}
				candidates.Set(nc)
			}
		}
		return true
	})

	return candidates.Cells()
}
