// Package movegen enumerates candidate moves and orders them for
// search: a fixed-size MoveList mirroring the teacher engine's
// allocation-free move buffer, a Chebyshev-radius candidate generator,
// and a staged lazy picker built on the teacher's history/killer/
// counter-move ordering machinery, generalized to Caro's
// pattern-driven threat tiers.
package movegen

import "github.com/lavantien/caroengine/internal/board"

// MaxMoves bounds a single position's candidate count: a 19x19 board
// has 361 cells, so this is never exceeded.
const MaxMoves = 361

// MoveList is a fixed-size list of candidate moves, avoiding
// allocation during search the same way the teacher engine's
// board.MoveList does.
type MoveList struct {
	moves [MaxMoves]board.Move
	count int
}

func (ml *MoveList) Add(m board.Move) {
	ml.moves[ml.count] = m
	ml.count++
}

func (ml *MoveList) Len() int { return ml.count }

func (ml *MoveList) Get(i int) board.Move { return ml.moves[i] }

func (ml *MoveList) Set(i int, m board.Move) { ml.moves[i] = m }

func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

func (ml *MoveList) Clear() { ml.count = 0 }

func (ml *MoveList) Contains(m board.Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

func (ml *MoveList) Slice() []board.Move { return ml.moves[:ml.count] }
