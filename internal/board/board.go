package board

import (
	"github.com/lavantien/caroengine/internal/caroerr"
)

// Board is an immutable pair of per-side bitboards with an incremental
// Zobrist hash, mirroring the teacher engine's Position value object
// but stripped to what a stone-placement game needs: no castling, no
// en passant, no piece types.
//
// Invariant: Red and Blue never share a set cell (disjointness).
// Invariant: Hash equals the XOR of ZobristKey(player, cell) over every
// occupied (cell, player) pair.
type Board struct {
	N         int // board size, 15 or 19
	Red       BitBoard
	Blue      BitBoard
	Hash      uint64
	MoveCount uint16
}

// New returns an empty board of size n.
func New(n int) Board {
	return Board{N: n}
}

// BitBoardFor returns the bitboard for the given side.
func (b *Board) BitBoardFor(p Player) *BitBoard {
	if p == Red {
		return &b.Red
	}
	return &b.Blue
}

// Occupied reports whether any stone sits on c.
func (b *Board) Occupied(c Cell) bool {
	return b.Red.Get(c) || b.Blue.Get(c)
}

// PlayerAt returns the side occupying c, or None if empty.
func (b *Board) PlayerAt(c Cell) Player {
	switch {
	case b.Red.Get(c):
		return Red
	case b.Blue.Get(c):
		return Blue
	default:
		return None
	}
}

// Place returns a new Board with a stone of player p placed at (x, y).
// It fails with an IllegalMove error if the cell is out of range,
// already occupied, or p is None.
func (b Board) Place(x, y int, p Player) (Board, error) {
	if !InBounds(x, y, b.N) {
		return Board{}, caroerr.IllegalMove("cell out of range")
	}
	if p == None {
		return Board{}, caroerr.IllegalMove("player must be Red or Blue")
	}
	c := NewCell(x, y, b.N)
	if b.Occupied(c) {
		return Board{}, caroerr.IllegalMove("cell occupied")
	}

	next := b
	next.BitBoardFor(p).Set(c)
	next.Hash ^= ZobristKey(p, c)
	next.MoveCount++
	return next, nil
}

// CheckInvariants verifies disjointness and hash consistency; it is
// used by tests and by callers that want to fail hard on corruption
// rather than silently continue (spec §7: InvariantViolation).
func (b *Board) CheckInvariants() error {
	overlap := b.Red.And(&b.Blue)
	if !overlap.Empty() {
		return caroerr.NewInvariant("red and blue bitboards overlap")
	}
	var want uint64
	b.Red.IterSet(func(c Cell) bool {
		want ^= ZobristKey(Red, c)
		return true
	})
	b.Blue.IterSet(func(c Cell) bool {
		want ^= ZobristKey(Blue, c)
		return true
	})
	if want != b.Hash {
		return caroerr.NewInvariant("hash %x does not match occupied cells (want %x)", b.Hash, want)
	}
	return nil
}
