package board

import "math/bits"

// MaxCells is the largest supported board (19×19); BitBoard is sized to
// hold it regardless of the engine's configured N so the type has a
// single fixed representation, the same way the teacher engine's
// 64-bit Bitboard is a fixed word regardless of which pieces occupy it.
const MaxCells = 19 * 19

// words is the number of uint64 lanes needed to cover MaxCells bits.
const words = (MaxCells + 63) / 64 // 6 lanes, 384 bits

// BitBoard is an ordered bitset over an N×N grid of cells, N <= 19.
// No bounds checking is performed on Get/Set; callers validate cell
// indices against the board's configured size before calling in, per
// the no-bounds-check contract of spec §4.1.
type BitBoard [words]uint64

// Get reports whether cell c is set.
func (b *BitBoard) Get(c Cell) bool {
	return b[c>>6]&(uint64(1)<<(c&63)) != 0
}

// Set sets cell c.
func (b *BitBoard) Set(c Cell) {
	b[c>>6] |= uint64(1) << (c & 63)
}

// Clear clears cell c.
func (b *BitBoard) Clear(c Cell) {
	b[c>>6] &^= uint64(1) << (c & 63)
}

// PopCount returns the number of set cells.
func (b *BitBoard) PopCount() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether no cell is set.
func (b *BitBoard) Empty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether two bitboards hold the same cells.
func (b *BitBoard) Equal(o *BitBoard) bool {
	return *b == *o
}

// Or returns the union of two bitboards.
func (b *BitBoard) Or(o *BitBoard) BitBoard {
	var r BitBoard
	for i := range r {
		r[i] = b[i] | o[i]
	}
	return r
}

// And returns the intersection of two bitboards.
func (b *BitBoard) And(o *BitBoard) BitBoard {
	var r BitBoard
	for i := range r {
		r[i] = b[i] & o[i]
	}
	return r
}

// IterSet calls f for every set cell in row-major (ascending index)
// order, stopping early if f returns false.
func (b *BitBoard) IterSet(f func(Cell) bool) {
	for wi, w := range b {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			c := Cell(wi*64 + bit)
			w &= w - 1
			if !f(c) {
				return
			}
		}
	}
}

// Cells returns all set cells in row-major order.
func (b *BitBoard) Cells() []Cell {
	out := make([]Cell, 0, b.PopCount())
	b.IterSet(func(c Cell) bool {
		out = append(out, c)
		return true
	})
	return out
}

// HasAnyAdjacent reports whether any cell within Chebyshev distance
// <= radius of (x, y) on an n×n board is set.
func (b *BitBoard) HasAnyAdjacent(x, y, radius, n int) bool {
	for dy := -radius; dy <= radius; dy++ {
		ny := y + dy
		if ny < 0 || ny >= n {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= n {
				continue
			}
			if b.Get(NewCell(nx, ny, n)) {
				return true
			}
		}
	}
	return false
}
