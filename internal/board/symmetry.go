package board

// Symmetry identifies one of the 8 transformations of the dihedral
// group of the square (identity, 3 rotations, 4 reflections), applied
// to an N×N grid of cells.
type Symmetry uint8

const (
	Identity Symmetry = iota
	Rot90
	Rot180
	Rot270
	FlipH    // mirror across the vertical axis
	FlipV    // mirror across the horizontal axis
	FlipDiag // mirror across the main diagonal (transpose)
	FlipAnti // mirror across the anti-diagonal
)

// allSymmetries lists every symmetry in a fixed order; canonicalization
// iterates this order and keeps the lexicographically smallest hash.
var allSymmetries = [8]Symmetry{Identity, Rot90, Rot180, Rot270, FlipH, FlipV, FlipDiag, FlipAnti}

// Apply maps (x, y) under symmetry s on an n×n board.
func (s Symmetry) Apply(x, y, n int) (int, int) {
	m := n - 1
	switch s {
	case Identity:
		return x, y
	case Rot90:
		return y, m - x
	case Rot180:
		return m - x, m - y
	case Rot270:
		return m - y, x
	case FlipH:
		return m - x, y
	case FlipV:
		return x, m - y
	case FlipDiag:
		return y, x
	case FlipAnti:
		return m - y, m - x
	default:
		return x, y
	}
}

// Inverse returns the symmetry that undoes s.
func (s Symmetry) Inverse() Symmetry {
	switch s {
	case Rot90:
		return Rot270
	case Rot270:
		return Rot90
	default:
		// Identity, Rot180, and all four reflections are self-inverse.
		return s
	}
}

// ApplyCell maps a cell under symmetry s on an n×n board.
func (s Symmetry) ApplyCell(c Cell, n int) Cell {
	x, y := c.XY(n)
	nx, ny := s.Apply(x, y, n)
	return NewCell(nx, ny, n)
}

// transform builds the bitboard produced by applying s to every set
// cell of b on an n×n board.
func transform(b *BitBoard, s Symmetry, n int) BitBoard {
	var out BitBoard
	b.IterSet(func(c Cell) bool {
		out.Set(s.ApplyCell(c, n))
		return true
	})
	return out
}

// hashOf recomputes the Zobrist hash of a (red, blue) bitboard pair
// from scratch; used by canonicalization to compare symmetric images
// without mutating the real board's incremental hash.
func hashOf(red, blue *BitBoard) uint64 {
	var h uint64
	red.IterSet(func(c Cell) bool {
		h ^= ZobristKey(Red, c)
		return true
	})
	blue.IterSet(func(c Cell) bool {
		h ^= ZobristKey(Blue, c)
		return true
	})
	return h
}

// NearEdge reports whether any occupied cell lies within `margin` cells
// of the board edge. Spec §4.10: positions with a stone within 5 cells
// of an edge are stored non-canonicalized.
func (b *Board) NearEdge(margin int) bool {
	near := false
	check := func(c Cell) bool {
		x, y := c.XY(b.N)
		if x < margin || x >= b.N-margin || y < margin || y >= b.N-margin {
			near = true
			return false
		}
		return true
	}
	b.Red.IterSet(check)
	if near {
		return true
	}
	b.Blue.IterSet(check)
	return near
}

// Canonicalize returns the symmetry that minimizes the board's 64-bit
// hash under a raw unsigned compare (spec §9: "a total ordering that
// is stable across runs"), and the resulting canonical (red, blue)
// bitboards. Near-edge positions (within 5 cells of any edge) are
// returned with Identity, unconverted, per spec §4.10.
func (b *Board) Canonicalize() (sym Symmetry, canonHash uint64, canonRed, canonBlue BitBoard) {
	if b.NearEdge(5) {
		return Identity, b.Hash, b.Red, b.Blue
	}

	best := Identity
	bestHash := uint64(0)
	var bestRed, bestBlue BitBoard
	first := true

	for _, s := range allSymmetries {
		tr := transform(&b.Red, s, b.N)
		tb := transform(&b.Blue, s, b.N)
		h := hashOf(&tr, &tb)
		if first || h < bestHash {
			first = false
			best = s
			bestHash = h
			bestRed = tr
			bestBlue = tb
		}
	}
	return best, bestHash, bestRed, bestBlue
}

// ApplyInverseSymmetry maps a move found in canonical space back to a
// move legal on the original (pre-canonicalization) board.
func ApplyInverseSymmetry(c Cell, sym Symmetry, n int) Cell {
	return sym.Inverse().ApplyCell(c, n)
}
