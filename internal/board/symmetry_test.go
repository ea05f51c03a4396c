package board

import "testing"

func TestSymmetryInverseRoundTrip(t *testing.T) {
	n := 15
	for _, s := range allSymmetries {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				c := NewCell(x, y, n)
				applied := s.ApplyCell(c, n)
				back := s.Inverse().ApplyCell(applied, n)
				if back != c {
					t.Fatalf("symmetry %v: round trip failed for (%d,%d): got %v want %v", s, x, y, back, c)
				}
			}
		}
	}
}

func TestCanonicalizeMoveLegalOnOriginal(t *testing.T) {
	b := New(15)
	var err error
	// A cluster of stones, all far from any edge so canonicalization
	// actually applies a non-trivial symmetry search.
	for _, m := range []struct {
		x, y int
		p    Player
	}{
		{7, 7, Red}, {8, 7, Blue}, {7, 8, Red}, {9, 9, Blue},
	} {
		b, err = b.Place(m.x, m.y, m.p)
		if err != nil {
			t.Fatal(err)
		}
	}

	sym, _, _, _ := b.Canonicalize()

	// A move in canonical space, mapped back via the inverse symmetry,
	// must land on an empty, in-range cell of the original board.
	canonMove := NewCell(10, 10, b.N)
	original := ApplyInverseSymmetry(canonMove, sym, b.N)
	x, y := original.XY(b.N)
	if !InBounds(x, y, b.N) {
		t.Fatalf("mapped move %v out of bounds", original)
	}
	if b.Occupied(original) {
		t.Fatalf("mapped move %v lands on an occupied cell", original)
	}
}

func TestNearEdgeUsesIdentity(t *testing.T) {
	b := New(15)
	b, _ = b.Place(0, 0, Red)
	sym, hash, _, _ := b.Canonicalize()
	if sym != Identity {
		t.Fatalf("expected Identity for near-edge position, got %v", sym)
	}
	if hash != b.Hash {
		t.Fatalf("expected canonical hash to equal raw hash for near-edge position")
	}
}
