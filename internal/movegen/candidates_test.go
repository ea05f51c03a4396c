package movegen

import (
	"testing"

	"github.com/lavantien/caroengine/internal/board"
)

func TestGenerateCandidatesEmptyBoardIsCenter(t *testing.T) {
	b := board.New(15)
	got := GenerateCandidates(&b, board.Red, board.NoCell)
	if len(got) != 1 {
		t.Fatalf("expected exactly one candidate on an empty board, got %d", len(got))
	}
	x, y := got[0].XY(b.N)
	if x != 7 || y != 7 {
		t.Fatalf("expected center (7,7), got (%d,%d)", x, y)
	}
}

func TestGenerateCandidatesExcludesOccupied(t *testing.T) {
	b := board.New(15)
	b, err := b.Place(7, 7, board.Red)
	if err != nil {
		t.Fatal(err)
	}
	cands := GenerateCandidates(&b, board.Blue, board.NoCell)
	for _, c := range cands {
		if c == board.NewCell(7, 7, b.N) {
			t.Fatal("candidate list must not include an occupied cell")
		}
	}
	if len(cands) == 0 {
		t.Fatal("expected candidates adjacent to the existing stone")
	}
}

func TestGenerateCandidatesOpenRuleExclusion(t *testing.T) {
	b := board.New(15)
	firstRed := board.NewCell(7, 7, b.N)
	b, _ = b.Place(7, 7, board.Red)
	b, _ = b.Place(0, 0, board.Blue)

	cands := GenerateCandidates(&b, board.Red, firstRed)
	for _, c := range cands {
		if board.Chebyshev(c, firstRed, b.N) <= 2 {
			t.Fatalf("open-rule exclusion zone violated by candidate %v", c)
		}
	}
}
