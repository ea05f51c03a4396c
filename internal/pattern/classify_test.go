package pattern

import (
	"testing"

	"github.com/lavantien/caroengine/internal/board"
)

func place(t *testing.T, b board.Board, x, y int, p board.Player) board.Board {
	t.Helper()
	nb, err := b.Place(x, y, p)
	if err != nil {
		t.Fatalf("place(%d,%d,%v): %v", x, y, p, err)
	}
	return nb
}

func TestClassifyCompletingStraightFourIsFive(t *testing.T) {
	// Red at (3,7) (4,7) (5,7) (6,7), open on both ends: a straight
	// four with completion cells (2,7) and (7,7). Classifying the
	// completion cell (7,7) itself must give Five.
	b := board.New(15)
	b = place(t, b, 3, 7, board.Red)
	b = place(t, b, 4, 7, board.Red)
	b = place(t, b, 5, 7, board.Red)
	b = place(t, b, 6, 7, board.Red)

	got := Classify(&b, 7, 7, board.Red)
	if got != Five {
		t.Fatalf("expected completing the five to classify as Five, got %v", got)
	}
}

func TestClassifyOpenFourFromOpenThree(t *testing.T) {
	// An open three _XXX_ at (4,7)(5,7)(6,7): classifying an extension
	// at (7,7) creates XXXX with both (3,7) and (8,7) open -> Flex4.
	b := board.New(15)
	b = place(t, b, 4, 7, board.Red)
	b = place(t, b, 5, 7, board.Red)
	b = place(t, b, 6, 7, board.Red)

	got := Classify(&b, 7, 7, board.Red)
	if got != Flex4 {
		t.Fatalf("expected Flex4 for open four completion, got %v", got)
	}
}

func TestClassifyBrokenFour(t *testing.T) {
	// Blue caps the left end at (2,7); Red occupies (3,7)(4,7)(5,7).
	// Placing Red at (6,7) makes a contiguous run of four blocked on
	// the left and open on the right: exactly one completion square,
	// a broken four.
	b := board.New(15)
	b = place(t, b, 2, 7, board.Blue)
	b = place(t, b, 3, 7, board.Red)
	b = place(t, b, 4, 7, board.Red)
	b = place(t, b, 5, 7, board.Red)

	got := Classify(&b, 6, 7, board.Red)
	if got != Block4 {
		t.Fatalf("expected Block4 for a one-sided four completion, got %v", got)
	}
}

func TestClassifyDoubleFlex3(t *testing.T) {
	// Placing at (7,7) makes a horizontal open three and a vertical
	// open three through the same cell: two straight threes in distinct
	// directions aggregate to DoubleFlex3.
	b := board.New(15)
	b = place(t, b, 5, 7, board.Red)
	b = place(t, b, 6, 7, board.Red)
	b = place(t, b, 7, 5, board.Red)
	b = place(t, b, 7, 6, board.Red)

	got := Classify(&b, 7, 7, board.Red)
	if got != DoubleFlex3 {
		t.Fatalf("expected DoubleFlex3 for crossing open threes, got %v", got)
	}
}

func TestClassifyIsolatedCellIsFlex1(t *testing.T) {
	// A lone stone on an empty board is open on both sides along every
	// line through it: Flex1, a tier carrying no evaluation weight.
	b := board.New(15)
	got := Classify(&b, 7, 7, board.Red)
	if got != Flex1 {
		t.Fatalf("expected Flex1 on an empty board, got %v", got)
	}
	if got.Weight() != 0 {
		t.Fatalf("Flex1 must carry zero evaluation weight, got %d", got.Weight())
	}
}

func TestClassifyCornerIsNotAThreat(t *testing.T) {
	// A stone in the corner has no room to extend in the diagonal
	// direction running off the board, and blocked/dead lines
	// elsewhere: the must-block and winning predicates must stay false
	// regardless, since this is far from any threat.
	b := board.New(15)
	got := Classify(&b, 0, 0, board.Red)
	if got.IsMustBlock() || got.IsWinning() {
		t.Fatalf("corner placement on an empty board must not be a threat, got %v", got)
	}
}

func TestPattern4Weights(t *testing.T) {
	if Five.Weight() <= Flex4.Weight() {
		t.Fatal("Five must outweigh Flex4")
	}
	if Flex4.Weight() <= Block4.Weight() {
		t.Fatal("Flex4 must outweigh Block4")
	}
	if Block4.Weight() != Flex3.Weight() {
		t.Fatal("Block4 and Flex3 share the same weight tier per spec")
	}
}
