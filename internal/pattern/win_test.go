package pattern

import (
	"testing"

	"github.com/lavantien/caroengine/internal/board"
)

func TestCheckWinExactlyFive(t *testing.T) {
	b := board.New(15)
	b = place(t, b, 3, 7, board.Red)
	b = place(t, b, 4, 7, board.Red)
	b = place(t, b, 5, 7, board.Red)
	b = place(t, b, 6, 7, board.Red)
	b = place(t, b, 7, 7, board.Red)

	res := CheckWin(&b, 7, 7, board.Red)
	if !res.Won {
		t.Fatal("expected a win for exactly five in a row")
	}
	if res.Count != 5 {
		t.Fatalf("expected run count 5, got %d", res.Count)
	}
}

func TestCheckWinOverlineIsNotAWin(t *testing.T) {
	// Exactly-five rule: six or more in a row does not count as a win.
	b := board.New(15)
	b = place(t, b, 2, 7, board.Red)
	b = place(t, b, 3, 7, board.Red)
	b = place(t, b, 4, 7, board.Red)
	b = place(t, b, 5, 7, board.Red)
	b = place(t, b, 6, 7, board.Red)
	b = place(t, b, 7, 7, board.Red)

	res := CheckWin(&b, 7, 7, board.Red)
	if res.Won {
		t.Fatal("expected overline (6 in a row) to not be a win")
	}
}

func TestCheckWinNoRunYet(t *testing.T) {
	b := board.New(15)
	b = place(t, b, 7, 7, board.Red)
	res := CheckWin(&b, 7, 7, board.Red)
	if res.Won {
		t.Fatal("a single stone cannot be a win")
	}
}

func TestCheckWinOverlineInOneDirectionBlocksFiveInAnother(t *testing.T) {
	// The placed stone completes an exact horizontal five but also
	// completes a vertical overline (six) through the same cell; the
	// longest run through the cell is six, so the whole move is not a
	// win, even though one direction alone would have qualified.
	b := board.New(15)
	b = place(t, b, 3, 7, board.Red)
	b = place(t, b, 4, 7, board.Red)
	b = place(t, b, 5, 7, board.Red)
	b = place(t, b, 6, 7, board.Red)
	b = place(t, b, 7, 2, board.Red)
	b = place(t, b, 7, 3, board.Red)
	b = place(t, b, 7, 4, board.Red)
	b = place(t, b, 7, 5, board.Red)
	b = place(t, b, 7, 6, board.Red)
	b = place(t, b, 7, 7, board.Red)

	res := CheckWin(&b, 7, 7, board.Red)
	if res.Won {
		t.Fatalf("expected the vertical overline to disqualify the win, got Count=%d", res.Count)
	}
	if res.Count != 6 {
		t.Fatalf("expected the longest run through the cell to be 6, got %d", res.Count)
	}
}

func TestCheckWinDiagonal(t *testing.T) {
	b := board.New(15)
	b = place(t, b, 0, 0, board.Blue)
	b = place(t, b, 1, 1, board.Blue)
	b = place(t, b, 2, 2, board.Blue)
	b = place(t, b, 3, 3, board.Blue)
	b = place(t, b, 4, 4, board.Blue)

	res := CheckWin(&b, 4, 4, board.Blue)
	if !res.Won {
		t.Fatal("expected a diagonal win")
	}
}
