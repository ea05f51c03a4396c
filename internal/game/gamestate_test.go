package game

import (
	"testing"

	"github.com/lavantien/caroengine/internal/board"
	"github.com/lavantien/caroengine/internal/caroerr"
)

func TestRecordMoveAlternatesSides(t *testing.T) {
	g := New(15)
	g, err := g.RecordMove(7, 7)
	if err != nil {
		t.Fatal(err)
	}
	if g.ToMove != board.Blue {
		t.Fatalf("expected Blue to move after Red's first stone, got %v", g.ToMove)
	}
	if g.FirstRedCell != board.NewCell(7, 7, 15) {
		t.Fatal("expected first red cell to be recorded")
	}
}

func TestRecordMoveRejectsOccupiedCell(t *testing.T) {
	g := New(15)
	g, _ = g.RecordMove(7, 7)
	if _, err := g.RecordMove(7, 7); err == nil {
		t.Fatal("expected IllegalMove for occupied cell")
	}
}

func TestUndoRestoresPreviousState(t *testing.T) {
	g := New(15)
	g, _ = g.RecordMove(7, 7)
	before := g
	g, _ = g.RecordMove(8, 7)

	g, err := g.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if g.Board.Hash != before.Board.Hash {
		t.Fatal("expected undo to restore the previous board hash")
	}
	if g.ToMove != before.ToMove {
		t.Fatal("expected undo to restore the previous side to move")
	}
}

func TestUndoWithNoHistoryFails(t *testing.T) {
	g := New(15)
	if _, err := g.Undo(); err != caroerr.ErrNoHistory {
		t.Fatalf("expected ErrNoHistory, got %v", err)
	}
}

func TestIsGameOverOnWin(t *testing.T) {
	g := New(15)
	for i, x := range []int{3, 4, 5, 6, 7} {
		g, _ = g.RecordMove(x, 7)
		if i < 4 {
			g, _ = g.RecordMove(x, 0) // Blue plays elsewhere
		}
	}
	if !g.IsGameOver() {
		t.Fatal("expected game over after five in a row")
	}
	if g.Winner() != board.Red {
		t.Fatalf("expected Red to win, got %v", g.Winner())
	}
}
