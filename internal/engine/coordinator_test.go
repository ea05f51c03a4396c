package engine

import (
	"context"
	"testing"
	"time"

	"github.com/lavantien/caroengine/internal/board"
)

func TestCoordinatorSearchReturnsAMoveWithHelpers(t *testing.T) {
	tt := NewTranspositionTable(1)
	coord := NewCoordinator(tt, 2)

	b := board.New(15)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	m, _, nodes := coord.Search(ctx, b, board.Red, 2, board.NoCell)
	if m.IsNone() {
		t.Fatal("expected a move from the coordinator on an empty board")
	}
	if nodes == 0 {
		t.Fatal("expected a nonzero total node count across workers")
	}
}

func TestCoordinatorRespectsCancellation(t *testing.T) {
	tt := NewTranspositionTable(1)
	coord := NewCoordinator(tt, 1)

	b := board.New(15)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, _, _ := coord.Search(ctx, b, board.Red, 10, board.NoCell)
	_ = m // may legitimately be NoMove if cancelled before depth 1 completes
	if !coord.StopFlag().Load() {
		t.Fatal("expected the shared stop flag to be set after a cancelled context")
	}
}
