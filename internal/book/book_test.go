package book

import (
	"math/rand"
	"testing"

	"github.com/lavantien/caroengine/internal/board"
)

func TestInMemoryStoreGetAndContains(t *testing.T) {
	s := NewInMemoryStore()
	entry := BookEntry{
		Moves: []MoveScore{{Move: board.NewMove(board.NewCell(7, 7, 15)), Score: 100, DepthReached: 10, Verified: true}},
	}
	s.Put(42, board.Red, entry)

	if !s.Contains(42, board.Red) {
		t.Fatal("expected store to contain the inserted key")
	}
	if s.Contains(42, board.Blue) {
		t.Fatal("expected no entry for the other side")
	}
	got, ok := s.Get(42, board.Red)
	if !ok || len(got.Moves) != 1 {
		t.Fatal("expected the inserted entry back")
	}
}

func TestNullStoreAlwaysMisses(t *testing.T) {
	var s NullStore
	if s.Contains(1, board.Red) {
		t.Fatal("null store must never contain anything")
	}
	if _, ok := s.Get(1, board.Red); ok {
		t.Fatal("null store must never return an entry")
	}
}

func TestPickWeightedFavorsHigherScore(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	moves := []MoveScore{
		{Move: board.NewMove(board.NewCell(1, 1, 15)), Score: 0},
		{Move: board.NewMove(board.NewCell(2, 2, 15)), Score: 1000},
	}
	counts := map[board.Move]int{}
	for i := 0; i < 200; i++ {
		m, ok := PickWeighted(rng, moves)
		if !ok {
			t.Fatal("expected a pick")
		}
		counts[m.Move]++
	}
	if counts[moves[1].Move] <= counts[moves[0].Move] {
		t.Fatalf("expected the higher-scored move to be picked more often: %v", counts)
	}
}

func TestEncodeDecodeEntryRoundTrips(t *testing.T) {
	entry := BookEntry{
		Symmetry:   board.Rot90,
		IsNearEdge: true,
		Moves: []MoveScore{
			{Move: board.NewMove(board.NewCell(3, 4, 15)), Score: -50, DepthReached: 6, Verified: false, Forcing: true},
			{Move: board.NewMove(board.NewCell(5, 5, 15)), Score: 200, DepthReached: 12, Verified: true, Forcing: false},
		},
	}
	data := encodeEntry(entry)
	got, ok := decodeEntry(data)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if got.Symmetry != entry.Symmetry || got.IsNearEdge != entry.IsNearEdge {
		t.Fatal("round trip lost header fields")
	}
	if len(got.Moves) != len(entry.Moves) {
		t.Fatalf("expected %d moves, got %d", len(entry.Moves), len(got.Moves))
	}
	for i := range entry.Moves {
		if got.Moves[i] != entry.Moves[i] {
			t.Fatalf("move %d mismatch: got %+v want %+v", i, got.Moves[i], entry.Moves[i])
		}
	}
}
