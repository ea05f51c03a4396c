package engine

import (
	"testing"

	"github.com/lavantien/caroengine/internal/board"
)

func TestGetBestMoveCenterOpeningGrandmaster(t *testing.T) {
	eng, err := NewEngine(Config{TTSizeBytes: 4 * 1024 * 1024, Threads: 2, BoardSize: 15})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	b := board.New(15)
	x, y, _, err := eng.GetBestMove(b, board.Red, Grandmaster, 5000, 0, false, false, board.NoCell)
	if err != nil {
		t.Fatalf("GetBestMove: %v", err)
	}
	if x != 7 || y != 7 {
		t.Fatalf("expected center opening (7,7), got (%d,%d)", x, y)
	}
}

func TestGetBestMoveBlocksFourInARow(t *testing.T) {
	eng, err := NewEngine(Config{TTSizeBytes: 4 * 1024 * 1024, Threads: 1, BoardSize: 15})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	b := board.New(15)
	var berr error
	for _, cx := range []int{7, 8, 9, 10} {
		b, berr = b.Place(cx, 7, board.Red)
		if berr != nil {
			t.Fatalf("setup place: %v", berr)
		}
	}
	// Blue has a token stone elsewhere so move count / open-rule checks
	// don't interfere with this synthetic mid-game position.
	b, berr = b.Place(0, 0, board.Blue)
	if berr != nil {
		t.Fatalf("setup place: %v", berr)
	}

	x, y, _, err := eng.GetBestMove(b, board.Blue, Grandmaster, 5000, 6, false, false, board.NewCell(7, 7, 15))
	if err != nil {
		t.Fatalf("GetBestMove: %v", err)
	}
	if !(x == 6 && y == 7) && !(x == 11 && y == 7) {
		t.Fatalf("expected a block at (6,7) or (11,7), got (%d,%d)", x, y)
	}
}

// TestConcurrentSearchRace stresses the parallel coordinator across
// repeated calls with varied positions, the Caro analogue of the
// teacher's TestConcurrentSearchRace. Run with -race to check for
// data races across the shared transposition table.
func TestConcurrentSearchRace(t *testing.T) {
	eng, err := NewEngine(Config{TTSizeBytes: 4 * 1024 * 1024, Threads: 4, BoardSize: 15})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	iterations := 5
	if testing.Short() {
		iterations = 2
	}

	b := board.New(15)
	for i := 0; i < iterations; i++ {
		x, y, _, err := eng.GetBestMove(b, board.Red, Hard, 300, i, false, true, board.NoCell)
		if err != nil {
			t.Fatalf("iteration %d: GetBestMove: %v", i, err)
		}
		var perr error
		b, perr = b.Place(x, y, board.Red)
		if perr != nil {
			t.Fatalf("iteration %d: place chosen move: %v", i, perr)
		}
		if b.MoveCount >= 4 {
			break
		}
	}
}

// TestSecondSearchReusesTranspositionTable exercises spec §8 scenario
// 6: searching the same position a second time, with the TT intact
// from the first call, must visit meaningfully fewer nodes than the
// first cold search, since every TT-exact cutoff on a revisited
// subtree short-circuits what would otherwise be re-expanded.
func TestSecondSearchReusesTranspositionTable(t *testing.T) {
	eng, err := NewEngine(Config{TTSizeBytes: 4 * 1024 * 1024, Threads: 1, BoardSize: 15})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	b := board.New(15)
	_, _, first, err := eng.GetBestMove(b, board.Red, Medium, 20000, 0, false, false, board.NoCell)
	if err != nil {
		t.Fatalf("first GetBestMove: %v", err)
	}
	if first.Nodes == 0 {
		t.Fatal("expected the first search to visit at least one node")
	}

	_, _, second, err := eng.GetBestMove(b, board.Red, Medium, 20000, 0, false, false, board.NoCell)
	if err != nil {
		t.Fatalf("second GetBestMove: %v", err)
	}

	maxAllowed := first.Nodes - first.Nodes/4
	if second.Nodes > maxAllowed {
		t.Fatalf("expected second search to visit >=25%% fewer nodes via TT reuse, first=%d second=%d",
			first.Nodes, second.Nodes)
	}
}

func TestClearAllStateResetsTT(t *testing.T) {
	eng, err := NewEngine(Config{TTSizeBytes: 4 * 1024 * 1024, Threads: 1, BoardSize: 15})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	b := board.New(15)
	if _, _, _, err := eng.GetBestMove(b, board.Red, Easy, 1000, 0, false, false, board.NoCell); err != nil {
		t.Fatalf("GetBestMove: %v", err)
	}
	eng.ClearAllState()
	if rate := eng.tt.HitRate(); rate != 0 {
		t.Fatalf("expected hit rate reset to 0 after ClearAllState, got %v", rate)
	}
}
