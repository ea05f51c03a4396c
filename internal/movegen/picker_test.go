package movegen

import (
	"testing"

	"github.com/lavantien/caroengine/internal/board"
)

func TestScoreMovesPrioritizesTTMove(t *testing.T) {
	b := board.New(15)
	mo := NewMoveOrderer()
	moves := []board.Move{
		board.NewMove(board.NewCell(3, 3, 15)),
		board.NewMove(board.NewCell(4, 4, 15)),
	}
	tt := moves[1]
	scores := mo.ScoreMoves(&b, board.Red, moves, 0, tt, board.NoMove)
	if scores[1] != TTMoveScore {
		t.Fatalf("expected TT move to score %d, got %d", TTMoveScore, scores[1])
	}
	if scores[1] <= scores[0] {
		t.Fatal("TT move must outrank a plain quiet move")
	}
}

func TestScoreMovesMustBlockOutranksQuiet(t *testing.T) {
	b := board.New(15)
	b, _ = b.Place(4, 7, board.Blue)
	b, _ = b.Place(5, 7, board.Blue)
	b, _ = b.Place(6, 7, board.Blue)

	mo := NewMoveOrderer()
	blockMove := board.NewMove(board.NewCell(7, 7, 15)) // blocks Blue's open three
	quietMove := board.NewMove(board.NewCell(0, 0, 15))

	scores := mo.ScoreMoves(&b, board.Red, []board.Move{quietMove, blockMove}, 0, board.NoMove, board.NoMove)
	if scores[1] <= scores[0] {
		t.Fatalf("must-block move should outrank a quiet move, got block=%d quiet=%d", scores[1], scores[0])
	}
	if scores[1] < MustBlockBase {
		t.Fatalf("expected must-block tier score, got %d", scores[1])
	}
}

func TestPickMoveSelectsHighestRemaining(t *testing.T) {
	moves := []board.Move{
		board.NewMove(board.NewCell(0, 0, 15)),
		board.NewMove(board.NewCell(1, 1, 15)),
		board.NewMove(board.NewCell(2, 2, 15)),
	}
	scores := []int{10, 50, 30}

	PickMove(moves, scores, 0)
	if scores[0] != 50 {
		t.Fatalf("expected the highest score picked to front, got %d", scores[0])
	}
	if moves[0] != board.NewMove(board.NewCell(1, 1, 15)) {
		t.Fatal("expected the move paired with the highest score to move to front")
	}
}

func TestUpdateHistoryStaysBoundedWithoutClamping(t *testing.T) {
	// Spec §3: value += bonus - value*|bonus|/RANGE, RANGE = 30,000.
	// Repeated positive updates must converge toward +historyBound
	// asymptotically, never exceeding it, and the formula itself must
	// never hard-clamp the stored value to the bound.
	mo := NewMoveOrderer()
	m := board.NewMove(board.NewCell(5, 5, 15))
	for i := 0; i < 1000; i++ {
		mo.UpdateHistory(board.Red, m, 20, true)
	}
	got := mo.GetHistoryScore(board.Red, m)
	if got > historyBound {
		t.Fatalf("history score must never exceed the bound, got %d", got)
	}
	if got < historyBound*9/10 {
		t.Fatalf("expected repeated positive updates to converge near the bound, got %d", got)
	}
}

func TestUpdateHistoryNegativeBoundedSymmetrically(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(board.NewCell(6, 6, 15))
	for i := 0; i < 1000; i++ {
		mo.UpdateHistory(board.Red, m, 20, false)
	}
	got := mo.GetHistoryScore(board.Red, m)
	if got < -historyBound {
		t.Fatalf("history score must never go below -bound, got %d", got)
	}
	if got > -historyBound*9/10 {
		t.Fatalf("expected repeated negative updates to converge near -bound, got %d", got)
	}
}

func TestKillerAndCounterMove(t *testing.T) {
	mo := NewMoveOrderer()
	k := board.NewMove(board.NewCell(1, 1, 15))
	mo.UpdateKillers(k, 3)
	if mo.killers[3][0] != k {
		t.Fatal("expected killer move stored at the given ply")
	}

	prev := board.NewMove(board.NewCell(2, 2, 15))
	counter := board.NewMove(board.NewCell(3, 3, 15))
	mo.UpdateCounterMove(board.Blue, prev, counter)
	if got := mo.GetCounterMove(board.Blue, prev); got != counter {
		t.Fatalf("expected counter move %v, got %v", counter, got)
	}
}
