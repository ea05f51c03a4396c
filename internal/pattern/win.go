package pattern

import "github.com/lavantien/caroengine/internal/board"

// WinResult describes the outcome of the exactly-five win check after a
// move at (x, y).
type WinResult struct {
	Won   bool
	Line  [5]board.Cell
	Count int // actual run length through the move; >5 means overline, not a win
}

// CheckWin scans the four lines through the last-placed stone at
// (x, y) for `side` and reports a win iff the *longest* of the four
// runs through that cell is exactly five. Taking the max across
// directions (rather than accepting the first direction that happens
// to show a five) matters when one direction is an exact five but
// another direction through the same cell is an overline: the overline
// disqualifies the move as a win even though a different line would
// have counted on its own.
func CheckWin(b *board.Board, x, y int, side board.Player) WinResult {
	maxRun := 0
	var bestDir direction
	var bestLo int
	for _, dir := range directions {
		lo, hi := runBounds(b, x, y, dir, side)
		run := hi - lo + 1
		if run > maxRun {
			maxRun = run
			bestDir = dir
			bestLo = lo
		}
	}

	if maxRun != 5 {
		return WinResult{Count: maxRun}
	}

	var line [5]board.Cell
	for i := 0; i < 5; i++ {
		line[i] = board.NewCell(x+(bestLo+i)*bestDir.dx, y+(bestLo+i)*bestDir.dy, b.N)
	}
	return WinResult{Won: true, Line: line, Count: maxRun}
}

// runBounds returns the inclusive [lo, hi] offsets (in units of dir)
// from (x, y) of the contiguous run of side's stones through (x, y).
func runBounds(b *board.Board, x, y int, dir direction, side board.Player) (lo, hi int) {
	lo, hi = 0, 0
	for {
		nx, ny := x+(lo-1)*dir.dx, y+(lo-1)*dir.dy
		if !board.InBounds(nx, ny, b.N) {
			break
		}
		if b.PlayerAt(board.NewCell(nx, ny, b.N)) != side {
			break
		}
		lo--
	}
	for {
		nx, ny := x+(hi+1)*dir.dx, y+(hi+1)*dir.dy
		if !board.InBounds(nx, ny, b.N) {
			break
		}
		if b.PlayerAt(board.NewCell(nx, ny, b.N)) != side {
			break
		}
		hi++
	}
	return lo, hi
}
