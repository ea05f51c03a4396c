// Package game implements the host-facing GameState contract (spec
// §6): recording and undoing moves, and reporting whether the game is
// over and who won. It lives in its own package, separate from
// internal/board and internal/pattern, because it depends on both
// (board for placement, pattern for the win check) and either of
// those packages depending back on it would create an import cycle.
package game

import (
	"github.com/lavantien/caroengine/internal/board"
	"github.com/lavantien/caroengine/internal/caroerr"
	"github.com/lavantien/caroengine/internal/pattern"
)

// moveRecord is one entry of the append-only history kept for Undo.
type moveRecord struct {
	cell       board.Cell
	side       board.Player
	wasFirstRed bool
}

// GameState is an immutable-by-convention record of a Caro game in
// progress: the current board, whose turn it is, the first Red cell
// (needed by the open-rule exclusion zone), and the move history
// needed to support Undo. Every mutating method returns a new
// GameState rather than mutating the receiver, the same
// copy-on-write discipline as board.Board.Place.
type GameState struct {
	Board        board.Board
	ToMove       board.Player
	FirstRedCell board.Cell

	history []moveRecord

	won        bool
	winner     board.Player
	winningRun [5]board.Cell
}

// New creates a fresh GameState on an empty board of size n, Red to
// move first (Caro's standard opening convention).
func New(n int) GameState {
	return GameState{
		Board:        board.New(n),
		ToMove:       board.Red,
		FirstRedCell: board.NoCell,
	}
}

// RecordMove places a stone for the side to move at (x, y) and
// returns the resulting GameState. It fails with an IllegalMove error
// (never tolerated internally, per spec §7) if the cell is out of
// range, occupied, or the game is already over.
func (g GameState) RecordMove(x, y int) (GameState, error) {
	if g.won {
		return GameState{}, caroerr.IllegalMove("game is already over")
	}

	side := g.ToMove
	nb, err := g.Board.Place(x, y, side)
	if err != nil {
		return GameState{}, err
	}
	cell := board.NewCell(x, y, nb.N)

	next := g
	next.Board = nb
	next.history = append(append([]moveRecord{}, g.history...), moveRecord{
		cell: cell, side: side, wasFirstRed: g.FirstRedCell == board.NoCell && side == board.Red,
	})

	if side == board.Red && g.FirstRedCell == board.NoCell {
		next.FirstRedCell = cell
	}

	if res := pattern.CheckWin(&nb, x, y, side); res.Won {
		next.won = true
		next.winner = side
		next.winningRun = res.Line
	}

	next.ToMove = side.Other()
	return next, nil
}

// Undo reverts the most recent move and returns the resulting
// GameState, rebuilding the board from scratch over the remaining
// history since Board has no native "unplace" operation. It fails
// with NoHistory if there is nothing to undo.
func (g GameState) Undo() (GameState, error) {
	if len(g.history) == 0 {
		return GameState{}, caroerr.ErrNoHistory
	}

	remaining := g.history[:len(g.history)-1]
	next := GameState{
		Board:        board.New(g.Board.N),
		ToMove:       board.Red,
		FirstRedCell: board.NoCell,
	}

	for _, rec := range remaining {
		x, y := rec.cell.XY(next.Board.N)
		nb, err := next.Board.Place(x, y, rec.side)
		if err != nil {
			return GameState{}, caroerr.NewInvariant("undo replay failed: %v", err)
		}
		next.Board = nb
		if rec.wasFirstRed {
			next.FirstRedCell = rec.cell
		}
		if res := pattern.CheckWin(&nb, x, y, rec.side); res.Won {
			next.won = true
			next.winner = rec.side
			next.winningRun = res.Line
		} else {
			next.won = false
		}
		next.ToMove = rec.side.Other()
	}
	next.history = append([]moveRecord{}, remaining...)
	return next, nil
}

// IsGameOver reports whether the game has ended (a win was recorded,
// or the board has no empty cells left for a draw).
func (g GameState) IsGameOver() bool {
	if g.won {
		return true
	}
	return int(g.Board.MoveCount) >= g.Board.N*g.Board.N
}

// Winner returns the winning side, or board.None if the game is
// ongoing or ended in a draw.
func (g GameState) Winner() board.Player {
	return g.winner
}

// WinningLine returns the five cells of the winning run. It is only
// meaningful when Winner() != board.None.
func (g GameState) WinningLine() [5]board.Cell {
	return g.winningRun
}

// MoveNumber returns the number of stones placed so far (0 on an empty
// board), used by the time manager's phase classification.
func (g GameState) MoveNumber() int {
	return int(g.Board.MoveCount)
}
