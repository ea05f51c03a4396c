// Command caroengine-cli is a minimal line-oriented driver for manual
// smoke testing of the search engine, grounded on the teacher's
// internal/uci main loop (scan stdin, dispatch on the first token) but
// stripped to Caro's own vocabulary instead of UCI. It is glue around
// the engine package, not a deliverable surface in its own right: the
// host CLI/RPC/tournament layer is explicitly out of scope (spec §1).
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lavantien/caroengine/internal/board"
	"github.com/lavantien/caroengine/internal/engine"
	"github.com/lavantien/caroengine/internal/game"
)

func main() {
	state := game.New(15)
	eng, err := engine.NewEngine(engine.Config{BoardSize: 15})
	if err != nil {
		log.Fatalf("could not create engine: %v", err)
	}
	diff := engine.Grandmaster

	fmt.Println("caroengine-cli ready: newgame | move x y | go [diff] [ms] | show | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]
		args := fields[1:]

		switch cmd {
		case "newgame":
			state = game.New(15)
			eng.ClearAllState()
			fmt.Println("ok")
		case "move":
			state = handleMove(state, args)
		case "go":
			diff = parseDifficulty(args, diff)
			state = handleGo(eng, state, diff, args)
		case "show":
			printBoard(state)
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		}
	}
}

func handleMove(state game.GameState, args []string) game.GameState {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: move x y")
		return state
	}
	x, err1 := strconv.Atoi(args[0])
	y, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(os.Stderr, "move coordinates must be integers")
		return state
	}
	next, err := state.RecordMove(x, y)
	if err != nil {
		fmt.Fprintf(os.Stderr, "illegal move: %v\n", err)
		return state
	}
	if next.IsGameOver() {
		fmt.Printf("game over: winner=%s\n", next.Winner())
	}
	return next
}

func handleGo(eng *engine.Engine, state game.GameState, diff engine.Difficulty, args []string) game.GameState {
	if state.IsGameOver() {
		fmt.Fprintln(os.Stderr, "game already over")
		return state
	}

	timeMS := int64(5000)
	if len(args) >= 2 {
		if v, err := strconv.ParseInt(args[1], 10, 64); err == nil {
			timeMS = v
		}
	}

	x, y, stats, err := eng.GetBestMove(
		state.Board, state.ToMove, diff, timeMS, state.MoveNumber(),
		false, true, state.FirstRedCell,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "no move: %v\n", err)
		return state
	}

	fmt.Printf("bestmove %d %d (depth=%d nodes=%d nps=%.0f ttHit=%.1f%%)\n",
		x, y, stats.Depth, stats.Nodes, stats.NPS, stats.TTHitRate)

	next, err := state.RecordMove(x, y)
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine produced an illegal move: %v\n", err)
		return state
	}
	if next.IsGameOver() {
		fmt.Printf("game over: winner=%s\n", next.Winner())
	}
	return next
}

func parseDifficulty(args []string, fallback engine.Difficulty) engine.Difficulty {
	if len(args) == 0 {
		return fallback
	}
	switch strings.ToLower(args[0]) {
	case "braindead":
		return engine.Braindead
	case "easy":
		return engine.Easy
	case "medium":
		return engine.Medium
	case "hard":
		return engine.Hard
	case "grandmaster":
		return engine.Grandmaster
	default:
		return fallback
	}
}

func printBoard(state game.GameState) {
	n := state.Board.N
	for y := 0; y < n; y++ {
		var row strings.Builder
		for x := 0; x < n; x++ {
			c := board.NewCell(x, y, n)
			switch state.Board.PlayerAt(c) {
			case board.Red:
				row.WriteByte('X')
			case board.Blue:
				row.WriteByte('O')
			default:
				row.WriteByte('.')
			}
		}
		fmt.Println(row.String())
	}
}
