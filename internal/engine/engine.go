package engine

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"github.com/lavantien/caroengine/internal/board"
	"github.com/lavantien/caroengine/internal/book"
	"github.com/lavantien/caroengine/internal/caroerr"
	"github.com/lavantien/caroengine/internal/movegen"
	"github.com/lavantien/caroengine/internal/pattern"
)

// Difficulty selects a preset of search depth, time budget, and
// feature gating (spec §6's five-level table).
type Difficulty int

const (
	Braindead Difficulty = iota
	Easy
	Medium
	Hard
	Grandmaster
)

// DifficultySettings describes one row of the spec §6 difficulty
// table: maximum depth, a time-budget multiplier applied on top of
// the time manager's allocation, whether lazy-SMP and pondering are
// permitted, the opening book's maximum ply, and the probability of
// discarding the search result for a uniformly random legal move.
type DifficultySettings struct {
	MaxDepth      int
	TimeMult      float64
	Parallel      bool
	Ponder        bool
	BookCapPlies  int
	ErrorRate     float64
}

// difficultyTable is the spec §6 table verbatim.
var difficultyTable = map[Difficulty]DifficultySettings{
	Braindead:   {MaxDepth: 1, TimeMult: 0.1, Parallel: false, Ponder: false, BookCapPlies: 0, ErrorRate: 0.2},
	Easy:        {MaxDepth: 4, TimeMult: 0.25, Parallel: false, Ponder: false, BookCapPlies: 4, ErrorRate: 0.05},
	Medium:      {MaxDepth: 6, TimeMult: 0.5, Parallel: false, Ponder: true, BookCapPlies: 6, ErrorRate: 0},
	Hard:        {MaxDepth: 10, TimeMult: 1.0, Parallel: true, Ponder: true, BookCapPlies: 10, ErrorRate: 0},
	Grandmaster: {MaxDepth: 14, TimeMult: 1.0, Parallel: true, Ponder: true, BookCapPlies: 14, ErrorRate: 0},
}

// Config configures a new Engine (spec §6's new_engine parameters).
type Config struct {
	TTSizeBytes int64
	Threads     int // 0 = auto (logical cores - 1)
	BoardSize   int // 15 or 19
	Book        book.Store
	RNGSeed     int64
}

// SearchStats is the flat record returned by GetSearchStatistics (spec
// §6).
type SearchStats struct {
	Depth        int
	Nodes        uint64
	NPS          float64
	TTHitRate    float64
	ThreadCount  int
	Pondering    bool
	VCFDepth     int
	VCFNodes     uint64
	BookUsed     bool
	AllocatedMS  int64
}

// Engine is the public entry point consumed by a game loop,
// tournament runner, or RPC layer, wrapping the lazy-SMP coordinator,
// VCF solver, time manager, and opening book behind the spec §6
// contract. Grounded on the teacher's Engine (worker pool + shared TT
// + difficulty + book + OnInfo callback shape), replacing chess-only
// members (pawn table, NNUE, tablebase) with Caro's VCF solver and
// canonicalizer-backed book.
type Engine struct {
	tt    *TranspositionTable
	coord *Coordinator
	book  book.Store
	rng   *rand.Rand

	boardSize int
	threads   int

	lastStats SearchStats
	ponderer  *Ponderer
}

// NewEngine builds an Engine per Config, defaulting TTSizeBytes to 128
// MiB and Threads to logical cores minus one, as spec §6 prescribes.
func NewEngine(cfg Config) (*Engine, error) {
	ttSize := cfg.TTSizeBytes
	if ttSize <= 0 {
		ttSize = 128 * 1024 * 1024
	}
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0) - 1
		if threads < 1 {
			threads = 1
		}
	}
	boardSize := cfg.BoardSize
	if boardSize != 15 && boardSize != 19 {
		boardSize = 15
	}

	tt := NewTranspositionTable(int(ttSize / (1024 * 1024)))
	if tt == nil {
		return nil, caroerr.ErrResourceExhausted
	}

	store := cfg.Book
	if store == nil {
		store = book.NewNullStore()
	}

	seed := cfg.RNGSeed
	if seed == 0 {
		seed = 1
	}

	return &Engine{
		tt:        tt,
		coord:     NewCoordinator(tt, threads-1),
		book:      store,
		rng:       rand.New(rand.NewSource(seed)),
		boardSize: boardSize,
		threads:   threads,
		ponderer:  NewPonderer(tt, threads-1),
	}, nil
}

// GetBestMove returns the engine's chosen move for side on b at the
// given difficulty, per spec §6's get_best_move contract. On time
// exhaustion it falls back, in order: the root TT's best move, then
// the first candidate from the raw generator, then NoLegalMove if the
// board is full (spec §7's fallback chain).
func (e *Engine) GetBestMove(
	b board.Board, side board.Player, diff Difficulty,
	timeRemainingMS int64, moveNumber int,
	ponderEnabled, parallelEnabled bool,
	firstRedCell board.Cell,
) (x, y int, stats SearchStats, err error) {
	settings := difficultyTable[diff]

	candidates := movegen.GenerateCandidates(&b, side, firstRedCell)
	if len(candidates) == 0 {
		return 0, 0, SearchStats{}, caroerr.ErrNoLegalMove
	}

	if settings.ErrorRate > 0 && e.rng.Float64() < settings.ErrorRate {
		c := candidates[e.rng.Intn(len(candidates))]
		cx, cy := c.XY(b.N)
		return cx, cy, SearchStats{}, nil
	}

	if moveNumber <= settings.BookCapPlies {
		if mv, ok := e.probeBook(b, side, moveNumber, settings.BookCapPlies); ok {
			mx, my := mv.Cell().XY(b.N)
			e.lastStats.BookUsed = true
			return mx, my, e.lastStats, nil
		}
	}

	remaining := time.Duration(timeRemainingMS) * time.Millisecond
	tm := NewTimeManager()
	urgency := rootUrgency(b, side, candidates, firstRedCell)
	alloc := tm.Allocate(remaining, 0, estimateMovesToGo(moveNumber), moveNumber, urgency)
	alloc = time.Duration(float64(alloc) * settings.TimeMult)

	maxDepth := settings.MaxDepth

	vcf := NewVCFSolver(e.tt, firstRedCell)
	if res := vcf.Solve(b, side); res.Winning && len(res.Sequence) > 0 {
		mx, my := res.Sequence[0].Cell().XY(b.N)
		e.lastStats = SearchStats{Depth: maxDepth, VCFDepth: len(res.Sequence)}
		return mx, my, e.lastStats, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), alloc)
	defer cancel()
	start := time.Now()

	var bestMove board.Move
	var nodes uint64
	if settings.Parallel && parallelEnabled {
		bestMove, _, nodes = e.coord.Search(ctx, b, side, maxDepth, firstRedCell)
	} else {
		e.coord.StopFlag().Store(false)
		s := NewSearcher(0, e.tt, e.coord.StopFlag())
		go func() {
			<-ctx.Done()
			e.coord.StopFlag().Store(true)
		}()
		bestMove, _ = s.Search(b, side, maxDepth, firstRedCell)
		nodes = s.Nodes()
	}

	if bestMove.IsNone() {
		if entry, found := e.tt.Probe(b.Hash); found && !entry.Move.IsNone() {
			bestMove = entry.Move
		} else {
			bestMove = board.NewMove(candidates[0])
		}
	}

	elapsed := time.Since(start)
	e.lastStats = SearchStats{
		Depth:       maxDepth,
		Nodes:       nodes,
		NPS:         nodesPerSecond(nodes, elapsed),
		TTHitRate:   e.tt.HitRate(),
		ThreadCount: e.threads,
		Pondering:   ponderEnabled && settings.Ponder,
		AllocatedMS: alloc.Milliseconds(),
	}

	mx, my := bestMove.Cell().XY(b.N)
	return mx, my, e.lastStats, nil
}

// probeBook canonicalizes b, looks up the opening book for side, and
// maps the selected move from canonical space back to b's orientation
// (spec §4.10's apply_inverse_symmetry), subject to the difficulty's
// book-depth cap.
func (e *Engine) probeBook(b board.Board, side board.Player, moveNumber, bookCapPlies int) (board.Move, bool) {
	if bookCapPlies <= 0 {
		return board.NoMove, false
	}
	sym, canonHash, _, _ := b.Canonicalize()
	entry, found := e.book.Get(canonHash, side)
	if !found || len(entry.Moves) == 0 {
		return board.NoMove, false
	}
	ms, ok := book.PickWeighted(e.rng, entry.Moves)
	if !ok {
		return board.NoMove, false
	}
	localCell := board.ApplyInverseSymmetry(ms.Move.Cell(), sym, b.N)
	localMove := board.NewMove(localCell)
	if b.Occupied(localCell) {
		return board.NoMove, false
	}
	return localMove, true
}

func nodesPerSecond(nodes uint64, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(nodes) / secs
}

// estimateMovesToGo is a Caro-appropriate stand-in for chess's
// moves-to-go: it assumes a game of about 60 moves and returns the
// moves left until then, never fewer than 20.
func estimateMovesToGo(moveNumber int) int {
	remaining := 60 - moveNumber
	if remaining < 20 {
		remaining = 20
	}
	return remaining
}

// rootUrgency classifies the root position's urgency per spec §4.11:
// a must-block or own-winning move detected at the root is urgent; a
// single forced must-block is the "forced" case the picker would
// short-circuit on.
func rootUrgency(b board.Board, side board.Player, candidates []board.Cell, firstRedCell board.Cell) Urgency {
	mustBlocks := 0
	winning := false
	for _, c := range candidates {
		x, y := c.XY(b.N)
		if pattern.Classify(&b, x, y, side.Other()).IsMustBlock() {
			mustBlocks++
		}
		if pattern.Classify(&b, x, y, side).IsWinning() {
			winning = true
		}
	}
	switch {
	case mustBlocks == 1:
		return UrgencyForced
	case mustBlocks > 1 || winning:
		return UrgencyHigh
	default:
		return UrgencyNormal
	}
}

// ClearSearchState resets the coordinator workers' per-thread ordering
// tables but preserves the TT, for memoization across related positions
// in the same game (spec §6). Killer and counter-move entries are
// cleared; history and continuation-history values are halved, not
// zeroed.
func (e *Engine) ClearSearchState() {
	for _, w := range e.coord.workers {
		w.Reset()
	}
}

// ClearAllState clears the TT and every per-thread table, required
// between unrelated games (spec §6).
func (e *Engine) ClearAllState() {
	e.tt.Clear()
	e.ClearSearchState()
}

// StartPondering begins a non-blocking background search predicting
// the opponent's reply (spec §6, §4.12).
func (e *Engine) StartPondering(b board.Board, opponentMove board.Move, sideToPonder board.Player, diff Difficulty, firstRedCell board.Cell, opponentTimeRemainingMS int64) {
	settings := difficultyTable[diff]
	if !settings.Ponder {
		return
	}
	candidates := movegen.GenerateCandidates(&b, sideToPonder.Other(), firstRedCell)
	if quietOpening(b, candidates) {
		return
	}
	remaining := time.Duration(opponentTimeRemainingMS) * time.Millisecond
	e.ponderer.Start(b, opponentMove, sideToPonder, remaining, firstRedCell, settings.MaxDepth)
}

// StopPondering cancels the in-flight ponder search and reports
// whether it was a PonderHit or PonderMiss (spec §6).
func (e *Engine) StopPondering(actualMove board.Move) PonderStats {
	return e.ponderer.Stop(actualMove)
}

// GetSearchStatistics returns the stats from the most recently
// completed GetBestMove call (spec §6).
func (e *Engine) GetSearchStatistics() SearchStats {
	return e.lastStats
}
