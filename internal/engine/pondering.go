package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lavantien/caroengine/internal/board"
	"github.com/lavantien/caroengine/internal/pattern"
)

// PonderStats reports what a pondering search accomplished, returned
// from StopPondering.
type PonderStats struct {
	Hit      bool
	Nodes    uint64
	Depth    int
	Duration time.Duration
}

// Ponderer runs a predicted-reply search on its own coordinator while
// waiting for the opponent's actual move (spec §4.12): Start takes the
// predicted opponent reply from its caller, applies it to a scratch
// board, and searches that resulting position in the background,
// writing only to the shared TT. The Ponderer does not derive the
// prediction itself; it reads no principal variation. Grounded on the teacher's background-search shape
// (a Coordinator run on its own goroutine, torn down by cancelling a
// context), generalized from UCI's ponder/ponderhit protocol to the
// engine's own predicted-move bookkeeping.
type Ponderer struct {
	coord *Coordinator

	cancel context.CancelFunc
	done   chan struct{}

	predicted board.Move
	start     time.Time
	side      board.Player

	lastDepth int
	lastNodes uint64
}

func NewPonderer(tt *TranspositionTable, numHelpers int) *Ponderer {
	return &Ponderer{coord: NewCoordinator(tt, numHelpers)}
}

// quietOpening reports whether neither side has a Flex3-or-stronger
// threat anywhere reachable, the VCF pre-check that skips pondering in
// quiet opening positions (spec §4.12).
func quietOpening(b board.Board, candidates []board.Cell) bool {
	for _, c := range candidates {
		x, y := c.XY(b.N)
		if pattern.Classify(&b, x, y, board.Red) >= pattern.Flex3 {
			return false
		}
		if pattern.Classify(&b, x, y, board.Blue) >= pattern.Flex3 {
			return false
		}
	}
	return true
}

// Start launches a bounded ponder search on predicted, the guessed
// opponent reply, for sideToPonder, budgeted to opponentTimeRemaining.
// It is a no-op if predicted is the no-move sentinel.
func (p *Ponderer) Start(b board.Board, predicted board.Move, sideToPonder board.Player, opponentTimeRemaining time.Duration, firstRedCell board.Cell, maxDepth int) {
	if predicted.IsNone() {
		return
	}
	x, y := predicted.Cell().XY(b.N)
	nb, err := b.Place(x, y, sideToPonder.Other())
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opponentTimeRemaining)
	p.cancel = cancel
	p.predicted = predicted
	p.side = sideToPonder
	p.start = time.Now()
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		_, _, nodes := p.coord.Search(ctx, nb, sideToPonder, maxDepth, firstRedCell)
		p.lastNodes = nodes
	}()
}

// Stop cancels the in-flight ponder search and reports whether the
// opponent's actual move matched the prediction (PonderHit) or not
// (PonderMiss). On a miss, callers must discard the ponder search's
// speculative root move but the TT entries it wrote remain valid.
func (p *Ponderer) Stop(actualMove board.Move) PonderStats {
	if p.cancel == nil {
		return PonderStats{}
	}
	hit := actualMove == p.predicted
	p.cancel()
	if p.done != nil {
		<-p.done
	}
	stats := PonderStats{
		Hit:      hit,
		Nodes:    p.lastNodes,
		Duration: time.Since(p.start),
	}
	p.cancel = nil
	return stats
}

// StopFlag exposes the ponder coordinator's cancellation flag so a
// caller can force an immediate stop without waiting on the timeout.
func (p *Ponderer) StopFlag() *atomic.Bool { return p.coord.StopFlag() }
