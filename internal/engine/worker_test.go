package engine

import (
	"sync/atomic"
	"testing"

	"github.com/lavantien/caroengine/internal/board"
)

func TestLmrReductionsTableIsMonotonicInDepth(t *testing.T) {
	if lmrReductions[10][10] <= lmrReductions[3][10] {
		t.Fatalf("expected reduction to grow with depth: depth3=%d depth10=%d",
			lmrReductions[3][10], lmrReductions[10][10])
	}
}

func TestWorkerDepthSkewAppliesToOddHelpersOnly(t *testing.T) {
	tt := NewTranspositionTable(1)
	stop := &atomic.Bool{}

	master := NewWorker(0, tt, stop, nil)
	helper := NewWorker(1, tt, stop, nil)

	if d, skip := master.depthForIteration(4); skip || d != 4 {
		t.Fatalf("master must never skip or skew its depth, got d=%d skip=%v", d, skip)
	}
	if d, skip := master.depthForIteration(5); skip || d != 5 {
		t.Fatalf("master must never skip or skew its depth, got d=%d skip=%v", d, skip)
	}

	if d, skip := helper.depthForIteration(5); skip || d != 5 {
		t.Fatalf("expected odd helper to search odd depths unskipped, got d=%d skip=%v", d, skip)
	}
	if _, skip := helper.depthForIteration(4); !skip {
		t.Fatal("expected odd helper to skip even-depth iterations")
	}
}

func TestWorkerRunReportsResults(t *testing.T) {
	tt := NewTranspositionTable(1)
	stop := &atomic.Bool{}
	resultCh := make(chan WorkerResult, 8)
	w := NewWorker(0, tt, stop, resultCh)

	b := board.New(15)
	w.Run(b, board.Red, 2, board.NoCell, stop)
	close(resultCh)

	count := 0
	for range resultCh {
		count++
	}
	if count == 0 {
		t.Fatal("expected at least one reported result")
	}
}
