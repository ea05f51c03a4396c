// Package statlog publishes search telemetry asynchronously so a
// worker's hot loop never blocks on a logging sink (spec §5: stats
// channels are single-producer-per-worker, single-consumer-per-sink,
// and producers never block — a bounded queue drops the oldest entry
// on overflow rather than stall the searcher). Grounded on the
// odnocam endgame solver's use of zerolog for structured fields
// alongside errgroup/context-based concurrency. The engine emits no
// separate lifecycle log messages; this package is its only logging.
package statlog

import (
	"os"

	"github.com/rs/zerolog"
)

// Sample is one worker's report at the end of a completed
// iterative-deepening depth.
type Sample struct {
	WorkerID  int
	Depth     int
	Nodes     uint64
	NPS       float64
	TTHitRate float64
	Score     int32
}

// capacity bounds the channel so a stalled consumer cannot pile up
// unbounded memory; new samples overwrite the oldest once full.
const capacity = 64

// Publisher is a single worker's producer handle: a bounded,
// drop-oldest channel that a Sink's Drain loop reads from.
type Publisher struct {
	ch chan Sample
}

// NewPublisher creates a publisher for one worker.
func NewPublisher() *Publisher {
	return &Publisher{ch: make(chan Sample, capacity)}
}

// Publish enqueues a sample without blocking: if the channel is full,
// the oldest queued sample is dropped to make room, since a worker
// must never stall on telemetry (spec §5).
func (p *Publisher) Publish(s Sample) {
	select {
	case p.ch <- s:
	default:
		select {
		case <-p.ch:
		default:
		}
		select {
		case p.ch <- s:
		default:
		}
	}
}

// Close signals no more samples will be published.
func (p *Publisher) Close() { close(p.ch) }

// Sink is the single consumer draining every worker's Publisher and
// emitting structured zerolog events.
type Sink struct {
	logger zerolog.Logger
}

// NewSink builds a sink writing structured JSON lines to os.Stdout.
func NewSink() *Sink {
	return &Sink{logger: zerolog.New(os.Stdout).With().Timestamp().Logger()}
}

// Drain reads from ch until it is closed, logging one structured
// event per sample. Meant to run on its own goroutine, one per
// Publisher, matching the single-producer-per-worker /
// single-consumer-per-sink rule.
func (s *Sink) Drain(p *Publisher) {
	for sample := range p.ch {
		s.logger.Info().
			Int("worker_id", sample.WorkerID).
			Int("depth", sample.Depth).
			Uint64("nodes", sample.Nodes).
			Float64("nps", sample.NPS).
			Float64("tt_hit_rate", sample.TTHitRate).
			Int32("score", sample.Score).
			Msg("search-sample")
	}
}
