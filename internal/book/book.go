// Package book implements the opening-book contract of spec §6: a
// read-only-at-runtime lookup from a canonicalized position hash to a
// set of scored candidate moves. Grounded on the teacher engine's
// internal/book (Polyglot-format book, weighted-random Probe), with
// the wire format swapped for a flat big-endian encoding of BookEntry
// (see encodeEntry) since Caro has no Polyglot equivalent, and the
// single in-memory map generalized
// into a Store interface so a disk-backed implementation can share the
// same contract.
package book

import (
	"encoding/binary"
	"math/rand"

	"github.com/lavantien/caroengine/internal/board"
)

// MoveScore is one candidate move recorded for a book position: the
// move relative to canonical space, its evaluated score, the depth at
// which that score was established, whether the line was verified by
// a deeper solve (VCF or exhaustive search), and whether it is a
// forcing (must-reply) continuation.
type MoveScore struct {
	Move         board.Move
	Score        int32
	DepthReached int
	Verified     bool
	Forcing      bool
}

// BookEntry is what Get returns: the scored moves recorded for a
// canonical position, the symmetry that was applied to reach that
// canonical form (needed to map a move back to the caller's original
// orientation), and whether the position was near-edge (and therefore
// stored non-canonicalized, per spec §4.10).
type BookEntry struct {
	Moves      []MoveScore
	Symmetry   board.Symmetry
	IsNearEdge bool
}

// Store is the abstract, read-only-during-search opening-book
// contract (spec §6). Persistence is external to the core; Get and
// Contains are the only operations a search needs.
type Store interface {
	Get(canonicalHash uint64, side board.Player) (BookEntry, bool)
	Contains(canonicalHash uint64, side board.Player) bool
}

type bookKey struct {
	hash uint64
	side board.Player
}

// InMemoryStore is a Store backed by a plain map, suitable for a book
// built at startup or loaded wholesale from a file into RAM.
type InMemoryStore struct {
	entries map[bookKey]BookEntry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[bookKey]BookEntry)}
}

// Put inserts or replaces the entry for (canonicalHash, side). Not
// part of the Store interface: population happens before the store is
// handed to a search, never concurrently with it (spec §5's
// read-only-during-search rule).
func (s *InMemoryStore) Put(canonicalHash uint64, side board.Player, entry BookEntry) {
	s.entries[bookKey{canonicalHash, side}] = entry
}

func (s *InMemoryStore) Get(canonicalHash uint64, side board.Player) (BookEntry, bool) {
	e, ok := s.entries[bookKey{canonicalHash, side}]
	return e, ok
}

func (s *InMemoryStore) Contains(canonicalHash uint64, side board.Player) bool {
	_, ok := s.entries[bookKey{canonicalHash, side}]
	return ok
}

// NullStore is a Store with no entries, used when no book is
// configured (spec §6's book_store is optional).
type NullStore struct{}

func NewNullStore() NullStore { return NullStore{} }

func (NullStore) Get(uint64, board.Player) (BookEntry, bool) { return BookEntry{}, false }
func (NullStore) Contains(uint64, board.Player) bool         { return false }

// encodeEntry/decodeEntry are the on-disk wire format for
// OnDiskStore's Badger values: a flat encoding of BookEntry, avoiding
// gob's reflection overhead for a format this simple.
//
// Layout: symmetry(1) | isNearEdge(1) | count(2) | count * (move(2) |
// score(4) | depth(2) | verified(1) | forcing(1)).
func encodeEntry(e BookEntry) []byte {
	out := make([]byte, 4, 4+len(e.Moves)*10)
	out[0] = byte(e.Symmetry)
	if e.IsNearEdge {
		out[1] = 1
	}
	binary.BigEndian.PutUint16(out[2:4], uint16(len(e.Moves)))
	for _, m := range e.Moves {
		var buf [10]byte
		binary.BigEndian.PutUint16(buf[0:2], uint16(m.Move))
		binary.BigEndian.PutUint32(buf[2:6], uint32(m.Score))
		binary.BigEndian.PutUint16(buf[6:8], uint16(m.DepthReached))
		if m.Verified {
			buf[8] = 1
		}
		if m.Forcing {
			buf[9] = 1
		}
		out = append(out, buf[:]...)
	}
	return out
}

func decodeEntry(data []byte) (BookEntry, bool) {
	if len(data) < 4 {
		return BookEntry{}, false
	}
	e := BookEntry{
		Symmetry:   board.Symmetry(data[0]),
		IsNearEdge: data[1] != 0,
	}
	count := int(binary.BigEndian.Uint16(data[2:4]))
	offset := 4
	for i := 0; i < count && offset+10 <= len(data); i++ {
		buf := data[offset : offset+10]
		e.Moves = append(e.Moves, MoveScore{
			Move:         board.Move(binary.BigEndian.Uint16(buf[0:2])),
			Score:        int32(binary.BigEndian.Uint32(buf[2:6])),
			DepthReached: int(binary.BigEndian.Uint16(buf[6:8])),
			Verified:     buf[8] != 0,
			Forcing:      buf[9] != 0,
		})
		offset += 10
	}
	return e, true
}

// PickWeighted selects among a BookEntry's moves, favoring higher
// scores, the same weighted-random idea as the teacher's Book.Probe
// applied to Caro's score field instead of Polyglot weights.
func PickWeighted(rng *rand.Rand, moves []MoveScore) (MoveScore, bool) {
	if len(moves) == 0 {
		return MoveScore{}, false
	}
	minScore := moves[0].Score
	for _, m := range moves {
		if m.Score < minScore {
			minScore = m.Score
		}
	}
	total := int64(0)
	weights := make([]int64, len(moves))
	for i, m := range moves {
		w := int64(m.Score-minScore) + 1
		weights[i] = w
		total += w
	}
	r := rng.Int63n(total)
	for i, w := range weights {
		if r < w {
			return moves[i], true
		}
		r -= w
	}
	return moves[len(moves)-1], true
}
