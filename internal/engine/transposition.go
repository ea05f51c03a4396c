package engine

import (
	"sync/atomic"

	"github.com/lavantien/caroengine/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition
// table, identical in meaning to the teacher engine's TTFlag.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // exact score
	TTLowerBound               // failed high (beta cutoff)
	TTUpperBound               // failed low
)

// TTEntry is a decoded transposition table entry. The table itself
// stores entries packed into two atomically-accessed uint64 words
// (see ttSlot) so concurrent lazy-SMP threads can probe and store
// without locks; TTEntry is the unpacked view handed to callers.
type TTEntry struct {
	Move  board.Move
	Score int32
	Depth int8
	Flag  TTFlag
}

// ttSlot is one lock-free entry: a fingerprint word XORed with the
// data word on write (and un-XORed the same way on read) so a reader
// observing a torn concurrent write sees a fingerprint mismatch
// instead of a corrupted-but-plausible entry -- the classic
// lock-free transposition table trick, grounded on the teacher's
// array-indexed TranspositionTable replacement scheme generalized
// from single-threaded field writes to atomic.Uint64 words, in the
// spirit of the odnocam endgame solver's atomic.Uint64 node counter.
type ttSlot struct {
	key  atomic.Uint64 // zobrist hash, for verification
	data atomic.Uint64 // packed Move(16) | Score(32) | Depth(8) | Flag(2) | Age(6)
}

func packData(m board.Move, score int32, depth int8, flag TTFlag, age uint8) uint64 {
	return uint64(uint16(m)) |
		uint64(uint32(score))<<16 |
		uint64(uint8(depth))<<48 |
		uint64(flag&0x3)<<56 |
		uint64(age&0x3F)<<58
}

func unpackData(d uint64) (m board.Move, score int32, depth int8, flag TTFlag, age uint8) {
	m = board.Move(uint16(d))
	score = int32(uint32(d >> 16))
	depth = int8(uint8(d >> 48))
	flag = TTFlag((d >> 56) & 0x3)
	age = uint8(d >> 58)
	return
}

// clusterSize is the number of slots probed per bucket, the same
// "bucket of a few entries, pick the best replacement candidate"
// design as the teacher's age-based replacement, adapted to a
// fixed-size cluster so a probe never needs to scan the whole shard.
const clusterSize = 3

type cluster struct {
	slots [clusterSize]ttSlot
}

// defaultShards is the number of independent clusters tables the
// transposition table is split into; sized so lazy-SMP helper
// threads rarely contend on the same shard's atomic words.
const defaultShards = 16

// shard is one independently-addressed segment of the table; every
// shard holds the same number of clusters.
type shard struct {
	clusters []cluster
	mask     uint64
}

// TranspositionTable is a lock-free, sharded, cluster-based hash table
// for search results, shared across all lazy-SMP worker goroutines
// without a mutex: every read and write goes through atomic loads and
// stores on a slot's two words. Grounded on the teacher's
// TranspositionTable (power-of-two sizing, age-based replacement,
// probe/store/clear/hashfull/hitrate API) generalized from a
// single-threaded array to sync/atomic-guarded shards.
type TranspositionTable struct {
	shards [defaultShards]shard
	age    atomic.Uint32

	probes atomic.Uint64
	hits   atomic.Uint64
}

// NewTranspositionTable creates a table sized to approximately sizeMB
// megabytes, split evenly across defaultShards shards.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const bytesPerCluster = 16 * clusterSize // two uint64 words per slot
	totalClusters := uint64(sizeMB) * 1024 * 1024 / bytesPerCluster
	perShard := roundDownToPowerOf2(totalClusters / defaultShards)
	if perShard == 0 {
		perShard = 1
	}

	tt := &TranspositionTable{}
	for i := range tt.shards {
		tt.shards[i] = shard{
			clusters: make([]cluster, perShard),
			mask:     perShard - 1,
		}
	}
	return tt
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (tt *TranspositionTable) shardFor(hash uint64) *shard {
	return &tt.shards[hash%defaultShards]
}

// Probe looks up hash in the table. It reads each candidate slot's two
// words independently (no lock), so it may occasionally reject a
// slot that was mid-write on another goroutine; that slot is simply
// treated as a miss, which is always safe since a TT is an
// optimization, never a correctness requirement.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes.Add(1)
	s := tt.shardFor(hash)
	idx := (hash / defaultShards) & s.mask
	c := &s.clusters[idx]

	for i := range c.slots {
		slot := &c.slots[i]
		key := slot.key.Load()
		data := slot.data.Load()
		if key^data != hash {
			continue
		}
		m, score, depth, flag, _ := unpackData(data)
		tt.hits.Add(1)
		return TTEntry{Move: m, Score: score, Depth: depth, Flag: flag}, true
	}
	return TTEntry{}, false
}

// helperLowDepthThreshold is the depth below which a non-master
// worker's store is pollution risk rather than signal: helper threads
// explore divergent lines at shallow depth far more than the master
// does, and a shallow bound entry from a helper can evict a deeper,
// more reliable master entry for the same hash. Spec §4.9 only says
// "low depth"; 6 is chosen as roughly half of a typical mid-game
// search depth, recorded as an open-question decision in DESIGN.md.
const helperLowDepthThreshold = 6

// Store saves a search result in the table, replacing the slot in the
// cluster with the shallowest stale (older-generation or shallower)
// entry, mirroring the teacher's age/depth replacement policy.
// workerID identifies the caller (0 = master, nonzero = lazy-SMP
// helper); per spec §4.9, a helper's write at low depth is accepted
// only when it is an exact bound, to keep shallow helper exploration
// from polluting the shared table with unreliable fail-high/fail-low
// bounds.
func (tt *TranspositionTable) Store(workerID int, hash uint64, depth int8, score int32, flag TTFlag, m board.Move) {
	if workerID != 0 && depth < helperLowDepthThreshold && flag != TTExact {
		return
	}

	s := tt.shardFor(hash)
	idx := (hash / defaultShards) & s.mask
	c := &s.clusters[idx]
	age := uint8(tt.age.Load()) & 0x3F

	data := packData(m, score, depth, flag, age)

	replaceIdx := 0
	replaceScore := -1
	for i := range c.slots {
		slot := &c.slots[i]
		existingKey := slot.key.Load()
		existingData := slot.data.Load()

		if existingKey == 0 && existingData == 0 {
			replaceIdx = i
			break
		}

		_, _, existingDepth, _, existingAge := unpackData(existingData)

		// Prefer replacing an older-generation entry, then the
		// shallowest same-generation entry.
		score := int(existingDepth)
		if existingAge != age {
			score -= 1000
		}
		if replaceScore == -1 || score < replaceScore {
			replaceScore = score
			replaceIdx = i
		}
	}

	slot := &c.slots[replaceIdx]
	slot.key.Store(hash ^ data)
	slot.data.Store(data)
}

// NewSearch increments the generation counter used for replacement
// aging, the lock-free analogue of the teacher's age field.
func (tt *TranspositionTable) NewSearch() {
	tt.age.Add(1)
}

// Clear zeroes every slot in every shard.
func (tt *TranspositionTable) Clear() {
	for i := range tt.shards {
		s := &tt.shards[i]
		for j := range s.clusters {
			c := &s.clusters[j]
			for k := range c.slots {
				c.slots[k].key.Store(0)
				c.slots[k].data.Store(0)
			}
		}
	}
	tt.age.Store(0)
	tt.probes.Store(0)
	tt.hits.Store(0)
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	p := tt.probes.Load()
	if p == 0 {
		return 0
	}
	return float64(tt.hits.Load()) / float64(p) * 100
}

// AdjustScoreFromTT adjusts a mate-distance score read from the table
// back to the current search's root, identical in purpose to the
// teacher's AdjustScoreFromTT.
func AdjustScoreFromTT(score int32, ply int) int32 {
	if score > MateScore-int32(MaxPly) {
		return score - int32(ply)
	}
	if score < -MateScore+int32(MaxPly) {
		return score + int32(ply)
	}
	return score
}

// AdjustScoreToTT adjusts a score for storage, offsetting mate
// distances so they remain meaningful regardless of ply depth.
func AdjustScoreToTT(score int32, ply int) int32 {
	if score > MateScore-int32(MaxPly) {
		return score + int32(ply)
	}
	if score < -MateScore+int32(MaxPly) {
		return score - int32(ply)
	}
	return score
}
