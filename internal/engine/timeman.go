package engine

import "time"

// Phase buckets the game by move number (spec §4.11); each has its
// own time multiplier reflecting how much thinking that stage of a
// Caro game typically rewards.
type Phase int

const (
	PhaseOpening Phase = iota
	PhaseEarlyMid
	PhaseLateMid
	PhaseEndgame
)

func phaseForMove(moveNumber int) Phase {
	switch {
	case moveNumber <= 10:
		return PhaseOpening
	case moveNumber <= 25:
		return PhaseEarlyMid
	case moveNumber <= 45:
		return PhaseLateMid
	default:
		return PhaseEndgame
	}
}

func (p Phase) multiplier() float64 {
	switch p {
	case PhaseOpening:
		return 0.5
	case PhaseEarlyMid:
		return 0.8
	case PhaseLateMid:
		return 1.2
	default:
		return 1.0
	}
}

// Urgency reflects root-level tactical state (spec §4.11): a must-block
// or own-winning move at the root deserves disproportionate time; a
// single forced reply deserves almost none.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyHigh           // must-block or winning move detected at root
	UrgencyForced         // picker's first stage is a single legal must-block
)

func (u Urgency) multiplier() float64 {
	switch u {
	case UrgencyHigh:
		return 1.5
	case UrgencyForced:
		return 0.3
	default:
		return 1.0
	}
}

const (
	reserveTime   = 100 * time.Millisecond
	emergencyCap  = 500 * time.Millisecond
	emergencyMin  = 10 * time.Millisecond
)

// TimeManager allocates a per-move search budget from remaining clock
// time, grounded on the teacher's TimeManager (Init/Elapsed/ShouldStop
// shape and the AdjustForStability/AdjustForInstability idea of
// scaling the optimum after the fact), generalized to the spec's
// explicit phase/urgency multiplier formula in place of the teacher's
// ad hoc moves-to-go heuristic.
type TimeManager struct {
	allocated time.Duration
	startTime time.Time
}

func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Allocate computes alloc = min(T_rem*0.5, base*phase_mult*urgency_mult)
// with base = T_rem/max(m,20) + inc, per spec §4.11, and starts the
// manager's clock.
func (tm *TimeManager) Allocate(remaining, inc time.Duration, movesToGo, moveNumber int, urgency Urgency) time.Duration {
	tm.startTime = time.Now()

	if remaining < emergencyCap {
		alloc := remaining - reserveTime
		if alloc > remaining-10*time.Millisecond {
			alloc = remaining - 10*time.Millisecond
		}
		if alloc < emergencyMin {
			alloc = emergencyMin
		}
		if alloc > remaining {
			alloc = remaining
		}
		tm.allocated = alloc
		return tm.allocated
	}

	m := movesToGo
	if m < 20 {
		m = 20
	}
	base := remaining/time.Duration(m) + inc

	phase := phaseForMove(moveNumber)
	scaled := time.Duration(float64(base) * phase.multiplier() * urgency.multiplier())

	half := remaining / 2
	alloc := scaled
	if half < alloc {
		alloc = half
	}
	if alloc < reserveTime {
		alloc = reserveTime
	}
	if alloc > remaining-reserveTime {
		alloc = remaining - reserveTime
	}

	tm.allocated = alloc
	return tm.allocated
}

func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

func (tm *TimeManager) Allocated() time.Duration {
	return tm.allocated
}

func (tm *TimeManager) ShouldStop() bool {
	return tm.Elapsed() >= tm.allocated
}

// AdjustForStability shrinks the remaining budget when the root best
// move has been stable for several iterations, the same idea as the
// teacher's AdjustForStability.
func (tm *TimeManager) AdjustForStability(stability int) {
	switch {
	case stability >= 6:
		tm.allocated = tm.allocated * 40 / 100
	case stability >= 4:
		tm.allocated = tm.allocated * 60 / 100
	case stability >= 2:
		tm.allocated = tm.allocated * 80 / 100
	}
}

// AdjustForInstability grows the remaining budget when the root best
// move keeps flipping between iterations, the same idea as the
// teacher's AdjustForInstability.
func (tm *TimeManager) AdjustForInstability(changes int, maximum time.Duration) {
	switch {
	case changes >= 4:
		tm.allocated = tm.allocated * 200 / 100
	case changes >= 2:
		tm.allocated = tm.allocated * 150 / 100
	}
	if tm.allocated > maximum {
		tm.allocated = maximum
	}
}
