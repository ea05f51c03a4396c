// Package pattern implements the threat/pattern classifier: for each
// empty cell and side, it derives a Pattern4 tag describing the
// strongest threat placing a stone there would create, by combining a
// per-direction sub-classification across the four lines (horizontal,
// vertical, and both diagonals) through the cell. It also implements
// the exactly-five win detector and the static position evaluator,
// both of which are built on the same line-extraction primitive.
//
// Grounded on the teacher engine's internal/engine/eval.go (line-based
// pattern scoring) and internal/board/attacks.go (direction-vector
// scanning), generalized from sliding-piece attacks to Caro's
// contiguous-run threat detection.
package pattern

// Pattern4 is the aggregate threat classification of an empty cell for
// one side, combining the four line directions through it.
type Pattern4 uint8

const (
	None Pattern4 = iota
	Block1
	Flex1
	Block2
	Flex2
	Block3
	Flex3
	Block4
	Flex4
	DoubleFlex3
	Flex4Flex3
	Five
	Overline
)

func (p Pattern4) String() string {
	switch p {
	case None:
		return "None"
	case Block1:
		return "Block1"
	case Flex1:
		return "Flex1"
	case Block2:
		return "Block2"
	case Flex2:
		return "Flex2"
	case Block3:
		return "Block3"
	case Flex3:
		return "Flex3"
	case Block4:
		return "Block4"
	case Flex4:
		return "Flex4"
	case DoubleFlex3:
		return "DoubleFlex3"
	case Flex4Flex3:
		return "Flex4Flex3"
	case Five:
		return "Five"
	case Overline:
		return "Overline"
	default:
		return "Unknown"
	}
}

// IsMustBlock reports whether an opponent holding this pattern at a
// cell must be blocked immediately (spec §4.5 stage 2).
func (p Pattern4) IsMustBlock() bool {
	return p == Five || p == Flex4 || p == Flex4Flex3 || p == DoubleFlex3
}

// IsWinning reports whether the side to move holding this pattern has
// an immediately winning or double-threat move (spec §4.5 stage 3).
func (p Pattern4) IsWinning() bool {
	return p.IsMustBlock()
}

// IsThreatCreator reports whether this pattern is worth searching early
// as a threat-building move even though it is not yet winning or
// forced (spec §4.5 stage 4).
func (p Pattern4) IsThreatCreator() bool {
	return p == Flex3 || p == Block4
}

// Weight is the static-evaluation weight table of spec §4.3, in
// centipawns, from the perspective of the side holding the pattern.
func (p Pattern4) Weight() int {
	switch p {
	case Five:
		return 100000
	case Flex4, Flex4Flex3, DoubleFlex3:
		return 10000
	case Block4, Flex3:
		return 1000
	case Block3, Flex2:
		return 100
	default:
		return 0
	}
}

// dirTag is the per-direction sub-classification, finer-grained than
// Pattern4, computed independently for each of the four lines through
// a candidate cell before being combined into an aggregate Pattern4.
type dirTag uint8

const (
	tagNone dirTag = iota
	tagBlock1
	tagFlex1
	tagBlock2
	tagFlex2
	tagBrokenThree // spec's "BrokenThree"; aggregates into Block3
	tagStraightThree
	tagBrokenFour // one winning completion
	tagStraightFour // two-or-more winning completions (open four / double four)
	tagOverline
	tagFive
)
