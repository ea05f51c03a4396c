package pattern

import "github.com/lavantien/caroengine/internal/board"

// classifyDirection derives the sub-classification for one 11-cell
// window (spec §4.3). It first checks the contiguous run through the
// center for the absolute exactly-five / overline cases, then falls
// back to a sliding 5-cell window scan to find "one move from five"
// (four) and "two moves from five" (three) shapes, including gapped
// patterns like X X _ X X that a pure contiguous-run scan would miss.
func classifyDirection(w [windowLen]cellState) dirTag {
	const c = windowRadius // center index

	// Contiguous run through the center.
	left := c
	for left > 0 && w[left-1] == stOwn {
		left--
	}
	right := c
	for right < windowLen-1 && w[right+1] == stOwn {
		right++
	}
	run := right - left + 1

	if run == 5 {
		return tagFive
	}
	if run >= 6 {
		return tagOverline
	}

	leftOpen := left > 0 && w[left-1] == stEmpty
	rightOpen := right < windowLen-1 && w[right+1] == stEmpty

	// Sliding 5-cell windows that contain the center and have no
	// opponent/OOB cell inside.
	loIdx := c - 4
	if loIdx < 0 {
		loIdx = 0
	}
	hiIdx := c
	if hiIdx > windowLen-5 {
		hiIdx = windowLen - 5
	}

	fourCompletions := map[int]bool{}
	sawStraightThree := false
	sawThree := false

	for start := loIdx; start <= hiIdx; start++ {
		if start > c || start+4 < c {
			continue
		}
		blocked := false
		own := 0
		var emptyIdx []int
		for i := start; i <= start+4; i++ {
			switch w[i] {
			case stOpp, stOOB:
				blocked = true
			case stOwn:
				own++
			case stEmpty:
				emptyIdx = append(emptyIdx, i)
			}
		}
		if blocked {
			continue
		}
		switch own {
		case 4:
			fourCompletions[emptyIdx[0]] = true
		case 3:
			sawThree = true
			// Open-three shape within the window: the two empty
			// cells sit at both ends, own stones contiguous between.
			if len(emptyIdx) == 2 && emptyIdx[0] == start && emptyIdx[1] == start+4 {
				sawStraightThree = true
			}
		}
	}

	switch {
	case len(fourCompletions) >= 2:
		return tagStraightFour
	case len(fourCompletions) == 1:
		return tagBrokenFour
	case sawStraightThree:
		return tagStraightThree
	case sawThree:
		return tagBrokenThree
	}

	switch run {
	case 2:
		switch {
		case leftOpen && rightOpen:
			return tagFlex2
		case leftOpen || rightOpen:
			return tagBlock2
		default:
			return tagNone
		}
	case 1:
		switch {
		case leftOpen && rightOpen:
			return tagFlex1
		case leftOpen || rightOpen:
			return tagBlock1
		default:
			return tagNone
		}
	default:
		return tagNone
	}
}

// Classify derives the Pattern4 of placing a stone for `side` at
// (x, y) on board b. The cell at (x, y) must be empty; callers (the
// move generator) are expected to only classify empty cells.
func Classify(b *board.Board, x, y int, side board.Player) Pattern4 {
	var tags [4]dirTag
	for i, dir := range directions {
		w := extractWindow(b, x, y, dir, side)
		tags[i] = classifyDirection(w)
	}
	return combine(tags)
}

// combine implements the aggregation table of spec §4.3.
func combine(tags [4]dirTag) Pattern4 {
	var fives, overlines, straightFours, brokenFours, straightThrees, brokenThrees int
	var flex2, block2, flex1, block1 bool

	for _, t := range tags {
		switch t {
		case tagFive:
			fives++
		case tagOverline:
			overlines++
		case tagStraightFour:
			straightFours++
		case tagBrokenFour:
			brokenFours++
		case tagStraightThree:
			straightThrees++
		case tagBrokenThree:
			brokenThrees++
		case tagFlex2:
			flex2 = true
		case tagBlock2:
			block2 = true
		case tagFlex1:
			flex1 = true
		case tagBlock1:
			block1 = true
		}
	}

	anyFours := straightFours + brokenFours

	switch {
	case fives > 0:
		return Five
	case overlines > 0:
		return Overline
	case straightFours > 0:
		return Flex4
	case anyFours >= 2:
		return Flex4
	case brokenFours == 1 && straightThrees >= 1:
		return Flex4Flex3
	case brokenFours >= 1:
		return Block4
	case straightThrees >= 2:
		return DoubleFlex3
	case straightThrees == 1:
		return Flex3
	case brokenThrees >= 1:
		return Block3
	case flex2:
		return Flex2
	case block2:
		return Block2
	case flex1:
		return Flex1
	case block1:
		return Block1
	default:
		return None
	}
}
