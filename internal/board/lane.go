package board

import (
	"fmt"
	"strings"
)

// Side is the board dimension.
const Side = 4

// Cells is the number of cells on the board.
const Cells = Side * Side

// Direction represents a slide direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in a fixed order.
var Directions = [...]Direction{Up, Down, Left, Right}

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// ParseDirection converts a name such as "left" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("board: unknown direction %q", s)
}

// LaneIndex maps a lane and a position within it to a grid index.
// Position 0 is the cell at the edge tiles slide toward.
// Returns -1 for an invalid direction.
func LaneIndex(dir Direction, lane, pos int) int {
	switch dir {
	case Up:
		return lane + Side*pos
	case Down:
		return lane + Side*(Side-1) - Side*pos
	case Left:
		return lane*Side + pos
	case Right:
		return lane*Side + Side - 1 - pos
	default:
		return -1
	}
}

// compactLane slides non-zero values toward position 0, keeping their order.
func compactLane(lane [Side]uint64) [Side]uint64 {
	var out [Side]uint64
	w := 0
	for _, v := range lane {
		if v == 0 {
			continue
		}
		out[w] = v
		w++
	}
	return out
}

// mergeLane runs the single merge pass over a compacted lane.
// The first matching rule wins and no tile merges twice.
func mergeLane(l [Side]uint64) ([Side]uint64, uint64) {
	p0, p1, p2, p3 := l[0], l[1], l[2], l[3]

	switch {
	case p0 == p1 && p2 == p3:
		return [Side]uint64{p0 * 2, p2 * 2, 0, 0}, p0*2 + p2*2

	case p0 == p1 && p2 != p3:
		return [Side]uint64{p0 * 2, p2, p3, 0}, p0 * 2

	case p0 != p1 && p1 == p2:
		return [Side]uint64{p0, p1 * 2, p3, 0}, p1 * 2

	case p2 != p1 && p2 == p3:
		// Two trailing empty cells are not a merge.
		if p3 == 0 {
			return l, 0
		}
		return [Side]uint64{p0, p1, p2 * 2, 0}, p2 * 2
	}

	return l, 0
}

// Slide resolves a move on a copy of the grid without spawning.
// Returns the resulting grid and the score gained from merges.
func Slide(g Grid, dir Direction) (Grid, uint64) {
	if !dir.Valid() {
		return g, 0
	}

	var gained uint64
	for lane := range Side {
		var l [Side]uint64
		for pos := range Side {
			l[pos] = g[LaneIndex(dir, lane, pos)]
		}

		merged, score := mergeLane(compactLane(l))
		gained += score

		for pos := range Side {
			g[LaneIndex(dir, lane, pos)] = merged[pos]
		}
	}

	return g, gained
}
