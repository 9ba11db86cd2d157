// Package board implements the 2048 rule engine: a 4x4 grid of powers of two,
// directional slides with a single non-cascading merge pass, random spawns and
// loss detection.
package board

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// DefaultSpawn4Probability is the chance that a spawned tile is a 4 instead of a 2.
const DefaultSpawn4Probability = 0.10

var (
	// ErrIllegalMove is returned when a move leaves the grid unchanged.
	ErrIllegalMove = errors.New("board: illegal move")

	// ErrBoardFull is returned when a spawn is requested on a grid with no empty cell.
	ErrBoardFull = errors.New("board: no empty cell")

	// ErrInvalidTile is returned when a grid holds a value that is neither 0 nor a power of two >= 2.
	ErrInvalidTile = errors.New("board: invalid tile value")
)

// Grid is the 16-cell board, row-major (index = row*4 + col). 0 means empty.
type Grid [Cells]uint64

// EmptyCells returns the indices of all empty cells in ascending order.
func (g Grid) EmptyCells() []int {
	empty := make([]int, 0, Cells)
	for i, v := range g {
		if v == 0 {
			empty = append(empty, i)
		}
	}
	return empty
}

// MaxTile returns the highest tile value on the grid.
func (g Grid) MaxTile() uint64 {
	var maxVal uint64
	for _, v := range g {
		maxVal = max(maxVal, v)
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (g Grid) Sum() uint64 {
	var sum uint64
	for _, v := range g {
		sum += v
	}
	return sum
}

// Validate checks that every cell is 0 or a power of two >= 2.
func (g Grid) Validate() error {
	for i, v := range g {
		if v == 0 {
			continue
		}
		if v < 2 || bits.OnesCount64(v) != 1 {
			return fmt.Errorf("%w: %d at cell %d", ErrInvalidTile, v, i)
		}
	}
	return nil
}

// String renders the grid as four right-aligned rows.
func (g Grid) String() string {
	var sb strings.Builder
	for row := range Side {
		for col := range Side {
			if col > 0 {
				sb.WriteByte(' ')
			}
			v := strconv.FormatUint(g[row*Side+col], 10)
			sb.WriteString(strings.Repeat(" ", max(0, 5-len(v))))
			sb.WriteString(v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DevelGrid returns the developer layout: 2 through 16384 across the first
// fourteen cells, last two empty.
func DevelGrid() Grid {
	var g Grid
	for i := range Cells - 2 {
		g[i] = 2 << i
	}
	return g
}

// Board owns the grid and the cumulative score.
type Board struct {
	grid      Grid
	score     uint64
	src       Source
	spawn4    float64
	lastSpawn int
}

// Option configures a Board.
type Option func(*Board)

// WithSpawn4Probability sets the chance that a spawned tile is a 4.
func WithSpawn4Probability(p float64) Option {
	return func(b *Board) {
		b.spawn4 = p
	}
}

// newBoard builds an empty board. A nil source falls back to NewRandomSource.
func newBoard(src Source, opts []Option) *Board {
	if src == nil {
		src = NewRandomSource()
	}
	b := &Board{
		src:       src,
		spawn4:    DefaultSpawn4Probability,
		lastSpawn: -1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// New creates an empty board with zero score and places one random tile.
func New(src Source, opts ...Option) *Board {
	b := newBoard(src, opts)
	//nolint:errcheck // An empty grid always has room
	b.Spawn()
	return b
}

// FromGrid creates a board holding the given grid with zero score and no spawn.
func FromGrid(g Grid, src Source, opts ...Option) (*Board, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	b := newBoard(src, opts)
	b.grid = g
	return b, nil
}

// Grid returns a copy of the current grid.
func (b *Board) Grid() Grid {
	return b.grid
}

// Score returns the cumulative score.
func (b *Board) Score() uint64 {
	return b.score
}

// LastSpawn returns the index of the most recently spawned tile, or -1.
func (b *Board) LastSpawn() int {
	return b.lastSpawn
}

// Spawn places a 2 or a 4 in a uniformly chosen empty cell.
func (b *Board) Spawn() error {
	empty := b.grid.EmptyCells()
	if len(empty) == 0 {
		return ErrBoardFull
	}

	cell := empty[b.src.IntN(len(empty))]
	value := uint64(2)
	if b.src.Float64() < b.spawn4 {
		value = 4
	}

	b.grid[cell] = value
	b.lastSpawn = cell
	return nil
}

// Move slides and merges every lane toward dir. If the grid changed a new tile
// is spawned; otherwise ErrIllegalMove is returned and nothing is modified.
func (b *Board) Move(dir Direction) error {
	next, gained := Slide(b.grid, dir)
	if next == b.grid {
		return ErrIllegalMove
	}

	b.grid = next
	b.score += gained

	if err := b.Spawn(); err != nil {
		return fmt.Errorf("board: spawn after %s: %w", dir, err)
	}
	return nil
}

// IsLoss reports whether no move is possible: no empty cell and no pair of
// orthogonally adjacent equal tiles.
func (b *Board) IsLoss() bool {
	for i, v := range b.grid {
		if v == 0 {
			return false
		}

		col := i % Side
		if col > 0 && b.grid[i-1] == v {
			return false
		}
		if col < Side-1 && b.grid[i+1] == v {
			return false
		}
		if i >= Side && b.grid[i-Side] == v {
			return false
		}
		if i < Cells-Side && b.grid[i+Side] == v {
			return false
		}
	}
	return true
}
