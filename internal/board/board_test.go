package board

import (
	"errors"
	"testing"
)

// scriptedSource replays fixed draws. Once exhausted it returns 0 and 0.5.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func mustFromGrid(t *testing.T, g Grid, src Source) *Board {
	t.Helper()
	if src == nil {
		src = &scriptedSource{}
	}
	b, err := FromGrid(g, src)
	if err != nil {
		t.Fatalf("FromGrid() failed: %v", err)
	}
	return b
}

func countTiles(g Grid) int {
	n := 0
	for _, v := range g {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestNewBoardHasOneTile(t *testing.T) {
	b := New(NewSource(42))

	g := b.Grid()
	if countTiles(g) != 1 {
		t.Fatalf("new board should hold exactly one tile, got\n%v", g)
	}
	if b.Score() != 0 {
		t.Errorf("new board score = %d, want 0", b.Score())
	}

	v := g[b.LastSpawn()]
	if v != 2 && v != 4 {
		t.Errorf("spawned value = %d, want 2 or 4", v)
	}
}

func TestDeterministicSpawn(t *testing.T) {
	b1 := New(NewSource(12345))
	b2 := New(NewSource(12345))

	for i, dir := range []Direction{Left, Up, Right, Down, Left, Up} {
		err1 := b1.Move(dir)
		err2 := b2.Move(dir)
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("move %d: errors diverged: %v vs %v", i, err1, err2)
		}
	}

	if b1.Grid() != b2.Grid() {
		t.Errorf("same seed should produce the same boards:\n%v\nvs\n%v", b1.Grid(), b2.Grid())
	}
}

func TestSpawnScripted(t *testing.T) {
	tests := []struct {
		name  string
		grid  Grid
		ints  []int
		float float64
		cell  int
		value uint64
	}{
		{
			name:  "two in empty grid",
			ints:  []int{5},
			float: 0.95,
			cell:  5,
			value: 2,
		},
		{
			name:  "four in empty grid",
			ints:  []int{15},
			float: 0.05,
			cell:  15,
			value: 4,
		},
		{
			name: "picks among empty cells only",
			grid: Grid{
				2, 2, 2, 2,
				2, 0, 2, 2,
				2, 2, 2, 0,
				2, 2, 2, 2,
			},
			ints:  []int{1},
			float: 0.5,
			cell:  11,
			value: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{ints: tt.ints, floats: []float64{tt.float}}
			b := mustFromGrid(t, tt.grid, src)

			if err := b.Spawn(); err != nil {
				t.Fatalf("Spawn() failed: %v", err)
			}

			g := b.Grid()
			if g[tt.cell] != tt.value {
				t.Errorf("cell %d = %d, want %d", tt.cell, g[tt.cell], tt.value)
			}
			if b.LastSpawn() != tt.cell {
				t.Errorf("LastSpawn() = %d, want %d", b.LastSpawn(), tt.cell)
			}
			if countTiles(g) != countTiles(tt.grid)+1 {
				t.Errorf("spawn should add exactly one tile")
			}
		})
	}
}

func TestSpawnFullBoard(t *testing.T) {
	full := Grid{
		2, 4, 2, 4,
		4, 2, 4, 2,
		2, 4, 2, 4,
		4, 2, 4, 2,
	}
	b := mustFromGrid(t, full, nil)

	if err := b.Spawn(); !errors.Is(err, ErrBoardFull) {
		t.Errorf("Spawn() on full grid = %v, want ErrBoardFull", err)
	}
	if b.Grid() != full {
		t.Error("failed spawn must not modify the grid")
	}
}

func TestSpawnProbabilityOption(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.3}}
	b, err := FromGrid(Grid{}, src, WithSpawn4Probability(0.5))
	if err != nil {
		t.Fatalf("FromGrid() failed: %v", err)
	}
	if err := b.Spawn(); err != nil {
		t.Fatalf("Spawn() failed: %v", err)
	}
	if got := b.Grid()[0]; got != 4 {
		t.Errorf("with spawn4 probability 0.5 and draw 0.3, got %d, want 4", got)
	}
}

func TestMoveScoresAndSpawns(t *testing.T) {
	src := &scriptedSource{ints: []int{0}, floats: []float64{0.9}}
	b := mustFromGrid(t, Grid{
		2, 2, 2, 2,
	}, src)

	if err := b.Move(Left); err != nil {
		t.Fatalf("Move(Left) failed: %v", err)
	}

	if b.Score() != 8 {
		t.Errorf("score = %d, want 8", b.Score())
	}

	// Slide gives [4,4,0,0, 0...]; the first empty cell is index 2.
	expected := Grid{
		4, 4, 2, 0,
	}
	if b.Grid() != expected {
		t.Errorf("grid after move:\n%v\nwant\n%v", b.Grid(), expected)
	}
}

func TestIllegalMoveIsIdempotent(t *testing.T) {
	g := Grid{
		4, 2, 0, 0,
		8, 0, 0, 0,
	}
	b := mustFromGrid(t, g, nil)

	for i := range 2 {
		if err := b.Move(Left); !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("attempt %d: Move(Left) = %v, want ErrIllegalMove", i+1, err)
		}
		if b.Grid() != g {
			t.Fatalf("attempt %d: illegal move changed the grid", i+1)
		}
		if b.Score() != 0 {
			t.Fatalf("attempt %d: illegal move changed the score", i+1)
		}
		if b.LastSpawn() != -1 {
			t.Fatalf("attempt %d: illegal move spawned a tile", i+1)
		}
	}
}

func TestDevelBoardMoves(t *testing.T) {
	b := mustFromGrid(t, DevelGrid(), nil)

	for _, dir := range []Direction{Up, Left} {
		if err := b.Move(dir); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("Move(%s) on devel grid = %v, want ErrIllegalMove", dir, err)
		}
	}

	if err := b.Move(Right); err != nil {
		t.Errorf("Move(Right) on devel grid failed: %v", err)
	}
}

func TestDevelGrid(t *testing.T) {
	g := DevelGrid()
	if g[0] != 2 || g[13] != 16384 {
		t.Errorf("DevelGrid() = %v, want 2..16384", g)
	}
	if g[14] != 0 || g[15] != 0 {
		t.Error("DevelGrid() last two cells should be empty")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("DevelGrid() should be valid: %v", err)
	}
}

func TestIsLoss(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		loss bool
	}{
		{
			name: "checkerboard",
			grid: Grid{
				2, 4, 2, 4,
				4, 2, 4, 2,
				2, 4, 2, 4,
				4, 2, 4, 2,
			},
			loss: true,
		},
		{
			name: "distinct values",
			grid: Grid{
				2, 4, 8, 16,
				32, 64, 128, 256,
				512, 1024, 2048, 4096,
				8192, 16384, 32768, 65536,
			},
			loss: true,
		},
		{
			name: "single empty cell",
			grid: Grid{
				2, 4, 2, 4,
				4, 2, 4, 2,
				2, 4, 0, 4,
				4, 2, 4, 2,
			},
			loss: false,
		},
		{
			name: "horizontal pair",
			grid: Grid{
				2, 4, 2, 4,
				4, 2, 4, 2,
				2, 4, 2, 4,
				4, 2, 2, 8,
			},
			loss: false,
		},
		{
			name: "vertical pair on the right edge",
			grid: Grid{
				2, 4, 2, 4,
				4, 2, 4, 8,
				2, 4, 2, 8,
				4, 2, 4, 2,
			},
			loss: false,
		},
		{
			name: "empty grid",
			loss: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFromGrid(t, tt.grid, nil)
			if got := b.IsLoss(); got != tt.loss {
				t.Errorf("IsLoss() = %v, want %v for\n%v", got, tt.loss, tt.grid)
			}
		})
	}
}

func TestIsLossDoesNotMutate(t *testing.T) {
	g := Grid{2, 2, 4, 8}
	b := mustFromGrid(t, g, nil)
	b.IsLoss()
	if b.Grid() != g {
		t.Error("IsLoss() must not modify the grid")
	}
}

func TestFromGridRejectsInvalidTiles(t *testing.T) {
	for _, v := range []uint64{1, 3, 6, 12} {
		_, err := FromGrid(Grid{v}, nil)
		if !errors.Is(err, ErrInvalidTile) {
			t.Errorf("FromGrid with tile %d = %v, want ErrInvalidTile", v, err)
		}
	}
}

// TestMoveProperties plays seeded games and checks the engine invariants on
// every move: conservation, score accounting, spawn legality, idempotent
// failures and agreement between IsLoss and move legality.
func TestMoveProperties(t *testing.T) {
	dirs := []Direction{Left, Down, Right, Up, Up, Left}

	for seed := int64(1); seed <= 25; seed++ {
		b := New(NewSource(seed))

		for step := 0; step < 400 && !b.IsLoss(); step++ {
			dir := dirs[(step+int(seed))%len(dirs)]
			before := b.Grid()
			beforeScore := b.Score()
			slid, gained := Slide(before, dir)

			err := b.Move(dir)

			if b.Score() < beforeScore {
				t.Fatalf("seed %d step %d: score decreased %d -> %d", seed, step, beforeScore, b.Score())
			}

			if slid == before {
				if !errors.Is(err, ErrIllegalMove) {
					t.Fatalf("seed %d step %d: unchanged slide returned %v", seed, step, err)
				}
				if b.Grid() != before || b.Score() != beforeScore {
					t.Fatalf("seed %d step %d: illegal move modified state", seed, step)
				}
				if err := b.Move(dir); !errors.Is(err, ErrIllegalMove) {
					t.Fatalf("seed %d step %d: repeated illegal move returned %v", seed, step, err)
				}
				continue
			}

			if err != nil {
				t.Fatalf("seed %d step %d: Move(%s) failed: %v", seed, step, dir, err)
			}
			if slid.Sum() != before.Sum() {
				t.Fatalf("seed %d step %d: slide changed the tile sum %d -> %d", seed, step, before.Sum(), slid.Sum())
			}
			if b.Score() != beforeScore+gained {
				t.Fatalf("seed %d step %d: score = %d, want %d", seed, step, b.Score(), beforeScore+gained)
			}

			after := b.Grid()
			diffs := 0
			for i := range Cells {
				if after[i] == slid[i] {
					continue
				}
				diffs++
				if slid[i] != 0 {
					t.Fatalf("seed %d step %d: spawn landed on occupied cell %d", seed, step, i)
				}
				if after[i] != 2 && after[i] != 4 {
					t.Fatalf("seed %d step %d: spawned %d", seed, step, after[i])
				}
				if b.LastSpawn() != i {
					t.Fatalf("seed %d step %d: LastSpawn() = %d, want %d", seed, step, b.LastSpawn(), i)
				}
			}
			if diffs != 1 {
				t.Fatalf("seed %d step %d: %d cells differ from the slide result, want 1", seed, step, diffs)
			}
			if err := after.Validate(); err != nil {
				t.Fatalf("seed %d step %d: %v", seed, step, err)
			}
		}

		legal := 0
		for _, dir := range Directions {
			if next, _ := Slide(b.Grid(), dir); next != b.Grid() {
				legal++
			}
		}
		if b.IsLoss() && legal != 0 {
			t.Errorf("seed %d: IsLoss() but %d directions still move", seed, legal)
		}
		if !b.IsLoss() && legal == 0 {
			t.Errorf("seed %d: no legal direction but IsLoss() is false", seed)
		}
	}
}
