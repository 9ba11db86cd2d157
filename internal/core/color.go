package core

// Color identifies how a screen cell is painted. The front end maps each
// value to a terminal style.
type Color uint8

// Interface colors.
const (
	ColorDefault   Color = iota
	ColorTitle           // HUD title
	ColorDim             // secondary text and empty cells
	ColorFrame           // tile borders
	ColorOverlay         // overlay boxes and their text
	ColorHighlight       // freshly spawned tile

	// ColorTile is the color of a 2 tile. A 2^n tile uses ColorTile+n-1.
	ColorTile
)

// MaxTileExp is the highest exponent with a color of its own; larger tiles
// share it.
const MaxTileExp = 17

// TileColor returns the color used to draw a tile value.
func TileColor(value uint64) Color {
	if value == 0 {
		return ColorDim
	}
	exp := min(TileExp(value), MaxTileExp)
	return ColorTile + Color(exp-1)
}

// TileExp returns log2 of a tile value, or 0 for an empty cell.
func TileExp(value uint64) int {
	exp := 0
	for v := value; v > 1; v >>= 1 {
		exp++
	}
	return exp
}

// IsTile reports whether c is a tile color and returns its exponent.
func (c Color) IsTile() (int, bool) {
	if c < ColorTile {
		return 0, false
	}
	return int(c-ColorTile) + 1, true
}
