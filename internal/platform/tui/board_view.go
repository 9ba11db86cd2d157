package tui

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/r2048/internal/board"
	"github.com/vovakirdan/r2048/internal/core"
	"github.com/vovakirdan/r2048/internal/game"
)

const (
	tileW  = 7 // Width of each tile box
	tileH  = 3 // Height of each tile box
	hudH   = 2 // Lines above the board
	boardW = board.Side * tileW
	boardH = board.Side * tileH

	// MinWidth and MinHeight are the smallest screen the board fits on.
	MinWidth  = boardW + 6
	MinHeight = hudH + boardH + 1
)

// Messages shown over a lost board.
const (
	lossTitle = "You lost!"
	lossHint  = "Press R to start a new game."
)

// drawGame renders a session view into dst. highlight is the index of the
// tile to emphasise, or -1.
func drawGame(dst *core.Screen, v game.View, best uint64, highlight int) {
	dst.Clear()

	if dst.Width() < MinWidth || dst.Height() < MinHeight {
		drawTooSmall(dst)
		return
	}

	area := dst.Bounds().Centered(boardW, hudH+boardH)
	drawHUD(dst, area, v, best)

	boardArea := core.NewRect(area.X, area.Y+hudH, boardW, boardH)
	for i, value := range v.Cells {
		row, col := i/board.Side, i%board.Side
		r := core.NewRect(boardArea.X+col*tileW, boardArea.Y+row*tileH, tileW, tileH)
		drawTile(dst, r, value, i == highlight)
	}

	switch {
	case v.ShowInfo:
		drawOverlay(dst, dst.Bounds(), game.InfoLines())
	case v.Loss:
		band := core.NewRect(0, boardArea.Y, dst.Width(), boardArea.H)
		drawOverlay(dst, band, []string{lossTitle, "", lossHint})
	}
}

func drawTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", MinWidth, MinHeight))
}

func drawHUD(dst *core.Screen, area core.Rect, v game.View, best uint64) {
	dst.DrawTextColored(area.X, area.Y, game.Title, core.ColorTitle)

	score := fmt.Sprintf("Score: %d", v.Score)
	dst.DrawText(area.Right()-utf8.RuneCountInString(score), area.Y, score)

	dst.DrawTextColored(area.X, area.Y+1, fmt.Sprintf("Moves: %d", v.Moves), core.ColorDim)

	bestText := fmt.Sprintf("Best: %d", max(best, v.Score))
	dst.DrawText(area.Right()-utf8.RuneCountInString(bestText), area.Y+1, bestText)
}

func drawTile(dst *core.Screen, r core.Rect, value uint64, highlight bool) {
	dst.DrawBoxColored(r, core.ColorFrame)

	color := core.TileColor(value)
	if highlight {
		color = core.ColorHighlight
	}
	inner := core.NewRect(r.X+1, r.Y+1, r.W-2, r.H-2)
	if value != 0 {
		dst.DrawRectColored(inner, ' ', color)
	}

	label := tileLabel(value)
	x := inner.X + (inner.W-utf8.RuneCountInString(label))/2
	dst.DrawTextColored(x, r.Y+r.H/2, label, color)
}

// tileLabel formats a tile value to fit inside a tile box.
func tileLabel(value uint64) string {
	if value == 0 {
		return "·"
	}
	s := strconv.FormatUint(value, 10)
	if len(s) <= tileW-2 {
		return s
	}
	return "2^" + strconv.Itoa(core.TileExp(value))
}

// drawOverlay clears a box inside area and writes lines centered in it.
func drawOverlay(dst *core.Screen, area core.Rect, lines []string) {
	w := 0
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l))
	}
	w = min(w+4, area.W)
	h := min(len(lines)+2, area.H)

	box := area.Centered(w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorOverlay)

	for i, l := range lines {
		y := box.Y + 1 + i
		if y >= box.Bottom()-1 {
			break
		}
		l = clipRunes(l, box.W-2)
		x := box.X + (box.W-utf8.RuneCountInString(l))/2
		dst.DrawTextColored(x, y, l, core.ColorOverlay)
	}
}

// clipRunes shortens s to at most n runes.
func clipRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
