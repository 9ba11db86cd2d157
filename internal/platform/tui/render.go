package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/r2048/internal/core"
)

// uiStyles styles the interface colors.
var uiStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorFrame:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	core.ColorOverlay:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("159")).Bold(true),
}

// tileShade is the xterm-256 foreground and background of one tile value.
type tileShade struct {
	fg, bg string
}

// tilePalette is indexed by tile exponent: warm shades up to 2048, then
// greens, blues and purples for the rarer tiles.
var tilePalette = [core.MaxTileExp + 1]tileShade{
	1:  {"238", "255"}, // 2
	2:  {"238", "230"}, // 4
	3:  {"231", "215"}, // 8
	4:  {"231", "209"}, // 16
	5:  {"231", "203"}, // 32
	6:  {"231", "196"}, // 64
	7:  {"236", "222"}, // 128
	8:  {"236", "221"}, // 256
	9:  {"236", "220"}, // 512
	10: {"231", "214"}, // 1024
	11: {"231", "178"}, // 2048
	12: {"231", "41"},  // 4096
	13: {"231", "35"},  // 8192
	14: {"231", "33"},  // 16384
	15: {"231", "27"},  // 32768
	16: {"231", "93"},  // 65536
	17: {"231", "55"},  // 131072 and above
}

// tileStyles holds one bold style per tile exponent, built from tilePalette.
var tileStyles = func() [core.MaxTileExp + 1]lipgloss.Style {
	var styles [core.MaxTileExp + 1]lipgloss.Style
	for exp, shade := range tilePalette {
		if exp == 0 {
			continue
		}
		styles[exp] = lipgloss.NewStyle().
			Foreground(lipgloss.Color(shade.fg)).
			Background(lipgloss.Color(shade.bg)).
			Bold(true)
	}
	return styles
}()

// styleFor returns the style painting c. Unknown colors render unstyled.
func styleFor(c core.Color) lipgloss.Style {
	if exp, ok := c.IsTile(); ok && exp <= core.MaxTileExp {
		return tileStyles[exp]
	}
	if style, ok := uiStyles[c]; ok {
		return style
	}
	return uiStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
