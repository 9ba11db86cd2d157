package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/r2048/internal/config"
	"github.com/vovakirdan/r2048/internal/core"
	"github.com/vovakirdan/r2048/internal/game"
)

// StartSelection holds the choice made on the start menu.
type StartSelection struct {
	Difficulty config.DifficultyPreset
	DevelBoard bool
}

// startItem is one line of the start menu.
type startItem struct {
	label     string
	selection StartSelection
}

func startItems() []startItem {
	presets := config.Presets()
	items := make([]startItem, 0, len(presets)+1)
	for _, p := range presets {
		prob, _ := config.Spawn4ForPreset(p)
		name := string(p)
		items = append(items, startItem{
			label:     fmt.Sprintf("%-7s %2.0f%% fours", strings.ToUpper(name[:1])+name[1:], prob*100),
			selection: StartSelection{Difficulty: p},
		})
	}
	return append(items, startItem{
		label:     "Debug board",
		selection: StartSelection{DevelBoard: true},
	})
}

// menuKeys are the start menu bindings.
type menuKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultMenuKeys() menuKeys {
	return menuKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// StartMenuModel lets users pick a difficulty before the first game.
type StartMenuModel struct {
	items    []startItem
	cursor   int
	width    int
	height   int
	keys     menuKeys
	chosen   *StartSelection
	quitting bool
}

// NewStartMenuModel creates a start menu. The cursor starts on initial, or
// on the first entry when initial is not a known preset.
func NewStartMenuModel(width, height int, initial config.DifficultyPreset) StartMenuModel {
	m := StartMenuModel{
		items:  startItems(),
		width:  width,
		height: height,
		keys:   defaultMenuKeys(),
	}
	for i, it := range m.items {
		if !it.selection.DevelBoard && it.selection.Difficulty == initial {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m StartMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m StartMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = core.Clamp(m.cursor-1, 0, len(m.items)-1)
		case key.Matches(msg, m.keys.Down):
			m.cursor = core.Clamp(m.cursor+1, 0, len(m.items)-1)
		case key.Matches(msg, m.keys.Select):
			sel := m.items[m.cursor].selection
			m.chosen = &sel
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the menu.
func (m StartMenuModel) View() string {
	if m.quitting || m.chosen != nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(spaced(strings.ToUpper(game.Title))), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, it := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+it.label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(hintStyle.Render("Enter: Select  |  Q: Quit"), m.width))

	return b.String()
}

// spaced puts a space between the letters of s.
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

// Selected returns the choice, or nil if the user quit.
func (m StartMenuModel) Selected() *StartSelection {
	return m.chosen
}

// RunStartMenu shows the start menu and returns the selection, or nil if
// the user quit.
func RunStartMenu(cfg core.RuntimeConfig, initial config.DifficultyPreset) (*StartSelection, error) {
	p := tea.NewProgram(
		NewStartMenuModel(cfg.ScreenW, cfg.ScreenH, initial),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(StartMenuModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
