package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/coin-runner/internal/core"
	"github.com/vovakirdan/coin-runner/internal/registry"
	"github.com/vovakirdan/coin-runner/internal/storage"
)

// MenuChoice is what the player picked before the menu closed.
type MenuChoice int

// Menu choices. ChoiceNone means the menu is still open.
const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	menuCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	menuBestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuItem is one runner variant with its best run.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // 0 when the variant was never played
}

// MenuModel picks a variant or opens the scoreboard.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel lists every registered variant. Best runs are read from
// store when it is not nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, info := range registry.List() {
		items = append(items, MenuItem{
			GameID: info.ID,
			Title:  info.Title,
			Best:   bestRun(store, info.ID),
		})
	}
	return MenuModel{items: items, config: cfg, keyMapper: NewKeyMapper()}
}

func bestRun(store *storage.Store, gameID string) int {
	if store == nil {
		return 0
	}
	best, err := store.HighScore(gameID)
	if err != nil {
		return 0
	}
	return best
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and closes the menu with tea.Quit once a choice
// is made.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = core.Clamp(m.cursor-1, 0, len(m.items)-1)
		case MenuActionDown:
			m.cursor = core.Clamp(m.cursor+1, 0, len(m.items)-1)
		case MenuActionSelect:
			if len(m.items) > 0 {
				return m.choose(ChoicePlay)
			}
		case MenuActionScoreboard:
			return m.choose(ChoiceScores)
		case MenuActionQuit:
			return m.choose(ChoiceQuit)
		}
	}
	return m, nil
}

func (m MenuModel) choose(c MenuChoice) (tea.Model, tea.Cmd) {
	m.choice = c
	return m, tea.Quit
}

func (m MenuModel) View() string {
	if m.choice == ChoiceQuit {
		return ""
	}

	w := m.config.ScreenW
	lines := []string{
		"",
		menuTitleStyle.Render(centerText("  C O I N   R U N N E R  ", w)),
		"",
		centerText("Jump the blocks, grab the coins", w),
		"",
	}

	for i, item := range m.items {
		label := "  " + item.Title
		if i == m.cursor {
			label = "> " + item.Title
		}
		best := ""
		if item.Best > 0 {
			best = fmt.Sprintf("  (best: %d)", item.Best)
		}

		pad := strings.Repeat(" ", max(0, (w-len(label)-len(best))/2))
		if i == m.cursor {
			label = menuCursorStyle.Render(label)
		}
		lines = append(lines, pad+label+menuBestStyle.Render(best))
	}

	lines = append(lines, "",
		menuHintStyle.Render(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", w)),
		"")
	return strings.Join(lines, "\n")
}

// Selected returns the chosen variant, or nil.
func (m MenuModel) Selected() *MenuItem {
	if m.choice != ChoicePlay {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

func (m MenuModel) IsQuitting() bool { return m.choice == ChoiceQuit }

func (m MenuModel) WantsScoreboard() bool { return m.choice == ChoiceScores }

// Config returns the runtime config, resized if the window changed.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText left-pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return strings.Repeat(" ", (width-len(text))/2) + text
}

// MenuResult is how a standalone menu run ended.
type MenuResult struct {
	Choice MenuChoice
	GameID string // set for ChoicePlay
	Config core.RuntimeConfig
}

// RunMenu shows the menu in the alternate screen until a choice is made.
// Closing the program any other way counts as ChoiceQuit.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok || m.choice == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}

	result := MenuResult{Choice: m.choice, Config: m.config}
	if item := m.Selected(); item != nil {
		result.GameID = item.GameID
	}
	return result, nil
}
