package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// View types accepted by Run.
const (
	ViewInspectChunks = "inspect_chunks"
	ViewDecodeStats   = "stats_decode"
	ViewImage         = "view_image"
)

// Run starts the appropriate TUI based on the view type.
// Returns an error if the view type doesn't support TUI.
func Run(viewType string, data any) error {
	if !IsTUISupported(viewType) {
		return fmt.Errorf("TUI mode is not supported for %s", viewType)
	}

	var model tea.Model
	switch viewType {
	case ViewInspectChunks:
		model = NewInspectModel(data)
	case ViewDecodeStats:
		model = NewStatsModel(data)
	case ViewImage:
		model = NewViewerModel(data)
	}

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// IsTUISupported returns true if the view type supports TUI mode.
func IsTUISupported(viewType string) bool {
	return slices.Contains(SupportedTUIViews(), viewType)
}

// SupportedTUIViews returns a list of view types that support TUI.
func SupportedTUIViews() []string {
	return []string{ViewInspectChunks, ViewDecodeStats, ViewImage}
}

// keyMap defines key bindings.
type keyMap struct {
	Quit       key.Binding
	Up         key.Binding
	Down       key.Binding
	Scaler     key.Binding
	Background key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Scaler: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "scaler"),
	),
	Background: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "background"),
	),
}

// helpLine renders key bindings as "q quit • s scaler".
func helpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return HelpStyle.Render(strings.Join(parts, " • "))
}
