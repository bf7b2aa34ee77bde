package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pithecene-io/lumen/cli/reader"
)

// InspectModel is a scrollable record list for one inspect report.
type InspectModel struct {
	report   *reader.InspectReport
	cursor   int
	width    int
	height   int
	quitting bool
}

// NewInspectModel creates a new inspect model.
func NewInspectModel(data any) InspectModel {
	report, _ := data.(*reader.InspectReport)
	return InspectModel{report: report}
}

// Init implements tea.Model.
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.report != nil && m.cursor < len(m.report.Chunks)-1 {
				m.cursor++
			}
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m InspectModel) View() string {
	if m.quitting {
		return ""
	}
	if m.report == nil {
		return "Invalid data type for inspect_chunks"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderSummary(),
		m.renderChunks(),
	)
	return content + "\n" + helpLine(keys.Up, keys.Down, keys.Quit)
}

func (m InspectModel) renderSummary() string {
	r := m.report

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Chunks: " + r.Source))
	b.WriteString("\n")

	status := "complete"
	switch {
	case r.Error != "":
		status = r.ErrorKind
	case !r.Complete:
		status = "incomplete"
	}
	rows := [][2]string{
		{"Status", StatusStyle(r.Complete, r.Error).Render(status)},
		{"Records", ValueStyle.Render(fmt.Sprintf("%d", len(r.Chunks)))},
		{"Image data bytes", ValueStyle.Render(fmt.Sprintf("%d", r.ImageDataBytes))},
	}
	if r.Header != nil {
		rows = append(rows, [2]string{"Dimensions",
			ValueStyle.Render(fmt.Sprintf("%dx%d depth %d color %d", r.Header.Width, r.Header.Height, r.Header.BitDepth, r.Header.ColorType))})
	}
	if r.HeaderError != "" {
		rows = append(rows, [2]string{"Header", WarningStyle.Render(r.HeaderError)})
	}
	if r.Error != "" {
		rows = append(rows, [2]string{"Error", ErrorStyle.Render(r.Error)})
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render(row[0]+":"), row[1])
	}
	return BoxStyle.Render(b.String())
}

// visibleRange returns the window of rows that keeps the cursor on screen.
func visibleRange(cursor, total, height int) (start, end int) {
	if height <= 0 || height >= total {
		return 0, total
	}
	start = cursor - height/2
	start = max(0, min(start, total-height))
	return start, start + height
}

func (m InspectModel) renderChunks() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", MutedStyle.Render(fmt.Sprintf("  %-5s %-4s %10s  %-8s", "#", "type", "length", "crc")))

	// Summary box and help take roughly 14 lines.
	start, end := visibleRange(m.cursor, len(m.report.Chunks), m.height-14)
	for i := start; i < end; i++ {
		row := m.report.Chunks[i]
		line := fmt.Sprintf("%-5d %-4s %10d  %s", row.Index, row.Type, row.Length, row.CRC)
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString(ChunkStyle(row.Critical).Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderInspectStatic renders an inspect report without full TUI (for fallback).
func RenderInspectStatic(data any) string {
	model := NewInspectModel(data)
	model.width = 80
	model.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(model.View())
}
