package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pithecene-io/lumen/cli/reader"
)

// StatsModel shows the counters of one decode.
type StatsModel struct {
	summary  *reader.DecodeSummary
	width    int
	height   int
	quitting bool
}

// NewStatsModel creates a new stats model.
func NewStatsModel(data any) StatsModel {
	summary, _ := data.(*reader.DecodeSummary)
	return StatsModel{summary: summary}
}

// Init implements tea.Model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}
	if m.summary == nil {
		return "Invalid data type for stats_decode"
	}
	s := m.summary

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Decode Statistics"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Source:"), ValueStyle.Render(s.Source))
	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Decode ID:"), ValueStyle.Render(s.DecodeID))
	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Dimensions:"),
		ValueStyle.Render(fmt.Sprintf("%dx%d", s.Header.Width, s.Header.Height)))
	fmt.Fprintf(&b, "%s %s\n\n", LabelStyle.Render("Duration:"),
		ValueStyle.Render(fmt.Sprintf("%.3fms", s.DurationMS)))

	top := []string{
		m.renderStatBox("Records", s.Chunks, highlightColor),
		m.renderStatBox("Image data", s.ImageDataChunks, highlightColor),
		m.renderStatBox("Inflate tries", s.InflateAttempts, attemptColor(s.InflateAttempts)),
	}
	bottom := []string{
		m.renderStatBox("Compressed", s.CompressedBytes, primaryColor),
		m.renderStatBox("Raw", s.RawBytes, primaryColor),
		m.renderStatBox("Pixels", s.PixelBytes, successColor),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, top...))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, bottom...))

	return b.String() + "\n" + helpLine(keys.Quit)
}

// attemptColor flags decodes that needed a larger decompression hint.
func attemptColor(attempts int) lipgloss.Color {
	if attempts > 1 {
		return warningColor
	}
	return successColor
}

func (m StatsModel) renderStatBox(label string, value int, color lipgloss.Color) string {
	boxStyle := StatBoxStyle.BorderForeground(color)

	valueStr := StatValueStyle.Foreground(color).Render(fmt.Sprintf("%d", value))
	labelStr := StatLabelStyle.Render(label)

	content := lipgloss.JoinVertical(lipgloss.Center, valueStr, labelStr)

	return boxStyle.Render(content)
}

// RenderStatsStatic renders decode stats without full TUI (for fallback).
func RenderStatsStatic(data any) string {
	model := NewStatsModel(data)
	model.width = 80
	model.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(model.View())
}
