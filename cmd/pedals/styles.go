package main

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFA500"))

	typeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AAAA"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	paramStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AA00"))

	inTuneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AA00"))

	offTuneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A40000"))
)
