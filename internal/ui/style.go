package ui

import "github.com/charmbracelet/lipgloss"

var (
	Title = lipgloss.NewStyle().Inline(true).Bold(true).Foreground(lipgloss.Color("252")).Render
	Help  = lipgloss.NewStyle().Inline(true).Foreground(lipgloss.Color("241")).Render
	Label = lipgloss.NewStyle().Inline(true).Foreground(lipgloss.Color("245")).Width(12).Render
	Time  = lipgloss.NewStyle().Inline(true).Bold(true).Foreground(lipgloss.Color("86")).Render
	Warn  = lipgloss.NewStyle().Inline(true).Foreground(lipgloss.Color("214")).Render

	SpinnerColor = lipgloss.Color("69")
)
