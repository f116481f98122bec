package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	strongMatch = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	goodMatch   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	weakMatch   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// percentStyle colors a match percentage: green from 80, orange from 60, yellow below.
func percentStyle(p int) lipgloss.Style {
	switch {
	case p >= 80:
		return strongMatch
	case p >= 60:
		return goodMatch
	default:
		return weakMatch
	}
}

func renderPercent(p int) string {
	return percentStyle(p).Render(fmt.Sprintf("%3d%%", p))
}
