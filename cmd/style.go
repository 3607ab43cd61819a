package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primary = lipgloss.Color("#00ff9f")
	dim     = lipgloss.Color("#6e7681")
	alert   = lipgloss.Color("#ff5f87")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primary).Width(14)
	dimStyle   = lipgloss.NewStyle().Foreground(dim)
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(alert)
)

// row prints a padded label and its value.
func row(label string, value any) {
	fmt.Printf("%s %v\n", labelStyle.Render(label), value)
}

func heading(s string) {
	fmt.Println(titleStyle.Render(s))
}

func rule(width int) string {
	return dimStyle.Render(strings.Repeat("─", width))
}
