package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen = lipgloss.Color("#00ff88")
	colorSlime = lipgloss.Color("#7cfc00")
	colorDim   = lipgloss.Color("#5f8f6f")
	colorBlood = lipgloss.Color("#ff4d6d")
	colorDark  = lipgloss.Color("#1a1a1a")
)

type styles struct {
	title      lipgloss.Style
	subtitle   lipgloss.Style
	count      lipgloss.Style
	worm       lipgloss.Style
	search     lipgloss.Style
	category   lipgloss.Style
	categoryOn lipgloss.Style
	card       lipgloss.Style
	cardName   lipgloss.Style
	cardSci    lipgloss.Style
	badge      lipgloss.Style
	label      lipgloss.Style
	panel      lipgloss.Style
	errorPanel lipgloss.Style
	help       lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(colorGreen),
		subtitle:   lipgloss.NewStyle().Foreground(colorSlime),
		count:      lipgloss.NewStyle().Foreground(colorSlime).Bold(true),
		worm:       lipgloss.NewStyle().Foreground(colorDim),
		search:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorGreen).Padding(0, 1),
		category:   lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1),
		categoryOn: lipgloss.NewStyle().Foreground(colorDark).Background(colorGreen).Bold(true).Padding(0, 1),
		card:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1),
		cardName:   lipgloss.NewStyle().Bold(true).Foreground(colorGreen),
		cardSci:    lipgloss.NewStyle().Italic(true).Foreground(colorSlime),
		badge:      lipgloss.NewStyle().Foreground(colorDark).Background(colorSlime).Padding(0, 1),
		label:      lipgloss.NewStyle().Foreground(colorDim),
		panel:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorDim).Padding(1, 3),
		errorPanel: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorBlood).Foreground(colorBlood).Padding(1, 3),
		help:       lipgloss.NewStyle().Foreground(colorDim),
	}
}
