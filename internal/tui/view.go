package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ParasiteAtlas/internal/catalog"
)

const (
	cardWidth      = 38
	descriptionMax = 140
)

func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(m.header(width))
	b.WriteString("\n")
	b.WriteString(m.styles.worm.Render(m.worms.render(width)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.search.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.categoryBar())
	b.WriteString("\n\n")
	b.WriteString(m.body(width))
	b.WriteString("\n\n")
	b.WriteString(m.styles.help.Render("type to search • tab/shift+tab category • esc quit"))
	return b.String()
}

func (m Model) header(width int) string {
	left := m.styles.title.Render("PARASITE ATLAS") + " " +
		m.styles.subtitle.Render("Database of Microbial Life")
	right := m.styles.count.Render(fmt.Sprintf("%d Species", len(m.entries)))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) categoryBar() string {
	parts := make([]string, 0, len(m.categories))
	for i, c := range m.categories {
		label := c
		if c == catalog.CategoryAll {
			label = "All"
		}
		if i == m.selected {
			parts = append(parts, m.styles.categoryOn.Render(label))
			continue
		}
		parts = append(parts, m.styles.category.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) body(width int) string {
	switch {
	case m.loading:
		return m.spinner.View() + " Scanning for specimens..."
	case m.err != nil:
		return m.styles.errorPanel.Render("Failed to load parasites\n" + m.err.Error())
	case len(m.entries) == 0:
		return m.styles.panel.Render("No parasites found\nTry a different search term or category")
	}

	cols := width / (cardWidth + 2)
	if cols < 1 {
		cols = 1
	}
	var rows []string
	for i := 0; i < len(m.entries); i += cols {
		end := min(i+cols, len(m.entries))
		cards := make([]string, 0, end-i)
		for _, e := range m.entries[i:end] {
			cards = append(cards, m.card(e))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) card(e catalog.Entry) string {
	s := m.styles
	lines := []string{s.cardName.Render(e.Name)}
	if e.ScientificName != "" && e.ScientificName != e.Name {
		lines = append(lines, s.cardSci.Render(e.ScientificName))
	}
	lines = append(lines,
		s.badge.Render(e.Category),
		"",
		truncate(e.Description, descriptionMax),
		"",
		s.label.Render("Habitat: ")+e.Habitat,
		s.label.Render("Lifecycle: ")+e.Lifecycle,
	)
	if len(e.Symptoms) > 0 {
		lines = append(lines, s.label.Render("Symptoms: ")+strings.Join(e.Symptoms, ", "))
	}
	if e.Prevalence != "" {
		lines = append(lines, s.label.Render("Prevalence: ")+e.Prevalence)
	}
	return s.card.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
