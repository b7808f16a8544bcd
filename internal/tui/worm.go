package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	wormBody     = "~~~~@"
	wormInterval = 120 * time.Millisecond
)

type wormTickMsg struct{}

func wormTick() tea.Cmd {
	return tea.Tick(wormInterval, func(time.Time) tea.Msg { return wormTickMsg{} })
}

// worms crawl left to right across one line and wrap around. Purely
// decorative.
type worms struct {
	pos []int
}

func newWorms() worms {
	// staggered starts, like three crawlers released a few seconds apart
	return worms{pos: []int{0, -16, -32}}
}

func (w *worms) step(width int) {
	if width <= 0 {
		width = defaultWidth
	}
	for i := range w.pos {
		w.pos[i]++
		if w.pos[i] >= width {
			w.pos[i] = -len(wormBody)
		}
	}
}

func (w worms) render(width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	line := []rune(strings.Repeat(" ", width))
	body := []rune(wormBody)
	for _, p := range w.pos {
		for j, r := range body {
			if x := p + j; x >= 0 && x < width {
				line[x] = r
			}
		}
	}
	return strings.TrimRight(string(line), " ")
}
