// Package tui is the interactive card browser for the parasite catalog.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ParasiteAtlas/internal/catalog"
)

const (
	defaultWidth   = 80
	defaultTimeout = 10 * time.Second
)

// Fetcher is the slice of the catalog client the browser needs.
type Fetcher interface {
	Search(ctx context.Context, query, category string) ([]catalog.Entry, error)
	Categories(ctx context.Context) ([]string, error)
}

type resultsMsg struct {
	seq     int
	entries []catalog.Entry
	err     error
}

type categoriesMsg struct {
	categories []string
	err        error
}

// Model holds the query text and selected category. Every change bumps seq
// and issues a new search; results carrying an older seq are dropped.
type Model struct {
	fetcher Fetcher
	timeout time.Duration

	input   textinput.Model
	spinner spinner.Model
	worms   worms
	styles  styles

	categories []string
	selected   int

	seq     int
	loading bool
	entries []catalog.Entry
	err     error

	width int
}

func New(f Fetcher, timeout time.Duration) Model {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	in := textinput.New()
	in.Placeholder = "Search for parasites..."
	in.Prompt = "> "
	in.CharLimit = 120
	in.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		fetcher:    f,
		timeout:    timeout,
		input:      in,
		spinner:    sp,
		worms:      newWorms(),
		styles:     defaultStyles(),
		categories: []string{catalog.CategoryAll},
		seq:        1,
		loading:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.fetchCategories(),
		m.search(m.seq),
		wormTick(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(min(msg.Width-8, 60), 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.selected = (m.selected + 1) % len(m.categories)
			return m.refresh()
		case "shift+tab":
			m.selected = (m.selected - 1 + len(m.categories)) % len(m.categories)
			return m.refresh()
		}
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() == before {
			return m, cmd
		}
		next, search := m.refresh()
		return next, tea.Batch(cmd, search)

	case resultsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.entries = msg.entries
		m.err = msg.err
		return m, nil

	case categoriesMsg:
		if msg.err != nil {
			// the filter bar keeps just "all"; searching still works
			return m, nil
		}
		current := m.category()
		m.categories = append([]string{catalog.CategoryAll}, msg.categories...)
		m.selected = 0
		for i, c := range m.categories {
			if c == current {
				m.selected = i
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case wormTickMsg:
		m.worms.step(m.width)
		return m, wormTick()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) category() string {
	return m.categories[m.selected]
}

func (m Model) refresh() (Model, tea.Cmd) {
	m.seq++
	m.loading = true
	m.err = nil
	return m, m.search(m.seq)
}

func (m Model) search(seq int) tea.Cmd {
	f, timeout := m.fetcher, m.timeout
	query, category := m.input.Value(), m.category()
	if category == catalog.CategoryAll {
		category = ""
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := f.Search(ctx, query, category)
		return resultsMsg{seq: seq, entries: entries, err: err}
	}
}

func (m Model) fetchCategories() tea.Cmd {
	f, timeout := m.fetcher, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		cats, err := f.Categories(ctx)
		return categoriesMsg{categories: cats, err: err}
	}
}
