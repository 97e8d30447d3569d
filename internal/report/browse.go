package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timvw/webtrace/internal/trace"
)

// Browser is an interactive viewer over the runs of a registry: runs, then
// the executions of a run, then the events of an execution.
type Browser struct {
	Root  string
	Theme Theme
}

func (b *Browser) Run(ctx context.Context) error {
	m := newBrowseModel(b.Root, b.Theme, os.Stdout)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

type level int

const (
	levelRuns level = iota
	levelExecutions
	levelEvents
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Back   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "open")),
		Back:   key.NewBinding(key.WithKeys("esc", "left", "h", "backspace"), key.WithHelp("esc", "back")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type runsMsg struct {
	paths []string
	err   error
}

type resultMsg struct {
	path   string
	result *trace.Result
	err    error
}

type browseModel struct {
	root   string
	styles styles
	keys   keyMap
	help   help.Model
	events viewport.Model

	level      level
	runs       []string
	runCursor  int
	result     *trace.Result
	execCursor int

	width   int
	height  int
	loading bool
	message string
}

func newBrowseModel(root string, t Theme, out io.Writer) *browseModel {
	return &browseModel{
		root:   root,
		styles: newStyles(t, out),
		keys:   defaultKeys(),
		help:   help.New(),
		events: viewport.New(80, 20),
	}
}

func (m *browseModel) Init() tea.Cmd {
	m.loading = true
	return loadRuns(m.root)
}

func loadRuns(root string) tea.Cmd {
	return func() tea.Msg {
		paths, err := trace.ListRuns(root)
		return runsMsg{paths: paths, err: err}
	}
}

func loadResult(path string) tea.Cmd {
	return func() tea.Msg {
		res, err := trace.ReadResult(path)
		return resultMsg{path: path, result: res, err: err}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.events.Width = msg.Width
		m.events.Height = max(msg.Height-3, 1)
		return m, nil

	case runsMsg:
		m.loading = false
		if msg.err != nil {
			m.message = fmt.Sprintf("Load error: %v", msg.err)
			return m, nil
		}
		m.runs = msg.paths
		// Newest first.
		for i, j := 0, len(m.runs)-1; i < j; i, j = i+1, j-1 {
			m.runs[i], m.runs[j] = m.runs[j], m.runs[i]
		}
		m.runCursor = min(m.runCursor, max(len(m.runs)-1, 0))
		m.message = ""
		return m, nil

	case resultMsg:
		m.loading = false
		if msg.err != nil {
			m.message = fmt.Sprintf("Load error: %v", msg.err)
			return m, nil
		}
		m.result = msg.result
		m.execCursor = 0
		m.level = levelExecutions
		m.message = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Back) {
		if m.level > levelRuns {
			m.level--
		}
		return m, nil
	}

	switch m.level {
	case levelRuns:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.runCursor = max(m.runCursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.runCursor = min(m.runCursor+1, max(len(m.runs)-1, 0))
		case key.Matches(msg, m.keys.Reload):
			m.loading = true
			return m, loadRuns(m.root)
		case key.Matches(msg, m.keys.Open):
			if len(m.runs) == 0 {
				return m, nil
			}
			m.loading = true
			return m, loadResult(m.runs[m.runCursor])
		}

	case levelExecutions:
		n := len(m.result.Executions)
		switch {
		case key.Matches(msg, m.keys.Up):
			m.execCursor = max(m.execCursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.execCursor = min(m.execCursor+1, max(n-1, 0))
		case key.Matches(msg, m.keys.Open):
			if n == 0 {
				return m, nil
			}
			rec := m.result.Executions[m.execCursor]
			m.events.SetContent(strings.Join(executionLines(m.styles, rec), "\n"))
			m.events.GotoTop()
			m.level = levelEvents
		}

	case levelEvents:
		var cmd tea.Cmd
		m.events, cmd = m.events.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *browseModel) View() string {
	var b strings.Builder
	switch m.level {
	case levelRuns:
		b.WriteString(m.viewRuns())
	case levelExecutions:
		b.WriteString(m.viewExecutions())
	case levelEvents:
		b.WriteString(m.events.View())
		b.WriteString("\n")
	}
	if m.loading {
		b.WriteString(m.styles.skipped.Render("loading...") + "\n")
	}
	if m.message != "" {
		b.WriteString(m.styles.failed.Render(m.message) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *browseModel) viewRuns() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("webtrace") + "  " + m.styles.dim.Render(m.root) + "\n")
	if len(m.runs) == 0 {
		if !m.loading {
			b.WriteString("  No runs found.\n")
		}
		return b.String()
	}
	start, end := window(len(m.runs), m.runCursor, m.listHeight(1))
	for i := start; i < end; i++ {
		label := filepath.Base(filepath.Dir(m.runs[i]))
		if i == m.runCursor {
			b.WriteString(m.styles.selected.Render("> "+label) + "\n")
			continue
		}
		b.WriteString("  " + m.styles.text.Render(label) + "\n")
	}
	return b.String()
}

func (m *browseModel) viewExecutions() string {
	lines := summaryLines(m.styles, m.result, m.width, m.execCursor)
	header, rows := lines[:2], lines[2:]
	if len(m.result.Executions) > 0 {
		start, end := window(len(rows), m.execCursor, m.listHeight(len(header)))
		rows = rows[start:end]
	}
	return strings.Join(append(header, rows...), "\n") + "\n"
}

// listHeight is the room left for list rows below the given header lines.
func (m *browseModel) listHeight(header int) int {
	if m.height == 0 {
		return 0
	}
	return max(m.height-header-2, 1)
}

// window returns the visible slice [start, end) of n rows keeping cursor
// in view. size 0 shows everything.
func window(n, cursor, size int) (int, int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	start := max(cursor-size/2, 0)
	start = min(start, n-size)
	return start, start + size
}
