package report

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timvw/webtrace/internal/trace"
)

func writeRegistry(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for i, start := range []time.Time{
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	} {
		dir := filepath.Join(root, trace.RunDirName(start))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		r := fixture()
		r.BuildStartTime = start
		r.Executions = r.Executions[:2+i]
		if err := trace.WriteResult(filepath.Join(dir, trace.ArtifactName), r); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func newTestBrowser(t *testing.T) *browseModel {
	t.Helper()
	m := newBrowseModel(writeRegistry(t), DarkTheme(), io.Discard)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(m.Init()())
	return m
}

func press(m *browseModel, k tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(k)
	if cmd == nil {
		return nil
	}
	// Run loads synchronously so the test sees their result.
	if msg := cmd(); msg != nil {
		switch msg.(type) {
		case runsMsg, resultMsg:
			m.Update(msg)
			return nil
		}
	}
	return cmd
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestBrowse_ListsRunsNewestFirst(t *testing.T) {
	m := newTestBrowser(t)
	if len(m.runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(m.runs))
	}
	view := m.View()
	first := strings.Index(view, "TestRun-20260302-100000")
	second := strings.Index(view, "TestRun-20260301-100000")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected newest run first:\n%s", view)
	}
}

func TestBrowse_DrillDownAndBack(t *testing.T) {
	m := newTestBrowser(t)

	press(m, keyEnter)
	if m.level != levelExecutions {
		t.Fatalf("expected executions level, got %d", m.level)
	}
	if got := len(m.result.Executions); got != 3 {
		t.Fatalf("expected newest run with 3 executions, got %d", got)
	}

	press(m, keyDown)
	press(m, keyDown)
	press(m, keyDown)
	if m.execCursor != 2 {
		t.Fatalf("cursor should stop at the last execution, got %d", m.execCursor)
	}

	press(m, tea.KeyMsg{Type: tea.KeyUp})
	press(m, keyEnter)
	if m.level != levelEvents {
		t.Fatalf("expected events level, got %d", m.level)
	}
	if view := m.View(); !strings.Contains(view, "Screenshots/01LOGIN-00001.png") {
		t.Errorf("expected login events:\n%s", view)
	}

	press(m, keyEsc)
	press(m, keyEsc)
	press(m, keyEsc)
	if m.level != levelRuns {
		t.Fatalf("expected runs level, got %d", m.level)
	}
}

func TestBrowse_Quit(t *testing.T) {
	m := newTestBrowser(t)
	cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestBrowse_EmptyRegistry(t *testing.T) {
	m := newBrowseModel(t.TempDir(), DarkTheme(), io.Discard)
	m.Update(m.Init()())
	if !strings.Contains(m.View(), "No runs found.") {
		t.Errorf("expected empty message:\n%s", m.View())
	}
	press(m, keyEnter)
	if m.level != levelRuns {
		t.Error("enter on an empty list should do nothing")
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		n, cursor, size int
		start, end      int
	}{
		{5, 0, 0, 0, 5},
		{5, 4, 10, 0, 5},
		{20, 0, 5, 0, 5},
		{20, 10, 5, 8, 13},
		{20, 19, 5, 15, 20},
	}
	for _, tt := range tests {
		s, e := window(tt.n, tt.cursor, tt.size)
		if s != tt.start || e != tt.end {
			t.Errorf("window(%d, %d, %d) = %d, %d; want %d, %d", tt.n, tt.cursor, tt.size, s, e, tt.start, tt.end)
		}
	}
}
