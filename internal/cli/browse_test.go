package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/iconsvg/pkg/iconset"
)

func newTestModel(t *testing.T) IconListModel {
	t.Helper()
	set, err := iconset.Parse([]byte(testSetJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return NewIconListModel(set)
}

func send(m IconListModel, msgs ...tea.Msg) (IconListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(IconListModel)
	}
	return m, cmd
}

func TestIconListModelNavigation(t *testing.T) {
	m := newTestModel(t)
	if len(m.Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(m.Rows))
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", m.Cursor)
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyPgDown})
	if m.Cursor != len(m.Rows)-1 {
		t.Errorf("cursor = %d after page down, want %d", m.Cursor, len(m.Rows)-1)
	}

	want := m.Rows[m.Cursor].name
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected != want {
		t.Errorf("Selected = %q, want %q", m.Selected, want)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestIconListModelFilter(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("wi")})
	if len(m.Rows) != 1 || m.Rows[0].name != "wide" {
		t.Fatalf("filtered rows = %+v, want [wide]", m.Rows)
	}
	if !strings.Contains(m.View(), "filter: wi") {
		t.Error("view should show the filter")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zz")})
	if len(m.Rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(m.Rows))
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected != "" {
		t.Error("enter on an empty list should not select")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.Rows) != 1 {
		t.Errorf("rows after backspace = %d, want 1", len(m.Rows))
	}
}

func TestIconListModelScroll(t *testing.T) {
	m := newTestModel(t)
	m.Height = 2
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if m.Offset != 1 {
		t.Errorf("offset = %d, want 1", m.Offset)
	}
	if !strings.Contains(m.View(), "[3/4]") {
		t.Errorf("view missing position counter:\n%s", m.View())
	}
}
