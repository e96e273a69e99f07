package tui

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/taskman/internal/model"
	"github.com/idilsaglam/taskman/internal/store"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

// send feeds msgs through Update in order, like the program loop would.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

// typeText sends one key message per rune.
func typeText(s string) []tea.Msg {
	out := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		out = append(out, runes(string(r)))
	}
	return out
}

func TestAddViaForm(t *testing.T) {
	s := store.New()
	m := New(s)

	msgs := []tea.Msg{runes("a")}
	msgs = append(msgs, typeText("Buy milk")...)
	msgs = append(msgs, tab)
	msgs = append(msgs, typeText("2 litres")...)
	msgs = append(msgs, tab)
	msgs = append(msgs, typeText("friday")...)
	msgs = append(msgs, enter)
	m = send(t, m, msgs...)

	want := []model.Task{{Name: "Buy milk", Description: "2 litres", Deadline: "friday"}}
	if !reflect.DeepEqual(s.List(), want) {
		t.Fatalf("store = %+v, want %+v", s.List(), want)
	}
	if !m.Changed() {
		t.Error("Changed() = false after add")
	}
	if m.mode != browsing {
		t.Error("form still open after enter")
	}
}

func TestAddCancelled(t *testing.T) {
	s := store.New()
	m := send(t, New(s), append(append([]tea.Msg{runes("a")}, typeText("nope")...), esc)...)

	if s.Len() != 0 {
		t.Errorf("store = %+v, want empty", s.List())
	}
	if m.Changed() {
		t.Error("Changed() = true after cancel")
	}
}

func TestEditSelected(t *testing.T) {
	s := store.New(
		model.Task{Name: "a", Description: "ad", Deadline: "1"},
		model.Task{Name: "b", Description: "bd", Deadline: "2"},
	)
	m := New(s)

	// move to the second task, open edit, append to the prefilled name
	msgs := []tea.Msg{tea.KeyMsg{Type: tea.KeyDown}, runes("e")}
	msgs = append(msgs, typeText("!")...)
	msgs = append(msgs, enter)
	m = send(t, m, msgs...)

	want := []model.Task{
		{Name: "a", Description: "ad", Deadline: "1"},
		{Name: "b!", Description: "bd", Deadline: "2"},
	}
	if !reflect.DeepEqual(s.List(), want) {
		t.Fatalf("store = %+v, want %+v", s.List(), want)
	}
	if !m.Changed() {
		t.Error("Changed() = false after edit")
	}
}

func TestDeleteAndUndo(t *testing.T) {
	orig := []model.Task{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	s := store.New(orig...)
	m := New(s)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("d"))
	if want := []model.Task{{Name: "a"}, {Name: "c"}}; !reflect.DeepEqual(s.List(), want) {
		t.Fatalf("after delete store = %+v, want %+v", s.List(), want)
	}

	m = send(t, m, runes("u"))
	if !reflect.DeepEqual(s.List(), orig) {
		t.Fatalf("after undo store = %+v, want %+v", s.List(), orig)
	}

	// undo is single-level
	m = send(t, m, runes("u"))
	if s.Len() != 3 {
		t.Errorf("second undo changed the store: %+v", s.List())
	}
	if !m.Changed() {
		t.Error("Changed() = false")
	}
}

// step sends msg and then feeds the message its command produces back in,
// which is how filter results reach the model in a running program.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		m = send(t, m, cmd())
	}
	return m
}

func TestUndoUnderFilterSelectsRestoredRow(t *testing.T) {
	s := store.New(model.Task{Name: "alpha"}, model.Task{Name: "bravo"}, model.Task{Name: "bongo"})
	m := New(s)
	m.list.SetFilterText("b")

	if n := len(m.list.VisibleItems()); n != 2 {
		t.Fatalf("filter shows %d rows, want 2", n)
	}
	m.selectVisible(2)
	if i, ok := m.selected(); !ok || i != 2 {
		t.Fatalf("selected = %d, %v before delete", i, ok)
	}

	m = step(t, m, runes("d"))
	if s.Len() != 2 {
		t.Fatalf("store after delete = %+v", s.List())
	}

	m = step(t, m, runes("u"))
	if s.Len() != 3 || s.List()[2].Name != "bongo" {
		t.Fatalf("store after undo = %+v", s.List())
	}
	if i, ok := m.selected(); !ok || i != 2 {
		t.Errorf("selected = %d, %v after undo, want store index 2", i, ok)
	}
}

func TestUndoUnfilteredSelectsRestoredRow(t *testing.T) {
	s := store.New(model.Task{Name: "a"}, model.Task{Name: "b"}, model.Task{Name: "c"})
	m := New(s)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("d"), runes("u"))
	if i, ok := m.selected(); !ok || i != 1 {
		t.Errorf("selected = %d, %v after undo, want 1", i, ok)
	}
}

func TestDeleteOnEmptyListIsNoop(t *testing.T) {
	s := store.New()
	m := send(t, New(s), runes("d"), runes("e"), runes("u"))
	if s.Len() != 0 || m.Changed() {
		t.Errorf("store = %+v changed = %v", s.List(), m.Changed())
	}
	if m.mode != browsing {
		t.Error("edit opened on an empty list")
	}
}

func TestQuit(t *testing.T) {
	m := New(store.New())
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not produce tea.QuitMsg")
	}
}

func TestViewShowsTasksAndForm(t *testing.T) {
	s := store.New(model.Task{Name: "Write report", Deadline: "monday"})
	m := send(t, New(s), tea.WindowSizeMsg{Width: 100, Height: 30})

	v := m.View()
	if !strings.Contains(v, "Write report") || !strings.Contains(v, "due monday") {
		t.Errorf("view missing task:\n%s", v)
	}

	m = send(t, m, runes("a"))
	if !strings.Contains(m.View(), "Add task") {
		t.Errorf("view missing form:\n%s", m.View())
	}
}
