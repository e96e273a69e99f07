package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/taskman/internal/model"
	"github.com/idilsaglam/taskman/internal/ui"
)

// formHeight is the number of terminal rows the form box takes.
const formHeight = 7

const (
	fieldName = iota
	fieldDescription
	fieldDeadline
	fieldCount
)

// form is the inline add/edit box: one text input per task field.
type form struct {
	title  string
	inputs [fieldCount]textinput.Model
	focus  int
}

func newForm() form {
	var f form
	fields := [fieldCount]struct {
		prompt, placeholder string
		limit               int
	}{
		{"Name        ", "What needs doing?", 100},
		{"Description ", "Details (optional)", 200},
		{"Deadline    ", "Any text, e.g. 2026-11-01 or friday", 50},
	}
	for i, s := range fields {
		ti := textinput.New()
		ti.Prompt = s.prompt
		ti.Placeholder = s.placeholder
		ti.CharLimit = s.limit
		f.inputs[i] = ti
	}
	return f
}

// open resets the form to t's values and focuses the first field.
func (f *form) open(title string, t model.Task) tea.Cmd {
	f.title = title
	f.inputs[fieldName].SetValue(t.Name)
	f.inputs[fieldDescription].SetValue(t.Description)
	f.inputs[fieldDeadline].SetValue(t.Deadline)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	return f.focusOn(fieldName)
}

func (f *form) close() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
}

func (f *form) focusOn(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *form) value() model.Task {
	return model.Task{
		Name:        f.inputs[fieldName].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Deadline:    f.inputs[fieldDeadline].Value(),
	}
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "tab", "down":
			return f.focusOn(f.focus + 1)
		case "shift+tab", "up":
			return f.focusOn(f.focus - 1)
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) view() string {
	t := ui.Current()
	lines := []string{t.Accent.Render(f.title)}
	for i := range f.inputs {
		lines = append(lines, f.inputs[i].View())
	}
	lines = append(lines, t.Muted.Render("tab next field · enter save · esc cancel"))
	return ui.PanelString(lines)
}
