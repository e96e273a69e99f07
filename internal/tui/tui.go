package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/taskman/internal/model"
	"github.com/idilsaglam/taskman/internal/store"
	"github.com/idilsaglam/taskman/internal/ui"
)

// taskItem adapts a stored task to bubbles/list.Item.
// index is the task's position in the store, which survives filtering.
type taskItem struct {
	index int
	task  model.Task
}

func (i taskItem) Title() string       { return i.task.Name }
func (i taskItem) Description() string { return i.task.Description }
func (i taskItem) FilterValue() string {
	return i.task.Name + " " + i.task.Description + " " + i.task.Deadline
}

type mode int

const (
	browsing mode = iota
	adding
	editing
)

// deleted remembers the last removed task for single-level undo.
type deleted struct {
	index int
	task  model.Task
}

// Model is the Bubble Tea model. It mutates the store directly from Update;
// there is exactly one goroutine touching it.
type Model struct {
	store *store.Store
	list  list.Model
	form  form
	mode  mode

	editIndex int
	undo      *deleted
	changed   bool

	// reselect is the store index to highlight once a pending filter
	// result arrives, or -1.
	reselect int

	width, height int
}

var keys = struct {
	add, edit, del, undo key.Binding
}{
	add:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	edit: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	del:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	undo: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	t := ui.Current()

	name := it.task.Name
	if name == "" {
		name = t.Muted.Render("(untitled)")
	}
	line := fmt.Sprintf("%s %s", t.Muted.Render(fmt.Sprintf("%2d.", it.index+1)), name)
	if it.task.Deadline != "" {
		line += "  " + t.Deadline.Render("due "+it.task.Deadline)
	}
	if it.task.Description != "" {
		line += "  " + t.Muted.Render(ui.Truncate(it.task.Description, 60))
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

var selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)

// New builds the model over s.
func New(s *store.Store) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")

	bindings := func() []key.Binding { return []key.Binding{keys.add, keys.edit, keys.del, keys.undo} }
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	m := Model{
		store:    s,
		list:     l,
		form:     newForm(),
		width:    80,
		height:   24,
		reselect: -1,
	}
	m.refresh()
	m.resize()
	return m
}

// Run starts the interactive list and blocks until the user quits.
// It reports whether the store was modified; persisting is left to the caller.
func Run(s *store.Store, opts ...tea.ProgramOption) (changed bool, err error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(New(s), opts...)
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return fm.changed, nil
}

// Changed reports whether any mutation reached the store.
func (m Model) Changed() bool { return m.changed }

// refresh rebuilds list items from the store.
func (m *Model) refresh() tea.Cmd {
	tasks := m.store.List()
	items := make([]list.Item, 0, len(tasks))
	for i, t := range tasks {
		items = append(items, taskItem{index: i, task: t})
	}
	m.list.Title = fmt.Sprintf("%s   %s %d",
		ui.Current().Title.Render("Tasks"),
		ui.Current().Accent.Render("Total"), len(tasks))
	return m.list.SetItems(items)
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode != browsing {
		h -= formHeight
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

// follow highlights the task at store index i. While a filter is applied the
// visible rows are only known after the next FilterMatchesMsg, so the
// selection is deferred until then.
func (m *Model) follow(i int) {
	if m.list.FilterState() != list.Unfiltered {
		m.reselect = i
		return
	}
	m.selectVisible(i)
}

// selectVisible moves the cursor to the row showing store index i, if any.
func (m *Model) selectVisible(i int) {
	for pos, it := range m.list.VisibleItems() {
		if ti, ok := it.(taskItem); ok && ti.index == i {
			m.list.Select(pos)
			return
		}
	}
}

// selected returns the store index of the highlighted task.
func (m Model) selected() (int, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return 0, false
	}
	return it.index, true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.mode != browsing {
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		if _, ok := msg.(list.FilterMatchesMsg); ok && m.reselect >= 0 {
			m.selectVisible(m.reselect)
			m.reselect = -1
		}
		return m, cmd
	}

	switch {
	case km.String() == "q", km.String() == "esc" && m.list.FilterState() == list.Unfiltered:
		return m, tea.Quit

	case key.Matches(km, keys.add):
		m.mode = adding
		m.resize()
		return m, m.form.open("Add task", model.Task{})

	case key.Matches(km, keys.edit):
		i, ok := m.selected()
		if !ok {
			return m, nil
		}
		t, _ := m.store.Get(i)
		m.mode = editing
		m.editIndex = i
		m.resize()
		return m, m.form.open("Edit task", t)

	case key.Matches(km, keys.del):
		i, ok := m.selected()
		if !ok {
			return m, nil
		}
		t, _ := m.store.Get(i)
		if m.store.Remove(i) {
			m.undo = &deleted{index: i, task: t}
			m.changed = true
		}
		return m, m.refresh()

	case key.Matches(km, keys.undo):
		if m.undo == nil {
			return m, nil
		}
		m.store.Insert(m.undo.index, m.undo.task)
		idx := m.undo.index
		m.undo = nil
		m.changed = true
		cmd := m.refresh()
		m.follow(idx)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.closeForm()
			return m, nil
		case "enter":
			t := m.form.value()
			switch m.mode {
			case adding:
				m.store.Add(t.Name, t.Description, t.Deadline)
				m.changed = true
				m.closeForm()
				cmd := m.refresh()
				m.follow(m.store.Len() - 1)
				return m, cmd
			case editing:
				if m.store.Edit(m.editIndex, t.Name, t.Description, t.Deadline) {
					m.changed = true
				}
			}
			m.closeForm()
			return m, m.refresh()
		}
	}
	cmd := m.form.update(msg)
	return m, cmd
}

func (m *Model) closeForm() {
	m.form.close()
	m.mode = browsing
	m.resize()
}

func (m Model) View() string {
	content := m.list.View()
	if m.mode != browsing {
		content += "\n" + m.form.view()
	}
	return ui.PanelString(strings.Split(content, "\n"))
}
