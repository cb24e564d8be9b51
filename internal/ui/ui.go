// Package ui is the terminal dashboard: a month calendar, the selected day's
// tasks, search, and the add/toggle/delete flows with their toasts.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskflow/internal/auth"
	"taskflow/internal/config"
	"taskflow/internal/dates"
	"taskflow/internal/query"
	"taskflow/internal/storage"
	"taskflow/internal/task"
	"taskflow/internal/undo"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeSearch
)

const (
	completionToastDuration = 1800 * time.Millisecond
	onboardingHideDelay     = 6 * time.Second
	flagTimeout             = 2 * time.Second
)

type undoExpiredMsg struct{ token uint64 }

type searchSettledMsg struct {
	seq   int
	value string
}

type completionDoneMsg struct{ seq int }

type onboardingHideMsg struct{}

type Model struct {
	store *task.Store
	undo  *undo.Coordinator
	kv    storage.KV
	cfg   config.Config
	user  auth.User
	keys  keyMap
	help  help.Model
	now   func() time.Time

	mode     mode
	selected string
	month    dates.Month
	cursor   int

	addInput textinput.Model
	addTag   task.Tag
	addError string

	search    textinput.Model
	query     string
	searchSeq int

	completed     bool
	completionSeq int
	showHint      bool
	status        string
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides time.Now for today's date and the greeting.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New builds the dashboard over store. kv holds the onboarding flag.
func New(store *task.Store, kv storage.KV, cfg config.Config, user auth.User, opts ...Option) Model {
	add := textinput.New()
	add.Placeholder = "What needs to be done?"
	add.CharLimit = 256
	add.Width = 40

	search := textinput.New()
	search.Placeholder = "Search tasks…"
	search.Prompt = "/ "
	search.CharLimit = 128
	search.Width = 30

	m := Model{
		store:    store,
		undo:     undo.New(store, cfg.UndoTimeout.Duration),
		kv:       kv,
		cfg:      cfg,
		user:     user,
		keys:     newKeyMap(cfg.Keys),
		help:     help.New(),
		now:      time.Now,
		addInput: add,
		search:   search,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.undo.SetClock(m.now)
	m.selected = m.today()
	m.month = dates.MonthOf(m.selected)
	m.addTag = m.defaultTag()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()
	m.showHint = !storage.Onboarded(ctx, kv)
	return m
}

// Run starts the dashboard and blocks until the user quits. A deletion still
// inside its undo window is committed on the way out.
func Run(store *task.Store, kv storage.KV, cfg config.Config, user auth.User) error {
	m := New(store, kv, cfg, user)
	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if fm, ok := final.(Model); ok {
		fm.undo.Dismiss()
	}
	return err
}

func (m Model) Init() tea.Cmd {
	if !m.showHint {
		return nil
	}
	return tea.Tick(onboardingHideDelay, func(time.Time) tea.Msg { return onboardingHideMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.addInput.Width = max(msg.Width/2-10, 10)
		return m, nil
	case undoExpiredMsg:
		m.undo.Expire(msg.token)
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		return m, nil
	case searchSettledMsg:
		if msg.seq == m.searchSeq {
			m.applySearch(msg.value)
		}
		return m, nil
	case completionDoneMsg:
		if msg.seq == m.completionSeq {
			m.completed = false
		}
		return m, nil
	case onboardingHideMsg:
		m.dismissHint()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.undo.Dismiss()
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modeSearch:
			return m.updateSearchMode(msg)
		}
		return m.updateListMode(msg)
	}
	return m, nil
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visible()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.undo.Dismiss()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(visible))
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(visible))
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.addError = ""
		m.status = ""
		return m, m.addInput.Focus()
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.status = ""
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Toggle):
		if len(visible) == 0 {
			return m, nil
		}
		return m.toggle(visible[m.cursor].ID)
	case key.Matches(msg, m.keys.Delete):
		if len(visible) == 0 {
			return m, nil
		}
		return m.delete(visible[m.cursor].ID)
	case key.Matches(msg, m.keys.Undo):
		if p, ok := m.undo.Pending(); ok && m.undo.Undo() {
			m.status = fmt.Sprintf("Restored %q", p.Handle.Task.Title)
		}
	case key.Matches(msg, m.keys.Cancel):
		switch {
		case m.undo.State() == undo.PendingUndo:
			m.undo.Dismiss()
		case m.query != "" || m.search.Value() != "":
			m.clearSearch()
		case m.showHint:
			m.dismissHint()
		}
	case key.Matches(msg, m.keys.PrevDay):
		m.shiftDay(-1)
	case key.Matches(msg, m.keys.NextDay):
		m.shiftDay(1)
	case key.Matches(msg, m.keys.PrevMonth):
		m.shiftMonth(m.month.Prev())
	case key.Matches(msg, m.keys.NextMonth):
		m.shiftMonth(m.month.Next())
	case key.Matches(msg, m.keys.Today):
		m.selectDate(m.today())
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.resetAdd()
		return m, nil
	case key.Matches(msg, m.keys.NextTag):
		m.addTag = task.NextTag(m.addTag)
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		t, err := m.store.Add(m.addInput.Value(), m.addTag, m.selected)
		if errors.Is(err, task.ErrEmptyTitle) {
			m.addError = "Task cannot be empty."
			return m, nil
		}
		if err != nil {
			m.status = fmt.Sprintf("add failed: %v", err)
			return m, nil
		}
		m.resetAdd()
		m.cursor = 0
		for i, v := range m.visible() {
			if v.ID == t.ID {
				m.cursor = i
				break
			}
		}
		m.status = fmt.Sprintf("Added %q", t.Title)
		return m, nil
	default:
		m.addError = ""
		var cmd tea.Cmd
		m.addInput, cmd = m.addInput.Update(msg)
		return m, cmd
	}
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.clearSearch()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.searchSeq++
		m.applySearch(m.search.Value())
		m.mode = modeList
		m.search.Blur()
		return m, nil
	default:
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		value := m.search.Value()
		if value == before {
			return m, cmd
		}
		m.searchSeq++
		delay := m.cfg.SearchDebounce.Duration
		if delay <= 0 {
			m.applySearch(value)
			return m, cmd
		}
		seq := m.searchSeq
		settle := tea.Tick(delay, func(time.Time) tea.Msg {
			return searchSettledMsg{seq: seq, value: value}
		})
		return m, tea.Batch(cmd, settle)
	}
}

func (m Model) toggle(id string) (tea.Model, tea.Cmd) {
	res, err := m.store.Toggle(id)
	if err != nil {
		m.status = fmt.Sprintf("toggle failed: %v", err)
		return m, nil
	}
	m.status = ""
	if !res.Completed {
		return m, nil
	}
	m.completed = true
	m.completionSeq++
	seq := m.completionSeq
	return m, tea.Tick(completionToastDuration, func(time.Time) tea.Msg {
		return completionDoneMsg{seq: seq}
	})
}

func (m Model) delete(id string) (tea.Model, tea.Cmd) {
	p, err := m.undo.Delete(id)
	if err != nil {
		m.status = fmt.Sprintf("delete failed: %v", err)
		return m, nil
	}
	m.status = ""
	m.cursor = clampCursor(m.cursor, len(m.visible()))
	token := p.Token
	return m, tea.Tick(m.undo.Timeout(), func(time.Time) tea.Msg {
		return undoExpiredMsg{token: token}
	})
}

func (m *Model) shiftDay(n int) {
	next, err := dates.AddDays(m.selected, n)
	if err != nil {
		return
	}
	m.selectDate(next)
}

// shiftMonth keeps the day of month, clamped to the target month's length.
func (m *Model) shiftMonth(target dates.Month) {
	day := 1
	if t, err := dates.Parse(m.selected); err == nil {
		day = min(t.Day(), target.Days())
	}
	m.selectDate(target.Key(day))
}

// selectDate moves the selection and resets the per-day search and add form.
func (m *Model) selectDate(date string) {
	m.dismissHint()
	if date == m.selected {
		return
	}
	m.selected = date
	m.month = dates.MonthOf(date)
	m.cursor = 0
	m.clearSearch()
	m.resetAdd()
}

func (m *Model) resetAdd() {
	m.mode = modeList
	m.addInput.SetValue("")
	m.addInput.Blur()
	m.addTag = m.defaultTag()
	m.addError = ""
}

func (m *Model) clearSearch() {
	m.searchSeq++
	m.search.SetValue("")
	m.search.Blur()
	m.query = ""
	if m.mode == modeSearch {
		m.mode = modeList
	}
	m.cursor = clampCursor(m.cursor, len(m.visible()))
}

func (m *Model) applySearch(value string) {
	m.query = value
	m.cursor = clampCursor(m.cursor, len(m.visible()))
}

func (m *Model) dismissHint() {
	if !m.showHint {
		return
	}
	m.showHint = false
	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()
	if err := storage.MarkOnboarded(ctx, m.kv); err != nil {
		log.Printf("onboarding flag: %v", err)
	}
}

func (m Model) visible() []task.Task {
	return query.Day(m.store, m.selected, m.query)
}

func (m Model) today() string {
	return dates.FromTime(m.now())
}

func (m Model) defaultTag() task.Tag {
	tag, err := task.ParseTag(m.cfg.DefaultTag)
	if err != nil {
		return task.DefaultTag
	}
	return tag
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
