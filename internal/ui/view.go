package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"taskflow/internal/dates"
	"taskflow/internal/output"
	"taskflow/internal/task"
)

const progressWidth = 20

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Padding(0, 1)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0"))
	todayStyle    = lipgloss.NewStyle().Underline(true).Bold(true)
	markedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	toastStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 1)
	hintStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("117"))

	tagColors = map[task.Tag]lipgloss.Color{
		task.TagGeneral:   "250",
		task.TagMarketing: "205",
		task.TagContent:   "141",
		task.TagDesign:    "81",
		task.TagProduct:   "114",
		task.TagMeeting:   "221",
	}
)

func (m Model) View() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(m.renderCalendar()),
		panelStyle.Render(m.renderSidebar()),
	)
	right := panelStyle.Render(m.renderBoard())
	gap := lipgloss.NewStyle().Padding(0, 1).Render

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, gap(" "), right))
	b.WriteString("\n")

	if p, ok := m.undo.Pending(); ok {
		b.WriteString(toastStyle.Render(fmt.Sprintf("Deleted %q   %s undo · %s dismiss",
			p.Handle.Task.Title, m.keys.Undo.Help().Key, m.keys.Cancel.Help().Key)))
		b.WriteString("\n")
	}
	if m.showHint {
		b.WriteString(hintStyle.Render(fmt.Sprintf("Tip: %s/%s pick a date, %s adds a task for it.",
			m.keys.PrevDay.Help().Key, m.keys.NextDay.Help().Key, m.keys.Add.Help().Key)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.ShortHelpView(m.helpBindings()))
	return b.String()
}

func (m Model) helpBindings() []key.Binding {
	switch m.mode {
	case modeAdd:
		return []key.Binding{m.keys.Confirm, m.keys.NextTag, m.keys.Cancel}
	case modeSearch:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return m.keys.ShortHelp()
}

func (m Model) renderHeader() string {
	greeting := "Good " + dates.Greeting(m.now())
	if name := m.user.FirstName(); name != "" {
		greeting += ", " + name
	}
	line := titleStyle.Render(greeting)
	if n := m.store.PendingCountForDate(m.selected); n > 0 {
		line += "  " + badgeStyle.Render(fmt.Sprintf("%d left", n))
	}
	return line
}

func (m Model) renderCalendar() string {
	marked := m.store.DatesWithTasks()
	today := m.today()

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.month.String()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")
	for i, day := range m.month.Cells() {
		if i > 0 && i%7 == 0 {
			b.WriteString("\n")
		} else if i > 0 {
			b.WriteString(" ")
		}
		if day == 0 {
			b.WriteString("  ")
			continue
		}
		k := m.month.Key(day)
		style := lipgloss.NewStyle()
		if _, ok := marked[k]; ok {
			style = markedStyle
		}
		if k == today {
			style = style.Inherit(todayStyle)
		}
		if k == m.selected {
			style = selectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%2d", day)))
	}
	return b.String()
}

func (m Model) renderSidebar() string {
	p := m.store.Progress(m.selected)
	var b strings.Builder
	b.WriteString(headerStyle.Render("Progress"))
	b.WriteString("\n")
	if p.Total == 0 {
		b.WriteString(mutedStyle.Render("No tasks scheduled"))
	} else {
		filled := p.Percent * progressWidth / 100
		bar := successStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", progressWidth-filled))
		fmt.Fprintf(&b, "%s %3d%%\n", bar, p.Percent)
		fmt.Fprintf(&b, "%d of %d done", p.Completed, p.Total)
		if p.Complete {
			b.WriteString("  " + successStyle.Render("All done!"))
		}
	}
	if streak := m.store.Streak(m.today()); streak >= 2 {
		b.WriteString("\n")
		b.WriteString(markedStyle.Render(fmt.Sprintf("%d-day streak", streak)))
	}
	return b.String()
}

func (m Model) renderBoard() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(cardHeading(m.selected, m.today())))
	if m.completed {
		b.WriteString("  " + successStyle.Render("✓ Task completed"))
	}
	b.WriteString("\n")

	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	if m.mode == modeAdd {
		b.WriteString(m.addInput.View())
		b.WriteString("\n")
		b.WriteString(m.renderTagPicker())
		b.WriteString("\n")
		if m.addError != "" {
			b.WriteString(errorStyle.Render(m.addError))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	visible := m.visible()
	if len(visible) == 0 && m.mode != modeAdd {
		if strings.TrimSpace(m.query) != "" {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("No results for %q", m.query)))
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(m.keys.Cancel.Help().Key + " clears the search"))
			return b.String()
		}
		heading, body := output.EmptyMessage(m.selected, m.today())
		b.WriteString(titleStyle.Render(heading))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(body))
		return b.String()
	}
	for i, t := range visible {
		b.WriteString(m.renderTask(t, i == m.cursor && m.mode == modeList))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTask(t task.Task, current bool) string {
	cursor := "  "
	if current {
		cursor = cursorStyle.Render("> ")
	}
	checkbox := "[ ]"
	title := t.Title
	if t.Done {
		checkbox = successStyle.Render("[x]")
		title = doneStyle.Render(title)
	}
	return fmt.Sprintf("%s%s %s %s", cursor, checkbox, title, tagLabel(t.Tag, t.Done))
}

func (m Model) renderTagPicker() string {
	labels := make([]string, 0, len(task.Tags()))
	for _, tag := range task.Tags() {
		if tag == m.addTag {
			labels = append(labels, selectedStyle.Render(string(tag)))
			continue
		}
		labels = append(labels, mutedStyle.Render(string(tag)))
	}
	return strings.Join(labels, " ")
}

func tagLabel(tag task.Tag, done bool) string {
	style := mutedStyle
	if c, ok := tagColors[tag]; ok && !done {
		style = lipgloss.NewStyle().Foreground(c)
	}
	return style.Render("#" + string(tag))
}

func cardHeading(date, today string) string {
	t, err := dates.Parse(date)
	if err != nil {
		return date
	}
	heading := t.Format("Monday, January 2")
	if date == today {
		heading = "Today · " + heading
	}
	return heading
}
