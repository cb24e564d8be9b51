package output

import (
	"fmt"
	"strings"

	"taskflow/internal/auth"
	"taskflow/internal/task"
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct {
	today string
}

// NewHumanFormatter creates a HumanFormatter that words empty days relative to today.
func NewHumanFormatter(today string) *HumanFormatter {
	return &HumanFormatter{today: today}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t task.Task) string {
	return fmt.Sprintf("%s %s  #%s  %s  (%s)\n", checkbox(t.Done), t.Title, t.Tag, t.Date, t.ID)
}

// FormatTaskList formats one day's tasks, with the empty-state hint when there are none.
func (f *HumanFormatter) FormatTaskList(date, search string, tasks []task.Task) string {
	if len(tasks) == 0 {
		if strings.TrimSpace(search) != "" {
			return fmt.Sprintf("No results for %q\n", search)
		}
		heading, body := EmptyMessage(date, f.today)
		return heading + "\n" + body + "\n"
	}
	var sb strings.Builder
	pending := 0
	for _, t := range tasks {
		if !t.Done {
			pending++
		}
	}
	sb.WriteString(fmt.Sprintf("%s (%d left)\n", date, pending))
	for _, t := range tasks {
		sb.WriteString(fmt.Sprintf("  %s %-40s #%-9s %s\n", checkbox(t.Done), t.Title, t.Tag, t.ID))
	}
	return sb.String()
}

// FormatExport lists every task grouped in collection order.
func (f *HumanFormatter) FormatExport(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}
	var sb strings.Builder
	for _, t := range tasks {
		sb.WriteString(f.FormatTask(t))
	}
	return sb.String()
}

// FormatStats formats the daily summary.
func (f *HumanFormatter) FormatStats(s Stats) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Date:     %s\n", s.Date))
	sb.WriteString(fmt.Sprintf("Pending:  %d\n", s.Pending))
	if s.Progress.Total == 0 {
		sb.WriteString("Progress: no tasks scheduled\n")
	} else {
		sb.WriteString(fmt.Sprintf("Progress: %d/%d (%d%%)\n", s.Progress.Completed, s.Progress.Total, s.Progress.Percent))
	}
	sb.WriteString(fmt.Sprintf("Streak:   %d day(s)\n", s.Streak))
	return sb.String()
}

// FormatCalendar draws a Sunday-first month grid. Days with tasks carry a
// trailing dot, the selected day is bracketed and today is starred.
func (f *HumanFormatter) FormatCalendar(c Calendar) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", c.Month))
	sb.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")
	cells := c.Month.Cells()
	for i, day := range cells {
		sb.WriteString(calendarCell(c, day))
		if i%7 == 6 || i == len(cells)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func calendarCell(c Calendar, day int) string {
	if day == 0 {
		return "    "
	}
	key := c.Month.Key(day)
	left, right := " ", " "
	if _, ok := c.Marked[key]; ok {
		right = "."
	}
	switch {
	case key == c.Selected:
		left, right = "[", "]"
	case key == c.Today:
		left = "*"
	}
	return fmt.Sprintf("%s%2d%s", left, day, right)
}

// FormatUser formats the signed-in user.
func (f *HumanFormatter) FormatUser(u auth.User) string {
	return fmt.Sprintf("%s <%s> (%s)\n", u.Name, u.Email, u.Initials())
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message for display.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}
