// Package output renders CLI results for people or for scripts.
package output

import (
	"taskflow/internal/auth"
	"taskflow/internal/dates"
	"taskflow/internal/task"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(t task.Task) string
	FormatTaskList(date, search string, tasks []task.Task) string
	FormatExport(tasks []task.Task) string
	FormatStats(s Stats) string
	FormatCalendar(c Calendar) string
	FormatUser(u auth.User) string
	FormatError(err error) string
	FormatMessage(msg string) string
}

// Stats is the per-day summary shown by the stats command.
type Stats struct {
	Date     string
	Pending  int
	Streak   int
	Progress task.Progress
}

// Calendar is a month grid with the days that carry tasks marked.
type Calendar struct {
	Month    dates.Month
	Selected string
	Today    string
	Marked   map[string]struct{}
}

// EmptyMessage returns the heading and body shown when a day has no tasks.
func EmptyMessage(date, today string) (string, string) {
	short := date
	if t, err := dates.Parse(date); err == nil {
		short = t.Format("January 2")
	}
	switch dates.Relate(date, today) {
	case dates.Future:
		return "Nothing planned for " + short, "Plan ahead, add a task."
	case dates.Past:
		return "No tasks on " + short, "Nothing was completed on this day."
	default:
		return "No tasks for today", "Add one to stay productive."
	}
}
