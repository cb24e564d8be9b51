// Package query derives the visible subset of a day's tasks.
package query

import (
	"strings"

	"taskflow/internal/task"
)

// Filter keeps tasks whose title contains term, ignoring case. A blank term
// returns tasks unchanged.
func Filter(tasks []task.Task, term string) []task.Task {
	if strings.TrimSpace(term) == "" {
		return tasks
	}
	needle := strings.ToLower(term)
	var out []task.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			out = append(out, t)
		}
	}
	return out
}

// DateScoped is the part of the store the day view reads from.
type DateScoped interface {
	TasksForDate(date string) []task.Task
}

// Day returns the visible tasks on date matching term.
func Day(src DateScoped, date, term string) []task.Task {
	return Filter(src.TasksForDate(date), term)
}
