package output

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"taskflow/internal/auth"
	"taskflow/internal/task"
)

// StructuredFormatter renders machine-readable documents. JSON and YAML share
// the same document shapes and differ only in the encoder.
type StructuredFormatter struct {
	encode func(v any) string
}

// NewJSONFormatter creates a formatter emitting indented JSON.
func NewJSONFormatter() *StructuredFormatter {
	return &StructuredFormatter{encode: marshalJSON}
}

// NewYAMLFormatter creates a formatter emitting YAML documents.
func NewYAMLFormatter() *StructuredFormatter {
	return &StructuredFormatter{encode: marshalYAML}
}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

func marshalYAML(v any) string {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "error: " + err.Error() + "\n"
	}
	enc.Close()
	return buf.String()
}

type listDoc struct {
	Date    string      `json:"date" yaml:"date"`
	Search  string      `json:"search,omitempty" yaml:"search,omitempty"`
	Pending int         `json:"pending" yaml:"pending"`
	Tasks   []task.Task `json:"tasks" yaml:"tasks"`
}

type statsDoc struct {
	Date      string `json:"date" yaml:"date"`
	Pending   int    `json:"pending" yaml:"pending"`
	Total     int    `json:"total" yaml:"total"`
	Completed int    `json:"completed" yaml:"completed"`
	Percent   int    `json:"percent" yaml:"percent"`
	Complete  bool   `json:"complete" yaml:"complete"`
	Streak    int    `json:"streak" yaml:"streak"`
}

type calendarDoc struct {
	Month    string   `json:"month" yaml:"month"`
	Selected string   `json:"selected" yaml:"selected"`
	Today    string   `json:"today" yaml:"today"`
	Marked   []string `json:"marked" yaml:"marked"`
}

type messageDoc struct {
	Message string `json:"message" yaml:"message"`
}

type errorDoc struct {
	Error string `json:"error" yaml:"error"`
}

func (f *StructuredFormatter) FormatTask(t task.Task) string {
	return f.encode(t)
}

func (f *StructuredFormatter) FormatTaskList(date, search string, tasks []task.Task) string {
	doc := listDoc{Date: date, Search: strings.TrimSpace(search), Tasks: tasks}
	if doc.Tasks == nil {
		doc.Tasks = []task.Task{}
	}
	for _, t := range tasks {
		if !t.Done {
			doc.Pending++
		}
	}
	return f.encode(doc)
}

func (f *StructuredFormatter) FormatExport(tasks []task.Task) string {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return f.encode(tasks)
}

func (f *StructuredFormatter) FormatStats(s Stats) string {
	return f.encode(statsDoc{
		Date:      s.Date,
		Pending:   s.Pending,
		Total:     s.Progress.Total,
		Completed: s.Progress.Completed,
		Percent:   s.Progress.Percent,
		Complete:  s.Progress.Complete,
		Streak:    s.Streak,
	})
}

func (f *StructuredFormatter) FormatCalendar(c Calendar) string {
	doc := calendarDoc{
		Month:    c.Month.Key(1)[:7],
		Selected: c.Selected,
		Today:    c.Today,
		Marked:   []string{},
	}
	prefix := doc.Month + "-"
	for key := range c.Marked {
		if strings.HasPrefix(key, prefix) {
			doc.Marked = append(doc.Marked, key)
		}
	}
	sort.Strings(doc.Marked)
	return f.encode(doc)
}

func (f *StructuredFormatter) FormatUser(u auth.User) string {
	return f.encode(u)
}

func (f *StructuredFormatter) FormatError(err error) string {
	return f.encode(errorDoc{Error: err.Error()})
}

func (f *StructuredFormatter) FormatMessage(msg string) string {
	return f.encode(messageDoc{Message: msg})
}
