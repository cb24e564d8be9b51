package dates

import (
	"strconv"
	"strings"
	"time"
)

// Month is a calendar month with a zero-based month index, matching Key.
type Month struct {
	Year  int
	Month int
}

// MonthOf returns the month containing key. Invalid keys yield the current month.
func MonthOf(key string) Month {
	t, err := Parse(key)
	if err != nil {
		t = time.Now()
	}
	return Month{Year: t.Year(), Month: int(t.Month()) - 1}
}

// ParseMonth parses YYYY-MM.
func ParseMonth(s string) (Month, error) {
	t, err := time.ParseInLocation("2006-01", strings.TrimSpace(s), time.Local)
	if err != nil {
		return Month{}, err
	}
	return Month{Year: t.Year(), Month: int(t.Month()) - 1}, nil
}

func (m Month) first() time.Time {
	return time.Date(m.Year, time.Month(m.Month+1), 1, 0, 0, 0, 0, time.Local)
}

// Prev returns the previous month, wrapping January to December.
func (m Month) Prev() Month {
	if m.Month == 0 {
		return Month{Year: m.Year - 1, Month: 11}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Next returns the following month, wrapping December to January.
func (m Month) Next() Month {
	if m.Month == 11 {
		return Month{Year: m.Year + 1, Month: 0}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.first().AddDate(0, 1, -1).Day()
}

// Leading returns the weekday of the first day, Sunday being 0.
func (m Month) Leading() int {
	return int(m.first().Weekday())
}

// Cells lays the month out for a Sunday-first grid: Leading() zeros followed
// by the day numbers.
func (m Month) Cells() []int {
	lead := m.Leading()
	cells := make([]int, lead, lead+m.Days())
	for d := 1; d <= m.Days(); d++ {
		cells = append(cells, d)
	}
	return cells
}

// Key returns the calendar-day key of day within the month.
func (m Month) Key(day int) string {
	return Key(m.Year, m.Month, day)
}

func (m Month) String() string {
	return m.first().Month().String() + " " + strconv.Itoa(m.Year)
}
