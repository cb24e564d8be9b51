package dates

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	tests := []struct {
		year, month, day int
		want             string
	}{
		{2026, 1, 28, "2026-02-28"},
		{2026, 0, 1, "2026-01-01"},
		{999, 11, 31, "0999-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Key(tt.year, tt.month, tt.day); got != tt.want {
				t.Errorf("Key(%d, %d, %d) = %q, want %q", tt.year, tt.month, tt.day, got, tt.want)
			}
		})
	}
}

func TestFromTimeUsesLocalDate(t *testing.T) {
	lateNight := time.Date(2026, 3, 1, 23, 59, 0, 0, time.Local)
	if got := FromTime(lateNight); got != "2026-03-01" {
		t.Errorf("FromTime = %q, want 2026-03-01", got)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		key   string
		valid bool
	}{
		{"2026-02-28", true},
		{"2024-02-29", true},
		{"2026-02-29", false},
		{"2026-02-30", false},
		{"2026-2-3", false},
		{"", false},
		{"tomorrow", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := Valid(tt.key); got != tt.valid {
				t.Errorf("Valid(%q) = %v, want %v", tt.key, got, tt.valid)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2026-03-01", -1)
	if err != nil {
		t.Fatalf("AddDays failed: %v", err)
	}
	if got != "2026-02-28" {
		t.Errorf("AddDays = %q, want 2026-02-28", got)
	}

	got, err = AddDays("2025-12-31", 1)
	if err != nil {
		t.Fatalf("AddDays failed: %v", err)
	}
	if got != "2026-01-01" {
		t.Errorf("AddDays = %q, want 2026-01-01", got)
	}

	if _, err := AddDays("bad", 1); err == nil {
		t.Error("expected error for invalid key")
	}
}

func TestRelate(t *testing.T) {
	if got := Relate("2026-02-27", "2026-02-28"); got != Past {
		t.Errorf("Relate past = %v", got)
	}
	if got := Relate("2026-02-28", "2026-02-28"); got != Current {
		t.Errorf("Relate today = %v", got)
	}
	if got := Relate("2026-03-01", "2026-02-28"); got != Future {
		t.Errorf("Relate future = %v", got)
	}
}

func TestGreeting(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2026, 1, 1, h, 0, 0, 0, time.Local) }
	if got := Greeting(at(8)); got != "morning" {
		t.Errorf("Greeting(8) = %q", got)
	}
	if got := Greeting(at(12)); got != "afternoon" {
		t.Errorf("Greeting(12) = %q", got)
	}
	if got := Greeting(at(17)); got != "evening" {
		t.Errorf("Greeting(17) = %q", got)
	}
}

func TestMonthCells(t *testing.T) {
	// February 2026 starts on a Sunday and has 28 days.
	m := Month{Year: 2026, Month: 1}
	if m.Leading() != 0 {
		t.Errorf("Leading = %d, want 0", m.Leading())
	}
	if m.Days() != 28 {
		t.Errorf("Days = %d, want 28", m.Days())
	}
	cells := m.Cells()
	if len(cells) != 28 || cells[0] != 1 || cells[27] != 28 {
		t.Errorf("Cells = %v", cells)
	}

	// March 2026 starts on a Sunday too; April on a Wednesday.
	apr := Month{Year: 2026, Month: 3}
	cells = apr.Cells()
	if apr.Leading() != 3 || len(cells) != 33 || cells[3] != 1 {
		t.Errorf("April cells = %v (leading %d)", cells, apr.Leading())
	}
}

func TestMonthWrap(t *testing.T) {
	jan := Month{Year: 2026, Month: 0}
	if got := jan.Prev(); got != (Month{Year: 2025, Month: 11}) {
		t.Errorf("Prev = %+v", got)
	}
	dec := Month{Year: 2026, Month: 11}
	if got := dec.Next(); got != (Month{Year: 2027, Month: 0}) {
		t.Errorf("Next = %+v", got)
	}
	if got := MonthOf("2026-02-28"); got != (Month{Year: 2026, Month: 1}) {
		t.Errorf("MonthOf = %+v", got)
	}
	if got := jan.String(); got != "January 2026" {
		t.Errorf("String = %q", got)
	}
}
