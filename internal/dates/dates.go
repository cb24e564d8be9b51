// Package dates converts between wall-clock times and calendar-day keys.
//
// A key is the local calendar date formatted as YYYY-MM-DD. No timezone
// normalization happens anywhere in this package: a task added at 23:59 lands
// on the local day it was added, whatever UTC says.
package dates

import (
	"fmt"
	"time"
)

// Layout is the calendar-day key layout.
const Layout = "2006-01-02"

// Key formats a calendar date with a zero-based month index.
func Key(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month+1, day)
}

// FromTime returns the key of t's local wall-clock date.
func FromTime(t time.Time) string {
	t = t.In(time.Local)
	return Key(t.Year(), int(t.Month())-1, t.Day())
}

// Today returns the key of the current local date.
func Today() string {
	return FromTime(time.Now())
}

// Parse returns local midnight of the given key. It rejects keys that are not
// zero-padded or do not name a real calendar date.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", key, err)
	}
	return t, nil
}

// Valid reports whether key is a syntactically valid calendar date.
func Valid(key string) bool {
	_, err := Parse(key)
	return err == nil
}

// AddDays shifts key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := Parse(key)
	if err != nil {
		return "", err
	}
	return FromTime(t.AddDate(0, 0, n)), nil
}

// Relation places a date relative to today.
type Relation int

const (
	Past Relation = iota - 1
	Current
	Future
)

// Relate compares key against today. Invalid keys compare as Current.
func Relate(key, today string) Relation {
	a, errA := Parse(key)
	b, errB := Parse(today)
	if errA != nil || errB != nil {
		return Current
	}
	switch {
	case a.Before(b):
		return Past
	case a.After(b):
		return Future
	default:
		return Current
	}
}

// Greeting returns the part of day used in the dashboard header.
func Greeting(t time.Time) string {
	h := t.Hour()
	if h < 12 {
		return "morning"
	}
	if h < 17 {
		return "afternoon"
	}
	return "evening"
}
