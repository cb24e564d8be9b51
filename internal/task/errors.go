package task

import (
	"errors"
	"fmt"
)

// ErrEmptyTitle rejects an add whose title is blank after trimming.
var ErrEmptyTitle = errors.New("task cannot be empty")

// NotFoundError indicates no task carries the given ID.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// InvalidTagError indicates a tag outside the known set.
type InvalidTagError struct {
	Value string
}

func (e InvalidTagError) Error() string {
	return fmt.Sprintf("invalid tag: %s (valid: General, Marketing, Content, Design, Product, Meeting)", e.Value)
}

// InvalidDateError indicates a date that is not a YYYY-MM-DD calendar day.
type InvalidDateError struct {
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q (expected YYYY-MM-DD)", e.Value)
}
