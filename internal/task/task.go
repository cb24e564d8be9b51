package task

import "strings"

// Tag is a category label from a fixed set.
type Tag string

const (
	TagGeneral   Tag = "General"
	TagMarketing Tag = "Marketing"
	TagContent   Tag = "Content"
	TagDesign    Tag = "Design"
	TagProduct   Tag = "Product"
	TagMeeting   Tag = "Meeting"
)

// DefaultTag is used when no tag is given.
const DefaultTag = TagGeneral

var tagOrder = []Tag{TagGeneral, TagMarketing, TagContent, TagDesign, TagProduct, TagMeeting}

// Tags returns the known tags in display order.
func Tags() []Tag {
	out := make([]Tag, len(tagOrder))
	copy(out, tagOrder)
	return out
}

// IsValidTag checks if a tag is one of the known labels.
func IsValidTag(t Tag) bool {
	for _, known := range tagOrder {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTag resolves a tag case-insensitively. An empty string yields DefaultTag.
func ParseTag(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTag, nil
	}
	for _, known := range tagOrder {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", InvalidTagError{Value: s}
}

// NextTag cycles through the tags in display order.
func NextTag(t Tag) Tag {
	for i, known := range tagOrder {
		if known == t {
			return tagOrder[(i+1)%len(tagOrder)]
		}
	}
	return DefaultTag
}

// Task is a single to-do item scheduled on a calendar day.
type Task struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Tag   Tag    `json:"tag" yaml:"tag"`
	Done  bool   `json:"done" yaml:"done"`
	Date  string `json:"date" yaml:"date"`

	// Removing marks a task inside its undo window. It is never persisted.
	Removing bool `json:"-" yaml:"-"`
}
