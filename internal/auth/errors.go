package auth

import "strings"

// ValidationError is a rejected form field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Msg
}

// ValidationErrors collects every rejected field of one submission.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// Field returns the message for field, or "".
func (e ValidationErrors) Field(field string) string {
	for _, v := range e {
		if v.Field == field {
			return v.Msg
		}
	}
	return ""
}
