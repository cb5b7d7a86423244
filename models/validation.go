package models

import "strings"

// FieldError ties a validation failure to the field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every failed check for a payload so the
// caller sees them all at once instead of fixing one per request.
type ValidationErrors []FieldError

func (v ValidationErrors) Add(field, message string) ValidationErrors {
	return append(v, FieldError{Field: field, Message: message})
}

func (v ValidationErrors) OK() bool { return len(v) == 0 }

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}
