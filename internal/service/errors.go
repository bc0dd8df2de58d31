package service

import "strings"

// ValidationError reports structurally invalid input: missing required
// fields, or an ID present/absent against the operation's expectation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}
