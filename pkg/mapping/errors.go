package mapping

import (
	"fmt"
	"strings"
)

// LoadError indicates a mapping file could not be read.
type LoadError struct {
	FilePath string
	Message  string
	Cause    error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load %s: %s: %v", e.FilePath, e.Message, e.Cause)
	}
	return fmt.Sprintf("load %s: %s", e.FilePath, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseError indicates a mapping file could not be parsed as YAML or
// failed structural validation.
type ParseError struct {
	FilePath string
	Message  string
	Cause    error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.FilePath, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse %s: %s", e.FilePath, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NotFoundError indicates a mapping identifier with no corresponding
// file in the mapping directory, or no cached entry for GetCached.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mapping %q not found", e.Name)
}

// ValidationError describes one structural problem in a mapping file.
type ValidationError struct {
	Name    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mapping %q: %s: %s", e.Name, e.Field, e.Message)
}

// ValidationErrors collects every structural problem found in one
// mapping so that lint output can report them all at once.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}
