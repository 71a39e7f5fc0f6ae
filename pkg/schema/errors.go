package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Path   string // Location of the description, e.g. scenes[intro].objects[door]
	Key    string // Field name
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	where := e.Key
	if e.Path != "" {
		where = e.Path + "." + e.Key
		if e.Key == "" {
			where = e.Path
		}
	}
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", where, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %v)", where, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

// Collector accumulates failures across many descriptions.
type Collector struct {
	errs []error
}

// Add records err, flattening aggregates. Nil is ignored.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	if inner := ValidationErrors(err); inner != nil {
		c.errs = append(c.errs, inner...)
		return
	}
	c.errs = append(c.errs, err)
}

// Failf records a failure that is not tied to a single field.
func (c *Collector) Failf(path, format string, args ...any) {
	c.errs = append(c.errs, &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)})
}

// Len returns the number of failures so far.
func (c *Collector) Len() int { return len(c.errs) }

// Err returns an *AggregateError, or nil when nothing failed.
func (c *Collector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: c.errs}
}
