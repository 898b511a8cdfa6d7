package forms

import (
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/view"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// Fields is a snapshot of a form's values taken when submit starts.
type Fields struct {
	values  map[string]string
	checked map[string]bool
}

// ReadFields copies the named values and checkboxes out of store.
func ReadFields(store view.FieldStore, names, checkboxes []string) Fields {
	f := Fields{values: make(map[string]string, len(names)), checked: make(map[string]bool, len(checkboxes))}
	for _, n := range names {
		f.values[n] = store.Value(n)
	}
	for _, n := range checkboxes {
		f.checked[n] = store.Checked(n)
	}
	return f
}

// Get returns the raw value.
func (f Fields) Get(name string) string { return f.values[name] }

// Trimmed returns the value without surrounding whitespace.
func (f Fields) Trimmed(name string) string { return strings.TrimSpace(f.values[name]) }

func (f Fields) Checked(name string) bool { return f.checked[name] }

// ValidationError rejects a submission before any request is sent.
type ValidationError struct {
	Field   string
	Message string
	// Inline shows the message next to Field instead of as a notification.
	Inline bool
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

// FailureError is a step of a chain failing with a fixed message, such as
// the email existence check before a password reset.
type FailureError struct {
	Message string
	Err     error
}

func (e *FailureError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *FailureError) Unwrap() error { return e.Err }

// required returns a ValidationError for the first blank field.
func required(f Fields, msg string, names ...string) error {
	for _, n := range names {
		if f.Trimmed(n) == "" {
			return &ValidationError{Field: n, Message: msg}
		}
	}
	return nil
}

// rejectWith turns a backend rejection into a FailureError with msg.
// Transport errors pass through unchanged.
func rejectWith(err error, msg string) error {
	if err == nil {
		return nil
	}
	if passThrough(err) {
		return err
	}
	return &FailureError{Message: msg, Err: err}
}
