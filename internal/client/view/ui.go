// Package view is the UI boundary of the storefront client. Controllers
// talk to these small interfaces instead of a concrete screen, so a
// terminal, a test fake or a web page can stand behind them.
package view

import "sync"

// Notifier shows a one-line message to the user.
type Notifier interface {
	Notify(msg string)
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(question string) bool
}

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(path string)
}

// ModalCloser dismisses a named dialog.
type ModalCloser interface {
	CloseModal(id string)
}

// FieldErrorReporter shows or hides an inline message next to a field.
// An empty message hides it.
type FieldErrorReporter interface {
	ShowFieldError(field, msg string)
}

// FieldStore is a form's current input values.
type FieldStore interface {
	Value(name string) string
	Checked(name string) bool
	Set(name, value string)
	SetChecked(name string, checked bool)
	Reset()
}

// UI bundles everything a form controller may touch.
type UI interface {
	Notifier
	Confirmer
	Navigator
	ModalCloser
	FieldErrorReporter
}

// MapFieldStore is an in-memory FieldStore.
type MapFieldStore struct {
	mu      sync.Mutex
	values  map[string]string
	checked map[string]bool
}

func NewMapFieldStore(values map[string]string) *MapFieldStore {
	s := &MapFieldStore{values: map[string]string{}, checked: map[string]bool{}}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *MapFieldStore) Value(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[name]
}

func (s *MapFieldStore) Checked(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checked[name]
}

func (s *MapFieldStore) Set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

func (s *MapFieldStore) SetChecked(name string, checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checked[name] = checked
}

// Reset clears every value and checkbox.
func (s *MapFieldStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = map[string]string{}
	s.checked = map[string]bool{}
}
