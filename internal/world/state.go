// ABOUTME: Finite-state wrapper holding the current selection of a state machine
// ABOUTME: Exposes the selection through a typed accessor instead of field reflection

package world

import "reflect"

// StatePathPrefix is the fully-qualified name prefix shared by every State
// instantiation.
var StatePathPrefix = reflect.TypeFor[State[struct{}]]().PkgPath() + ".State["

// Selection is the typed view a finite-state wrapper offers over its value.
type Selection interface {
	Selected() any
}

// State holds the current variant of a state machine S.
type State[S any] struct {
	current S
}

// NewState creates a State starting at initial.
func NewState[S any](initial S) *State[S] {
	return &State[S]{current: initial}
}

// Get returns the current selection.
func (s *State[S]) Get() S {
	return s.current
}

// Set replaces the current selection.
func (s *State[S]) Set(next S) {
	s.current = next
}

// Selected implements Selection.
func (s *State[S]) Selected() any {
	return s.current
}
