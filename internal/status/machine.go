// Package status implements table-driven lifecycles for orders and
// reservations. A Machine only knows its transition table; the tables
// below are the configurations used by the console.
package status

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidTransition is matched by every rejected transition
var ErrInvalidTransition = errors.New("invalid status transition")

// Table maps a state to the states reachable from it in one step
type Table[S comparable] map[S][]S

// Machine validates transitions against a Table
type Machine[S comparable] struct {
	name  string
	table Table[S]
}

// TransitionError describes a rejected transition
type TransitionError[S comparable] struct {
	Machine string
	From    S
	To      S
	Allowed []S
}

func (e *TransitionError[S]) Error() string {
	return fmt.Sprintf("%s: cannot move from %v to %v (allowed: %v)", e.Machine, e.From, e.To, e.Allowed)
}

// Unwrap lets errors.Is match ErrInvalidTransition
func (e *TransitionError[S]) Unwrap() error { return ErrInvalidTransition }

// NewMachine creates a machine over a copy of table
func NewMachine[S comparable](name string, table Table[S]) *Machine[S] {
	cp := make(Table[S], len(table))
	for from, next := range table {
		cp[from] = slices.Clone(next)
	}
	return &Machine[S]{name: name, table: cp}
}

// Name returns the machine name used in errors and metrics
func (m *Machine[S]) Name() string { return m.name }

// NextAllowed returns the states reachable from current.
// Unknown and terminal states yield an empty slice.
func (m *Machine[S]) NextAllowed(current S) []S {
	return slices.Clone(m.table[current])
}

// IsTerminal reports whether no transition leaves s
func (m *Machine[S]) IsTerminal(s S) bool {
	return len(m.table[s]) == 0
}

// CanTransition reports whether to is reachable from from in one step
func (m *Machine[S]) CanTransition(from, to S) bool {
	return slices.Contains(m.table[from], to)
}

// Apply returns target when the transition is permitted
func (m *Machine[S]) Apply(current, target S) (S, error) {
	if !m.CanTransition(current, target) {
		return current, &TransitionError[S]{
			Machine: m.name,
			From:    current,
			To:      target,
			Allowed: m.NextAllowed(current),
		}
	}
	return target, nil
}
