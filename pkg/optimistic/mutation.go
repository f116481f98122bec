// Package optimistic applies local state changes before a remote store confirms them
// and reverts them when the remote call fails.
package optimistic

import (
	"context"
	"sync"
)

// Mutation describes one optimistic change of a state S.
//
// Apply runs immediately against the current state. Commit makes the change durable
// remotely. Revert runs against the state current at failure time, which may already
// contain later mutations, and must undo only this mutation's effect.
type Mutation[S any] struct {
	Apply  func(S) S
	Commit func(ctx context.Context) error
	Revert func(S) S
}

// State holds a value shared by a view and its pending mutations.
type State[S any] struct {
	mu       sync.Mutex
	value    S
	onChange func(S)
}

// NewState creates a State. onChange, if set, is called after every change
// with the new value, outside the lock.
func NewState[S any](initial S, onChange func(S)) *State[S] {
	return &State[S]{value: initial, onChange: onChange}
}

// Get returns the current value.
func (s *State[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value, e.g. after a full reload from the remote store.
func (s *State[S]) Set(v S) {
	s.update(func(S) S { return v })
}

func (s *State[S]) update(fn func(S) S) S {
	s.mu.Lock()
	s.value = fn(s.value)
	v := s.value
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(v)
	}
	return v
}

// Pending is the outcome of an in-flight commit.
type Pending struct {
	done chan struct{}
	err  error
}

// Done is closed once the commit finished and any revert was applied.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Err returns the commit error. Valid after Done is closed.
func (p *Pending) Err() error { return p.err }

// Wait blocks until the commit settles or ctx ends.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run applies m to st immediately and commits it in the background.
// It returns the optimistic value. If the commit fails, m.Revert is applied to st
// before the returned Pending settles.
func Run[S any](ctx context.Context, st *State[S], m Mutation[S]) (S, *Pending) {
	optimistic := st.update(m.Apply)

	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		if err := m.Commit(ctx); err != nil {
			p.err = err
			st.update(m.Revert)
		}
	}()

	return optimistic, p
}
