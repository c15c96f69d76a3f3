// Package history provides a bounded undo/redo container. A Store keeps the
// present value plus an undo and a redo stack of earlier and later values.
package history

import "sync"

// DefaultLimit is the number of undo snapshots kept when no limit is given.
const DefaultLimit = 10

// Op names the operation that produced a Change.
type Op string

const (
	OpCommit       Op = "commit"
	OpCommitSilent Op = "commit_silent"
	OpUndo         Op = "undo"
	OpRedo         Op = "redo"
	OpReset        Op = "reset"
)

// Change describes one transition of the present value.
type Change[T any] struct {
	Op       Op
	Previous T
	Present  T
}

// Option configures a Store.
type Option[T comparable] func(*Store[T])

// WithLimit sets the maximum depth of the undo stack. Values below one fall
// back to DefaultLimit.
func WithLimit[T comparable](limit int) Option[T] {
	return func(s *Store[T]) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// Store is the undo/redo container. Values are compared with ==, so for
// pointer types a commit only registers when a new pointer is supplied.
// Store is safe for concurrent use; subscribers run after the lock is
// released.
type Store[T comparable] struct {
	mu          sync.RWMutex
	present     T
	undo        []T
	redo        []T
	limit       int
	subscribers []func(Change[T])
}

// New returns a store whose present value is seed and whose stacks are empty.
func New[T comparable](seed T, options ...Option[T]) *Store[T] {
	s := &Store[T]{
		present: seed,
		limit:   DefaultLimit,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Present returns the current value.
func (s *Store[T]) Present() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.present
}

// Limit returns the maximum undo depth.
func (s *Store[T]) Limit() int {
	return s.limit
}

// CanUndo reports whether Undo would change the present value.
func (s *Store[T]) CanUndo() bool {
	return s.UndoDepth() > 0
}

// CanRedo reports whether Redo would change the present value.
func (s *Store[T]) CanRedo() bool {
	return s.RedoDepth() > 0
}

// UndoDepth returns the number of snapshots on the undo stack.
func (s *Store[T]) UndoDepth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.undo)
}

// RedoDepth returns the number of snapshots on the redo stack.
func (s *Store[T]) RedoDepth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.redo)
}

// Commit records next as the present value. The previous present is pushed
// onto the undo stack, dropping the oldest snapshot once the limit is
// exceeded, and the redo stack is cleared. Committing the present value
// itself does nothing. It reports whether the store changed.
func (s *Store[T]) Commit(next T) bool {
	s.mu.Lock()
	if next == s.present {
		s.mu.Unlock()
		return false
	}
	prev := s.present
	s.undo = s.push(s.undo, prev)
	s.present = next
	s.redo = nil
	s.mu.Unlock()

	s.notify(Change[T]{Op: OpCommit, Previous: prev, Present: next})
	return true
}

// CommitSilent replaces the present value without touching either stack.
func (s *Store[T]) CommitSilent(next T) bool {
	s.mu.Lock()
	if next == s.present {
		s.mu.Unlock()
		return false
	}
	prev := s.present
	s.present = next
	s.mu.Unlock()

	s.notify(Change[T]{Op: OpCommitSilent, Previous: prev, Present: next})
	return true
}

// Undo restores the most recent undo snapshot and pushes the present value
// onto the redo stack. It is a no-op when the undo stack is empty.
func (s *Store[T]) Undo() bool {
	s.mu.Lock()
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return false
	}
	prev := s.present
	last := len(s.undo) - 1
	s.present = s.undo[last]
	s.undo = s.undo[:last]
	s.redo = append(s.redo, prev)
	next := s.present
	s.mu.Unlock()

	s.notify(Change[T]{Op: OpUndo, Previous: prev, Present: next})
	return true
}

// Redo re-applies the most recently undone value. It is a no-op when the
// redo stack is empty.
func (s *Store[T]) Redo() bool {
	s.mu.Lock()
	if len(s.redo) == 0 {
		s.mu.Unlock()
		return false
	}
	prev := s.present
	last := len(s.redo) - 1
	s.present = s.redo[last]
	s.redo = s.redo[:last]
	s.undo = s.push(s.undo, prev)
	next := s.present
	s.mu.Unlock()

	s.notify(Change[T]{Op: OpRedo, Previous: prev, Present: next})
	return true
}

// Reset clears both stacks and makes seed the present value.
func (s *Store[T]) Reset(seed T) {
	s.mu.Lock()
	prev := s.present
	s.present = seed
	s.undo = nil
	s.redo = nil
	s.mu.Unlock()

	s.notify(Change[T]{Op: OpReset, Previous: prev, Present: seed})
}

// Subscribe registers fn to run after every change. The returned function
// removes the subscription.
func (s *Store[T]) Subscribe(fn func(Change[T])) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
	idx := len(s.subscribers) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.subscribers) {
			s.subscribers[idx] = nil
		}
	}
}

// push appends v, evicting from the front once the limit is exceeded.
func (s *Store[T]) push(stack []T, v T) []T {
	if len(stack) >= s.limit {
		copy(stack, stack[1:])
		stack[len(stack)-1] = v
		return stack
	}
	return append(stack, v)
}

func (s *Store[T]) notify(change Change[T]) {
	s.mu.RLock()
	subscribers := append([]func(Change[T]){}, s.subscribers...)
	s.mu.RUnlock()

	for _, fn := range subscribers {
		if fn != nil {
			fn(change)
		}
	}
}
