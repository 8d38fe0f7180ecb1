// Package validation holds the page validator set and the field validators the
// model-view builder attaches to it.
package validation

import "sync"

// Result is the outcome of one validator. Message is only meaningful when
// Valid is false.
type Result struct {
	Valid   bool
	Message string
}

// Pass is the successful Result.
func Pass() Result { return Result{Valid: true} }

// Fail returns a failing Result carrying message.
func Fail(message string) Result { return Result{Message: message} }

// Validator checks the current state of the components it closes over. It
// must not panic and reports failures through its Result.
type Validator func() Result

// Set is an ordered validator collection. Duplicates are kept.
type Set struct {
	mu    sync.Mutex
	items []Validator
}

// Add appends validators in order. Nil validators are ignored.
func (s *Set) Add(validators ...Validator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range validators {
		if v != nil {
			s.items = append(s.items, v)
		}
	}
}

// Len reports the number of validators.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Evaluate runs every validator in registration order, without stopping at
// the first failure, and returns the failing messages in the same order.
func (s *Set) Evaluate() []string {
	s.mu.Lock()
	items := append([]Validator(nil), s.items...)
	s.mu.Unlock()

	var failures []string
	for _, v := range items {
		if res := v(); !res.Valid {
			failures = append(failures, res.Message)
		}
	}
	return failures
}
