// Package container provides the small generic sequences the engine is built
// on: a LIFO stack, a singly linked list with a FIFO queue over it, and a
// doubly linked list that can be read from either end.
//
// Elements are owned by the container value. There are no destructor
// callbacks; dropping the container releases everything in it.
package container

// Stack is a last-in-first-out sequence. The zero value is an empty stack.
type Stack[T any] struct {
	items []T
}

// NewStack creates a stack with room for n elements.
func NewStack[T any](n int) *Stack[T] {
	return &Stack[T]{items: make([]T, 0, n)}
}

// Push adds v to the top of the stack.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top element. If the stack is empty, the result
// is the zero value and false.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	v := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of elements on the stack.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Each calls f for each element from bottom to top.
func (s *Stack[T]) Each(f func(T)) {
	for _, v := range s.items {
		f(v)
	}
}
