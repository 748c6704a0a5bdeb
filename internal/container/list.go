package container

// ListNode is an element of a List.
type ListNode[T any] struct {
	Value T
	next  *ListNode[T]
}

// Next returns the following node, or nil at the tail.
func (n *ListNode[T]) Next() *ListNode[T] {
	return n.next
}

// List is a singly linked list. The zero value is an empty list.
type List[T any] struct {
	head, tail *ListNode[T]
	size       int
}

// InsertNext inserts v after node. A nil node inserts at the head.
func (l *List[T]) InsertNext(node *ListNode[T], v T) *ListNode[T] {
	n := &ListNode[T]{Value: v}
	if node == nil {
		n.next = l.head
		l.head = n
		if l.tail == nil {
			l.tail = n
		}
	} else {
		n.next = node.next
		node.next = n
		if l.tail == node {
			l.tail = n
		}
	}
	l.size++
	return n
}

// RemoveNext removes the node after node and returns its value. A nil node
// removes the head. The second result is false if there was nothing to remove.
func (l *List[T]) RemoveNext(node *ListNode[T]) (T, bool) {
	var zero T
	var old *ListNode[T]
	if node == nil {
		old = l.head
		if old == nil {
			return zero, false
		}
		l.head = old.next
		if l.head == nil {
			l.tail = nil
		}
	} else {
		old = node.next
		if old == nil {
			return zero, false
		}
		node.next = old.next
		if node.next == nil {
			l.tail = node
		}
	}
	l.size--
	return old.Value, true
}

// Head returns the first node, or nil if the list is empty.
func (l *List[T]) Head() *ListNode[T] {
	return l.head
}

// Tail returns the last node, or nil if the list is empty.
func (l *List[T]) Tail() *ListNode[T] {
	return l.tail
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int {
	return l.size
}

// Queue is a first-in-first-out sequence over a List.
type Queue[T any] struct {
	l List[T]
}

// Enqueue appends v at the back of the queue.
func (q *Queue[T]) Enqueue(v T) {
	q.l.InsertNext(q.l.Tail(), v)
}

// Dequeue removes and returns the front element.
func (q *Queue[T]) Dequeue() (T, bool) {
	return q.l.RemoveNext(nil)
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	return q.l.Len()
}

// Drain dequeues every element into a slice, front first. The queue is empty
// afterward.
func (q *Queue[T]) Drain() []T {
	if q.l.Len() == 0 {
		return nil
	}
	r := make([]T, 0, q.l.Len())
	for v, ok := q.Dequeue(); ok; v, ok = q.Dequeue() {
		r = append(r, v)
	}
	return r
}
