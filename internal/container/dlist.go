package container

// DListNode is an element of a DList.
type DListNode[T any] struct {
	Value      T
	prev, next *DListNode[T]
}

// Next returns the following node, or nil at the tail.
func (n *DListNode[T]) Next() *DListNode[T] {
	return n.next
}

// Prev returns the preceding node, or nil at the head.
func (n *DListNode[T]) Prev() *DListNode[T] {
	return n.prev
}

// DList is a doubly linked list. The zero value is an empty list.
type DList[T any] struct {
	head, tail *DListNode[T]
	size       int
}

// PushBack inserts v at the tail.
func (l *DList[T]) PushBack(v T) *DListNode[T] {
	return l.InsertNext(l.tail, v)
}

// InsertNext inserts v after node. node may be nil only if the list is empty.
func (l *DList[T]) InsertNext(node *DListNode[T], v T) *DListNode[T] {
	n := &DListNode[T]{Value: v}
	if node == nil {
		if l.size != 0 {
			panic("container: nil anchor in non-empty list")
		}
		l.head, l.tail = n, n
		l.size = 1
		return n
	}
	n.prev = node
	n.next = node.next
	if node.next == nil {
		l.tail = n
	} else {
		node.next.prev = n
	}
	node.next = n
	l.size++
	return n
}

// Remove unlinks node from the list and returns its value.
func (l *DList[T]) Remove(node *DListNode[T]) T {
	if node.prev == nil {
		l.head = node.next
	} else {
		node.prev.next = node.next
	}
	if node.next == nil {
		l.tail = node.prev
	} else {
		node.next.prev = node.prev
	}
	node.prev, node.next = nil, nil
	l.size--
	return node.Value
}

// Front returns the head node, or nil if the list is empty.
func (l *DList[T]) Front() *DListNode[T] {
	return l.head
}

// Back returns the tail node, or nil if the list is empty.
func (l *DList[T]) Back() *DListNode[T] {
	return l.tail
}

// Len returns the number of elements in the list.
func (l *DList[T]) Len() int {
	return l.size
}

// Values returns the elements head to tail.
func (l *DList[T]) Values() []T {
	r := make([]T, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		r = append(r, n.Value)
	}
	return r
}

// Reversed returns the elements tail to head.
func (l *DList[T]) Reversed() []T {
	r := make([]T, 0, l.size)
	for n := l.tail; n != nil; n = n.prev {
		r = append(r, n.Value)
	}
	return r
}
