// Package list implements the ordered-list primitive shared by the
// allocator's block chain and the engine's lifecycle queues: a FIFO of
// opaque references with O(1) append/pop-head, stable iteration, and
// removal or insertion by identity.
package list

// Node wraps a value with its list-local neighbours. Identity for
// Remove/Move/InsertBefore is the *Node pointer, not the value.
type Node[T any] struct {
	Value T
	prev  *Node[T]
	next  *Node[T]
	owner *List[T]
}

// List is a doubly-linked FIFO. It is not safe for concurrent use;
// callers (the allocator, the engine) are single-threaded.
type List[T any] struct {
	head *Node[T]
	tail *Node[T]
	size int
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.size }

// IsEmpty reports whether the list holds no elements.
func (l *List[T]) IsEmpty() bool { return l.size == 0 }

// Append adds value to the tail and returns its node.
func (l *List[T]) Append(value T) *Node[T] {
	n := &Node[T]{Value: value, owner: l}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.size++
	return n
}

// PopHead removes and returns the head node, or nil if the list is empty.
func (l *List[T]) PopHead() *Node[T] {
	n := l.head
	if n == nil {
		return nil
	}
	l.remove(n)
	return n
}

// Head returns the head node without removing it, or nil if empty.
func (l *List[T]) Head() *Node[T] { return l.head }

// Remove deletes n from the list. No-op if n is nil or not owned by l.
func (l *List[T]) Remove(n *Node[T]) {
	if n == nil || n.owner != l {
		return
	}
	l.remove(n)
}

func (l *List[T]) remove(n *Node[T]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next, n.owner = nil, nil, nil
	l.size--
}

// Move removes n from its current list and appends it to dst, preserving
// dst's insertion order semantics. n must belong to l.
func (l *List[T]) Move(n *Node[T], dst *List[T]) {
	l.Remove(n)
	dst.Append(n.Value)
}

// InsertBefore inserts value immediately before n and returns the new node.
// Used by the allocator to place a split-off block ahead of the shrunken
// free block it was carved from.
func (l *List[T]) InsertBefore(n *Node[T], value T) *Node[T] {
	if n == nil || n.owner != l {
		return l.Append(value)
	}
	m := &Node[T]{Value: value, owner: l, prev: n.prev, next: n}
	if n.prev != nil {
		n.prev.next = m
	} else {
		l.head = m
	}
	n.prev = m
	l.size++
	return m
}

// Next returns the successor node, or nil at the tail.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Prev returns the predecessor node, or nil at the head.
func (n *Node[T]) Prev() *Node[T] { return n.prev }

// Each calls fn for every element in insertion order. fn must not mutate
// the list; iteration concurrent with mutation is not supported.
func (l *List[T]) Each(fn func(*Node[T])) {
	for n := l.head; n != nil; n = n.next {
		fn(n)
	}
}

// ToSlice materializes the list's values in insertion order.
func (l *List[T]) ToSlice() []T {
	out := make([]T, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.Value)
	}
	return out
}
