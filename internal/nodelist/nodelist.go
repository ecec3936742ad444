// Package nodelist provides the ordered doubly-linked list used for the
// window stacks and the notification stack.
package nodelist

import (
	"errors"
	"iter"
	"log/slog"
)

// Errors returned when a list would be corrupted by an insertion.
var (
	ErrAlreadyLinked = errors.New("item is already linked into the list")
	ErrForeignNode   = errors.New("node does not belong to this list")
)

// Node links a value into a List. The node never owns the value.
type Node[T comparable] struct {
	Value T

	prev, next *Node[T]
	list       *List[T]
}

// Next returns the successor of n, or nil at the tail.
func (n *Node[T]) Next() *Node[T] {
	if n == nil {
		return nil
	}
	return n.next
}

// Prev returns the predecessor of n, or nil at the head.
func (n *Node[T]) Prev() *Node[T] {
	if n == nil {
		return nil
	}
	return n.prev
}

// Linked reports whether n is currently a member of a list.
func (n *Node[T]) Linked() bool {
	return n != nil && n.list != nil
}

// List is an ordered collection keyed by value identity.
// It is not safe for concurrent use.
type List[T comparable] struct {
	head, tail *Node[T]
	len        int
	logger     *slog.Logger
}

// New creates an empty list. A nil logger uses slog.Default().
func New[T comparable](logger *slog.Logger) *List[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &List[T]{logger: logger}
}

// Len returns the number of linked items.
func (l *List[T]) Len() int {
	return l.len
}

// Front returns the head node, or nil if the list is empty.
func (l *List[T]) Front() *Node[T] {
	return l.head
}

// Back returns the tail node, or nil if the list is empty.
func (l *List[T]) Back() *Node[T] {
	return l.tail
}

// Add appends v at the tail.
func (l *List[T]) Add(v T) (*Node[T], error) {
	return l.Insert(l.tail, v)
}

// InsertHead links v as the new head.
func (l *List[T]) InsertHead(v T) (*Node[T], error) {
	return l.Insert(nil, v)
}

// Insert links v immediately after the given node, or at the head when
// after is nil.
func (l *List[T]) Insert(after *Node[T], v T) (*Node[T], error) {
	if after != nil && after.list != l {
		return nil, ErrForeignNode
	}
	if l.Find(v) != nil {
		l.logger.Error("refusing double insertion", "item", v)
		return nil, ErrAlreadyLinked
	}

	n := &Node[T]{Value: v, list: l}
	if after == nil {
		n.next = l.head
		if l.head != nil {
			l.head.prev = n
		}
		l.head = n
		if l.tail == nil {
			l.tail = n
		}
	} else {
		n.prev = after
		n.next = after.next
		if after.next != nil {
			after.next.prev = n
		} else {
			l.tail = n
		}
		after.next = n
	}
	l.len++
	return n, nil
}

// Remove unlinks the node holding v. Removing an absent item is a no-op
// and reports false.
func (l *List[T]) Remove(v T) bool {
	n := l.Find(v)
	if n == nil {
		l.logger.Info("remove: node not found", "item", v)
		return false
	}
	l.unlink(n)
	return true
}

func (l *List[T]) unlink(n *Node[T]) {
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
	n.prev = nil
	n.next = nil
	n.list = nil
	l.len--
}

// Find returns the node holding v, or nil.
func (l *List[T]) Find(v T) *Node[T] {
	for n := l.head; n != nil; n = n.next {
		if n.Value == v {
			return n
		}
	}
	return nil
}

// Contains reports whether v is linked into the list.
func (l *List[T]) Contains(v T) bool {
	return l.Find(v) != nil
}

// Clear unlinks every node, head first.
func (l *List[T]) Clear() {
	for l.head != nil {
		l.unlink(l.head)
	}
}

// All iterates values from head to tail.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head; n != nil; {
			next := n.next
			if !yield(n.Value) {
				return
			}
			n = next
		}
	}
}

// Backward iterates values from tail to head.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.tail; n != nil; {
			prev := n.prev
			if !yield(n.Value) {
				return
			}
			n = prev
		}
	}
}

// Values returns the values from head to tail as a slice.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.len)
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}
