// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scq

import "unsafe"

// Producer is the interface for enqueueing elements by pointer, adapted to
// this package's surrounding error convention (see errors.go). It mirrors
// the reference SCQ's boolean contract one-for-one: Enqueue returns
// ErrWouldBlock exactly when the underlying SCQ.Enqueue would return false.
type Producer[T any] interface {
	// Enqueue transfers ownership of elem to the queue. Returns nil on
	// success, ErrWouldBlock if the queue is full.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements by pointer.
type Consumer[T any] interface {
	// Dequeue transfers ownership of the returned pointer to the caller.
	// Returns (nil, ErrWouldBlock) if the queue is empty.
	Dequeue() (*T, error)
}

// Generic[T] is a type-safe façade over [SCQ] for *T payloads.
//
// Where SCQ speaks in unsafe.Pointer and booleans (the literal external
// interface the algorithm specifies), Generic[T] speaks in *T and errors,
// matching how the rest of this codebase's non-blocking queues report
// full/empty. Generic[T] performs no allocation and manages no object
// lifetime: it only type-asserts the *T already carried by the caller, so
// ownership transfers exactly as it does through SCQ itself — the producer
// must not touch elem again after Enqueue succeeds.
type Generic[T any] struct {
	scq *SCQ
}

// NewGeneric constructs a Generic[T] of the given capacity. See [NewSCQ]
// for the capacity constraints.
func NewGeneric[T any](capacity int) (*Generic[T], error) {
	s, err := NewSCQ(capacity)
	if err != nil {
		return nil, err
	}
	return &Generic[T]{scq: s}, nil
}

// Cap returns the queue's capacity.
func (g *Generic[T]) Cap() int {
	return g.scq.Cap()
}

// Enqueue transfers ownership of elem to the queue.
// Returns nil on success, ErrWouldBlock if the queue is full.
func (g *Generic[T]) Enqueue(elem *T) error {
	if g.scq.Enqueue(unsafe.Pointer(elem)) {
		return nil
	}
	return ErrWouldBlock
}

// Dequeue transfers ownership of the returned pointer to the caller.
// Returns (nil, ErrWouldBlock) if the queue is empty.
func (g *Generic[T]) Dequeue() (*T, error) {
	ptr, ok := g.scq.Dequeue()
	if !ok {
		return nil, ErrWouldBlock
	}
	return (*T)(ptr), nil
}

var (
	_ Producer[int] = (*Generic[int])(nil)
	_ Consumer[int] = (*Generic[int])(nil)
)
