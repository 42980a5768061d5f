// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scq

import "unsafe"

// DefaultSCQCapacity is the capacity this package's reference scenarios
// and tests are built around. It satisfies Ring's cache-remap constraints
// (64 is a multiple of entriesPerLine) and is the recommended capacity for
// new SCQ callers that don't have a specific reason to pick another.
const DefaultSCQCapacity = 64

// SCQ is a bounded MPMC queue of opaque pointers (the "Scalable Circular
// Queue" of Nikolaev, DISC 2019), built by composing two [Ring]s:
//
//   - fq ("free queue"): holds the indices of slots not currently in use.
//   - aq ("allocated queue"): holds the indices of slots holding a live
//     payload.
//
// A side array data[0..N) maps index -> payload pointer. Enqueue takes an
// index from fq, writes the pointer into data, and publishes the index to
// aq. Dequeue takes an index from aq, reads data, and returns the index to
// fq. Between those steps the slot is exclusively owned by the calling
// goroutine (it has left one ring and not yet entered the other), so the
// non-atomic read/write of data[idx] is race-free without its own atomic —
// see the per-slot invariant in package doc.go.
//
// SCQ adds no shared mutable state beyond its two Rings and the per-slot
// data cells, so it inherits the Ring's lock-freedom directly.
type SCQ struct {
	fq   *Ring
	aq   *Ring
	data []unsafe.Pointer
	n    uint64
}

// NewSCQ constructs an SCQ of the given capacity.
//
// n must satisfy the same cache-remap constraints as [Ring] (a multiple of
// entriesPerLine, at least entriesPerLine) or NewSCQ returns a
// [*CapacityError]. Unlike the reference C implementation — which rejected
// n > 64 and then unconditionally overwrote n with 64 regardless of what
// was requested (almost certainly a bug, see DESIGN.md) — NewSCQ honors
// whatever valid n the caller asks for. 64 remains the recommended default;
// see [NewSCQ64].
func NewSCQ(n int) (*SCQ, error) {
	if n < entriesPerLine || n%entriesPerLine != 0 {
		return nil, newCapacityError(n, "must be a positive multiple of the ring's cache-line stripe width")
	}

	fq, err := NewRing(n, false)
	if err != nil {
		return nil, err
	}
	// Seed fq with the distinct slot indices 0..n-1 via explicit enqueues
	// into an empty ring, rather than constructing it as an "init full"
	// ring. A full ring's all-zero cells would read back as payload 0 at
	// every index, so every early consumer would receive slot 0 — see
	// spec §9 Open Question 1. This is the fix.
	for i := 0; i < n; i++ {
		fq.Enqueue(uint32(i))
	}

	aq, err := NewRing(n, false)
	if err != nil {
		return nil, err
	}

	return &SCQ{
		fq:   fq,
		aq:   aq,
		data: make([]unsafe.Pointer, n),
		n:    uint64(n),
	}, nil
}

// NewSCQ64 constructs an SCQ of [DefaultSCQCapacity]. It never fails:
// 64 always satisfies the cache-remap constraints.
func NewSCQ64() *SCQ {
	s, err := NewSCQ(DefaultSCQCapacity)
	if err != nil {
		// Unreachable: DefaultSCQCapacity is a compile-time constant known
		// to satisfy NewSCQ's validation.
		panic(err)
	}
	return s
}

// Cap returns the SCQ's capacity.
func (s *SCQ) Cap() int {
	return int(s.n)
}

// Enqueue publishes ptr to the queue. It returns false if the queue is
// full (fq has no free slot index to offer) and leaves the queue
// unchanged.
func (s *SCQ) Enqueue(ptr unsafe.Pointer) bool {
	idx, ok := s.fq.Dequeue()
	if !ok {
		return false
	}
	s.data[idx] = ptr
	s.aq.Enqueue(idx)
	return true
}

// Dequeue removes and returns the oldest published pointer. It returns
// (nil, false) if the queue is empty.
func (s *SCQ) Dequeue() (unsafe.Pointer, bool) {
	idx, ok := s.aq.Dequeue()
	if !ok {
		return nil, false
	}
	ptr := s.data[idx]
	s.data[idx] = nil // drop the reference before the slot is recycled
	s.fq.Enqueue(idx)
	return ptr, true
}
