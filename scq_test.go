// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scq_test

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/cycliq/scq"
)

// TestSCQPointerIdentity is scenario S1 / property 5: a single
// enqueue-then-dequeue with no other activity returns the same pointer.
func TestSCQPointerIdentity(t *testing.T) {
	q := scq.NewSCQ64()

	val := uint32(0xDEADBEEF)
	ptr := unsafe.Pointer(&val)

	if ok := q.Enqueue(ptr); !ok {
		t.Fatal("Enqueue: want success on empty queue")
	}
	got, ok := q.Dequeue()
	if !ok {
		t.Fatal("Dequeue: want value")
	}
	if got != ptr {
		t.Fatalf("Dequeue: got %p, want %p", got, ptr)
	}
	if *(*uint32)(got) != val {
		t.Fatalf("Dequeue payload: got %x, want %x", *(*uint32)(got), val)
	}
}

// TestSCQFillAndDrain is scenario S2: fill to capacity, confirm the
// capacity+1'th enqueue fails, drain fully, and confirm the multiset of
// dequeued pointers equals the enqueued set.
func TestSCQFillAndDrain(t *testing.T) {
	q := scq.NewSCQ64()
	const n = 64

	values := make([]uint32, n)
	want := make(map[unsafe.Pointer]bool, n)
	for i := range values {
		values[i] = uint32(i + 1)
		ptr := unsafe.Pointer(&values[i])
		if ok := q.Enqueue(ptr); !ok {
			t.Fatalf("Enqueue(%d): want success", i)
		}
		want[ptr] = true
	}

	extra := uint32(0xFFFF)
	if ok := q.Enqueue(unsafe.Pointer(&extra)); ok {
		t.Fatal("Enqueue on full SCQ: want false")
	}

	got := make(map[unsafe.Pointer]bool, n)
	for i := 0; i < n; i++ {
		ptr, ok := q.Dequeue()
		if !ok {
			t.Fatalf("Dequeue(%d): want value", i)
		}
		got[ptr] = true
	}
	if len(got) != n {
		t.Fatalf("dequeued %d distinct pointers, want %d", len(got), n)
	}
	for ptr := range want {
		if !got[ptr] {
			t.Fatalf("pointer %p enqueued but never dequeued", ptr)
		}
	}

	if _, ok := q.Dequeue(); ok {
		t.Fatal("Dequeue on drained SCQ: want empty")
	}
}

// TestSCQSlotConservation exercises property 4: |fq| + |aq| == N at every
// quiescent point, observed indirectly by confirming Cap() enqueues
// succeed, the next fails, a full drain succeeds, and the cycle repeats —
// which can only hold if no slot index is ever lost or duplicated between
// the two rings.
func TestSCQSlotConservation(t *testing.T) {
	q := scq.NewSCQ64()
	const n = 64

	for round := 0; round < 3; round++ {
		placeholders := make([]int, n)
		for i := 0; i < n; i++ {
			if ok := q.Enqueue(unsafe.Pointer(&placeholders[i])); !ok {
				t.Fatalf("round %d: Enqueue(%d): want success", round, i)
			}
		}
		if ok := q.Enqueue(unsafe.Pointer(&placeholders[0])); ok {
			t.Fatalf("round %d: Enqueue past capacity: want false", round)
		}
		for i := 0; i < n; i++ {
			if _, ok := q.Dequeue(); !ok {
				t.Fatalf("round %d: Dequeue(%d): want value", round, i)
			}
		}
		if _, ok := q.Dequeue(); ok {
			t.Fatalf("round %d: Dequeue past empty: want false", round)
		}
	}
}

// TestSCQCapacityRejection exercises NewSCQ's capacity validation and the
// fix for spec §9 Open Question 2: a valid, non-64 capacity is honored
// rather than silently overwritten.
func TestSCQCapacityRejection(t *testing.T) {
	if _, err := scq.NewSCQ(10); err == nil {
		t.Fatal("NewSCQ(10): want error (10 is not a multiple of 8)")
	} else {
		var capErr *scq.CapacityError
		if !errors.As(err, &capErr) {
			t.Fatalf("NewSCQ(10) error: got %T, want *scq.CapacityError", err)
		}
	}

	q, err := scq.NewSCQ(16)
	if err != nil {
		t.Fatalf("NewSCQ(16): %v", err)
	}
	if q.Cap() != 16 {
		t.Fatalf("Cap: got %d, want 16 (NewSCQ must honor a valid non-64 capacity)", q.Cap())
	}

	var x int
	for i := 0; i < 16; i++ {
		if ok := q.Enqueue(unsafe.Pointer(&x)); !ok {
			t.Fatalf("Enqueue(%d) on 16-capacity SCQ: want success", i)
		}
	}
	if ok := q.Enqueue(unsafe.Pointer(&x)); ok {
		t.Fatal("Enqueue past capacity 16: want false")
	}
}

// TestSCQFreeListDistinctSlots exercises the fix for spec §9 Open
// Question 1: a freshly constructed SCQ must hand out N distinct slot
// indices before any repeat, not the same index N times.
//
// This is verified indirectly: enqueueing N distinct pointers must succeed
// N times without ever overwriting data already written by an earlier
// enqueue in the same batch. If fq handed out the same index repeatedly
// (the reference implementation's bug), later Enqueue calls would clobber
// data[0] instead of filling the other slots, and a full drain would
// return far fewer than N distinct pointers.
func TestSCQFreeListDistinctSlots(t *testing.T) {
	q := scq.NewSCQ64()
	const n = 64

	values := make([]int, n)
	for i := range values {
		values[i] = i
		if ok := q.Enqueue(unsafe.Pointer(&values[i])); !ok {
			t.Fatalf("Enqueue(%d): want success", i)
		}
	}

	seen := make(map[unsafe.Pointer]bool, n)
	for i := 0; i < n; i++ {
		ptr, ok := q.Dequeue()
		if !ok {
			t.Fatalf("Dequeue(%d): want value", i)
		}
		if seen[ptr] {
			t.Fatalf("pointer %p dequeued twice — fq handed out a duplicate slot index", ptr)
		}
		seen[ptr] = true
	}
	if len(seen) != n {
		t.Fatalf("got %d distinct pointers back, want %d", len(seen), n)
	}
}
