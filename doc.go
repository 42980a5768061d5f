// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package scq provides a lock-free bounded ring buffer of 32-bit words and
// a Scalable Circular Queue (SCQ) built from two such rings.
//
// # Layers
//
// [Ring] is the hard part: a bounded MPMC queue of 32-bit values where
// every enqueue and dequeue is driven by compare-and-swap on a single
// 64-bit cell (a packed cycle/payload pair) plus the ring's head/tail
// counters. [SCQ] composes two Rings — a free-index pool (fq) and an
// allocated-index set (aq) — with a side array of payload pointers, giving
// a bounded MPMC queue of unsafe.Pointer values. [Generic] is a thin
// type-safe wrapper over SCQ for *T payloads.
//
// # Quick Start
//
//	// Raw pointer queue
//	q, err := scq.NewSCQ(64)
//	ptr := unsafe.Pointer(&someValue)
//	ok := q.Enqueue(ptr)      // false if full
//	got, ok := q.Dequeue()    // (nil, false) if empty
//
//	// Type-safe wrapper
//	gq, err := scq.NewGeneric[Request](64)
//	err = gq.Enqueue(&req)             // ErrWouldBlock if full
//	req, err := gq.Dequeue()           // (nil, ErrWouldBlock) if empty
//
//	// Standalone ring of raw 32-bit words
//	r, err := scq.NewRing(64, false) // empty
//	r.Enqueue(42)
//	v, ok := r.Dequeue() // v == 42, ok == true
//
// # Non-blocking
//
// Every operation is non-blocking: Enqueue/Dequeue either make progress or
// report full/empty immediately. There is no parking, no condition
// variable, and no bound on CAS retries other than contention itself —
// each retry is caused by another thread's CAS succeeding, which is
// forward progress for the structure as a whole (lock-free, but not
// wait-free: an individual thread can retry arbitrarily many times under
// sustained contention, but the system never stalls).
//
// # Ownership
//
// Ring and SCQ carry opaque values — they never allocate, free, or inspect
// the things a caller enqueues. SCQ transfers unsafe.Pointer ownership from
// producer to consumer exactly once per successful Enqueue/Dequeue pair;
// Generic[T] preserves that transfer for *T. Callers are responsible for
// the lifetime of whatever they enqueue.
//
// # Capacity
//
// Ring accepts any capacity >= 1; SCQ requires a capacity that is a
// positive multiple of the cache-line stripe width (8 cells per 64-byte
// line on the 64-bit-cell packing this package uses), matching the
// constraints its cache remap needs to be a bijection. [DefaultSCQCapacity]
// (64) always qualifies. Construction failures are reported as a
// [*CapacityError], not a panic, so callers can handle a bad capacity like
// any other recoverable error.
//
// # Per-slot ownership invariant
//
// Between SCQ.Enqueue's fq.Dequeue and aq.Enqueue calls, the slot index
// just popped from fq is exclusively owned by that goroutine: it has left
// fq and has not yet been published to aq, so no other goroutine can
// observe or touch that index. The symmetric argument holds for Dequeue
// between aq.Dequeue and fq.Enqueue. This is what makes the non-atomic
// read/write of SCQ's data[idx] slot safe without its own atomic — the two
// rings do all the necessary synchronization.
//
// # Error Handling
//
// SCQ reports full/empty, and Ring reports empty, as a plain boolean (Ring
// has no fullness check; its Enqueue returns nothing) — that is the literal
// interface the algorithm specifies, and there is no failure mode richer
// than "not right now" to report. [Generic] adapts that boolean into
// [ErrWouldBlock] for callers that want to compose with this package's
// surrounding error conventions:
//
//	err := gq.Enqueue(&item)
//	if scq.IsWouldBlock(err) {
//	    // full — retry later, with backoff
//	}
//
// [ErrWouldBlock] is sourced from [code.hybscloud.com/iox] for ecosystem
// consistency; [CapacityError] is this package's own, since construction
// failure (unlike full/empty) is not a recurring control-flow signal.
//
// # Race Detection
//
// Go's race detector tracks happens-before through mutexes, channels, and
// WaitGroups — not through acquire/release orderings on independent
// atomics. A correctly synchronized CAS-protected handoff, like SCQ's
// data[idx] slot, can still read as a false positive under -race. See
// [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [code.hybscloud.com/spin] for CPU pause instructions in
// its CAS retry loops.
package scq
