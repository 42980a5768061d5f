// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// cellBytes is the size of one ring cell: a single 64-bit atomic word
// packing a 32-bit cycle in the high half and a 32-bit payload in the low
// half. Cycle and payload are updated together by one CAS on that word —
// never as two independent atomics — so a cell can never be observed half
// written.
const cellBytes = 8

// cacheLineBytes is the assumed coherency granule used by the cache remap
// in remap below.
const cacheLineBytes = 64

// entriesPerLine is how many ring cells fit in one cache line.
const entriesPerLine = cacheLineBytes / cellBytes

// Ring is a bounded, lock-free MPMC queue of 32-bit words.
//
// Every enqueue and dequeue is driven purely by compare-and-swap on a
// cell's packed (cycle, payload) word plus the ring's head/tail counters —
// there is no lock, no blocking, and no bound on retries other than the
// standard lock-free progress argument: a thread only retries because some
// other thread just committed a CAS, which is itself forward progress for
// the ring as a whole.
//
// Ring does not track fullness. Enqueue assumes the caller has already
// reserved a slot (SCQ does this by first popping a free index from its
// fq ring); calling Enqueue on an already-full ring is undefined behavior.
// Dequeue has no such precondition — it simply reports "empty" via its
// boolean result.
type Ring struct {
	_      pad
	tail   atomix.Uint64 // producer position
	_      pad
	head   atomix.Uint64 // consumer position
	_      pad
	buf    []atomix.Uint64 // packed (cycle<<32 | payload) cells
	n      uint64          // capacity (num_entries); need not be a power of 2
	lines  uint64          // n / entriesPerLine, when remap applies
	direct bool            // true when n doesn't satisfy remap's constraints
}

// NewRing constructs a ring of the given capacity.
//
// full selects the initial state:
//
//   - false: an empty ring. head = tail = n; no cell is full for cycle 1.
//   - true: a full ring. head = 0, tail = n; every cell is full at cycle 0
//     with payload 0 (every slot reads back as the value 0 until a
//     producer writes it on the next lap). This is a convenience for
//     standalone Ring users (it is what scenario S5 / property 3 exercise in
//     the package tests); it is deliberately NOT used by SCQ to seed its free
//     list, since a uniform zero payload is useless as a set of distinct
//     slot indices — see [NewSCQ].
//
// NewRing returns a [*CapacityError] instead of panicking so construction
// failures compose with ordinary Go error handling, per this package's
// error-handling design (see errors.go).
func NewRing(n int, full bool) (*Ring, error) {
	if n < 1 {
		return nil, newCapacityError(n, "capacity must be >= 1")
	}

	r := &Ring{
		buf: make([]atomix.Uint64, n),
		n:   uint64(n),
	}
	if n < entriesPerLine || n%entriesPerLine != 0 {
		r.direct = true
	} else {
		r.lines = uint64(n) / entriesPerLine
	}

	if full {
		r.head.StoreRelaxed(0)
		r.tail.StoreRelaxed(uint64(n))
	} else {
		r.head.StoreRelaxed(uint64(n))
		r.tail.StoreRelaxed(uint64(n))
	}
	// buf is already all-zero from make(): every cell starts at cycle 0,
	// payload 0, which is exactly the reference initial state for both
	// the empty and the full ring (see spec §3, Initial state).
	return r, nil
}

// Cap returns the ring's capacity (num_entries).
func (r *Ring) Cap() int {
	return int(r.n)
}

// remap scatters logically adjacent indices across distinct physical cache
// lines, so that producers/consumers working on nearby ring positions
// contend on different lines instead of the same one.
//
// Requirements for the striping formula to be a bijection on [0, n): n must
// be a multiple of entriesPerLine and lines = n/entriesPerLine must be >= 1
// (i.e. n >= entriesPerLine). When a ring's capacity doesn't meet that bar,
// remap falls back to the identity mapping rather than rejecting
// construction outright — the spec allows either reference behavior.
func (r *Ring) remap(i uint64) uint64 {
	if r.direct {
		return i
	}
	return entriesPerLine*(i%r.lines) + i/r.lines
}

func splitCell(word uint64) (cycle, payload uint32) {
	return uint32(word >> 32), uint32(word)
}

func makeCell(cycle, payload uint32) uint64 {
	return uint64(cycle)<<32 | uint64(payload)
}

// Enqueue adds val to the ring. The caller must have already reserved
// capacity (the ring has no internal fullness check); calling Enqueue on a
// full ring is undefined behavior.
func (r *Ring) Enqueue(val uint32) {
	sw := spin.Wait{}
	for {
		t := r.tail.LoadAcquire()
		idx := t % r.n
		tCycle := uint32(t / r.n)

		j := r.remap(idx)
		e := r.buf[j].LoadAcquire()
		eCycle, _ := splitCell(e)

		switch {
		case eCycle == tCycle:
			// Another producer already wrote this cell for this lap but
			// hasn't bumped tail yet. Help it along and restart.
			r.tail.CompareAndSwapAcqRel(t, t+1)
			sw.Once()
			continue
		case eCycle+1 != tCycle:
			// tail was read before other producers finished a whole lap
			// past it. Stale view — restart.
			sw.Once()
			continue
		}

		newE := makeCell(tCycle, val)
		if !r.buf[j].CompareAndSwapAcqRel(e, newE) {
			sw.Once()
			continue
		}
		// Best effort: if this loses, some other thread already advanced
		// tail on our behalf (the helper-CAS path above), which is fine.
		r.tail.CompareAndSwapAcqRel(t, t+1)
		return
	}
}

// Dequeue removes and returns the next value from the ring. The second
// return reports whether a value was available; (0, false) means the ring
// was empty from this consumer's point of view.
func (r *Ring) Dequeue() (uint32, bool) {
	sw := spin.Wait{}
	for {
		h := r.head.LoadAcquire()
		idx := h % r.n
		hCycle := uint32(h / r.n)

		j := r.remap(idx)
		e := r.buf[j].LoadAcquire()
		eCycle, payload := splitCell(e)

		switch {
		case eCycle == hCycle:
			if r.head.CompareAndSwapAcqRel(h, h+1) {
				return payload, true
			}
			sw.Once()
		case eCycle+1 == hCycle:
			return 0, false
		default:
			// head is stale relative to this cell; restart.
			sw.Once()
		}
	}
}
