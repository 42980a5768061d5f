// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scq

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates an operation cannot proceed immediately.
//
// SCQ reports full/empty, and Ring reports empty, as a plain boolean — there is no
// allocation or I/O behind that answer, just a predicate on two atomics.
// ErrWouldBlock exists for [Generic], which adapts that boolean into this
// package's surrounding error convention so it composes with other
// non-blocking code in the same ecosystem.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := gq.Enqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if scq.IsWouldBlock(err) {
//	        backoff.Wait() // Adaptive backpressure
//	        continue
//	    }
//	    return err // Unexpected error
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil or ErrWouldBlock. Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// errInvalidCapacity is the sentinel every [CapacityError] wraps, so
// callers can test for the class with errors.Is without inspecting fields.
var errInvalidCapacity = errors.New("scq: invalid capacity")

// CapacityError reports why a requested Ring or SCQ capacity was rejected
// at construction time. Construction failure is the one place this package
// returns an ordinary Go error instead of a boolean or ErrWouldBlock: it
// happens once, off the hot path, and the caller reasonably wants to know
// why, not just that it failed.
type CapacityError struct {
	Capacity int
	Reason   string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("scq: invalid capacity %d: %s", e.Capacity, e.Reason)
}

func (e *CapacityError) Unwrap() error {
	return errInvalidCapacity
}

func newCapacityError(capacity int, reason string) error {
	return &CapacityError{Capacity: capacity, Reason: reason}
}
