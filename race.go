// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package scq

// RaceEnabled is true when the race detector is active.
//
// Tests use this to skip scenarios the race detector cannot reason about:
// it tracks happens-before through mutexes, channels, and WaitGroups, not
// through acquire/release orderings on separate atomics, so a perfectly
// correct CAS-protected handoff can still read as a false positive.
const RaceEnabled = true
