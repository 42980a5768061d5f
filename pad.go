// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scq

// pad is cache line padding used to separate hot atomics (head, tail,
// threshold-style fields) so producers and consumers don't bounce the
// same cache line back and forth.
type pad [64]byte
