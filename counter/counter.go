// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Counter - number of open connections
//
// just a 64 bit unsigned integer updated atomically
type Counter uint64

// Acquire - add 1 unless the counter is already at limit
//
// returns false if the limit was reached and nothing was added
func (c *Counter) Acquire(limit uint64) bool {
	for {
		current := atomic.LoadUint64((*uint64)(c))
		if current >= limit {
			return false
		}
		if atomic.CompareAndSwapUint64((*uint64)(c), current, current+1) {
			return true
		}
	}
}

// Release - subtract 1, returns new value
func (c *Counter) Release() uint64 {
	return atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Uint64 - returns current value
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}
