// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"sync"
	"time"

	"github.com/bitmark-inc/cidregistry/fault"
)

// DefaultTimeout - limit on a single save
const DefaultTimeout = 5 * time.Second

// bounded - state shared between a save and its background I/O
type bounded struct {
	sync.Mutex
	abandoned bool
	committed bool
}

// commit - called by the I/O just before its irreversible step
//
// returns false if the save has already timed out, in which case the
// I/O must clean up and not commit
func (b *bounded) commit() bool {
	b.Lock()
	defer b.Unlock()
	if b.abandoned {
		return false
	}
	b.committed = true
	return true
}

// run the operation in the background and wait at most timeout for it
//
// once the operation has committed the wait continues until it
// finishes, so a timeout error always means nothing was written
func runBounded(timeout time.Duration, operation func(b *bounded) error) error {
	b := &bounded{}
	done := make(chan error, 1)

	go func() {
		done <- operation(b)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
	}

	b.Lock()
	if !b.committed {
		b.abandoned = true
		b.Unlock()
		return fault.PersistenceTimeout
	}
	b.Unlock()

	return <-done
}
