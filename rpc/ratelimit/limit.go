// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/cidregistry/fault"
)

// default rates for a service
const (
	DefaultLimit = 200
	DefaultBurst = 100
)

// New - token bucket with the default rate
func New() *rate.Limiter {
	return rate.NewLimiter(DefaultLimit, DefaultBurst)
}

// Limit - wait for a single request to be allowed
//
// a request that can never be allowed fails immediately
func Limit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}
