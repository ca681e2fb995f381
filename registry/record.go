// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"sort"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/fault"
)

// Record - one CID account
type Record struct {
	Owner     account.Credential `json:"owner"`
	Count     uint64             `json:"cid_count"`
	LatestCID string             `json:"latest_cid"`
}

// Accounts - all records keyed by the string form of the account identifier
type Accounts map[string]Record

// Keys - the account keys in ascending order
func (a Accounts) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone - an independent copy
func (a Accounts) Clone() Accounts {
	c := make(Accounts, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// the state transitions, no locking and no I/O

func (a Accounts) initialise(key string, owner account.Credential) error {
	if _, ok := a[key]; ok {
		return fault.AlreadyInitialised
	}
	a[key] = Record{
		Owner:     owner,
		Count:     0,
		LatestCID: "",
	}
	return nil
}

func (a Accounts) storeCID(key string, signer account.Credential, cid string) (Record, error) {
	r, ok := a[key]
	if !ok {
		return Record{}, fault.AccountNotFound
	}
	if r.Owner != signer {
		return Record{}, fault.Unauthorised
	}
	if "" == cid {
		return Record{}, fault.EmptyCID
	}
	r.LatestCID = cid
	r.Count += 1
	a[key] = r
	return r, nil
}

func (a Accounts) get(key string) (Record, error) {
	r, ok := a[key]
	if !ok {
		return Record{}, fault.AccountNotFound
	}
	return r, nil
}
