// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/fault"
)

// Persister - durable storage for the complete set of accounts
//
// Save is called with the registry locked and must not retain the
// map after it returns
type Persister interface {
	Save(Accounts) error
}

// Registry - the account store
type Registry struct {
	mu sync.Mutex

	log       *logger.L
	accounts  Accounts
	persister Persister
}

// New - create a registry holding the accounts restored from a snapshot
//
// accounts may be nil for an empty registry
func New(log *logger.L, accounts Accounts, persister Persister) (*Registry, error) {
	if nil == log || nil == persister {
		return nil, fault.MissingParameters
	}
	if nil == accounts {
		accounts = make(Accounts)
	}
	log.Infof("registry holds: %d accounts", len(accounts))
	return &Registry{
		log:       log,
		accounts:  accounts,
		persister: persister,
	}, nil
}

// Initialise - create a new account owned by owner
func (r *Registry) Initialise(id account.Identifier, owner account.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := id.String()
	if err := r.accounts.initialise(key, owner); nil != err {
		r.log.Debugf("initialise: %s  error: %s", key, err)
		return err
	}
	r.log.Infof("initialised account: %s", key)

	return r.save("initialise", key)
}

// StoreCID - publish a CID to an account
//
// only the owner may publish; every success increments the count even
// if the CID is unchanged
func (r *Registry) StoreCID(id account.Identifier, signer account.Credential, cid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := id.String()
	record, err := r.accounts.storeCID(key, signer, cid)
	if nil != err {
		r.log.Debugf("store: %s  error: %s", key, err)
		return err
	}
	r.log.Infof("stored cid: %q  account: %s  count: %d", record.LatestCID, key, record.Count)

	return r.save("store", key)
}

// Get - current state of an account
func (r *Registry) Get(id account.Identifier) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.accounts.get(id.String())
}

// Count - number of accounts
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.accounts)
}

// Accounts - copy of all accounts
func (r *Registry) Accounts() Accounts {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.accounts.Clone()
}

// Save - write the current state again
//
// used to retry after a persistence error; nothing is re-applied
func (r *Registry) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.save("flush", "*")
}

// must be called with the lock held
func (r *Registry) save(operation string, key string) error {
	err := r.persister.Save(r.accounts)
	if nil != err {
		r.log.Warnf("%s: %s: applied in memory but not durable: %s", operation, key, err)
		return fault.Persistence(err)
	}
	return nil
}
