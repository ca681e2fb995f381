// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cid

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/fault"
)

// verbs included in signed messages
const (
	initialiseVerb = "initialise"
	storeVerb      = "store"
)

// InitialiseMessage - the bytes an owner signs to create an account
func InitialiseMessage(id account.Identifier, timestamp int64) []byte {
	return message(initialiseVerb, id, timestamp, "")
}

// StoreMessage - the bytes an owner signs to publish a cid
func StoreMessage(id account.Identifier, timestamp int64, cid string) []byte {
	return message(storeVerb, id, timestamp, cid)
}

// verb ++ 0x00 ++ account ++ timestamp (8 bytes big endian) ++ cid
func message(verb string, id account.Identifier, timestamp int64, cid string) []byte {
	buffer := make([]byte, 0, len(verb)+1+len(id)+8+len(cid))
	buffer = append(buffer, verb...)
	buffer = append(buffer, 0x00)
	buffer = append(buffer, id[:]...)
	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(timestamp))
	buffer = append(buffer, ts...)
	return append(buffer, cid...)
}

type authenticator struct {
	required bool
	window   time.Duration
	verifier account.Verifier
	seen     *cache.Cache
}

func newAuthenticator(required bool, window time.Duration, verifier account.Verifier) *authenticator {
	return &authenticator{
		required: required,
		window:   window,
		verifier: verifier,
		seen:     cache.New(2*window, window),
	}
}

// check a request signature
//
// an unsigned request passes only when signatures are not required; a
// signature that is present is always checked
func (a *authenticator) check(signer account.Credential, message []byte, timestamp int64, signature account.Signature) error {
	if 0 == len(signature) {
		if a.required {
			return fault.SignatureRequired
		}
		return nil
	}

	now := time.Now()
	t := time.Unix(timestamp, 0)
	if t.Before(now.Add(-a.window)) || t.After(now.Add(a.window)) {
		return fault.SignatureExpired
	}

	if err := a.verifier.Verify(signer, message, signature); nil != err {
		return err
	}

	// remembered long enough to cover the whole window
	if err := a.seen.Add(hex.EncodeToString(signature), struct{}{}, 2*a.window); nil != err {
		return fault.RequestReplayed
	}
	return nil
}
