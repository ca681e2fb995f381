// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/cidregistry/fault"
)

// IdentifierLength - number of bytes in an account identifier
const IdentifierLength = 32

// Identifier - opaque account identifier
type Identifier [IdentifierLength]byte

// IdentifierFromBytes - copy a 32 byte slice into an identifier
func IdentifierFromBytes(buffer []byte) (Identifier, error) {
	var id Identifier
	if IdentifierLength != len(buffer) {
		return id, fault.InvalidAccount
	}
	copy(id[:], buffer)
	return id, nil
}

// IdentifierFromBase58 - decode the string key form of an identifier
func IdentifierFromBase58(s string) (Identifier, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Identifier{}, fault.InvalidAccount
	}
	return IdentifierFromBytes(buffer)
}

// String - base58 form, also used as the registry lookup key
func (id Identifier) String() string {
	return base58.Encode(id[:])
}

// GoString - for %#v
func (id Identifier) GoString() string {
	return "<account:" + id.String() + ">"
}

// MarshalText - convert an identifier to its base58 JSON form
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert base58 text into an identifier
func (id *Identifier) UnmarshalText(s []byte) error {
	i, err := IdentifierFromBase58(string(s))
	if nil != err {
		return err
	}
	*id = i
	return nil
}
