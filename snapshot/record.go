// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"fmt"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/fault"
	"github.com/bitmark-inc/cidregistry/registry"
	"github.com/bitmark-inc/cidregistry/util"
)

// packed account:
//
//   key length (varint) ++ key ++ owner (32 bytes) ++ count (varint) ++ cid length (varint) ++ cid
func packAccount(key string, record registry.Record) []byte {
	buffer := make([]byte, 0, len(key)+len(record.LatestCID)+len(record.Owner)+3*util.Varint64MaximumBytes)
	buffer = util.AppendBytes(buffer, []byte(key))
	buffer = append(buffer, record.Owner[:]...)
	buffer = util.AppendVarint64(buffer, record.Count)
	return util.AppendBytes(buffer, []byte(record.LatestCID))
}

func unpackAccount(packed []byte) (string, registry.Record, error) {

	key, packed, err := util.SplitBytes(packed)
	if nil != err {
		return "", registry.Record{}, err
	}
	if 0 == len(key) {
		return "", registry.Record{}, fault.InvalidAccount
	}

	var owner account.Credential
	if len(packed) < len(owner) {
		return "", registry.Record{}, fault.InvalidKeyLength
	}
	copy(owner[:], packed[:len(owner)])
	packed = packed[len(owner):]

	count, n := util.FromVarint64(packed)
	if 0 == n {
		return "", registry.Record{}, fault.InvalidCount
	}
	packed = packed[n:]

	cid, packed, err := util.SplitBytes(packed)
	if nil != err {
		return "", registry.Record{}, err
	}

	if 0 != len(packed) {
		return "", registry.Record{}, fmt.Errorf("account: %q has %d trailing bytes", key, len(packed))
	}

	// a published account always has a cid and a fresh one never does
	if (0 == count) != (0 == len(cid)) {
		return "", registry.Record{}, fmt.Errorf("account: %q count: %d inconsistent with cid: %q", key, count, cid)
	}

	record := registry.Record{
		Owner:     owner,
		Count:     count,
		LatestCID: string(cid),
	}
	return string(key), record, nil
}
