// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package snapshot - durable storage of the registry accounts
//
// two backends are available:
//
//   file     - a single file of tagged records, replaced atomically
//              on every save
//   leveldb  - a LevelDB database, all account keys replaced in one
//              synced batch
//
// Load never fails: a missing snapshot and an unreadable snapshot both
// produce an empty set of accounts, but are logged differently.
package snapshot
