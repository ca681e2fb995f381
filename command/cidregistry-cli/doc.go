// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Publish content identifiers to a cidregistryd
//
// e.g. create a key and account, then publish a CID:
//      (add -v flag to see JSON requests and responses)
//
//   cidregistry-cli generate
//   cidregistry-cli -k PRIVATE-KEY initialise -a ACCOUNT
//   cidregistry-cli -k PRIVATE-KEY store -a ACCOUNT -i CID
//   cidregistry-cli get -a ACCOUNT
package main
