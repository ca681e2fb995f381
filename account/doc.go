// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - fixed length identities used by the registry
//
// An Identifier names one CID account, a Credential names the
// identity allowed to publish to it.  Both are 32 byte values; the
// registry only compares them for equality.  Turning text into these
// values is the job of a Decoder, and checking that a request really
// came from a credential holder is the job of a Verifier; both are
// supplied by the request gateway.
package account
