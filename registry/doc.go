// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - ownership gated CID accounts
//
// Each account is created once by Initialise, then its owner may
// publish CIDs to it any number of times with StoreCID.  Every
// publication replaces the latest CID and increments the count.
//
// state machine for one account:
//
//   Uninitialised --Initialise--> Initialised
//   Initialised   --StoreCID(owner)--> Initialised   (count+1)
//
// there is no delete and no re-initialise.
//
// All accounts are held in memory by a single Registry protected by
// one mutex.  A mutation and the snapshot write that follows it are
// done under the same lock so a snapshot never contains a partly
// applied operation.
package registry
