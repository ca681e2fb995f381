// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/cidregistry/account"
)

// fixed seeds so that keys are the same on every run
var (
	ownerSeed    = []byte("cidregistry-fixture-owner-seed!!")
	intruderSeed = []byte("cidregistry-fixture-intruder-key")
)

// test identities
var (
	Account1 = account.Identifier{0x01, 0x02, 0x03}
	Account2 = account.Identifier{0xa0, 0xb0, 0xc0}

	OwnerPrivateKey    = ed25519.NewKeyFromSeed(ownerSeed)
	IntruderPrivateKey = ed25519.NewKeyFromSeed(intruderSeed)

	Owner    = credential(OwnerPrivateKey)
	Intruder = credential(IntruderPrivateKey)
)

// CIDs from the IPFS documentation
const (
	CID1 = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
	CID2 = "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"
	CID3 = "bafkreihdwdcefgh4dqkjv67uzcmw7ojee6xedzdetojuzjevtenxquvyku"
)

func credential(privateKey ed25519.PrivateKey) account.Credential {
	c, err := account.CredentialFromBytes(privateKey.Public().(ed25519.PublicKey))
	if nil != err {
		panic(err)
	}
	return c
}
