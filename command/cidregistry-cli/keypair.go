// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/fault"
)

// KeyPair - printed by the generate command
type KeyPair struct {
	Account        string `json:"account"`
	Owner          string `json:"owner"`
	BitmarkAccount string `json:"bitmark_account"`
	PublicKey      string `json:"public_key"`
	PrivateKey     string `json:"private_key"`
}

// makeKeyPair - new random signing key and account identifier
func makeKeyPair(testnet bool) (*KeyPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}

	var id account.Identifier
	if _, err := rand.Read(id[:]); nil != err {
		return nil, err
	}

	owner, err := account.CredentialFromBytes(publicKey)
	if nil != err {
		return nil, err
	}

	return &KeyPair{
		Account:        id.String(),
		Owner:          owner.String(),
		BitmarkAccount: owner.BitmarkString(testnet),
		PublicKey:      hex.EncodeToString(publicKey),
		PrivateKey:     hex.EncodeToString(privateKey),
	}, nil
}

// parsePrivateKey - hex of either a 32 byte seed or a 64 byte private key
func parsePrivateKey(s string) (ed25519.PrivateKey, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if nil != err {
		return nil, err
	}

	switch len(b) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(b), nil
	case ed25519.PrivateKeySize:
		key := ed25519.PrivateKey(b)
		if !bytes.Equal(key.Public().(ed25519.PublicKey), b[ed25519.SeedSize:]) {
			return nil, fault.NotPublicKey
		}
		return key, nil
	default:
		return nil, fault.InvalidKeyLength
	}
}

// credentialOf - the owner credential for a private key
func credentialOf(key ed25519.PrivateKey) (account.Credential, error) {
	return account.CredentialFromBytes(key.Public().(ed25519.PublicKey))
}
