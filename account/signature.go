// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/cidregistry/fault"
)

// Signature - the type for a signature
type Signature []byte

// String - hex form for %s
func (signature Signature) String() string {
	return hex.EncodeToString(signature)
}

// GoString - for %#v
func (signature Signature) GoString() string {
	return "<signature:" + hex.EncodeToString(signature) + ">"
}

// MarshalText - convert signature to text
func (signature Signature) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(signature)))
	hex.Encode(b, signature)
	return b, nil
}

// UnmarshalText - convert text into a signature
func (signature *Signature) UnmarshalText(s []byte) error {
	sig := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(sig, s)
	if nil != err {
		return fault.InvalidSignature
	}
	*signature = sig[:byteCount]
	return nil
}

// Verifier - check that a message was signed by the holder of a credential
type Verifier interface {
	Verify(signer Credential, message []byte, signature Signature) error
}

// ED25519Verifier - credential is an ed25519 public key
type ED25519Verifier struct{}

// Verify - check an ed25519 signature
func (ED25519Verifier) Verify(signer Credential, message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(signer[:]), message, signature) {
		return fault.InvalidSignature
	}
	return nil
}

// Sign - produce the signature a Verifier expects, for clients and tests
func Sign(privateKey ed25519.PrivateKey, message []byte) Signature {
	return ed25519.Sign(privateKey, message)
}
