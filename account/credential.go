// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/cidregistry/fault"
)

// CredentialLength - number of bytes in an owner credential
const CredentialLength = 32

// Credential - the identity allowed to publish to an account
//
// when signatures are checked this is an ed25519 public key
type Credential [CredentialLength]byte

// bitmark account encoding constants
//
// key variant byte: algorithm << 4 | test bit | public key bit
// followed by the key then the first 4 bytes of SHA3-256(variant ++ key)
const (
	ed25519Algorithm = 0x01
	algorithmShift   = 4
	publicKeyCode    = 0x01
	testKeyCode      = 0x02
	checksumLength   = 4
)

// CredentialFromBytes - copy a 32 byte slice into a credential
func CredentialFromBytes(buffer []byte) (Credential, error) {
	var c Credential
	if CredentialLength != len(buffer) {
		return c, fault.InvalidKeyLength
	}
	copy(c[:], buffer)
	return c, nil
}

// String - raw base58 of the key bytes
func (c Credential) String() string {
	return base58.Encode(c[:])
}

// GoString - for %#v
func (c Credential) GoString() string {
	return "<credential:" + c.String() + ">"
}

// BitmarkString - base58 bitmark account form with key variant and checksum
func (c Credential) BitmarkString(testing bool) string {
	variant := byte(ed25519Algorithm<<algorithmShift) | publicKeyCode
	if testing {
		variant |= testKeyCode
	}
	buffer := append([]byte{variant}, c[:]...)
	checksum := sha3.Sum256(buffer)
	return base58.Encode(append(buffer, checksum[:checksumLength]...))
}

// MarshalText - convert a credential to its base58 JSON form
func (c Credential) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText - convert raw base58 text into a credential
func (c *Credential) UnmarshalText(s []byte) error {
	cr, err := decodeRaw(string(s))
	if nil != err {
		return err
	}
	*c = cr
	return nil
}

// Decoder - convert an external credential representation into
// the fixed length value used by the registry
type Decoder interface {
	Decode(string) (Credential, error)
}

// DecoderFunc - adapt a function to the Decoder interface
type DecoderFunc func(string) (Credential, error)

// Decode - call f(s)
func (f DecoderFunc) Decode(s string) (Credential, error) {
	return f(s)
}

// the available decoders
var (
	RawBase58Decoder = DecoderFunc(decodeRaw)
	BitmarkDecoder   = DecoderFunc(decodeBitmark)
	HexDecoder       = DecoderFunc(decodeHex)
)

// FirstOf - try each decoder in turn, the first success wins
//
// if all fail the error from the last decoder is returned
func FirstOf(decoders ...Decoder) Decoder {
	return DecoderFunc(func(s string) (Credential, error) {
		err := error(fault.InvalidCredential)
		for _, d := range decoders {
			c, e := d.Decode(s)
			if nil == e {
				return c, nil
			}
			err = e
		}
		return Credential{}, err
	})
}

// DefaultDecoder - bitmark account, then raw base58, then hex
func DefaultDecoder() Decoder {
	return FirstOf(BitmarkDecoder, RawBase58Decoder, HexDecoder)
}

// 32 raw bytes in base58, the form of a Solana public key
func decodeRaw(s string) (Credential, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Credential{}, fault.InvalidCredential
	}
	return CredentialFromBytes(buffer)
}

func decodeHex(s string) (Credential, error) {
	buffer, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if nil != err {
		return Credential{}, fault.InvalidCredential
	}
	return CredentialFromBytes(buffer)
}

// bitmark account: variant ++ key ++ checksum
func decodeBitmark(s string) (Credential, error) {
	buffer, err := base58.Decode(s)
	if nil != err || 0 == len(buffer) {
		return Credential{}, fault.InvalidCredential
	}

	variant := buffer[0]
	if publicKeyCode != variant&publicKeyCode {
		return Credential{}, fault.NotPublicKey
	}
	if ed25519Algorithm != variant>>algorithmShift {
		return Credential{}, fault.InvalidKeyType
	}

	if len(buffer) != 1+CredentialLength+checksumLength {
		return Credential{}, fault.InvalidKeyLength
	}

	checksumStart := len(buffer) - checksumLength
	checksum := sha3.Sum256(buffer[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], buffer[checksumStart:]) {
		return Credential{}, fault.ChecksumMismatch
	}
	return CredentialFromBytes(buffer[1:checksumStart])
}
