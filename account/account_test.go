// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/fault"
)

type bitmarkTest struct {
	testnet       bool
	publicKey     []byte
	base58Account string
}

// valid bitmark accounts
var testBitmarkAccount = []bitmarkTest{
	{
		testnet:       false,
		publicKey:     decodeHex("60b3c6e20cfff7091a86488b1656b96ec0a2f69907e2c035175918f42c37d72e"),
		base58Account: "anF8SWxSRY5vnN3Bbyz9buRYW1hfCAAZxfbv8Fw9SFXaktvLCj",
	},
	{
		testnet:       true,
		publicKey:     decodeHex("731114267f15754a5fce4aaed8380b28aff25af7b378b011d92ef7b3f08910db"),
		base58Account: "eopaSeB7uiSVMdAmTrijq3W2MCWA5KHZrZvm5QLFGRVd3oWNe2",
	},
	{
		testnet:       true,
		publicKey:     decodeHex("cb6ff605f79deba3deb0c5122e40359a258481c151dffc176a2da5e8bc87cd2e"),
		base58Account: "fUjtNvmUJn7yJ7PVP7NT2FZbKDrudFxLVBHkwLJFgKWmGsPNVi",
	},
	{
		testnet:       false,
		publicKey:     decodeHex("0000000000000000000000000000000000000000000000000000000000000000"),
		base58Account: "a3ezwdYVEVrHwszQrYzDTCAZwUD3yKtNsCq9YhEu97bPaGAKy1",
	},
}

func TestBitmarkDecoder(t *testing.T) {
	for i, test := range testBitmarkAccount {
		c, err := account.BitmarkDecoder.Decode(test.base58Account)
		if !assert.Nil(t, err, "%d: decode error", i) {
			continue
		}
		assert.Equal(t, test.publicKey, c[:], "%d: public key", i)
		assert.Equal(t, test.base58Account, c.BitmarkString(test.testnet), "%d: re-encode", i)
	}
}

func TestBitmarkDecoderInvalid(t *testing.T) {
	_, err := account.BitmarkDecoder.Decode("3gLJjLSociTmf4kgL3ztUK;tgADFvg9yjXt1jFbEx9KgpEEAFn")
	assert.Equal(t, fault.InvalidCredential, err, "invalid base58")

	_, err = account.BitmarkDecoder.Decode("anF8SWxSRY5vnN3Bbyz9buRYW1hfCAAZxfbv8Fw9SFXaktvLDj")
	assert.Equal(t, fault.ChecksumMismatch, err, "checksum")

	_, err = account.BitmarkDecoder.Decode("YqVxD4vazrrnxnLH2MzCHJedPPz1VKHnKbVfya39nF96ABAYes")
	assert.Equal(t, fault.NotPublicKey, err, "private key")

	_, err = account.BitmarkDecoder.Decode("anF8SWxSRY5vnN3Bbyz9buRYW1hfCAAZxfbv8Fw9SFXaktvLC")
	assert.NotNil(t, err, "truncated")
}

func TestRawAndHexDecoders(t *testing.T) {
	key := decodeHex("731114267f15754a5fce4aaed8380b28aff25af7b378b011d92ef7b3f08910db")

	c, err := account.RawBase58Decoder.Decode(base58.Encode(key))
	assert.Nil(t, err, "raw base58")
	assert.Equal(t, key, c[:], "raw base58 key")

	c, err = account.HexDecoder.Decode("0x" + hex.EncodeToString(key))
	assert.Nil(t, err, "hex")
	assert.Equal(t, key, c[:], "hex key")

	_, err = account.RawBase58Decoder.Decode(base58.Encode(key[:31]))
	assert.Equal(t, fault.InvalidKeyLength, err, "short key")

	_, err = account.HexDecoder.Decode("zz")
	assert.Equal(t, fault.InvalidCredential, err, "bad hex")
}

func TestDefaultDecoder(t *testing.T) {
	d := account.DefaultDecoder()
	key := testBitmarkAccount[0].publicKey

	for _, s := range []string{
		testBitmarkAccount[0].base58Account,
		base58.Encode(key),
		hex.EncodeToString(key),
	} {
		c, err := d.Decode(s)
		assert.Nil(t, err, "decode: %s", s)
		assert.Equal(t, key, c[:], "key from: %s", s)
	}

	_, err := d.Decode("")
	assert.NotNil(t, err, "empty string")
}

func TestIdentifier(t *testing.T) {
	raw := decodeHex("cb6ff605f79deba3deb0c5122e40359a258481c151dffc176a2da5e8bc87cd2e")
	id, err := account.IdentifierFromBytes(raw)
	assert.Nil(t, err, "from bytes")

	parsed, err := account.IdentifierFromBase58(id.String())
	assert.Nil(t, err, "from base58")
	assert.Equal(t, id, parsed, "round trip")

	_, err = account.IdentifierFromBase58("0OIl")
	assert.Equal(t, fault.InvalidAccount, err, "invalid alphabet")

	_, err = account.IdentifierFromBytes(raw[1:])
	assert.Equal(t, fault.InvalidAccount, err, "short")

	b, err := json.Marshal(struct {
		Account account.Identifier `json:"account"`
	}{id})
	assert.Nil(t, err, "json marshal")
	assert.Equal(t, `{"account":"`+id.String()+`"}`, string(b), "json text")

	var decoded struct {
		Account account.Identifier `json:"account"`
	}
	assert.Nil(t, json.Unmarshal(b, &decoded), "json unmarshal")
	assert.Equal(t, id, decoded.Account, "json round trip")
}

func TestED25519Verifier(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		t.Fatalf("generate key error: %s", err)
	}
	signer, err := account.CredentialFromBytes(publicKey)
	assert.Nil(t, err, "credential")

	message := []byte("store_cid bafkreihdwdcefgh4dqkjv67uzcmw7ojee6xedzdetojuzjevtenxquvyku")
	signature := account.Sign(privateKey, message)

	v := account.ED25519Verifier{}
	assert.Nil(t, v.Verify(signer, message, signature), "valid signature")
	assert.Equal(t, fault.InvalidSignature, v.Verify(signer, []byte("other"), signature), "other message")
	assert.Equal(t, fault.InvalidSignature, v.Verify(signer, message, signature[1:]), "short signature")

	var other account.Credential
	assert.Equal(t, fault.InvalidSignature, v.Verify(other, message, signature), "other signer")
}

func TestSignatureText(t *testing.T) {
	s := account.Signature{0x01, 0xab}
	b, err := s.MarshalText()
	assert.Nil(t, err, "marshal")
	assert.Equal(t, "01ab", string(b), "text")

	var s2 account.Signature
	assert.Nil(t, s2.UnmarshalText(b), "unmarshal")
	assert.Equal(t, s, s2, "round trip")
	assert.Equal(t, fault.InvalidSignature, s2.UnmarshalText([]byte("xyz")), "bad hex")
}

func decodeHex(hexStr string) []byte {
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		panic(err)
	}
	return b
}
