// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"net"
	"strings"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/fault"
)

var (
	ErrRequiredAccount = fault.InvalidError("account is required")
	ErrRequiredCID     = fault.InvalidError("cid is required")
	ErrRequiredConnect = fault.InvalidError("connect is required")
	ErrRequiredKey     = fault.InvalidError("private key or public key is required")
)

// connect is required as HOST:PORT
func checkConnect(connect string) (string, error) {
	connect = strings.TrimSpace(connect)
	if "" == connect {
		return "", ErrRequiredConnect
	}
	if _, _, err := net.SplitHostPort(connect); nil != err {
		return "", err
	}
	return connect, nil
}

// account is required and must be base58 of 32 bytes
func checkAccount(s string) (account.Identifier, error) {
	if "" == s {
		return account.Identifier{}, ErrRequiredAccount
	}
	return account.IdentifierFromBase58(s)
}

// cid is required, syntax is left to the daemon
func checkCID(s string) (string, error) {
	if "" == s {
		return "", ErrRequiredCID
	}
	return s, nil
}

// an explicit public key wins, otherwise derive it from the private key
func checkCredential(m *metadata, s string) (account.Credential, error) {
	if "" != s {
		return account.DefaultDecoder().Decode(s)
	}
	if nil == m.privateKey {
		return account.Credential{}, ErrRequiredKey
	}
	return credentialOf(m.privateKey)
}
