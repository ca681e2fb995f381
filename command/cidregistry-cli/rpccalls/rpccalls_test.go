// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"crypto/tls"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/counter"
	"github.com/bitmark-inc/cidregistry/fault"
	"github.com/bitmark-inc/cidregistry/fixtures"
	"github.com/bitmark-inc/cidregistry/registry"
	"github.com/bitmark-inc/cidregistry/rpc/certificate"
	"github.com/bitmark-inc/cidregistry/rpc/cid"
	"github.com/bitmark-inc/cidregistry/rpc/server"
	"github.com/bitmark-inc/cidregistry/snapshot"
)

var address string

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()

	dir, err := os.MkdirTemp("", "cidregistry-cli")
	if nil != err {
		panic(err)
	}

	log := logger.New(fixtures.LogCategory)
	backend, err := snapshot.New(log, snapshot.Configuration{
		File: filepath.Join(dir, "snapshot"),
	})
	if nil != err {
		panic(err)
	}
	reg, err := registry.New(log, backend.Load(), backend)
	if nil != err {
		panic(err)
	}

	tlsConfig, _, err := certificate.Get(log, "test", fixtures.Certificate(), fixtures.Key())
	if nil != err {
		panic(err)
	}

	c := counter.Counter(0)
	authentication := cid.Configuration{
		RequireSignature: true,
		SignatureWindow:  60,
	}
	r := server.Create(log, "1.0", &c, reg, account.DefaultDecoder(), account.ED25519Verifier{}, authentication)

	l, err := tls.Listen("tcp", "127.0.0.1:0", tlsConfig)
	if nil != err {
		panic(err)
	}
	address = l.Addr().String()

	go func() {
		for {
			conn, err := l.Accept()
			if nil != err {
				return
			}
			go r.ServeCodec(jsonrpc.NewServerCodec(conn))
		}
	}()

	rc := m.Run()

	l.Close()
	backend.Close()
	os.RemoveAll(dir)
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func newClient(t *testing.T, key ed25519.PrivateKey, handle *bytes.Buffer) *Client {
	client, err := NewClient(address, key, nil != handle, handle)
	require.Nil(t, err, "connect")
	return client
}

func TestSignedPublication(t *testing.T) {
	client := newClient(t, fixtures.OwnerPrivateKey, nil)
	defer client.Close()

	id := fixtures.Account1

	require.Nil(t, client.Initialise(id, fixtures.Owner), "initialise")

	count, err := client.Store(id, fixtures.Owner, fixtures.CID1)
	assert.Nil(t, err, "store first")
	assert.Equal(t, uint64(1), count, "first count")

	count, err = client.Store(id, fixtures.Owner, fixtures.CID2)
	assert.Nil(t, err, "store second")
	assert.Equal(t, uint64(2), count, "second count")

	reply, err := client.Get(id)
	require.Nil(t, err, "get")
	assert.Equal(t, id.String(), reply.Account, "account")
	assert.Equal(t, fixtures.Owner.String(), reply.Owner, "owner")
	assert.Equal(t, uint64(2), reply.Count, "count")
	assert.Equal(t, fixtures.CID2, reply.LatestCID, "latest")

	assert.Nil(t, client.Flush(), "flush")

	info, err := client.GetInfo()
	require.Nil(t, err, "info")
	assert.Equal(t, "1.0", info.Version, "version")
	assert.True(t, info.Accounts >= 1, "accounts")
}

func TestUnsignedRejected(t *testing.T) {
	client := newClient(t, nil, nil)
	defer client.Close()

	err := client.Initialise(fixtures.Account2, fixtures.Owner)
	assert.EqualError(t, err, fault.SignatureRequired.Error(), "unsigned")

	_, err = client.Get(fixtures.Account2)
	assert.EqualError(t, err, fault.AccountNotFound.Error(), "not created")
}

func TestIntruderRejected(t *testing.T) {
	owner := newClient(t, fixtures.OwnerPrivateKey, nil)
	defer owner.Close()

	id := account.Identifier{0x10, 0x20}
	require.Nil(t, owner.Initialise(id, fixtures.Owner), "initialise")

	intruder := newClient(t, fixtures.IntruderPrivateKey, nil)
	defer intruder.Close()

	// a valid signature by the wrong key
	_, err := intruder.Store(id, fixtures.Intruder, fixtures.CID3)
	assert.EqualError(t, err, fault.Unauthorised.Error(), "intruder")

	// claiming to be the owner without the owner's key
	_, err = intruder.Store(id, fixtures.Owner, fixtures.CID3)
	assert.EqualError(t, err, fault.InvalidSignature.Error(), "forged")

	reply, err := owner.Get(id)
	require.Nil(t, err, "get")
	assert.Equal(t, uint64(0), reply.Count, "unchanged")
}

func TestReplayRejected(t *testing.T) {
	client := newClient(t, fixtures.OwnerPrivateKey, nil)
	defer client.Close()

	now := time.Now()
	client.now = func() time.Time {
		return now
	}

	id := account.Identifier{0x30, 0x40}
	require.Nil(t, client.Initialise(id, fixtures.Owner), "initialise")

	_, err := client.Store(id, fixtures.Owner, fixtures.CID1)
	assert.Nil(t, err, "first")

	// identical request produces the identical signature
	_, err = client.Store(id, fixtures.Owner, fixtures.CID1)
	assert.EqualError(t, err, fault.RequestReplayed.Error(), "replay")

	client.now = func() time.Time {
		return now.Add(-time.Hour)
	}
	_, err = client.Store(id, fixtures.Owner, fixtures.CID2)
	assert.EqualError(t, err, fault.SignatureExpired.Error(), "stale")
}

func TestVerboseOutput(t *testing.T) {
	var out bytes.Buffer
	client := newClient(t, fixtures.OwnerPrivateKey, &out)
	defer client.Close()

	_, err := client.Get(account.Identifier{0xff})
	assert.NotNil(t, err, "missing account")
	assert.Contains(t, out.String(), "Get Request:", "request printed")
}
