// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/counter"
	"github.com/bitmark-inc/cidregistry/fault"
	"github.com/bitmark-inc/cidregistry/fixtures"
	"github.com/bitmark-inc/cidregistry/registry"
	"github.com/bitmark-inc/cidregistry/rpc/cid"
	"github.com/bitmark-inc/cidregistry/rpc/node"
	"github.com/bitmark-inc/cidregistry/rpc/server"
	"github.com/bitmark-inc/cidregistry/snapshot"
	"github.com/bitmark-inc/logger"
)

var address string
var backend snapshot.Backend

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()

	dir, err := os.MkdirTemp("", "cidregistry-server")
	if nil != err {
		panic(err)
	}

	log := logger.New(fixtures.LogCategory)
	backend, err = snapshot.New(log, snapshot.Configuration{
		File: filepath.Join(dir, "snapshot"),
	})
	if nil != err {
		panic(err)
	}
	reg, err := registry.New(log, backend.Load(), backend)
	if nil != err {
		panic(err)
	}

	c := counter.Counter(0)
	r := server.Create(log, "1.0", &c, reg, account.DefaultDecoder(), account.ED25519Verifier{}, cid.Configuration{})

	l, err := net.Listen("tcp", "127.0.0.1:0")
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
	os.RemoveAll(dir)
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func newClient(t *testing.T) *rpc.Client {
	conn, err := net.Dial("tcp", address)
	require.Nil(t, err, "dial")
	return jsonrpc.NewClient(conn)
}

// the publication sequence through the complete RPC stack
func TestCIDServices(t *testing.T) {
	client := newClient(t)
	defer client.Close()

	acct := fixtures.Account1.String()

	err := client.Call("CID.Initialise", &cid.InitialiseArguments{Account: acct, Owner: fixtures.Owner.String()}, &cid.InitialiseReply{})
	assert.Nil(t, err, "initialise")

	err = client.Call("CID.Initialise", &cid.InitialiseArguments{Account: acct, Owner: fixtures.Intruder.String()}, &cid.InitialiseReply{})
	assert.EqualError(t, err, fault.AlreadyInitialised.Error(), "second initialise")

	var storeReply cid.StoreReply
	err = client.Call("CID.Store", &cid.StoreArguments{Account: acct, Signer: fixtures.Owner.String(), CID: "cidHash1"}, &storeReply)
	assert.Nil(t, err, "store cidHash1")
	assert.Equal(t, uint64(1), storeReply.Count, "count after cidHash1")

	err = client.Call("CID.Store", &cid.StoreArguments{Account: acct, Signer: fixtures.Intruder.String(), CID: "cidHash2"}, &cid.StoreReply{})
	assert.EqualError(t, err, fault.Unauthorised.Error(), "intruder")

	err = client.Call("CID.Store", &cid.StoreArguments{Account: acct, Signer: fixtures.Owner.BitmarkString(false), CID: "cidHash3"}, &storeReply)
	assert.Nil(t, err, "store cidHash3")
	assert.Equal(t, uint64(2), storeReply.Count, "count after cidHash3")

	var getReply cid.GetReply
	err = client.Call("CID.Get", &cid.GetArguments{Account: acct}, &getReply)
	assert.Nil(t, err, "get")
	assert.Equal(t, uint64(2), getReply.Count, "count")
	assert.Equal(t, "cidHash3", getReply.LatestCID, "latest")
	assert.Equal(t, fixtures.Owner.String(), getReply.Owner, "owner")

	err = client.Call("CID.Get", &cid.GetArguments{Account: fixtures.Account2.String()}, &cid.GetReply{})
	assert.EqualError(t, err, fault.AccountNotFound.Error(), "missing account")

	err = client.Call("CID.Flush", &cid.FlushArguments{}, &cid.FlushReply{})
	assert.Nil(t, err, "flush")

	// durable state matches
	saved := backend.Load()
	assert.Equal(t, registry.Record{Owner: fixtures.Owner, Count: 2, LatestCID: "cidHash3"}, saved[acct], "snapshot")
}

func TestNodeInfo(t *testing.T) {
	client := newClient(t)
	defer client.Close()

	var reply node.InfoReply
	err := client.Call("Node.Info", &node.InfoArguments{}, &reply)
	assert.Nil(t, err, "info")
	assert.Equal(t, "1.0", reply.Version, "version")
	assert.NotEqual(t, "", reply.Uptime, "uptime")
}

func TestUnknownMethod(t *testing.T) {
	client := newClient(t)
	defer client.Close()

	err := client.Call("CID.Delete", &cid.GetArguments{}, &cid.GetReply{})
	assert.NotNil(t, err, "no delete service")
}
