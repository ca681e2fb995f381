// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"crypto/tls"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/fault"
	"github.com/bitmark-inc/cidregistry/fixtures"
	"github.com/bitmark-inc/cidregistry/registry"
	"github.com/bitmark-inc/cidregistry/registry/mocks"
	"github.com/bitmark-inc/cidregistry/rpc"
	"github.com/bitmark-inc/cidregistry/rpc/certificate"
	"github.com/bitmark-inc/cidregistry/rpc/cid"
	"github.com/bitmark-inc/cidregistry/rpc/listeners"
	"github.com/bitmark-inc/cidregistry/rpc/node"
	"github.com/bitmark-inc/logger"
)

func TestInitialiseAndFinalise(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dir := t.TempDir()
	certificateFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	require.Nil(t, certificate.Generate("test", certificateFile, keyFile, false, nil), "certificate")

	p := mocks.NewMockPersister(ctl)
	p.EXPECT().Save(gomock.Any()).Return(nil).Times(1)

	reg, err := registry.New(logger.New(fixtures.LogCategory), nil, p)
	require.Nil(t, err, "registry")

	configuration := listeners.RPCConfiguration{
		MaximumConnections: 4,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        certificateFile,
		PrivateKey:         keyFile,
	}

	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "finalise before start")

	err = rpc.Initialise(&configuration, cid.Configuration{}, reg, account.DefaultDecoder(), "9.9")
	require.Nil(t, err, "initialise")

	err = rpc.Initialise(&configuration, cid.Configuration{}, reg, account.DefaultDecoder(), "9.9")
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise")

	addresses := rpc.Addresses()
	require.Equal(t, 1, len(addresses), "one address")

	conn, err := tls.Dial("tcp", addresses[0], &tls.Config{InsecureSkipVerify: true})
	require.Nil(t, err, "dial")
	client := jsonrpc.NewClient(conn)

	err = client.Call("CID.Initialise", &cid.InitialiseArguments{
		Account: fixtures.Account1.String(),
		Owner:   fixtures.Owner.String(),
	}, &cid.InitialiseReply{})
	assert.Nil(t, err, "remote initialise")

	var info node.InfoReply
	err = client.Call("Node.Info", &node.InfoArguments{}, &info)
	assert.Nil(t, err, "remote info")
	assert.Equal(t, 1, info.Accounts, "accounts")
	assert.Equal(t, uint64(1), info.Connections, "connections")
	assert.Equal(t, "9.9", info.Version, "version")

	client.Close()

	assert.Nil(t, rpc.Finalise(), "finalise")
	assert.Nil(t, rpc.Addresses(), "no addresses after finalise")
}

func TestInitialiseMissingCertificate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	configuration := listeners.RPCConfiguration{
		MaximumConnections: 4,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        filepath.Join(os.TempDir(), "nonexistent-cidregistry.crt"),
		PrivateKey:         filepath.Join(os.TempDir(), "nonexistent-cidregistry.key"),
	}

	ctl := gomock.NewController(t)
	defer ctl.Finish()
	reg, _ := registry.New(logger.New(fixtures.LogCategory), nil, mocks.NewMockPersister(ctl))

	err := rpc.Initialise(&configuration, cid.Configuration{}, reg, account.DefaultDecoder(), "9.9")
	assert.Equal(t, fault.MissingParameters, err, "missing certificate")
	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "not started")
}
