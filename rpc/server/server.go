// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/counter"
	"github.com/bitmark-inc/cidregistry/rpc/cid"
	"github.com/bitmark-inc/cidregistry/rpc/node"
	"github.com/bitmark-inc/logger"
)

// Registry - everything the services need from the registry
type Registry interface {
	cid.Registry
	node.Accounts
}

// Create - an RPC server with all services registered
func Create(
	log *logger.L,
	version string,
	rpcCount *counter.Counter,
	registry Registry,
	decoder account.Decoder,
	verifier account.Verifier,
	authentication cid.Configuration,
) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(cid.New(log, registry, decoder, verifier, authentication))
	_ = server.Register(node.New(log, start, version, rpcCount, registry))

	return server
}
