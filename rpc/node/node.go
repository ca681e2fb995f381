// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/cidregistry/counter"
	"github.com/bitmark-inc/cidregistry/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

// Accounts - source of the account total
type Accounts interface {
	Count() int
}

// Node - type for RPC calls
type Node struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Start    time.Time
	Version  string
	Accounts Accounts
	counter  *counter.Counter
}

// New - create the node service
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, accounts Accounts) *Node {
	return &Node{
		Log:      log,
		Limiter:  ratelimit.New(),
		Start:    start,
		Version:  version,
		Accounts: accounts,
		counter:  counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Accounts    int    `json:"accounts"`
	Connections uint64 `json:"connections"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.Accounts = node.Accounts.Count()
	reply.Connections = node.counter.Uint64()
	return nil
}
