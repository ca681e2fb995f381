// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"golang.org/x/crypto/ed25519"
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	key     ed25519.PrivateKey // nil for unsigned requests
	now     func() time.Time
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a cidregistryd
//
// requests are signed when key is not nil
func NewClient(connect string, key ed25519.PrivateKey, verbose bool, handle io.Writer) (*Client, error) {

	// daemon certificates are self signed
	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		key:     key,
		now:     time.Now,
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - shutdown the cidregistryd connection
func (client *Client) Close() {
	client.client.Close()
	client.conn.Close()
}
