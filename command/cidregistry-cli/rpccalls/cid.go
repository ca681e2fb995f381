// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/rpc/cid"
)

// Initialise - create an account owned by owner
func (client *Client) Initialise(id account.Identifier, owner account.Credential) error {

	timestamp := client.now().Unix()
	args := cid.InitialiseArguments{
		Account:   id.String(),
		Owner:     owner.String(),
		Timestamp: timestamp,
		Signature: client.sign(cid.InitialiseMessage(id, timestamp)),
	}

	client.printJson("Initialise Request", args)

	var reply cid.InitialiseReply
	if err := client.client.Call("CID.Initialise", &args, &reply); err != nil {
		return err
	}

	client.printJson("Initialise Reply", reply)

	return nil
}

// Store - publish a cid to an account, returns the account's cid count
func (client *Client) Store(id account.Identifier, signer account.Credential, s string) (uint64, error) {

	timestamp := client.now().Unix()
	args := cid.StoreArguments{
		Account:   id.String(),
		Signer:    signer.String(),
		CID:       s,
		Timestamp: timestamp,
		Signature: client.sign(cid.StoreMessage(id, timestamp, s)),
	}

	client.printJson("Store Request", args)

	var reply cid.StoreReply
	if err := client.client.Call("CID.Store", &args, &reply); err != nil {
		return 0, err
	}

	client.printJson("Store Reply", reply)

	return reply.Count, nil
}

// Get - current state of an account
func (client *Client) Get(id account.Identifier) (*cid.GetReply, error) {

	args := cid.GetArguments{
		Account: id.String(),
	}

	client.printJson("Get Request", args)

	var reply cid.GetReply
	if err := client.client.Call("CID.Get", &args, &reply); err != nil {
		return nil, err
	}

	client.printJson("Get Reply", reply)

	return &reply, nil
}

// Flush - ask the daemon to write its snapshot again
func (client *Client) Flush() error {
	var reply cid.FlushReply
	return client.client.Call("CID.Flush", &cid.FlushArguments{}, &reply)
}

func (client *Client) sign(message []byte) account.Signature {
	if nil == client.key {
		return nil
	}
	return account.Sign(client.key, message)
}
