// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/cidregistry/command/cidregistry-cli/rpccalls"
	"github.com/bitmark-inc/cidregistry/util"
)

func runStore(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkAccount(c.String("account"))
	if nil != err {
		return err
	}

	cid, err := checkCID(c.String("cid"))
	if nil != err {
		return err
	}

	signer, err := checkCredential(m, c.String("signer"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.privateKey, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	count, err := client.Store(id, signer, cid)
	if nil != err {
		return err
	}

	return util.PrintJSON(m.w, struct {
		Account string `json:"account"`
		CID     string `json:"cid"`
		Count   uint64 `json:"count"`
	}{
		Account: id.String(),
		CID:     cid,
		Count:   count,
	})
}
