// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/cidregistry/command/cidregistry-cli/rpccalls"
	"github.com/bitmark-inc/cidregistry/rpc/node"
	"github.com/bitmark-inc/cidregistry/util"
)

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.privateKey, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetInfo()
	if nil != err {
		return err
	}

	return util.PrintJSON(m.w, struct {
		Connect string `json:"_connection"`
		*node.InfoReply
	}{
		Connect:   m.connect,
		InfoReply: response,
	})
}
