// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/cidregistry/command/cidregistry-cli/rpccalls"
	"github.com/bitmark-inc/cidregistry/util"
)

func runInitialise(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkAccount(c.String("account"))
	if nil != err {
		return err
	}

	owner, err := checkCredential(m, c.String("owner"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "account: %s\n", id)
		fmt.Fprintf(m.e, "owner: %s\n", owner)
	}

	client, err := rpccalls.NewClient(m.connect, m.privateKey, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	err = client.Initialise(id, owner)
	if nil != err {
		return err
	}

	return util.PrintJSON(m.w, struct {
		Account string `json:"account"`
		Owner   string `json:"owner"`
	}{
		Account: id.String(),
		Owner:   owner.String(),
	})
}
