// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/cidregistry/command/cidregistry-cli/rpccalls"
)

func runFlush(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.privateKey, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	if err := client.Flush(); nil != err {
		return err
	}

	fmt.Fprintf(m.w, "snapshot written\n")
	return nil
}
