// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
	"golang.org/x/crypto/ed25519"
)

type metadata struct {
	connect    string
	privateKey ed25519.PrivateKey // nil if not given
	testnet    bool
	verbose    bool
	e          io.Writer
	w          io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const defaultConnect = "127.0.0.1:2150"

func main() {

	app := cli.NewApp()
	app.Name = "cidregistry-cli"
	app.Usage = "publish content identifiers to a cidregistryd"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			Usage:  " cidregistryd host/IP and port, `HOST:PORT`",
			EnvVar: "CIDREGISTRY_CONNECT",
		},
		cli.StringFlag{
			Name:   "private-key, k",
			Value:  "",
			Usage:  " sign requests with hex ed25519 seed or private key `KEY`",
			EnvVar: "CIDREGISTRY_PRIVATE_KEY",
		},
		cli.BoolFlag{
			Name:  "testnet, t",
			Usage: " show bitmark accounts in testnet form",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a key pair and account identifier, nothing is sent",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "initialise",
			Usage:     "create an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*base58 account identifier `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " owner public key [default: from private key] `OWNER`",
				},
			},
			Action: runInitialise,
		},
		{
			Name:      "store",
			Usage:     "publish a content identifier to an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*base58 account identifier `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "cid, i",
					Value: "",
					Usage: "*content identifier `CID`",
				},
				cli.StringFlag{
					Name:  "signer, s",
					Value: "",
					Usage: " signer public key [default: from private key] `SIGNER`",
				},
			},
			Action: runStore,
		},
		{
			Name:      "get",
			Usage:     "show the owner, count and latest cid of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*base58 account identifier `ACCOUNT`",
				},
			},
			Action: runGet,
		},
		{
			Name:   "flush",
			Usage:  "retry writing the daemon snapshot",
			Action: runFlush,
		},
		{
			Name:   "info",
			Usage:  "display cidregistryd status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display cidregistry-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		connect, err := checkConnect(c.GlobalString("connect"))
		if nil != err {
			return err
		}

		m := &metadata{
			connect: connect,
			testnet: c.GlobalBool("testnet"),
			verbose: verbose,
			e:       e,
			w:       w,
		}

		if k := c.GlobalString("private-key"); "" != k {
			m.privateKey, err = parsePrivateKey(k)
			if nil != err {
				return fmt.Errorf("private key: %s", err)
			}
		}

		if verbose {
			fmt.Fprintf(e, "connect: %q  signed: %t\n", m.connect, nil != m.privateKey)
		}

		c.App.Metadata["config"] = m
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
