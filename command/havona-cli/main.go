// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/havona-inc/havonad/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "havona-cli"
	app.Usage = "administer a local record store"
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
			Name:  "config-file, c",
			Value: "",
			Usage: "*daemon configuration `FILE`",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " read as this account `IDENTITY` [default: the operator]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "write",
			Usage:     "store content under a key as the operator",
			ArgsUsage: "KEY CONTENT\n   (KEY = 32 byte hex, CONTENT = string or @file)",
			Action:    runWrite,
		},
		{
			Name:      "read",
			Usage:     "fetch a record's current content",
			ArgsUsage: "KEY",
			Action:    runRead,
		},
		{
			Name:      "read-version",
			Usage:     "fetch an archived snapshot",
			ArgsUsage: "KEY VERSION",
			Action:    runReadVersion,
		},
		{
			Name:      "remove",
			Usage:     "remove a record's current content, history is kept",
			ArgsUsage: "KEY",
			Action:    runRemove,
		},
		{
			Name:      "list",
			Usage:     "list records, content only where readable",
			ArgsUsage: "[OFFSET [LIMIT]]",
			Action:    runList,
		},
		{
			Name:      "grant",
			Usage:     "allow an account to read a record",
			ArgsUsage: "KEY IDENTITY",
			Action:    runGrant,
		},
		{
			Name:      "revoke",
			Usage:     "remove an account's read grant",
			ArgsUsage: "KEY IDENTITY",
			Action:    runRevoke,
		},
		{
			Name:      "nonce",
			Usage:     "show the live structured-data nonce for a signer",
			ArgsUsage: "IDENTITY",
			Action:    runNonce,
		},
		{
			Name:      "digest",
			Usage:     "show the digest a signer must sign to authorise a write",
			ArgsUsage: "KEY CONTENT EXPIRY SIGNER",
			Action:    runDigest,
		},
		{
			Name:   "info",
			Usage:  "show store summary",
			Action: runInfo,
		},
	}

	app.Before = func(c *cli.Context) error {
		file := c.GlobalString("config-file")
		if "" == file {
			// help and version do not need the configuration
			return nil
		}
		config, err := configuration.GetConfiguration(file)
		if nil != err {
			return err
		}
		app.Metadata = map[string]interface{}{
			"config": &metadata{
				file:    file,
				config:  config,
				verbose: c.GlobalBool("verbose"),
				e:       app.ErrWriter,
				w:       app.Writer,
			},
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}
