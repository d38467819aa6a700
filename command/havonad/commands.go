// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/havona-inc/havonad/chain"
	"github.com/havona-inc/havonad/configuration"
)

// setup command handler
//
// commands that run before the configuration file is read
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "version", "v":
		fmt.Printf("%s\n", version)

	case "chains":
		for _, name := range []string{chain.Havona, chain.Testing, chain.Local} {
			fmt.Printf("%-8s  id: %d\n", name, chain.ID(name))
		}

	case "help", "h", "?":
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)
		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                 (h)      - display this message\n\n")
		fmt.Printf("  version              (v)      - display the program version\n\n")
		fmt.Printf("  chains                        - display chain names and identifiers\n\n")
		fmt.Printf("  config                        - display the full configuration as JSON\n")
		fmt.Printf("                                  (requires the config-file option)\n\n")
		fmt.Printf("  operator                      - display the configured operator account\n")
		fmt.Printf("                                  (requires the config-file option)\n\n")
		fmt.Printf("  start                         - just run the daemon (the default)\n\n")

	default:
		// not handled here, pass through
		return false
	}
	return true
}

// config command handler
//
// commands that perform enquiries on a parsed configuration
func processConfigCommand(arguments []string, theConfiguration *configuration.Configuration) bool {

	switch arguments[0] {
	case "config":
		buffer, err := json.MarshalIndent(theConfiguration, "", "    ")
		if nil != err {
			exitwithstatus.Message("config encode error: %s", err)
		}
		fmt.Printf("%s\n", buffer)

	case "operator":
		operator, err := theConfiguration.OperatorIdentity()
		if nil != err {
			exitwithstatus.Message("operator account error: %s", err)
		}
		fmt.Printf("%s\n", operator)

	case "start", "run":
		// fall out to the daemon proper
		return false

	default:
		return false
	}
	return true
}
