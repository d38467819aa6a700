// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/havona-inc/havonad/access"
	"github.com/havona-inc/havonad/background"
	"github.com/havona-inc/havonad/chain"
	"github.com/havona-inc/havonad/configuration"
	"github.com/havona-inc/havonad/notify"
	"github.com/havona-inc/havonad/p256"
	"github.com/havona-inc/havonad/persistor"
	"github.com/havona-inc/havonad/storage"
	"github.com/havona-inc/havonad/typeddata"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	log.Infof("chain: %s", theConfiguration.Chain)
	log.Infof("database: %q", theConfiguration.Database)
	if theConfiguration.SkipVerify {
		log.Warn("signature verification is disabled")
	}

	// open the record store
	log.Info("open storage")
	store, err := storage.Open(theConfiguration.Database.Name)
	if nil != err {
		log.Criticalf("storage open error: %s", err)
		exitwithstatus.Message("storage open error: %s", err)
	}
	defer store.Close()

	operator, err := theConfiguration.OperatorIdentity()
	if nil != err {
		exitwithstatus.Message("operator account error: %s", err)
	}
	storeIdentity, err := theConfiguration.StoreIdentity()
	if nil != err {
		exitwithstatus.Message("store identity error: %s", err)
	}
	log.Infof("operator: %s", operator)

	clk := clock.New()

	control := access.New(operator, store.Pool.AccessGrants)

	authorizer := typeddata.New(
		theConfiguration.Store.Name,
		theConfiguration.Store.Version,
		chain.ID(theConfiguration.Chain),
		storeIdentity,
		store.Pool.SignerNonces,
		store.Pool.UsedSignatures,
		clk,
	)

	verifier, err := p256.NewVerifier(theConfiguration.Chain, theConfiguration.SkipVerify)
	if nil != err {
		log.Criticalf("verifier error: %s", err)
		exitwithstatus.Message("verifier error: %s", err)
	}

	events := notify.NewSize(eventQueueSize)

	p, err := persistor.New(store, control, authorizer, verifier, events, nil, clk)
	if nil != err {
		log.Criticalf("persistor error: %s", err)
		exitwithstatus.Message("persistor error: %s", err)
	}
	log.Infof("records: %d", p.Count())

	// start the event log drain
	writer, err := newEventWriter(theConfiguration.EventLogFile, events)
	if nil != err {
		log.Criticalf("event log error: %s", err)
		exitwithstatus.Message("event log: %q error: %s", theConfiguration.EventLogFile, err)
	}
	processes := background.Processes{
		writer,
	}
	bg := background.Start(processes, log)
	defer bg.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
