// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/havona-inc/havonad/access"
	"github.com/havona-inc/havonad/account"
	"github.com/havona-inc/havonad/chain"
	"github.com/havona-inc/havonad/notify"
	"github.com/havona-inc/havonad/p256"
	"github.com/havona-inc/havonad/persistor"
	"github.com/havona-inc/havonad/storage"
	"github.com/havona-inc/havonad/typeddata"
)

// the opened store stack for one command invocation
type session struct {
	m        *metadata
	store    *storage.Store
	p        *persistor.Persistor
	operator account.Identity
}

func openSession(c *cli.Context) (*session, error) {

	raw, ok := c.App.Metadata["config"]
	if !ok {
		return nil, fmt.Errorf("config-file option is required")
	}
	m := raw.(*metadata)
	config := m.config

	if err := logger.Initialise(config.Logging); nil != err {
		return nil, err
	}

	store, err := storage.Open(config.Database.Name)
	if nil != err {
		return nil, err
	}

	operator, err := config.OperatorIdentity()
	if nil != err {
		store.Close()
		return nil, err
	}
	storeIdentity, err := config.StoreIdentity()
	if nil != err {
		store.Close()
		return nil, err
	}

	clk := clock.New()

	control := access.New(operator, store.Pool.AccessGrants)
	authorizer := typeddata.New(
		config.Store.Name,
		config.Store.Version,
		chain.ID(config.Chain),
		storeIdentity,
		store.Pool.SignerNonces,
		store.Pool.UsedSignatures,
		clk,
	)
	verifier, err := p256.NewVerifier(config.Chain, config.SkipVerify)
	if nil != err {
		store.Close()
		return nil, err
	}

	p, err := persistor.New(store, control, authorizer, verifier, notify.NewSize(4096), nil, clk)
	if nil != err {
		store.Close()
		return nil, err
	}

	return &session{
		m:        m,
		store:    store,
		p:        p,
		operator: operator,
	}, nil
}

func (s *session) close() {
	s.store.Close()
	logger.Finalise()
}

// the account performing reads: --identity or the operator
func (s *session) reader(c *cli.Context) (account.Identity, error) {
	name := c.GlobalString("identity")
	if "" == name {
		return s.operator, nil
	}
	return account.IdentityFromHexString(name)
}

// a record key argument: 64 hex digits with optional 0x prefix
func parseKey(s string) (persistor.Key, error) {
	key := persistor.Key{}
	s = strings.TrimPrefix(s, "0x")
	buffer, err := hex.DecodeString(s)
	if nil != err {
		return key, err
	}
	if persistor.KeyLength != len(buffer) {
		return key, fmt.Errorf("key: %q expected %d bytes", s, persistor.KeyLength)
	}
	copy(key[:], buffer)
	return key, nil
}

// a content argument: literal string, or @file to read from a file
func parseContent(s string) ([]byte, error) {
	if strings.HasPrefix(s, "@") {
		return ioutil.ReadFile(s[1:])
	}
	return []byte(s), nil
}
