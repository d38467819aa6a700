// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli"

	"github.com/havona-inc/havonad/account"
	"github.com/havona-inc/havonad/persistor"
)

func runInfo(c *cli.Context) error {

	s, err := openSession(c)
	if nil != err {
		return err
	}
	defer s.close()

	return printJson(s.m.w, map[string]interface{}{
		"chain":        s.m.config.Chain,
		"database":     s.m.config.Database.Name,
		"operator":     s.operator,
		"records":      s.p.Count(),
		"max_versions": persistor.MaxVersions,
		"max_batch":    persistor.MaxBatch,
	})
}

func runNonce(c *cli.Context) error {

	if 1 != c.NArg() {
		return fmt.Errorf("nonce needs an IDENTITY argument")
	}

	signer, err := account.IdentityFromHexString(c.Args().Get(0))
	if nil != err {
		return err
	}

	s, err := openSession(c)
	if nil != err {
		return err
	}
	defer s.close()

	return printJson(s.m.w, map[string]interface{}{
		"signer": signer,
		"nonce":  s.p.Nonce(signer),
	})
}

// show the domain separated digest a signer must sign so that the
// signature can be submitted later with write-for
func runDigest(c *cli.Context) error {

	if 4 != c.NArg() {
		return fmt.Errorf("digest needs KEY, CONTENT, EXPIRY and SIGNER arguments")
	}

	key, err := parseKey(c.Args().Get(0))
	if nil != err {
		return err
	}
	content, err := parseContent(c.Args().Get(1))
	if nil != err {
		return err
	}
	expiry, err := strconv.ParseUint(c.Args().Get(2), 10, 64)
	if nil != err {
		return err
	}
	signer, err := account.IdentityFromHexString(c.Args().Get(3))
	if nil != err {
		return err
	}

	s, err := openSession(c)
	if nil != err {
		return err
	}
	defer s.close()

	d := s.p.WriteDigest(key, content, expiry, signer)

	return printJson(s.m.w, map[string]interface{}{
		"key":    fmt.Sprintf("%x", key),
		"signer": signer,
		"nonce":  s.p.Nonce(signer),
		"expiry": expiry,
		"digest": d,
	})
}
