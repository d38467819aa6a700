// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/havona-inc/havonad/account"
)

func runGrant(c *cli.Context) error {
	return changeGrant(c, "grant")
}

func runRevoke(c *cli.Context) error {
	return changeGrant(c, "revoke")
}

func changeGrant(c *cli.Context, action string) error {

	if 2 != c.NArg() {
		return fmt.Errorf("%s needs KEY and IDENTITY arguments", action)
	}

	key, err := parseKey(c.Args().Get(0))
	if nil != err {
		return err
	}
	identity, err := account.IdentityFromHexString(c.Args().Get(1))
	if nil != err {
		return err
	}

	s, err := openSession(c)
	if nil != err {
		return err
	}
	defer s.close()

	switch action {
	case "grant":
		err = s.p.Grant(s.operator, key, identity)
	case "revoke":
		err = s.p.Revoke(s.operator, key, identity)
	}
	if nil != err {
		return err
	}

	return printJson(s.m.w, map[string]interface{}{
		"key":      fmt.Sprintf("%x", key),
		"identity": identity,
		"action":   action,
		"readable": s.p.CanRead(identity, key),
	})
}
