// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/havona-inc/havonad/digest"
)

func runWrite(c *cli.Context) error {

	if 2 != c.NArg() {
		return fmt.Errorf("write needs KEY and CONTENT arguments")
	}

	key, err := parseKey(c.Args().Get(0))
	if nil != err {
		return err
	}
	content, err := parseContent(c.Args().Get(1))
	if nil != err {
		return err
	}

	s, err := openSession(c)
	if nil != err {
		return err
	}
	defer s.close()

	if s.m.verbose {
		fmt.Fprintf(s.m.e, "key: %x\n", key)
		fmt.Fprintf(s.m.e, "length: %d\n", len(content))
	}

	err = s.p.Write(s.operator, key, content)
	if nil != err {
		return err
	}

	return printJson(s.m.w, map[string]interface{}{
		"key":      fmt.Sprintf("%x", key),
		"length":   len(content),
		"digest":   digest.New(content),
		"versions": s.p.VersionCount(key),
	})
}

func runRemove(c *cli.Context) error {

	if 1 != c.NArg() {
		return fmt.Errorf("remove needs a KEY argument")
	}

	key, err := parseKey(c.Args().Get(0))
	if nil != err {
		return err
	}

	s, err := openSession(c)
	if nil != err {
		return err
	}
	defer s.close()

	err = s.p.Remove(s.operator, key)
	if nil != err {
		return err
	}

	return printJson(s.m.w, map[string]interface{}{
		"key":      fmt.Sprintf("%x", key),
		"removed":  true,
		"versions": s.p.VersionCount(key),
	})
}
