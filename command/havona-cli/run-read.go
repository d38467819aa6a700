// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli"
)

func runRead(c *cli.Context) error {

	if 1 != c.NArg() {
		return fmt.Errorf("read needs a KEY argument")
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

	reader, err := s.reader(c)
	if nil != err {
		return err
	}

	content, err := s.p.Read(reader, key)
	if nil != err {
		return err
	}
	d, err := s.p.ReadDigest(key)
	if nil != err {
		return err
	}

	return printJson(s.m.w, map[string]interface{}{
		"key":      fmt.Sprintf("%x", key),
		"length":   len(content),
		"digest":   d,
		"content":  string(content),
		"versions": s.p.VersionCount(key),
	})
}

func runReadVersion(c *cli.Context) error {

	if 2 != c.NArg() {
		return fmt.Errorf("read-version needs KEY and VERSION arguments")
	}

	key, err := parseKey(c.Args().Get(0))
	if nil != err {
		return err
	}
	version, err := strconv.ParseUint(c.Args().Get(1), 10, 64)
	if nil != err {
		return err
	}

	s, err := openSession(c)
	if nil != err {
		return err
	}
	defer s.close()

	reader, err := s.reader(c)
	if nil != err {
		return err
	}

	content, err := s.p.ReadVersion(reader, key, version)
	if nil != err {
		return err
	}

	return printJson(s.m.w, map[string]interface{}{
		"key":     fmt.Sprintf("%x", key),
		"version": version,
		"length":  len(content),
		"content": string(content),
	})
}
