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

const defaultListLimit = 20

func runList(c *cli.Context) error {

	offset := 0
	limit := defaultListLimit

	var err error
	if c.NArg() >= 1 {
		offset, err = strconv.Atoi(c.Args().Get(0))
		if nil != err {
			return err
		}
	}
	if c.NArg() >= 2 {
		limit, err = strconv.Atoi(c.Args().Get(1))
		if nil != err {
			return err
		}
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

	entries, err := s.p.List(reader, offset, limit)
	if nil != err {
		return err
	}

	type row struct {
		Key      string `json:"key"`
		Length   int    `json:"length"`
		Digest   string `json:"digest"`
		Content  string `json:"content,omitempty"`
		Readable bool   `json:"readable"`
	}

	rows := make([]row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, row{
			Key:      fmt.Sprintf("%x", entry.Key),
			Length:   entry.Length,
			Digest:   entry.Digest.String(),
			Content:  string(entry.Content),
			Readable: nil != entry.Content,
		})
	}

	return printJson(s.m.w, map[string]interface{}{
		"total":   s.p.Count(),
		"offset":  offset,
		"entries": rows,
	})
}
