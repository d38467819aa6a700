// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/havona-inc/havonad/notify"
)

const eventQueueSize = 4096

// one JSON line per store event, for off-line indexers to tail
type eventWriter struct {
	queue *notify.Queue
	file  *os.File
}

// a line in the event log
type eventLine struct {
	Sequence uint64      `json:"sequence"`
	Type     string      `json:"type"`
	Event    interface{} `json:"event"`
}

func newEventWriter(fileName string, queue *notify.Queue) (*eventWriter, error) {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if nil != err {
		return nil, err
	}
	return &eventWriter{
		queue: queue,
		file:  file,
	}, nil
}

func (w *eventWriter) Run(args interface{}, shutdown <-chan struct{}) {

	log := args.(*logger.L)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case message := <-w.queue.Chan():
			line := eventLine{
				Sequence: message.Sequence,
				Type:     fmt.Sprintf("%T", message.Item),
				Event:    message.Item,
			}
			buffer, err := json.Marshal(line)
			if nil != err {
				log.Errorf("event encode error: %s", err)
				continue loop
			}
			buffer = append(buffer, '\n')
			_, err = w.file.Write(buffer)
			if nil != err {
				log.Errorf("event write error: %s", err)
			}
		}
	}

	w.file.Close()
}
