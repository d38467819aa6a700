// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notify

import (
	"github.com/havona-inc/havonad/counter"
)

// internal constants
const (
	defaultQueueSize = 1000
)

// Message - one queued event with its sequence number
type Message struct {
	Sequence uint64
	Item     interface{}
}

// Queue - a buffered event queue
type Queue struct {
	sequence counter.Counter
	queue    chan Message
}

// New - create a queue with the default buffer
func New() *Queue {
	return NewSize(defaultQueueSize)
}

// NewSize - create a queue with a specific buffer
func NewSize(size int) *Queue {
	return &Queue{
		queue: make(chan Message, size),
	}
}

// Send - queue an event
//
// blocks when the buffer is full so that no event is ever silently
// dropped; the consumer must keep draining
func (q *Queue) Send(item interface{}) {
	q.queue <- Message{
		Sequence: q.sequence.Increment(),
		Item:     item,
	}
}

// Chan - channel to read from
func (q *Queue) Chan() <-chan Message {
	return q.queue
}

// Sequence - the sequence number of the most recently queued event
func (q *Queue) Sequence() uint64 {
	return q.sequence.Uint64()
}
