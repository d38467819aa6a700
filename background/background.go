// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

// the shutdown and completed channels for one background process
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle over a started set of processes
type T struct {
	s []shutdown
}

// Process - a long running background task
//
// Run must loop until the shutdown channel is closed and then return
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - the list of processes to start
type Processes []Process

// Start - launch a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := new(T)
	register.s = make([]shutdown, len(processes))

	for i, p := range processes {
		shutdownChannel := make(chan struct{})
		finished := make(chan struct{})
		register.s[i].shutdown = shutdownChannel
		register.s[i].finished = finished
		go func(p Process, shutdown <-chan struct{}, finished chan<- struct{}) {
			p.Run(args, shutdown)
			close(finished)
		}(p, shutdownChannel, finished)
	}
	return register
}

// Stop - shut down the processes and wait for them to finish
func (t *T) Stop() {

	if nil == t {
		return
	}

	for _, shutdown := range t.s {
		close(shutdown.shutdown)
	}

	for _, shutdown := range t.s {
		<-shutdown.finished
	}
}
