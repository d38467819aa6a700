// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package notify - append-only event queue for off-chain indexers
//
// every state-changing store operation emits exactly one event here;
// the daemon drains the queue into a log for external consumption
//
// events are sequence numbered so a consumer can detect a gap after
// reconnecting
package notify
