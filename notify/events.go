// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notify

import (
	"time"
)

// Stored - a write committed new content for a record
type Stored struct {
	Key       []byte    `json:"key"`
	Identity  string    `json:"identity"`
	Length    int       `json:"length"`
	Timestamp time.Time `json:"timestamp"`
	Digest    []byte    `json:"digest"`
}

// VersionArchived - an overwrite archived the prior content
type VersionArchived struct {
	Key       []byte    `json:"key"`
	Version   uint64    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	OldDigest []byte    `json:"old_digest"`
	NewDigest []byte    `json:"new_digest"`
}

// Removed - a record's current content was removed
type Removed struct {
	Key       []byte    `json:"key"`
	Identity  string    `json:"identity"`
	Timestamp time.Time `json:"timestamp"`
}

// AccessGranted - a reader identity was added for a record
type AccessGranted struct {
	Key       []byte    `json:"key"`
	Identity  string    `json:"identity"`
	Timestamp time.Time `json:"timestamp"`
}

// AccessRevoked - a reader identity was removed for a record
type AccessRevoked struct {
	Key       []byte    `json:"key"`
	Identity  string    `json:"identity"`
	Timestamp time.Time `json:"timestamp"`
}

// VerifierChanged - the bound signature verifier was replaced
type VerifierChanged struct {
	OldSkipsVerification bool      `json:"old_skips_verification"`
	NewSkipsVerification bool      `json:"new_skips_verification"`
	Timestamp            time.Time `json:"timestamp"`
}
