// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the LevelDB layer under the blob store
//
// a single database file is split into pools by a one byte key prefix;
// each pool behaves like a separate key/value map:
//
//	Blobs          B ‣ current content: digest ‖ content
//	VersionCounts  N ‣ archived version count per record key
//	Versions       V ‣ archived content: record key ‖ version number
//	AccessGrants   G ‣ record key ‖ identity → 0x01
//	SignerNonces   C ‣ live structured-data nonce per signer
//	UsedSignatures U ‣ consumed signature digests
//	TestData       Z ‣ reserved for testing
//
// mutations normally go straight to the database; a Transaction routes
// them into a write batch backed by a short lived read cache so that a
// multi-record update either commits entirely or leaves no trace
package storage
