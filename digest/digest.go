// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package digest - the content digest used throughout the blob store
//
// keccak-256 to stay byte compatible with the digests produced by the
// host execution environment and embedded in structured-data payloads
package digest

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/havona-inc/havonad/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - type for a content digest
//
// stored and displayed as big endian hex
type Digest [Length]byte

// New - create a digest from a byte slice
func New(record []byte) Digest {
	h := sha3.NewLegacyKeccak256()
	h.Write(record)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// FromBytes - convert a stored byte slice back to a digest
func FromBytes(buffer []byte) (Digest, error) {
	var d Digest
	if Length != len(buffer) {
		return d, fault.DataInconsistent
	}
	copy(d[:], buffer)
	return d, nil
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<keccak256:" + hex.EncodeToString(digest[:]) + ">"
}

// Scan - convert a hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	if len(token) != hex.EncodedLen(Length) {
		return fault.DataInconsistent
	}

	buffer := make([]byte, hex.DecodedLen(len(token)))
	_, err = hex.Decode(buffer, token)
	if nil != err {
		return err
	}
	copy(digest[:], buffer)
	return nil
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(Length)
	buffer := make([]byte, size)
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if len(s) != hex.EncodedLen(Length) {
		return fault.DataInconsistent
	}
	buffer := make([]byte, hex.DecodedLen(len(s)))
	_, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	copy(digest[:], buffer)
	return nil
}
