// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/havona-inc/havonad/fault"
)

// IdentityLength - number of bytes in an identity
const IdentityLength = 20

// Identity - a 20 byte account identifier
//
// for recovered structured-data signers this is the low 20 bytes of
// the keccak-256 of the uncompressed public key, matching the account
// layout of the originating chain
type Identity [20]byte

// IsZero - check for the all zero identity
func (identity Identity) IsZero() bool {
	return identity == Identity{}
}

// Bytes - byte slice for encoding into storage keys
func (identity Identity) Bytes() []byte {
	return identity[:]
}

// String - convert a binary identity to prefixed hex for use by the fmt package (for %s)
func (identity Identity) String() string {
	return "0x" + hex.EncodeToString(identity[:])
}

// GoString - convert a binary identity to prefixed hex for use by the fmt package (for %#v)
func (identity Identity) GoString() string {
	return "<identity:0x" + hex.EncodeToString(identity[:]) + ">"
}

// IdentityFromHexString - convert a prefixed hex string to an identity
func IdentityFromHexString(s string) (Identity, error) {
	identity := Identity{}
	if len(s) >= 2 && "0x" == s[0:2] {
		s = s[2:]
	}
	if hex.EncodedLen(IdentityLength) != len(s) {
		return identity, fault.InvalidIdentity
	}
	byteCount, err := hex.Decode(identity[:], []byte(s))
	if nil != err {
		return identity, err
	}
	if IdentityLength != byteCount {
		return identity, fault.InvalidIdentity
	}
	return identity, nil
}

// IdentityFromBytes - convert a byte slice to an identity
func IdentityFromBytes(buffer []byte) (Identity, error) {
	identity := Identity{}
	if IdentityLength != len(buffer) {
		return identity, fault.InvalidIdentity
	}
	copy(identity[:], buffer)
	return identity, nil
}

// MarshalText - convert an identity to text
func (identity Identity) MarshalText() ([]byte, error) {
	return []byte(identity.String()), nil
}

// UnmarshalText - convert text into an identity
func (identity *Identity) UnmarshalText(s []byte) error {
	id, err := IdentityFromHexString(string(s))
	if nil != err {
		return err
	}
	*identity = id
	return nil
}

// Scan - convert a text representation to an identity for use by the format package scan routines
func (identity *Identity) Scan(state fmt.ScanState, verb rune) error {
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
		return 'x' == c
	})
	if nil != err {
		return err
	}
	return identity.UnmarshalText(bytes.TrimPrefix(token, []byte("0x")))
}
