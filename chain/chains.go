// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Havona  = "havona"
	Testing = "testing"
	Local   = "local"
)

// numeric chain identifiers bound into the structured-data domain
// separator; must never be reassigned between chains
const (
	HavonaID  = 7447
	TestingID = 74470
	LocalID   = 74471
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Havona, Testing, Local:
		return true
	default:
		return false
	}
}

// ID - the domain separator chain identifier for a chain name
//
// returns zero for an unknown chain
func ID(name string) uint64 {
	switch name {
	case Havona:
		return HavonaID
	case Testing:
		return TestingID
	case Local:
		return LocalID
	default:
		return 0
	}
}

// IsTesting - true for chains where relaxed verification is permitted
func IsTesting(name string) bool {
	switch name {
	case Testing, Local:
		return true
	default:
		return false
	}
}
