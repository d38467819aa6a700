// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p256

import (
	"math/big"

	"github.com/havona-inc/havonad/chain"
	"github.com/havona-inc/havonad/fault"
)

// Verifier - the ECDSA verification predicate
//
// skipVerify is fixed at construction and cannot be changed on a live
// instance; a deployed authorisation boundary must never be
// downgradable at run time
type Verifier struct {
	skipVerify bool
}

// NewVerifier - create a verifier for a chain
//
// skip verification is only permitted on the testing chains
func NewVerifier(chainName string, skipVerify bool) (*Verifier, error) {
	if !chain.Valid(chainName) {
		return nil, fault.InvalidChain
	}
	if skipVerify && !chain.IsTesting(chainName) {
		return nil, fault.SkipVerifyNotAllowed
	}
	return &Verifier{skipVerify: skipVerify}, nil
}

// SkipsVerification - report whether this instance short-circuits
func (v *Verifier) SkipsVerification() bool {
	return v.skipVerify
}

// Verify - the ECDSA equation check
//
// a pure predicate: malformed input returns false, never an error
//
// preconditions before any arithmetic:
//   0 < r < n, 0 < s < n, pubX < p, pubY < p, (pubX,pubY) on curve
func (v *Verifier) Verify(digest []byte, r *big.Int, s *big.Int, pubX *big.Int, pubY *big.Int) bool {
	if nil == r || nil == s || nil == pubX || nil == pubY {
		return false
	}

	if r.Sign() <= 0 || r.Cmp(N) >= 0 {
		return false
	}
	if s.Sign() <= 0 || s.Cmp(N) >= 0 {
		return false
	}
	if pubX.Sign() < 0 || pubX.Cmp(P) >= 0 {
		return false
	}
	if pubY.Sign() < 0 || pubY.Cmp(P) >= 0 {
		return false
	}
	if !IsOnCurve(pubX, pubY) {
		return false
	}

	// test instances accept any well-formed key after the curve check
	if v.skipVerify {
		return true
	}

	e := new(big.Int).SetBytes(digest)
	e.Mod(e, N)

	sInv := ModInverse(s, N)

	u1 := new(big.Int).Mul(e, sInv)
	u1.Mod(u1, N)

	u2 := new(big.Int).Mul(r, sInv)
	u2.Mod(u2, N)

	q := Point{X: pubX, Y: pubY}
	sum := Add(ScalarMult(Generator(), u1), ScalarMult(q, u2))
	if sum.Infinity {
		return false
	}

	x := new(big.Int).Mod(sum.X, N)
	return 0 == x.Cmp(r)
}
