// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package p256 - explicit affine arithmetic over the NIST P-256 curve
// and the ECDSA verification predicate built on it
//
// hardware token assertions arrive as raw (r,s) values over a digest,
// so verification is spelled out against the curve equation rather
// than delegated to an opaque library: every scalar multiplication,
// point addition and modular inverse is an explicit big integer
// computation
//
// the point at infinity is carried as an explicit flag on the point
// structure, never as a sentinel coordinate pair
package p256
