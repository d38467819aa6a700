// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package persistor - the versioned, access controlled blob store
//
// every write enters through one of three authorisation paths:
//
//   - direct: the caller is the operator identity
//   - structured-data: any account signs a domain separated payload,
//     the operator submits it, attribution follows the signature
//   - hardware token: a raw P-256 signature over the content digest
//     (or a pre-hashed WebAuthn assertion), attribution is the key
//
// all three converge on the same commit: digest the content, archive
// the prior version when one exists, store, emit events
//
// mutating operations are serialised by the host environment; a guard
// flag still rejects any overlapping or re-entrant mutation so the
// archive-then-commit sequence can never be observed half done
package persistor
