// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package access - per-record reader allow-list
//
// the relation (record key, identity) → allowed is stored one grant
// per database entry; absence means denied; the operator identity is
// implicitly allowed everywhere and never stored
package access

import (
	"github.com/havona-inc/havonad/account"
	"github.com/havona-inc/havonad/fault"
	"github.com/havona-inc/havonad/storage"
)

// Control - the allow-list over one grants pool
type Control struct {
	operator account.Identity
	grants   *storage.PoolHandle
}

// New - create the access control for a store
func New(operator account.Identity, grants *storage.PoolHandle) *Control {
	return &Control{
		operator: operator,
		grants:   grants,
	}
}

// Operator - the privileged identity
func (c *Control) Operator() account.Identity {
	return c.operator
}

// IsOperator - check against the privileged identity
func (c *Control) IsOperator(identity account.Identity) bool {
	return identity == c.operator
}

// Grant - allow an identity to read a record
//
// granting twice is a no-op
func (c *Control) Grant(key [32]byte, identity account.Identity) {
	c.grants.Put(grantKey(key, identity), []byte{0x01})
}

// Revoke - remove an identity's grant for a record
//
// revoking an absent grant is a no-op
func (c *Control) Revoke(key [32]byte, identity account.Identity) {
	c.grants.Delete(grantKey(key, identity))
}

// GrantBatch - grant for parallel key/identity arrays
//
// array lengths must match exactly; nothing is granted on mismatch
func (c *Control) GrantBatch(keys [][32]byte, identities []account.Identity) error {
	if len(keys) != len(identities) {
		return fault.BatchLengthMismatch
	}
	for i, key := range keys {
		c.Grant(key, identities[i])
	}
	return nil
}

// CanRead - true for the operator or an explicitly granted identity
func (c *Control) CanRead(identity account.Identity, key [32]byte) bool {
	if identity == c.operator {
		return true
	}
	return c.grants.Has(grantKey(key, identity))
}

// IsGranted - the stored relation only, without the operator bypass
func (c *Control) IsGranted(identity account.Identity, key [32]byte) bool {
	return c.grants.Has(grantKey(key, identity))
}

// record key ‖ identity
func grantKey(key [32]byte, identity account.Identity) []byte {
	buffer := make([]byte, 0, len(key)+account.IdentityLength)
	buffer = append(buffer, key[:]...)
	return append(buffer, identity.Bytes()...)
}
