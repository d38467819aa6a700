// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package access_test

import (
	"os"
	"testing"

	"github.com/havona-inc/havonad/access"
	"github.com/havona-inc/havonad/account"
	"github.com/havona-inc/havonad/fault"
	"github.com/havona-inc/havonad/storage"
)

const databaseFileName = "access-test.leveldb"

var (
	operator = mustIdentity("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	alice    = mustIdentity("0x1111111111111111111111111111111111111111")
	bob      = mustIdentity("0x2222222222222222222222222222222222222222")
)

func mustIdentity(s string) account.Identity {
	identity, err := account.IdentityFromHexString(s)
	if nil != err {
		panic(err)
	}
	return identity
}

func setup(t *testing.T) (*storage.Store, *access.Control) {
	os.RemoveAll(databaseFileName)
	store, err := storage.Open(databaseFileName)
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return store, access.New(operator, store.Pool.AccessGrants)
}

func teardown(store *storage.Store) {
	store.Close()
	os.RemoveAll(databaseFileName)
}

// grant then revoke toggles readability; the operator is unaffected
func TestGrantRevoke(t *testing.T) {
	store, control := setup(t)
	defer teardown(store)

	key := [32]byte{1}

	if control.CanRead(alice, key) {
		t.Errorf("default allowed")
	}
	if !control.CanRead(operator, key) {
		t.Errorf("operator denied")
	}

	control.Grant(key, alice)
	if !control.CanRead(alice, key) {
		t.Errorf("granted identity denied")
	}
	if control.CanRead(bob, key) {
		t.Errorf("ungranted identity allowed")
	}

	// idempotent
	control.Grant(key, alice)
	if !control.CanRead(alice, key) {
		t.Errorf("double grant broke access")
	}

	control.Revoke(key, alice)
	if control.CanRead(alice, key) {
		t.Errorf("revoked identity still allowed")
	}
	if !control.CanRead(operator, key) {
		t.Errorf("operator affected by revoke")
	}

	// revoking again is harmless
	control.Revoke(key, alice)
	if control.CanRead(alice, key) {
		t.Errorf("double revoke allowed access")
	}
}

// grants are per key and per identity
func TestGrantIsolation(t *testing.T) {
	store, control := setup(t)
	defer teardown(store)

	k1 := [32]byte{1}
	k2 := [32]byte{2}

	control.Grant(k1, alice)
	control.Grant(k2, bob)

	if !control.CanRead(alice, k1) || control.CanRead(alice, k2) {
		t.Errorf("alice grant leaked across keys")
	}
	if control.CanRead(bob, k1) || !control.CanRead(bob, k2) {
		t.Errorf("bob grant leaked across keys")
	}

	control.Revoke(k1, alice)
	if !control.CanRead(bob, k2) {
		t.Errorf("revoke leaked across identities")
	}
}

// parallel array validation
func TestGrantBatch(t *testing.T) {
	store, control := setup(t)
	defer teardown(store)

	keys := [][32]byte{{1}, {2}, {3}}
	identities := []account.Identity{alice, bob, alice}

	err := control.GrantBatch(keys, identities)
	if nil != err {
		t.Fatalf("grant batch error: %s", err)
	}
	if !control.CanRead(alice, keys[0]) || !control.CanRead(bob, keys[1]) || !control.CanRead(alice, keys[2]) {
		t.Errorf("batch grant incomplete")
	}

	err = control.GrantBatch(keys, identities[:2])
	if fault.BatchLengthMismatch != err {
		t.Fatalf("expected length mismatch, got: %v", err)
	}
	// mismatch must not grant anything
	if control.CanRead(bob, keys[0]) {
		t.Errorf("mismatched batch granted access")
	}
}

// the stored relation without the operator bypass
func TestIsGranted(t *testing.T) {
	store, control := setup(t)
	defer teardown(store)

	key := [32]byte{4}

	if control.IsGranted(operator, key) {
		t.Errorf("operator has a stored grant")
	}
	if !control.CanRead(operator, key) {
		t.Errorf("operator bypass failed")
	}
	if !control.IsOperator(operator) || control.IsOperator(alice) {
		t.Errorf("operator identity check failed")
	}
}
