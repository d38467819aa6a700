// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"testing"

	"github.com/havona-inc/havonad/fault"
)

// a committed transaction applies all of its writes
func TestTransactionCommit(t *testing.T) {
	setup(t)
	defer teardown(t)

	blobs := testStore.Pool.Blobs
	counts := testStore.Pool.VersionCounts

	trx, err := testStore.NewTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}

	trx.Put(blobs, []byte("k1"), []byte("content"))
	trx.PutN(counts, []byte("k1"), 3)

	// reads through the transaction see pending writes
	if !bytes.Equal([]byte("content"), trx.Get(blobs, []byte("k1"))) {
		t.Errorf("pending write not visible in transaction")
	}
	n, found := trx.GetN(counts, []byte("k1"))
	if !found || 3 != n {
		t.Errorf("pending count not visible, got: %d, %v", n, found)
	}

	err = trx.Commit()
	if nil != err {
		t.Fatalf("transaction commit error: %s", err)
	}

	if !bytes.Equal([]byte("content"), blobs.Get([]byte("k1"))) {
		t.Errorf("committed write missing")
	}
	n, found = counts.GetN([]byte("k1"))
	if !found || 3 != n {
		t.Errorf("committed count missing, got: %d, %v", n, found)
	}
}

// an aborted transaction leaves no trace
func TestTransactionAbort(t *testing.T) {
	setup(t)
	defer teardown(t)

	blobs := testStore.Pool.Blobs
	blobs.Put([]byte("kept"), []byte("original"))

	trx, err := testStore.NewTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}

	trx.Put(blobs, []byte("kept"), []byte("modified"))
	trx.Put(blobs, []byte("new-key"), []byte("new"))
	trx.Delete(blobs, []byte("kept"))
	trx.Abort()

	if blobs.Has([]byte("new-key")) {
		t.Errorf("aborted write applied")
	}
	if !bytes.Equal([]byte("original"), blobs.Get([]byte("kept"))) {
		t.Errorf("aborted transaction corrupted existing key, got: %q", blobs.Get([]byte("kept")))
	}
}

// only one transaction at a time
func TestTransactionExclusive(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := testStore.NewTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}

	_, err = testStore.NewTransaction()
	if fault.TransactionInUse != err {
		t.Fatalf("expected in-use error, got: %v", err)
	}

	trx.Abort()

	trx2, err := testStore.NewTransaction()
	if nil != err {
		t.Fatalf("transaction begin after abort error: %s", err)
	}
	trx2.Abort()
}

// deletes pending in a transaction hide the stored value
func TestTransactionDeleteVisibility(t *testing.T) {
	setup(t)
	defer teardown(t)

	blobs := testStore.Pool.Blobs
	blobs.Put([]byte("gone"), []byte("value"))

	trx, err := testStore.NewTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}
	trx.Delete(blobs, []byte("gone"))

	if trx.Has(blobs, []byte("gone")) {
		t.Errorf("pending delete still visible")
	}
	if nil != trx.Get(blobs, []byte("gone")) {
		t.Errorf("pending delete returned data")
	}

	err = trx.Commit()
	if nil != err {
		t.Fatalf("transaction commit error: %s", err)
	}

	if blobs.Has([]byte("gone")) {
		t.Errorf("delete not applied")
	}
}
