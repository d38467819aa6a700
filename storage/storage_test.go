// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"testing"

	"github.com/havona-inc/havonad/storage"
)

// helper to add to pool
func poolPut(t *testing.T, p *storage.PoolHandle, key string, data string) {
	p.Put([]byte(key), []byte(data))
}

// helper to remove from pool
func poolDelete(t *testing.T, p *storage.PoolHandle, key string) {
	p.Delete([]byte(key))
}

// main pool test
func TestPool(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := testStore.Pool.TestData

	// ensure that pool was empty
	checkAgain(t, true)

	// add some items, with a few duplicates and deletions
	poolPut(t, p, "key-one", "data-one")
	poolPut(t, p, "key-two", "data-two")
	poolPut(t, p, "key-remove-me", "to be deleted")
	poolDelete(t, p, "key-remove-me")
	poolPut(t, p, "key-three", "data-three")
	poolPut(t, p, "key-one", "data-one")     // duplicate
	poolPut(t, p, "key-three", "data-three") // duplicate
	poolPut(t, p, "key-four", "data-four")
	poolPut(t, p, "key-delete-this", "to be deleted")
	poolPut(t, p, "key-five", "data-five")
	poolPut(t, p, "key-six", "data-six")
	poolDelete(t, p, "key-delete-this")
	poolPut(t, p, "key-seven", "data-seven")
	poolPut(t, p, "key-one", "data-one(NEW)") // duplicate

	// ensure that data is correct
	checkResults(t, p)

	// recheck
	checkAgain(t, false)
}

func checkResults(t *testing.T, p *storage.PoolHandle) {

	// ensure we get all of the pool
	cursor := p.NewFetchCursor()
	data, err := cursor.Fetch(20)
	if nil != err {
		t.Errorf("Error on Fetch: %v", err)
		return
	}

	// ensure lengths match
	if len(data) != len(expectedElements) {
		t.Errorf("Length mismatch, got: %d  expected: %d", len(data), len(expectedElements))
	}

	// compare all items from pool
	for i, a := range data {
		if i >= len(expectedElements) {
			t.Errorf("%d: Excess, got: '%s'  expected: Nothing", i, a)
		} else if !bytes.Equal(expectedElements[i].Key, a.Key) || !bytes.Equal(expectedElements[i].Value, a.Value) {
			t.Errorf("%d: Mismatch, got: '%s:%s'  expected: '%s:%s'", i,
				a.Key, a.Value,
				expectedElements[i].Key, expectedElements[i].Value)
		}
	}

	// retrieve 2 elements then next 2 - ensure no overlap
	cursor.Seek(nil)
	firstPair, err := cursor.Fetch(2)
	if nil != err {
		t.Fatalf("Error on Fetch: %v", err)
	}
	secondPair, err := cursor.Fetch(2)
	if nil != err {
		t.Fatalf("Error on Fetch: %v", err)
	}
	if bytes.Equal(firstPair[1].Key, secondPair[0].Key) {
		t.Errorf("Cursor did not advance: %s", firstPair[1].Key)
	}
}

func checkAgain(t *testing.T, empty bool) {

	p := testStore.Pool.TestData

	// cache will be empty
	cursor := p.NewFetchCursor()
	data, err := cursor.Fetch(100) // all data
	if nil != err {
		t.Errorf("Error on Fetch: %v", err)
		return
	}
	if empty && 0 != len(data) {
		t.Errorf("Pool was not empty, count: %d", len(data))
	}

	for i, e := range expectedElements {

		data := p.Get([]byte(e.Key))
		if empty {
			if nil != data {
				t.Errorf("%d: Unexpected data on Get('%s'), got: '%s'  expected: nil", i, e.Key, data)
			}
		} else {
			if nil == data {
				t.Errorf("%d: Error on Get('%s') not found", i, e.Key)
			} else if !bytes.Equal(data, e.Value) {
				t.Errorf("%d: Mismatch on Get('%s'), got: '%s'  expected: '%s'", i, e.Key, data, e.Value)
			}
		}
	}

	// try to retrieve some more data - shout be nil
	checkElement := func(key []byte) {
		data := p.Get(key)
		if nil != data {
			t.Errorf("Unexpected data on Get('%s'), got: '%s'  expected: nil", key, data)
		}
	}
	checkElement(nonExistantKey)
}

// numeric storage round trip
func TestPutNGetN(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := testStore.Pool.TestData

	if _, found := p.GetN([]byte("counter")); found {
		t.Fatalf("unexpected counter record")
	}

	p.PutN([]byte("counter"), 42)

	n, found := p.GetN([]byte("counter"))
	if !found {
		t.Fatalf("counter record not found")
	}
	if 42 != n {
		t.Errorf("counter mismatch, got: %d  expected: 42", n)
	}

	// combined N+bytes record
	buffer := append([]byte{0, 0, 0, 0, 0, 0, 0, 7}, []byte("payload")...)
	p.Put([]byte("combined"), buffer)

	n, rest := p.GetNB([]byte("combined"))
	if 7 != n {
		t.Errorf("N mismatch, got: %d  expected: 7", n)
	}
	if !bytes.Equal([]byte("payload"), rest) {
		t.Errorf("payload mismatch, got: %s", rest)
	}
}

// each pool must be isolated by its prefix
func TestPoolIsolation(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("shared-key")

	testStore.Pool.Blobs.Put(key, []byte("blob data"))
	testStore.Pool.Versions.Put(key, []byte("version data"))

	if !bytes.Equal([]byte("blob data"), testStore.Pool.Blobs.Get(key)) {
		t.Errorf("blob pool corrupted")
	}
	if !bytes.Equal([]byte("version data"), testStore.Pool.Versions.Get(key)) {
		t.Errorf("version pool corrupted")
	}
	if testStore.Pool.TestData.Has(key) {
		t.Errorf("prefix leak into test data pool")
	}

	testStore.Pool.Blobs.Delete(key)
	if testStore.Pool.Blobs.Has(key) {
		t.Errorf("blob not deleted")
	}
	if !testStore.Pool.Versions.Has(key) {
		t.Errorf("version delete leak")
	}
}

// data must survive a close and reopen
func TestPersistence(t *testing.T) {
	setup(t)

	p := testStore.Pool.TestData
	poolPut(t, p, "persist-key", "persist-data")

	testStore.Close()

	store, err := storage.Open(databaseFileName)
	if nil != err {
		t.Fatalf("storage reopen error: %s", err)
	}
	testStore = store
	defer teardown(t)

	data := testStore.Pool.TestData.Get([]byte("persist-key"))
	if !bytes.Equal([]byte("persist-data"), data) {
		t.Errorf("data lost over restart, got: %q", data)
	}
}
