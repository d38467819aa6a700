// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/havona-inc/havonad/fault"
)

// Access - batched access to the database
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete(key []byte)
	Get(key []byte) ([]byte, bool, error)
	Has(key []byte) (bool, error)
	InUse() bool
	Iterator(searchRange *ldb_util.Range) iterator.Iterator
	Put(key []byte, value []byte)
}

// AccessData - the single batch and read cache over one database
type AccessData struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newAccess(db *leveldb.DB, cache Cache) Access {
	return &AccessData{
		db:    db,
		batch: new(leveldb.Batch),
		cache: cache,
	}
}

// Begin - claim the batch for a transaction
func (d *AccessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.TransactionInUse
	}
	d.inUse = true
	return nil
}

// Put - queue a put into the batch
//
// the cache makes the pending value visible to reads before commit
func (d *AccessData) Put(key []byte, value []byte) {
	d.cache.Set(dbPut, string(key), value)
	d.batch.Put(key, value)
}

// Delete - queue a delete into the batch
func (d *AccessData) Delete(key []byte) {
	d.cache.Set(dbDelete, string(key), []byte{})
	d.batch.Delete(key)
}

// Commit - write the batch to the database and release it
func (d *AccessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	err := d.db.Write(d.batch, nil)
	d.batch.Reset()
	d.inUse = false
	return err
}

// Abort - drop all pending writes and release the batch
func (d *AccessData) Abort() {
	d.Lock()
	defer d.Unlock()

	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}

// Get - pending write if cached, otherwise the stored value
func (d *AccessData) Get(key []byte) ([]byte, bool, error) {
	if value, found := d.cache.Get(string(key)); found {
		return value, true, nil
	}
	if d.cache.Deleted(string(key)) {
		return nil, false, nil
	}
	value, err := d.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	} else if nil != err {
		return nil, false, err
	}
	return value, true, nil
}

// Has - check cache then database
func (d *AccessData) Has(key []byte) (bool, error) {
	if _, found := d.cache.Get(string(key)); found {
		return true, nil
	}
	if d.cache.Deleted(string(key)) {
		return false, nil
	}
	return d.db.Has(key, nil)
}

// Iterator - raw database iterator over a key range
//
// pending transaction writes are not visible to iteration
func (d *AccessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

// InUse - is a transaction currently using the batch
func (d *AccessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}
