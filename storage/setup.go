// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Blobs          *PoolHandle `prefix:"B"`
	VersionCounts  *PoolHandle `prefix:"N"`
	Versions       *PoolHandle `prefix:"V"`
	AccessGrants   *PoolHandle `prefix:"G"`
	SignerNonces   *PoolHandle `prefix:"C"`
	UsedSignatures *PoolHandle `prefix:"U"`
	TestData       *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// Store - one opened database and its pools
//
// all of the blob store's persistent state lives behind one of these;
// it is threaded explicitly through every component rather than held
// as a package global
type Store struct {
	sync.RWMutex
	Pool pools

	db     *leveldb.DB
	access Access
	cache  Cache
}

// Open - open (creating if missing) a database and build the pools
func Open(database string) (*Store, error) {

	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}

	db, err := leveldb.OpenFile(database, opt)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	versionValue, err := db.Get(versionKey, nil)
	switch err {
	case leveldb.ErrNotFound:
		// database was empty so tag as current version
		buffer := make([]byte, 4)
		binary.BigEndian.PutUint32(buffer, currentDBVersion)
		err = db.Put(versionKey, buffer, nil)
		if nil != err {
			db.Close()
			return nil, err
		}
	case nil:
		if 4 != len(versionValue) {
			db.Close()
			return nil, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
		}
		version := int(binary.BigEndian.Uint32(versionValue))
		if version > currentDBVersion {
			db.Close()
			return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
		}
	default:
		db.Close()
		return nil, err
	}

	store := &Store{
		db:    db,
		cache: newCache(),
	}
	store.access = newAccess(db, store.cache)

	// this will be a struct type
	poolType := reflect.TypeOf(store.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&store.Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			db.Close()
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			access: store.access,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	return store, nil
}

// Close - close the database connection
func (store *Store) Close() {
	store.Lock()
	defer store.Unlock()
	if nil != store.db {
		store.db.Close()
		store.db = nil
	}
}

// NewTransaction - claim the store's write batch
//
// only one transaction can be in progress; a second Begin fails until
// the first is committed or aborted
func (store *Store) NewTransaction() (Transaction, error) {
	trx := newTransaction(store.access)
	err := trx.Begin()
	if nil != err {
		return nil, err
	}
	return trx, nil
}
