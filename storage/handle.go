// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
)

// Handle - the behaviour of a single pool
type Handle interface {
	Put(key []byte, value []byte)
	PutN(key []byte, value uint64)
	Delete(key []byte)
	Get(key []byte) []byte
	GetN(key []byte) (uint64, bool)
	GetNB(key []byte) (uint64, []byte)
	Has(key []byte) bool
	NewFetchCursor() *FetchCursor
}

// PoolHandle - one prefixed pool inside the database
type PoolHandle struct {
	prefix byte
	limit  []byte
	access Access
}

// Element - a binary key/value pair from a pool
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair
//
// outside a transaction the write is committed immediately; while a
// transaction is in progress the write joins it
func (p *PoolHandle) Put(key []byte, value []byte) {
	p.access.Put(p.prefixKey(key), value)
	if !p.access.InUse() {
		err := p.access.Commit()
		logger.PanicIfError("pool.Put", err)
	}
}

// PutN - store a big endian uint64 under a key
func (p *PoolHandle) PutN(key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	p.Put(key, buffer)
}

// Delete - remove a key from the pool
func (p *PoolHandle) Delete(key []byte) {
	p.access.Delete(p.prefixKey(key))
	if !p.access.InUse() {
		err := p.access.Commit()
		logger.PanicIfError("pool.Delete", err)
	}
}

// Get - read a value for a given key
//
// returns nil if the key does not exist
func (p *PoolHandle) Get(key []byte) []byte {
	value, found, err := p.access.Get(p.prefixKey(key))
	logger.PanicIfError("pool.Get", err)
	if !found {
		return nil
	}
	return value
}

// GetN - read a record and decode as big endian uint64
//
// second parameter is false if record was not found
// panics if not exactly 8 bytes in the record
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false
	}
	if 8 != len(buffer) {
		logger.Panicf("pool.GetN truncated record for: %x: %x", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer), true
}

// GetNB - read a record, decode first 8 bytes as big endian uint64
// and return the rest of the record as byte slice
//
// second parameter is nil if record was not found
// panics if not 9 (or more) bytes in the record
func (p *PoolHandle) GetNB(key []byte) (uint64, []byte) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, nil
	}
	if len(buffer) < 9 { // must have at least one byte after the N value
		logger.Panicf("pool.GetNB truncated record for: %x: %x", key, buffer)
	}
	n := binary.BigEndian.Uint64(buffer[:8])
	return n, buffer[8:]
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	found, err := p.access.Has(p.prefixKey(key))
	logger.PanicIfError("pool.Has", err)
	return found
}
