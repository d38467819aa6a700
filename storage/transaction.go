// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
)

// Transaction - all-or-nothing writes across any number of pools
//
// reads through the transaction see its own pending writes
type Transaction interface {
	Begin() error
	Abort()
	Commit() error
	Put(pool *PoolHandle, key []byte, value []byte)
	PutN(pool *PoolHandle, key []byte, value uint64)
	Delete(pool *PoolHandle, key []byte)
	Get(pool *PoolHandle, key []byte) []byte
	GetN(pool *PoolHandle, key []byte) (uint64, bool)
	GetNB(pool *PoolHandle, key []byte) (uint64, []byte)
	Has(pool *PoolHandle, key []byte) bool
}

type transactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transactionData{
		access: access,
	}
}

func (t *transactionData) Begin() error {
	return t.access.Begin()
}

func (t *transactionData) Abort() {
	t.access.Abort()
}

func (t *transactionData) Commit() error {
	return t.access.Commit()
}

func (t *transactionData) Put(pool *PoolHandle, key []byte, value []byte) {
	t.access.Put(pool.prefixKey(key), value)
}

func (t *transactionData) PutN(pool *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(pool, key, buffer)
}

func (t *transactionData) Delete(pool *PoolHandle, key []byte) {
	t.access.Delete(pool.prefixKey(key))
}

func (t *transactionData) Get(pool *PoolHandle, key []byte) []byte {
	return pool.Get(key)
}

func (t *transactionData) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	return pool.GetN(key)
}

func (t *transactionData) GetNB(pool *PoolHandle, key []byte) (uint64, []byte) {
	return pool.GetNB(key)
}

func (t *transactionData) Has(pool *PoolHandle, key []byte) bool {
	return pool.Has(key)
}
