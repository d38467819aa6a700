// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistor

import (
	"encoding/binary"
	"math/big"

	"github.com/havona-inc/havonad/account"
	"github.com/havona-inc/havonad/digest"
	"github.com/havona-inc/havonad/fault"
	"github.com/havona-inc/havonad/notify"
	"github.com/havona-inc/havonad/storage"
)

// Write - direct operator write
//
// the privileged path: no signature, attribution is the caller itself
func (p *Persistor) Write(caller account.Identity, key Key, content []byte) error {
	if err := p.enter(); nil != err {
		return err
	}
	defer p.leave()

	if !p.control.IsOperator(caller) {
		return fault.Unauthorized
	}

	trx, err := p.store.NewTransaction()
	if nil != err {
		return err
	}

	events := make([]interface{}, 0, 2)
	err = p.commit(trx, key, content, caller.String(), &events)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}
	p.emit(events)
	return nil
}

// WriteFor - structured-data authorised write
//
// submission stays operator gated while the signature determines
// attribution; the replay guards advance inside the same transaction
// that commits the content
func (p *Persistor) WriteFor(caller account.Identity, key Key, content []byte, signature account.Signature, signer account.Identity, expiry uint64) error {
	if err := p.enter(); nil != err {
		return err
	}
	defer p.leave()

	if !p.control.IsOperator(caller) {
		return fault.Unauthorized
	}

	contentDigest := digest.New(content)
	err := p.authorizer.Authorize([KeyLength]byte(key), contentDigest, signature, signer, expiry)
	if nil != err {
		return err
	}

	trx, err := p.store.NewTransaction()
	if nil != err {
		return err
	}

	events := make([]interface{}, 0, 2)
	err = p.commit(trx, key, content, signer.String(), &events)
	if nil != err {
		trx.Abort()
		return err
	}
	p.authorizer.Consume(trx, signer, signature)

	err = trx.Commit()
	if nil != err {
		return err
	}
	p.emit(events)
	return nil
}

// WriteSigned - hardware token authorised write
//
// the signature is over keccak-256 of the content, or over a caller
// supplied 32 byte pre-hash when the authenticator signed an assertion
// rather than the raw content; attribution is the public key itself
func (p *Persistor) WriteSigned(caller account.Identity, key Key, content []byte, preHash []byte, r *big.Int, s *big.Int, publicKey account.PublicKey) error {
	if err := p.enter(); nil != err {
		return err
	}
	defer p.leave()

	if !p.control.IsOperator(caller) {
		return fault.Unauthorized
	}

	message := preHash
	if nil == message {
		d := digest.New(content)
		message = d[:]
	} else if digest.Length != len(message) {
		return fault.InvalidSignature
	}

	if !p.verifier.Verify(message, r, s, publicKey.X(), publicKey.Y()) {
		return fault.InvalidSignature
	}

	trx, err := p.store.NewTransaction()
	if nil != err {
		return err
	}

	events := make([]interface{}, 0, 2)
	err = p.commit(trx, key, content, publicKey.String(), &events)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}
	p.emit(events)
	return nil
}

// WriteBatch - direct operator write of parallel key/content arrays
//
// all-or-nothing: any item failing its version cap aborts the whole
// transaction and no item is applied
func (p *Persistor) WriteBatch(caller account.Identity, keys []Key, contents [][]byte) error {
	if err := p.enter(); nil != err {
		return err
	}
	defer p.leave()

	if !p.control.IsOperator(caller) {
		return fault.Unauthorized
	}
	if len(keys) > MaxBatch {
		return fault.BatchTooLarge
	}
	if len(keys) != len(contents) {
		return fault.BatchLengthMismatch
	}

	trx, err := p.store.NewTransaction()
	if nil != err {
		return err
	}

	events := make([]interface{}, 0, 2*len(keys))
	attribution := caller.String()
	for i, key := range keys {
		err = p.commit(trx, key, contents[i], attribution, &events)
		if nil != err {
			trx.Abort()
			return err
		}
	}

	err = trx.Commit()
	if nil != err {
		return err
	}
	p.emit(events)
	return nil
}

// Remove - delete a record's current content
//
// archived versions and the version counter survive removal; a later
// first write to the same key continues the old counter
func (p *Persistor) Remove(caller account.Identity, key Key) error {
	if err := p.enter(); nil != err {
		return err
	}
	defer p.leave()

	if !p.control.IsOperator(caller) {
		return fault.Unauthorized
	}

	trx, err := p.store.NewTransaction()
	if nil != err {
		return err
	}

	if !trx.Has(p.store.Pool.Blobs, key[:]) {
		trx.Abort()
		return fault.RecordNotFound
	}
	trx.Delete(p.store.Pool.Blobs, key[:])

	err = trx.Commit()
	if nil != err {
		return err
	}
	p.events.Send(notify.Removed{
		Key:       key[:],
		Identity:  caller.String(),
		Timestamp: p.clk.Now(),
	})
	return nil
}

// commit - the single write path all authorisations converge on
//
// archives the prior content as the next version snapshot before
// overwriting; events are collected and only emitted by the caller
// after a successful transaction commit
func (p *Persistor) commit(trx storage.Transaction, key Key, content []byte, attribution string, events *[]interface{}) error {

	contentDigest := digest.New(content)
	now := p.clk.Now()

	existing := trx.Get(p.store.Pool.Blobs, key[:])
	if nil != existing {
		count, _ := trx.GetN(p.store.Pool.VersionCounts, key[:])
		version := count + 1
		if version > MaxVersions {
			return fault.VersionLimitExceeded
		}
		trx.Put(p.store.Pool.Versions, versionKey(key, version), existing)
		trx.PutN(p.store.Pool.VersionCounts, key[:], version)

		*events = append(*events, notify.VersionArchived{
			Key:       key[:],
			Version:   version,
			Timestamp: now,
			OldDigest: existing[:digest.Length],
			NewDigest: contentDigest[:],
		})
	}

	// record layout: digest ‖ content
	blob := make([]byte, 0, digest.Length+len(content))
	blob = append(blob, contentDigest[:]...)
	blob = append(blob, content...)
	trx.Put(p.store.Pool.Blobs, key[:], blob)

	*events = append(*events, notify.Stored{
		Key:       key[:],
		Identity:  attribution,
		Length:    len(content),
		Timestamp: now,
		Digest:    contentDigest[:],
	})

	p.log.Debugf("commit: key: %x  length: %d", key, len(content))
	return nil
}

func (p *Persistor) emit(events []interface{}) {
	for _, item := range events {
		p.events.Send(item)
	}
}

// storage key for an archived snapshot: record key ‖ big endian version
func versionKey(key Key, version uint64) []byte {
	buffer := make([]byte, KeyLength+8)
	copy(buffer, key[:])
	binary.BigEndian.PutUint64(buffer[KeyLength:], version)
	return buffer
}
