// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistor

import (
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"github.com/bitmark-inc/logger"

	"github.com/havona-inc/havonad/access"
	"github.com/havona-inc/havonad/account"
	"github.com/havona-inc/havonad/digest"
	"github.com/havona-inc/havonad/fault"
	"github.com/havona-inc/havonad/notify"
	"github.com/havona-inc/havonad/p256"
	"github.com/havona-inc/havonad/storage"
	"github.com/havona-inc/havonad/typeddata"
)

// KeyLength - number of bytes in a record key
const KeyLength = 32

// Key - opaque record identifier, typically a hash of an external reference
type Key [KeyLength]byte

// interoperability constants, must match every other implementation
const (
	// MaxVersions - archived versions per record before writes hard fail
	MaxVersions = 100

	// MaxBatch - items per batch write call
	MaxBatch = 50
)

// Field - one decoded key/value pair from stored content
type Field struct {
	Name  []byte
	Value []byte
}

// Decoder - the external content decoding function
//
// supplied by a collaborator and consumed strictly read-only; the
// store never interprets content itself
type Decoder interface {
	Decode(content []byte) ([]Field, error)
}

// Persistor - the single owned aggregate holding all store state
//
// records, versions, grants, nonces and consumed signatures all live
// in the store's pools; nothing here is a package global
type Persistor struct {
	busy int32 // mutation guard, see enter/leave

	log        *logger.L
	store      *storage.Store
	control    *access.Control
	authorizer *typeddata.Authorizer
	verifier   *p256.Verifier
	events     *notify.Queue
	decoder    Decoder
	clk        clock.Clock
}

// New - assemble a persistor over an opened store
//
// decoder may be nil when no decoding collaborator is deployed
func New(
	store *storage.Store,
	control *access.Control,
	authorizer *typeddata.Authorizer,
	verifier *p256.Verifier,
	events *notify.Queue,
	decoder Decoder,
	clk clock.Clock,
) (*Persistor, error) {

	if nil == store || nil == control || nil == authorizer || nil == events || nil == clk {
		return nil, fault.MissingParameters
	}
	if nil == verifier {
		return nil, fault.InvalidVerifier
	}

	return &Persistor{
		log:        logger.New("persistor"),
		store:      store,
		control:    control,
		authorizer: authorizer,
		verifier:   verifier,
		events:     events,
		decoder:    decoder,
		clk:        clk,
	}, nil
}

// Events - the queue this persistor emits to
func (p *Persistor) Events() *notify.Queue {
	return p.events
}

// Operator - the privileged identity
func (p *Persistor) Operator() account.Identity {
	return p.control.Operator()
}

// Nonce - the live structured-data nonce for a signer
func (p *Persistor) Nonce(signer account.Identity) uint64 {
	return p.authorizer.Nonce(signer)
}

// WriteDigest - the digest a signer must sign to authorise a write
//
// exposed so that signing clients and the store derive the identical
// domain separated payload
func (p *Persistor) WriteDigest(key Key, content []byte, expiry uint64, signer account.Identity) digest.Digest {
	return p.authorizer.WriteDigest([KeyLength]byte(key), digest.New(content), p.authorizer.Nonce(signer), expiry)
}

// SetVerifier - bind a replacement signature verifier
//
// restricted to the operator; emits a before/after event so external
// indexers can audit verification downgrades
func (p *Persistor) SetVerifier(caller account.Identity, verifier *p256.Verifier) error {
	if err := p.enter(); nil != err {
		return err
	}
	defer p.leave()

	if !p.control.IsOperator(caller) {
		return fault.Unauthorized
	}
	if nil == verifier {
		return fault.InvalidVerifier
	}

	old := p.verifier
	p.verifier = verifier
	p.log.Infof("verifier replaced: skip %v → %v", old.SkipsVerification(), verifier.SkipsVerification())

	p.events.Send(notify.VerifierChanged{
		OldSkipsVerification: old.SkipsVerification(),
		NewSkipsVerification: verifier.SkipsVerification(),
		Timestamp:            p.clk.Now(),
	})
	return nil
}

// Grant - allow an identity to read a record
func (p *Persistor) Grant(caller account.Identity, key Key, identity account.Identity) error {
	if err := p.enter(); nil != err {
		return err
	}
	defer p.leave()

	if !p.control.IsOperator(caller) {
		return fault.Unauthorized
	}

	p.control.Grant([KeyLength]byte(key), identity)
	p.events.Send(notify.AccessGranted{
		Key:       key[:],
		Identity:  identity.String(),
		Timestamp: p.clk.Now(),
	})
	return nil
}

// Revoke - remove an identity's read grant for a record
func (p *Persistor) Revoke(caller account.Identity, key Key, identity account.Identity) error {
	if err := p.enter(); nil != err {
		return err
	}
	defer p.leave()

	if !p.control.IsOperator(caller) {
		return fault.Unauthorized
	}

	p.control.Revoke([KeyLength]byte(key), identity)
	p.events.Send(notify.AccessRevoked{
		Key:       key[:],
		Identity:  identity.String(),
		Timestamp: p.clk.Now(),
	})
	return nil
}

// GrantBatch - grant for parallel key/identity arrays
func (p *Persistor) GrantBatch(caller account.Identity, keys []Key, identities []account.Identity) error {
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
	if len(keys) != len(identities) {
		return fault.BatchLengthMismatch
	}

	now := p.clk.Now()
	for i, key := range keys {
		p.control.Grant([KeyLength]byte(key), identities[i])
		p.events.Send(notify.AccessGranted{
			Key:       key[:],
			Identity:  identities[i].String(),
			Timestamp: now,
		})
	}
	return nil
}

// CanRead - the access predicate, operator always passes
func (p *Persistor) CanRead(identity account.Identity, key Key) bool {
	return p.control.CanRead(identity, [KeyLength]byte(key))
}

// enter - claim the mutation guard
//
// the host serialises mutating calls, so a failed claim means a
// re-entrant or overlapping mutation and the call is refused outright
// rather than queued
func (p *Persistor) enter() error {
	if !atomic.CompareAndSwapInt32(&p.busy, 0, 1) {
		return fault.StoreBusy
	}
	return nil
}

// leave - release the mutation guard
func (p *Persistor) leave() {
	atomic.StoreInt32(&p.busy, 0)
}
