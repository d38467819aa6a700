// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package typeddata - structured-data write authorisation
//
// a signer authorises one write by signing a domain separated digest
// binding the record key, the content digest, the signer's live nonce
// and an expiry; any account may produce such a signature but only the
// operator may submit it, so the signature proves attribution, not
// submission rights
//
// replay is blocked twice over: the nonce is read from storage at
// verification time so a stale payload recovers the wrong digest, and
// every consumed signature's hash is retained forever in its own pool
package typeddata

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/btcsuite/btcd/btcec"
	"golang.org/x/crypto/sha3"

	"github.com/havona-inc/havonad/account"
	"github.com/havona-inc/havonad/digest"
	"github.com/havona-inc/havonad/fault"
	"github.com/havona-inc/havonad/storage"
)

// SignatureLength - r ‖ s ‖ v with a 27/28 recovery byte
const SignatureLength = 65

// MaximumExpiryHorizon - furthest ahead an authorisation may expire
//
// bounds the lifetime of pre-signed writes; a payload signed for the
// distant future would otherwise stay live until its nonce moves
const MaximumExpiryHorizon = time.Hour

// type hashes per the structured-data convention
var (
	domainTypeHash = digest.New([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	writeTypeHash  = digest.New([]byte("WriteAuthorization(bytes32 key,bytes32 contentDigest,uint256 nonce,uint256 expiry)"))
)

// Authorizer - verification context bound to one deployment
type Authorizer struct {
	domainSeparator digest.Digest
	nonces          *storage.PoolHandle
	usedSignatures  *storage.PoolHandle
	clk             clock.Clock
}

// New - create an authoriser for a deployment
//
// any of name, version, chainID or storeIdentity differing produces a
// different domain separator, so signatures never transfer between
// deployments
func New(name string, version string, chainID uint64, storeIdentity account.Identity, nonces *storage.PoolHandle, usedSignatures *storage.PoolHandle, clk clock.Clock) *Authorizer {

	buffer := make([]byte, 0, 5*digest.Length)
	buffer = append(buffer, domainTypeHash[:]...)
	nameHash := digest.New([]byte(name))
	buffer = append(buffer, nameHash[:]...)
	versionHash := digest.New([]byte(version))
	buffer = append(buffer, versionHash[:]...)
	buffer = append(buffer, uint64Word(chainID)...)
	buffer = append(buffer, addressWord(storeIdentity)...)

	return &Authorizer{
		domainSeparator: digest.New(buffer),
		nonces:          nonces,
		usedSignatures:  usedSignatures,
		clk:             clk,
	}
}

// DomainSeparator - the deployment binding digest
func (a *Authorizer) DomainSeparator() digest.Digest {
	return a.domainSeparator
}

// Nonce - the live nonce for a signer
//
// zero for a signer that has never authorised a write
func (a *Authorizer) Nonce(signer account.Identity) uint64 {
	n, _ := a.nonces.GetN(signer.Bytes())
	return n
}

// IsUsed - has a signature already been consumed
func (a *Authorizer) IsUsed(signature account.Signature) bool {
	sigHash := digest.New(signature)
	return a.usedSignatures.Has(sigHash[:])
}

// WriteDigest - the domain separated digest a signer must sign
func (a *Authorizer) WriteDigest(key [32]byte, contentDigest digest.Digest, nonce uint64, expiry uint64) digest.Digest {

	buffer := make([]byte, 0, 5*digest.Length)
	buffer = append(buffer, writeTypeHash[:]...)
	buffer = append(buffer, key[:]...)
	buffer = append(buffer, contentDigest[:]...)
	buffer = append(buffer, uint64Word(nonce)...)
	buffer = append(buffer, uint64Word(expiry)...)
	structHash := digest.New(buffer)

	message := make([]byte, 0, 2+2*digest.Length)
	message = append(message, 0x19, 0x01)
	message = append(message, a.domainSeparator[:]...)
	message = append(message, structHash[:]...)
	return digest.New(message)
}

// Authorize - validate a structured-data write authorisation
//
// checks are ordered so that the cheap temporal bounds fail before any
// curve arithmetic runs; on success the caller must invoke Consume
// inside the same transaction that commits the content
func (a *Authorizer) Authorize(key [32]byte, contentDigest digest.Digest, signature account.Signature, claimedSigner account.Identity, expiry uint64) error {

	if SignatureLength != len(signature) {
		return fault.InvalidSignature
	}

	now := uint64(a.clk.Now().Unix())
	if now > expiry {
		return fault.SignatureExpired
	}
	if expiry > now+uint64(MaximumExpiryHorizon/time.Second) {
		return fault.ExpiryTooFar
	}

	nonce := a.Nonce(claimedSigner)
	d := a.WriteDigest(key, contentDigest, nonce, expiry)

	recovered, err := RecoverSigner(d, signature)
	if nil != err {
		return err
	}
	if recovered != claimedSigner {
		return fault.InvalidSignature
	}

	if a.IsUsed(signature) {
		return fault.SignatureReplayed
	}

	return nil
}

// Consume - record a successful authorisation
//
// must run inside the transaction committing the content so that the
// replay guards advance atomically with the write itself
func (a *Authorizer) Consume(trx storage.Transaction, signer account.Identity, signature account.Signature) {
	sigHash := digest.New(signature)
	trx.Put(a.usedSignatures, sigHash[:], []byte{0x01})

	nonce, _ := trx.GetN(a.nonces, signer.Bytes())
	trx.PutN(a.nonces, signer.Bytes(), nonce+1)
}

// RecoverSigner - recover the signing account from digest + signature
func RecoverSigner(d digest.Digest, signature account.Signature) (account.Identity, error) {

	identity := account.Identity{}
	if SignatureLength != len(signature) {
		return identity, fault.InvalidSignature
	}

	v := signature[64]
	if v < 27 {
		v += 27 // accept the bare 0/1 recovery id form
	}
	if 27 != v && 28 != v {
		return identity, fault.InvalidSignature
	}

	// recovery library wants v ‖ r ‖ s
	compact := make([]byte, SignatureLength)
	compact[0] = v
	copy(compact[1:], signature[:64])

	publicKey, _, err := btcec.RecoverCompact(btcec.S256(), compact, d[:])
	if nil != err {
		return identity, fault.InvalidSignature
	}

	// account address: low 20 bytes of keccak-256 of the raw point
	h := sha3.NewLegacyKeccak256()
	h.Write(publicKey.SerializeUncompressed()[1:])
	copy(identity[:], h.Sum(nil)[12:])
	return identity, nil
}

// 32 byte big endian word from a uint64
func uint64Word(n uint64) []byte {
	buffer := make([]byte, 32)
	buffer[24] = byte(n >> 56)
	buffer[25] = byte(n >> 48)
	buffer[26] = byte(n >> 40)
	buffer[27] = byte(n >> 32)
	buffer[28] = byte(n >> 24)
	buffer[29] = byte(n >> 16)
	buffer[30] = byte(n >> 8)
	buffer[31] = byte(n)
	return buffer
}

// 32 byte word with a right aligned address
func addressWord(identity account.Identity) []byte {
	buffer := make([]byte, 32)
	copy(buffer[12:], identity.Bytes())
	return buffer
}
