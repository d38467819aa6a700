// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistor_test

import (
	"crypto/rand"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/btcsuite/btcd/btcec"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/havona-inc/havonad/access"
	"github.com/havona-inc/havonad/account"
	"github.com/havona-inc/havonad/chain"
	"github.com/havona-inc/havonad/digest"
	"github.com/havona-inc/havonad/notify"
	"github.com/havona-inc/havonad/p256"
	"github.com/havona-inc/havonad/persistor"
	"github.com/havona-inc/havonad/storage"
	"github.com/havona-inc/havonad/typeddata"
)

const (
	databaseFileName = "persistor-test.leveldb"
	logDirectory     = "testing"
)

func TestMain(m *testing.M) {
	removeFiles()
	_ = os.Mkdir(logDirectory, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	rc := m.Run()
	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

func removeFiles() {
	os.RemoveAll(databaseFileName)
	os.RemoveAll(logDirectory)
}

type fixture struct {
	store      *storage.Store
	persistor  *persistor.Persistor
	events     *notify.Queue
	control    *access.Control
	authorizer *typeddata.Authorizer
	verifier   *p256.Verifier
	clk        *clock.Mock
	operator   account.Identity
	reader     account.Identity
	signerKey  *btcec.PrivateKey
	signer     account.Identity
}

func setup(t *testing.T) *fixture {
	os.RemoveAll(databaseFileName)

	store, err := storage.Open(databaseFileName)
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}

	clk := clock.NewMock()
	clk.Add(1000000 * time.Second)

	operator := mustIdentity(t, "0x00000000000000000000000000000000000000aa")
	reader := mustIdentity(t, "0x00000000000000000000000000000000000000bb")
	storeIdentity := mustIdentity(t, "0x00000000000000000000000000000000deadbeef")

	control := access.New(operator, store.Pool.AccessGrants)

	authorizer := typeddata.New(
		"Havona Persistor", "1", chain.TestingID, storeIdentity,
		store.Pool.SignerNonces, store.Pool.UsedSignatures, clk,
	)

	verifier, err := p256.NewVerifier(chain.Testing, false)
	if nil != err {
		t.Fatalf("verifier error: %s", err)
	}

	events := notify.NewSize(8192)

	p, err := persistor.New(store, control, authorizer, verifier, events, nil, clk)
	if nil != err {
		t.Fatalf("persistor error: %s", err)
	}

	signerKey, err := btcec.NewPrivateKey(btcec.S256())
	if nil != err {
		t.Fatalf("key generation error: %s", err)
	}

	return &fixture{
		store:      store,
		persistor:  p,
		events:     events,
		control:    control,
		authorizer: authorizer,
		verifier:   verifier,
		clk:        clk,
		operator:   operator,
		reader:     reader,
		signerKey:  signerKey,
		signer:     addressOf(signerKey),
	}
}

func (f *fixture) teardown() {
	f.store.Close()
	os.RemoveAll(databaseFileName)
}

func mustIdentity(t *testing.T, s string) account.Identity {
	identity, err := account.IdentityFromHexString(s)
	if nil != err {
		t.Fatalf("identity error: %s", err)
	}
	return identity
}

// a distinct record key per test name
func keyOf(s string) persistor.Key {
	return persistor.Key(digest.New([]byte(s)))
}

// random content of a given length
func randomContent(t *testing.T, length int) []byte {
	buffer := make([]byte, length)
	_, err := rand.Read(buffer)
	if nil != err {
		t.Fatalf("random error: %s", err)
	}
	return buffer
}

// the account address of a secp256k1 key
func addressOf(key *btcec.PrivateKey) account.Identity {
	h := sha3.NewLegacyKeccak256()
	h.Write(key.PubKey().SerializeUncompressed()[1:])
	var identity account.Identity
	copy(identity[:], h.Sum(nil)[12:])
	return identity
}

// sign a digest, returning the r ‖ s ‖ v form
func signDigest(t *testing.T, key *btcec.PrivateKey, d digest.Digest) account.Signature {
	compact, err := btcec.SignCompact(btcec.S256(), key, d[:], false)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}
	signature := make(account.Signature, typeddata.SignatureLength)
	copy(signature, compact[1:])
	signature[64] = compact[0]
	return signature
}

// build a structured-data authorisation for the signer's current nonce
func (f *fixture) authorise(t *testing.T, key persistor.Key, content []byte, expiry uint64) account.Signature {
	d := f.persistor.WriteDigest(key, content, expiry, f.signer)
	return signDigest(t, f.signerKey, d)
}

func (f *fixture) now() uint64 {
	return uint64(f.clk.Now().Unix())
}

// drain all pending events into a slice
func (f *fixture) drainEvents() []interface{} {
	items := make([]interface{}, 0, 16)
draining:
	for {
		select {
		case message := <-f.events.Chan():
			items = append(items, message.Item)
		default:
			break draining
		}
	}
	return items
}

func contentFor(i int) []byte {
	return []byte(fmt.Sprintf("content-%04d", i))
}

func keyFor(tag string, i int) persistor.Key {
	return keyOf(fmt.Sprintf("%s-%04d", tag, i))
}
