// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistor

import (
	"github.com/havona-inc/havonad/account"
	"github.com/havona-inc/havonad/digest"
	"github.com/havona-inc/havonad/fault"
)

// Entry - one listing row
//
// Content is nil when the requesting identity holds no grant for the
// key; existence, length and digest are not confidential
type Entry struct {
	Key     Key
	Length  int
	Digest  digest.Digest
	Content []byte
}

// Has - report whether a record currently holds content
//
// existence is public, only content is access gated
func (p *Persistor) Has(key Key) bool {
	return p.store.Pool.Blobs.Has(key[:])
}

// Read - fetch a record's current content
func (p *Persistor) Read(identity account.Identity, key Key) ([]byte, error) {

	blob := p.store.Pool.Blobs.Get(key[:])
	if nil == blob {
		return nil, fault.RecordNotFound
	}
	if !p.control.CanRead(identity, [KeyLength]byte(key)) {
		return nil, fault.AccessDenied
	}
	if len(blob) < digest.Length {
		return nil, fault.DataInconsistent
	}
	return blob[digest.Length:], nil
}

// ReadDigest - fetch the digest of a record's current content
func (p *Persistor) ReadDigest(key Key) (digest.Digest, error) {

	blob := p.store.Pool.Blobs.Get(key[:])
	if nil == blob {
		return digest.Digest{}, fault.RecordNotFound
	}
	if len(blob) < digest.Length {
		return digest.Digest{}, fault.DataInconsistent
	}
	return digest.FromBytes(blob[:digest.Length])
}

// VersionCount - number of archived snapshots for a key
//
// the counter survives removal of the record itself
func (p *Persistor) VersionCount(key Key) uint64 {
	count, _ := p.store.Pool.VersionCounts.GetN(key[:])
	return count
}

// ReadVersion - fetch an archived snapshot
//
// version numbers run 1..VersionCount in write order; snapshots stay
// readable after the current record is removed
func (p *Persistor) ReadVersion(identity account.Identity, key Key, version uint64) ([]byte, error) {

	if !p.control.CanRead(identity, [KeyLength]byte(key)) {
		return nil, fault.AccessDenied
	}

	count := p.VersionCount(key)
	if 0 == count && !p.Has(key) {
		return nil, fault.RecordNotFound
	}
	if 0 == version || version > count {
		return nil, fault.VersionNotFound
	}

	blob := p.store.Pool.Versions.Get(versionKey(key, version))
	if nil == blob || len(blob) < digest.Length {
		return nil, fault.DataInconsistent
	}
	return blob[digest.Length:], nil
}

// Count - total number of records currently holding content
func (p *Persistor) Count() int {
	return p.store.Pool.Blobs.NewFetchCursor().Count()
}

// List - paginated listing of all records
//
// every caller sees the same key slice and per record length and
// digest; content bytes are populated only where the caller holds a
// grant or is the operator
func (p *Persistor) List(identity account.Identity, offset int, limit int) ([]Entry, error) {

	if offset < 0 || limit < 0 {
		return nil, fault.IndexOutOfBounds
	}

	entries := make([]Entry, 0, limit)
	skipped := 0

	cursor := p.store.Pool.Blobs.NewFetchCursor()
	err := cursor.Map(func(storedKey []byte, blob []byte) error {
		if skipped < offset {
			skipped += 1
			return nil
		}
		if len(entries) >= limit {
			return errListFull
		}
		if KeyLength != len(storedKey) || len(blob) < digest.Length {
			return fault.DataInconsistent
		}

		entry := Entry{
			Length: len(blob) - digest.Length,
		}
		copy(entry.Key[:], storedKey)
		copy(entry.Digest[:], blob[:digest.Length])
		if p.control.CanRead(identity, [KeyLength]byte(entry.Key)) {
			entry.Content = blob[digest.Length:]
		}
		entries = append(entries, entry)
		return nil
	})
	if nil != err && errListFull != err {
		return nil, err
	}
	return entries, nil
}

// sentinel to stop the listing cursor once the page is full
var errListFull = fault.ProcessError("listing page full")

// ReadDecoded - fetch a record and decode it into typed fields
//
// decoding is delegated to the external collaborator bound at
// construction and is strictly read-only
func (p *Persistor) ReadDecoded(identity account.Identity, key Key) ([]Field, error) {

	if nil == p.decoder {
		return nil, fault.CannotDecodeRecord
	}

	content, err := p.Read(identity, key)
	if nil != err {
		return nil, err
	}
	return p.decoder.Decode(content)
}
