// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// AccessDeniedError - read permission failures
	AccessDeniedError GenericError
	// ExistsError - already exists errors
	ExistsError GenericError
	// InvalidError - general invalid failures
	InvalidError GenericError
	// LengthError - bounds and size failures
	LengthError GenericError
	// NotFoundError - not found failures
	NotFoundError GenericError
	// ProcessError - general processing failures
	ProcessError GenericError
	// RecordError - versioned record failures
	RecordError GenericError
	// ReplayError - authorisation replay failures
	ReplayError GenericError
)

// common errors - keep in alphabetic order
var (
	AccessDenied          = AccessDeniedError("access denied")
	AlreadyInitialised    = ExistsError("already initialised")
	BatchLengthMismatch   = LengthError("batch length mismatch")
	BatchTooLarge         = LengthError("batch too large")
	CannotDecodeRecord    = ProcessError("cannot decode record")
	DataInconsistent      = ProcessError("data inconsistent")
	ExpiryTooFar          = InvalidError("expiry too far in the future")
	IndexOutOfBounds      = LengthError("index out of bounds")
	InvalidChain          = InvalidError("invalid chain")
	InvalidContent        = InvalidError("invalid content")
	InvalidCount          = LengthError("invalid count")
	InvalidCursor         = InvalidError("invalid cursor")
	InvalidIdentity       = InvalidError("invalid identity")
	InvalidKeyLength      = LengthError("invalid key length")
	InvalidPublicKey      = InvalidError("invalid public key")
	InvalidSignature      = InvalidError("invalid signature")
	InvalidVerifier       = InvalidError("invalid verifier")
	MissingParameters     = LengthError("missing parameters")
	NotInitialised        = InvalidError("not initialised")
	RecordNotFound        = NotFoundError("record not found")
	SignatureExpired      = InvalidError("signature expired")
	SignatureReplayed     = ReplayError("signature already used")
	SkipVerifyNotAllowed  = InvalidError("skip verify not allowed on this chain")
	StoreBusy             = ProcessError("store operation in progress")
	TransactionInUse      = ExistsError("transaction already in use")
	Unauthorized          = AccessDeniedError("operation restricted to operator")
	VersionLimitExceeded  = RecordError("version limit exceeded")
	VersionNotFound       = NotFoundError("version not found")
	WrongChainForVerifier = InvalidError("wrong chain for verifier")
)

// IsErrAccessDenied - detect class of error
func IsErrAccessDenied(e error) bool { _, ok := e.(AccessDeniedError); return ok }

// IsErrExists - detect class of error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - detect class of error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - detect class of error
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - detect class of error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - detect class of error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRecord - detect class of error
func IsErrRecord(e error) bool { _, ok := e.(RecordError); return ok }

// IsErrReplay - detect class of error
func IsErrReplay(e error) bool { _, ok := e.(ReplayError); return ok }

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccessDeniedError) Error() string { return string(e) }
func (e ExistsError) Error() string       { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e LengthError) Error() string       { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e ProcessError) Error() string      { return string(e) }
func (e RecordError) Error() string       { return string(e) }
func (e ReplayError) Error() string       { return string(e) }
