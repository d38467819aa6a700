// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"math/big"

	"github.com/mr-tron/base58"

	"github.com/havona-inc/havonad/fault"
)

// PublicKeyLength - bytes in an uncompressed P-256 public key: X then Y
const PublicKeyLength = 64

// PublicKey - a hardware token public key identity
//
// writes authorised by a raw P-256 signature are attributed to the key
// itself, not to a derived account address
type PublicKey [PublicKeyLength]byte

// PublicKeyFromCoordinates - pack affine coordinates into a public key
//
// coordinates must already be reduced below the field prime; the curve
// equation itself is checked by the signature verifier
func PublicKeyFromCoordinates(x *big.Int, y *big.Int) (PublicKey, error) {
	pub := PublicKey{}
	if nil == x || nil == y || x.Sign() < 0 || y.Sign() < 0 {
		return pub, fault.InvalidPublicKey
	}
	xBytes := x.Bytes()
	yBytes := y.Bytes()
	if len(xBytes) > 32 || len(yBytes) > 32 {
		return pub, fault.InvalidPublicKey
	}
	copy(pub[32-len(xBytes):32], xBytes)
	copy(pub[64-len(yBytes):64], yBytes)
	return pub, nil
}

// X - the X coordinate as a big integer
func (pub PublicKey) X() *big.Int {
	return new(big.Int).SetBytes(pub[:32])
}

// Y - the Y coordinate as a big integer
func (pub PublicKey) Y() *big.Int {
	return new(big.Int).SetBytes(pub[32:])
}

// Bytes - byte slice for encoding into storage keys
func (pub PublicKey) Bytes() []byte {
	return pub[:]
}

// String - base58 of the compressed point for use by the fmt package (for %s)
func (pub PublicKey) String() string {
	return base58.Encode(pub.compressed())
}

// GoString - for use by the fmt package (for %#v)
func (pub PublicKey) GoString() string {
	return "<p256:" + pub.String() + ">"
}

// MarshalText - convert a public key to text
func (pub PublicKey) MarshalText() ([]byte, error) {
	return []byte(pub.String()), nil
}

// UnmarshalText - convert text into a public key
//
// only uncompressed 64 byte keys are accepted back; the compressed
// display form is one way since decompression needs curve arithmetic
func (pub *PublicKey) UnmarshalText(s []byte) error {
	buffer, err := base58.Decode(string(s))
	if nil != err {
		return err
	}
	if PublicKeyLength != len(buffer) {
		return fault.InvalidPublicKey
	}
	copy(pub[:], buffer)
	return nil
}

// compressed - SEC 1 compressed point encoding
func (pub PublicKey) compressed() []byte {
	buffer := make([]byte, 33)
	if 1 == pub[63]&0x01 {
		buffer[0] = 0x03
	} else {
		buffer[0] = 0x02
	}
	copy(buffer[1:], pub[:32])
	return buffer
}
