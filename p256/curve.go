// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p256

import (
	"math/big"
)

// published NIST P-256 domain parameters
var (
	// P - the prime field modulus
	P = mustBig("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff")

	// N - the order of the base point
	N = mustBig("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551")

	// A - curve coefficient a = -3 mod p
	A = mustBig("ffffffff00000001000000000000000000000000fffffffffffffffffffffffc")

	// B - curve coefficient b
	B = mustBig("5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b")

	// Gx, Gy - the base point
	Gx = mustBig("6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296")
	Gy = mustBig("4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// convert a hex constant, panic on corrupted source
func mustBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("p256: invalid curve constant: " + s)
	}
	return n
}

// Point - an affine curve point
//
// the identity element is flagged explicitly so that it can never be
// confused with a real point that happens to have small coordinates
type Point struct {
	X        *big.Int
	Y        *big.Int
	Infinity bool
}

// Generator - the base point G
func Generator() Point {
	return Point{
		X: new(big.Int).Set(Gx),
		Y: new(big.Int).Set(Gy),
	}
}

// Infinite - the point at infinity
func Infinite() Point {
	return Point{
		X:        new(big.Int),
		Y:        new(big.Int),
		Infinity: true,
	}
}

// ModExp - big integer modular exponentiation by square and multiply
//
// scan the exponent from its most significant bit: square the
// accumulator each step and multiply in the base wherever the bit is
// set; modulus must be greater than one
func ModExp(base *big.Int, exponent *big.Int, modulus *big.Int) *big.Int {
	result := big.NewInt(1)
	b := new(big.Int).Mod(base, modulus)
	for i := exponent.BitLen() - 1; i >= 0; i -= 1 {
		result.Mul(result, result)
		result.Mod(result, modulus)
		if 1 == exponent.Bit(i) {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
	}
	return result
}

// ModInverse - modular inverse by Fermat's little theorem
//
// a^(m-2) mod m; valid only for prime m, which holds for both the
// field modulus and the curve order used here
func ModInverse(a *big.Int, m *big.Int) *big.Int {
	exponent := new(big.Int).Sub(m, two)
	return ModExp(a, exponent, m)
}

// IsOnCurve - check y² ≡ x³ + ax + b (mod p)
//
// the zero point is rejected outright
func IsOnCurve(x *big.Int, y *big.Int) bool {
	if nil == x || nil == y {
		return false
	}
	if 0 == x.Sign() && 0 == y.Sign() {
		return false
	}

	// y² mod p
	left := new(big.Int).Mul(y, y)
	left.Mod(left, P)

	// x³ + ax + b mod p
	right := new(big.Int).Mul(x, x)
	right.Mul(right, x)
	ax := new(big.Int).Mul(A, x)
	right.Add(right, ax)
	right.Add(right, B)
	right.Mod(right, P)

	return 0 == left.Cmp(right)
}

// Double - point doubling with the affine tangent formula
func Double(p Point) Point {
	if p.Infinity {
		return Infinite()
	}
	if 0 == p.Y.Sign() {
		// vertical tangent
		return Infinite()
	}

	// λ = (3x² + a) / 2y
	numerator := new(big.Int).Mul(p.X, p.X)
	numerator.Mul(numerator, big.NewInt(3))
	numerator.Add(numerator, A)
	numerator.Mod(numerator, P)

	denominator := new(big.Int).Mul(two, p.Y)
	denominator.Mod(denominator, P)

	lambda := new(big.Int).Mul(numerator, ModInverse(denominator, P))
	lambda.Mod(lambda, P)

	// x₃ = λ² - 2x
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p.X)
	x3.Sub(x3, p.X)
	x3.Mod(x3, P)

	// y₃ = λ(x - x₃) - y
	y3 := new(big.Int).Sub(p.X, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p.Y)
	y3.Mod(y3, P)

	return Point{X: x3, Y: y3}
}

// Add - point addition with the affine chord formula
//
// equal points are delegated to Double since the chord slope is
// undefined there; inverse points produce the identity
func Add(p1 Point, p2 Point) Point {
	if p1.Infinity {
		return p2
	}
	if p2.Infinity {
		return p1
	}

	if 0 == p1.X.Cmp(p2.X) {
		ySum := new(big.Int).Add(p1.Y, p2.Y)
		ySum.Mod(ySum, P)
		if 0 == ySum.Sign() {
			return Infinite()
		}
		return Double(p1)
	}

	// λ = (y₂ - y₁) / (x₂ - x₁)
	numerator := new(big.Int).Sub(p2.Y, p1.Y)
	numerator.Mod(numerator, P)

	denominator := new(big.Int).Sub(p2.X, p1.X)
	denominator.Mod(denominator, P)

	lambda := new(big.Int).Mul(numerator, ModInverse(denominator, P))
	lambda.Mod(lambda, P)

	// x₃ = λ² - x₁ - x₂
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p1.X)
	x3.Sub(x3, p2.X)
	x3.Mod(x3, P)

	// y₃ = λ(x₁ - x₃) - y₁
	y3 := new(big.Int).Sub(p1.X, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p1.Y)
	y3.Mod(y3, P)

	return Point{X: x3, Y: y3}
}

// ScalarMult - double and add over the scalar's bits
func ScalarMult(p Point, k *big.Int) Point {
	result := Infinite()
	if nil == k || k.Sign() <= 0 || p.Infinity {
		return result
	}

	addend := p
	for i := 0; i < k.BitLen(); i += 1 {
		if 1 == k.Bit(i) {
			result = Add(result, addend)
		}
		addend = Double(addend)
	}
	return result
}
