// Package secp256k1 provides the secp256k1 curve (the curve of Bitcoin and
// Ethereum) as a kyber group, backed by the arithmetic of btcec.
//
// Points marshal to 33-byte compressed SEC1 encodings, scalars to 32-byte
// big-endian integers.
package secp256k1

import (
	"crypto/cipher"
	"crypto/sha256"
	"hash"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/util/random"
	"go.dedis.ch/kyber/v3/xof/blake2xb"
)

// SuiteSecp256k1 is the secp256k1 group with SHA256 as hash and blake2xb as
// XOF.
type SuiteSecp256k1 struct{}

// NewBlakeSHA256Secp256k1 returns the secp256k1 suite.
func NewBlakeSHA256Secp256k1() *SuiteSecp256k1 {
	return &SuiteSecp256k1{}
}

func (s *SuiteSecp256k1) String() string {
	return "secp256k1"
}

// ScalarLen returns the byte length of a marshalled scalar.
func (s *SuiteSecp256k1) ScalarLen() int {
	return scalarLen
}

// Scalar returns a new zero scalar.
func (s *SuiteSecp256k1) Scalar() kyber.Scalar {
	return newScalar()
}

// PointLen returns the byte length of a marshalled point.
func (s *SuiteSecp256k1) PointLen() int {
	return pointLen
}

// Point returns a new point set to the point at infinity.
func (s *SuiteSecp256k1) Point() kyber.Point {
	return newPoint()
}

// Hash returns a new SHA256 instance.
func (s *SuiteSecp256k1) Hash() hash.Hash {
	return sha256.New()
}

// XOF returns a blake2xb XOF seeded with seed.
func (s *SuiteSecp256k1) XOF(seed []byte) kyber.XOF {
	return blake2xb.New(seed)
}

// RandomStream returns a stream reading from the system randomness.
func (s *SuiteSecp256k1) RandomStream() cipher.Stream {
	return random.New()
}
