package pre

import (
	"go.dedis.ch/kyber/v3"
)

// Kind tells the two forms of ciphertext apart.
type Kind int32

const (
	// KindTransformable marks ciphertexts the proxy can re-encrypt.
	KindTransformable Kind = iota + 1
	// KindSealed marks ciphertexts the proxy must refuse.
	KindSealed
)

func (k Kind) String() string {
	switch k {
	case KindTransformable:
		return "transformable"
	case KindSealed:
		return "sealed"
	default:
		return "unknown"
	}
}

// Ciphertext is either a *Transformable or a *Sealed. No other type can
// implement it.
type Ciphertext interface {
	Kind() Kind
	isCiphertext()
}

// Transformable is a ciphertext addressed to pk that a proxy holding a
// re-encryption key from pk can convert for another recipient. With r the
// encryption randomness and (k, Masked) the encoded message:
//
//	E = r * pk
//	C = r * G + k
//
// D and S are a Schnorr proof that E is a multiple of pk, bound to E, C and
// Masked. It only verifies under the key the ciphertext is addressed to.
type Transformable struct {
	E      kyber.Point
	C      kyber.Point
	D      kyber.Point
	S      kyber.Scalar
	Masked []byte
}

// Kind returns KindTransformable.
func (t *Transformable) Kind() Kind { return KindTransformable }

func (t *Transformable) isCiphertext() {}

// Sealed is a ciphertext that only the holder of the secret key of its
// recipient can open. It is what Encrypt returns for non-transformable
// messages and what the proxy returns after a re-encryption. With
// d = H(X, pk, x * pk) only computable from x or from the recipient's
// secret, and (k, Masked) the encoded message:
//
//	X = x * G
//	E = (r * d) * G
//	C = r * G + k
type Sealed struct {
	X      kyber.Point
	E      kyber.Point
	C      kyber.Point
	Masked []byte
}

// Kind returns KindSealed.
func (s *Sealed) Kind() Kind { return KindSealed }

func (s *Sealed) isCiphertext() {}

// proofChallenge is the Fiat-Shamir challenge of the proof of a
// transformable ciphertext.
func (ctx *Context) proofChallenge(pk kyber.Point, t *Transformable) kyber.Scalar {
	return ctx.hashToScalar("pre-transformable", []kyber.Point{pk, t.E, t.C, t.D}, t.Masked)
}

// verifyTransformable checks S * pk == D + h * E.
func (ctx *Context) verifyTransformable(pk kyber.Point, t *Transformable) bool {
	if t == nil || ctx.checkPoints(pk, t.E, t.C, t.D) != nil || ctx.checkScalars(t.S) != nil {
		return false
	}
	h := ctx.proofChallenge(pk, t)
	left := ctx.suite.Point().Mul(t.S, pk)
	right := ctx.suite.Point().Add(t.D, ctx.suite.Point().Mul(h, t.E))
	return left.Equal(right)
}

// delegationScalar is d = H(X, pk, shared) where shared = x * pk = sk * X.
func (ctx *Context) delegationScalar(X, pk, shared kyber.Point) kyber.Scalar {
	return ctx.hashToScalar("pre-delegation", []kyber.Point{X, pk, shared})
}
