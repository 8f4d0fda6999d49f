package pre

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"
)

// ReEncryptionKey lets a proxy turn transformable ciphertexts addressed to
// Delegator into sealed ciphertexts addressed to Delegatee. With a the
// secret of the delegator and x a fresh scalar:
//
//	X = x * G
//	R = H(X, Delegatee, x * Delegatee) / a
//
// The key only works in one direction and neither secret can be computed
// from it alone. The delegatee can compute H(X, Delegatee, x * Delegatee)
// from its own secret, so a proxy sharing the key with the delegatee gives
// away the whole secret of the delegator: a = H(...) / R. Only hand it to a
// proxy that does not cooperate with the delegatee.
type ReEncryptionKey struct {
	Delegator kyber.Point
	Delegatee kyber.Point
	X         kyber.Point
	R         kyber.Scalar
}

// ReKeyGen creates the re-encryption key from the owner of kp to delegatee.
// It only needs the public key of the delegatee.
func (ctx *Context) ReKeyGen(kp *KeyPair, delegatee kyber.Point) (*ReEncryptionKey, error) {
	ctx.mustBeInitialized()
	a, err := ctx.secretOf(kp)
	if err != nil {
		return nil, err
	}
	if err := ctx.checkPoints(delegatee); err != nil {
		return nil, err
	}
	if delegatee.Equal(ctx.suite.Point().Null()) {
		return nil, xerrors.New("pre: delegatee is the neutral element")
	}

	zero := ctx.suite.Scalar().Zero()
	for {
		x := ctx.pickNonZero()
		X := ctx.suite.Point().Mul(x, nil)
		d := ctx.delegationScalar(X, delegatee, ctx.suite.Point().Mul(x, delegatee))
		if d.Equal(zero) {
			continue
		}
		return &ReEncryptionKey{
			Delegator: kp.Public(),
			Delegatee: delegatee.Clone(),
			X:         X,
			R:         ctx.suite.Scalar().Div(d, a),
		}, nil
	}
}
