package pre

import (
	"go.dedis.ch/kyber/v3"
)

// Signature is a Schnorr signature: E is the challenge and S the response.
type Signature struct {
	E kyber.Scalar
	S kyber.Scalar
}

// Sign signs msg with the secret of kp.
func (ctx *Context) Sign(kp *KeyPair, msg []byte) (*Signature, error) {
	ctx.mustBeInitialized()
	x, err := ctx.secretOf(kp)
	if err != nil {
		return nil, err
	}
	k := ctx.pickNonZero()
	R := ctx.suite.Point().Mul(k, nil)
	e := ctx.signChallenge(R, kp.public, msg)
	return &Signature{
		E: e,
		S: ctx.suite.Scalar().Sub(k, ctx.suite.Scalar().Mul(e, x)),
	}, nil
}

// Verify returns true if sig is a signature of msg under pk. Any nil or
// foreign input gives false.
func (ctx *Context) Verify(msg []byte, sig *Signature, pk kyber.Point) bool {
	ctx.mustBeInitialized()
	if sig == nil || ctx.checkPoints(pk) != nil || ctx.checkScalars(sig.E, sig.S) != nil {
		return false
	}
	R := ctx.suite.Point().Add(ctx.suite.Point().Mul(sig.S, nil),
		ctx.suite.Point().Mul(sig.E, pk))
	return ctx.signChallenge(R, pk, msg).Equal(sig.E)
}

func (ctx *Context) signChallenge(R, pk kyber.Point, msg []byte) kyber.Scalar {
	return ctx.hashToScalar("pre-sign", []kyber.Point{R, pk}, msg)
}
