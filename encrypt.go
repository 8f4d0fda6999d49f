package pre

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"
)

// Encrypt encrypts msg to pk, as a transformable ciphertext if transformable
// is true and as a sealed one otherwise.
func (ctx *Context) Encrypt(pk kyber.Point, msg []byte, transformable bool) (Ciphertext, error) {
	if transformable {
		return ctx.EncryptTransformable(pk, msg)
	}
	return ctx.EncryptSealed(pk, msg)
}

// EncryptTransformable encrypts msg to pk so that a proxy holding a
// re-encryption key of pk can forward it. msg can be at most L1 bytes long.
// Each call uses fresh randomness.
func (ctx *Context) EncryptTransformable(pk kyber.Point, msg []byte) (*Transformable, error) {
	k, masked, err := ctx.encodeMessage(pk, msg)
	if err != nil {
		return nil, err
	}

	// E is the blinding keyed to pk, C the message element blinded with r * G.
	r := ctx.pickNonZero()
	t := &Transformable{
		E:      ctx.suite.Point().Mul(r, pk),
		C:      ctx.suite.Point().Add(ctx.suite.Point().Mul(r, nil), k),
		Masked: masked,
	}

	// Prove knowledge of r such that E = r * pk.
	u := ctx.suite.Scalar().Pick(ctx.suite.RandomStream())
	t.D = ctx.suite.Point().Mul(u, pk)
	h := ctx.proofChallenge(pk, t)
	t.S = ctx.suite.Scalar().Add(u, ctx.suite.Scalar().Mul(h, r))
	return t, nil
}

// EncryptSealed encrypts msg to pk so that only the owner of pk can decrypt
// it: the blinding is raised to a scalar derived from a Diffie-Hellman
// exchange with pk, which no re-encryption key can remove. msg can be at most
// L1 bytes long.
func (ctx *Context) EncryptSealed(pk kyber.Point, msg []byte) (*Sealed, error) {
	k, masked, err := ctx.encodeMessage(pk, msg)
	if err != nil {
		return nil, err
	}

	x := ctx.pickNonZero()
	X := ctx.suite.Point().Mul(x, nil)
	d := ctx.delegationScalar(X, pk, ctx.suite.Point().Mul(x, pk))
	r := ctx.pickNonZero()
	return &Sealed{
		X:      X,
		E:      ctx.suite.Point().Mul(ctx.suite.Scalar().Mul(r, d), nil),
		C:      ctx.suite.Point().Add(ctx.suite.Point().Mul(r, nil), k),
		Masked: masked,
	}, nil
}

func (ctx *Context) encodeMessage(pk kyber.Point, msg []byte) (kyber.Point, []byte, error) {
	ctx.mustBeInitialized()
	if err := ctx.checkPoints(pk); err != nil {
		return nil, nil, err
	}
	if len(msg) > ctx.l1 {
		return nil, nil, xerrors.Errorf("%d bytes, at most %d allowed: %w",
			len(msg), ctx.l1, ErrMessageTooLong)
	}
	return ctx.codec.Encode(msg)
}
