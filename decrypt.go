package pre

import (
	"go.dedis.ch/kyber/v3"
)

// Decryption is the outcome of Decrypt. The message is only available when
// the decryption is valid.
type Decryption struct {
	valid bool
	msg   []byte
}

// Valid returns true if the ciphertext opened to a message encoded by this
// library.
func (d *Decryption) Valid() bool {
	return d != nil && d.valid
}

// Message returns the plaintext and true, or nil and false if the
// decryption failed.
func (d *Decryption) Message() ([]byte, bool) {
	if !d.Valid() {
		return nil, false
	}
	return d.msg, true
}

var invalid = &Decryption{}

// Decrypt opens c with the secret of kp. It never returns an error: a wrong
// key, a tampered ciphertext or elements of another curve all give an
// invalid Decryption.
func (ctx *Context) Decrypt(c Ciphertext, kp *KeyPair) *Decryption {
	ctx.mustBeInitialized()
	a, err := ctx.secretOf(kp)
	if err != nil {
		return invalid
	}

	var blind, blinded kyber.Point
	var masked []byte
	switch ct := c.(type) {
	case *Transformable:
		if !ctx.verifyTransformable(kp.public, ct) {
			return invalid
		}
		// r * G = E / a
		blind = ctx.suite.Point().Mul(ctx.suite.Scalar().Inv(a), ct.E)
		blinded, masked = ct.C, ct.Masked
	case *Sealed:
		if ct == nil || ctx.checkPoints(ct.X, ct.E, ct.C) != nil {
			return invalid
		}
		d := ctx.delegationScalar(ct.X, kp.public, ctx.suite.Point().Mul(a, ct.X))
		if d.Equal(ctx.suite.Scalar().Zero()) {
			return invalid
		}
		// r * G = E / d
		blind = ctx.suite.Point().Mul(ctx.suite.Scalar().Inv(d), ct.E)
		blinded, masked = ct.C, ct.Masked
	default:
		return invalid
	}

	k := ctx.suite.Point().Sub(blinded, blind)
	msg, ok := ctx.codec.Decode(k, masked)
	if !ok || len(msg) > ctx.l1 {
		return invalid
	}
	return &Decryption{valid: true, msg: msg}
}
