package pre

import (
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// ReEncrypt converts c, addressed to delegator, into a ciphertext for the
// delegatee of rk. It only uses public values.
//
// Sealed ciphertexts are refused with ErrNotTransformable. If rk was not
// issued by delegator, or if c is not a valid transformable ciphertext for
// delegator, ErrKeyMismatch is returned.
//
// The result is not a transformable-tagged ciphertext: it has Kind
// KindSealed, so it can be opened by the delegatee but not forwarded any
// further. Transports that dispatch on the kind must expect a sealed
// ciphertext coming out of the proxy.
func (ctx *Context) ReEncrypt(c Ciphertext, rk *ReEncryptionKey, delegator kyber.Point) (Ciphertext, error) {
	ctx.mustBeInitialized()
	switch ct := c.(type) {
	case *Sealed:
		return nil, ErrNotTransformable
	case *Transformable:
		if rk == nil {
			return nil, xerrors.New("pre: missing re-encryption key")
		}
		if err := ctx.checkPoints(delegator, rk.Delegator, rk.Delegatee, rk.X); err != nil {
			return nil, err
		}
		if err := ctx.checkScalars(rk.R); err != nil {
			return nil, err
		}
		if !rk.Delegator.Equal(delegator) {
			return nil, xerrors.Errorf("key was issued by another delegator: %w", ErrKeyMismatch)
		}
		if !ctx.verifyTransformable(delegator, ct) {
			return nil, xerrors.Errorf("ciphertext is not addressed to the delegator: %w",
				ErrKeyMismatch)
		}
		log.Lvl3("Re-encrypting for", rk.Delegatee)
		return &Sealed{
			X:      rk.X.Clone(),
			E:      ctx.suite.Point().Mul(rk.R, ct.E),
			C:      ct.C.Clone(),
			Masked: append([]byte{}, ct.Masked...),
		}, nil
	case nil:
		return nil, xerrors.Errorf("nil ciphertext: %w", ErrMalformed)
	default:
		return nil, xerrors.Errorf("unknown ciphertext %T: %w", c, ErrMalformed)
	}
}
