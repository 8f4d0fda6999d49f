package pre

import (
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/protobuf"
	"golang.org/x/xerrors"
)

// The byte forms below are protobuf messages. Every group element and
// scalar is stored with its own MarshalBinary, and every message names the
// curve it was produced on so that a context refuses blobs of another
// curve.

type transformableWire struct {
	E      []byte
	C      []byte
	D      []byte
	S      []byte
	Masked []byte
}

type sealedWire struct {
	X      []byte
	E      []byte
	C      []byte
	Masked []byte
}

type ciphertextWire struct {
	Curve         string
	Kind          int32
	Transformable *transformableWire
	Sealed        *sealedWire
}

type reEncryptionKeyWire struct {
	Curve     string
	Delegator []byte
	Delegatee []byte
	X         []byte
	R         []byte
}

type signatureWire struct {
	Curve string
	E     []byte
	S     []byte
}

type publicKeyWire struct {
	Curve string
	Point []byte
}

// MarshalCiphertext returns the byte form of c, tagged with its kind.
func (ctx *Context) MarshalCiphertext(c Ciphertext) ([]byte, error) {
	ctx.mustBeInitialized()
	w := ciphertextWire{Curve: string(ctx.curve)}
	var err error
	switch ct := c.(type) {
	case *Transformable:
		if ct == nil {
			return nil, xerrors.Errorf("nil ciphertext: %w", ErrMalformed)
		}
		w.Kind = int32(KindTransformable)
		w.Transformable = &transformableWire{Masked: ct.Masked}
		w.Transformable.E, err = ctx.marshalPoint(ct.E)
		if err == nil {
			w.Transformable.C, err = ctx.marshalPoint(ct.C)
		}
		if err == nil {
			w.Transformable.D, err = ctx.marshalPoint(ct.D)
		}
		if err == nil {
			w.Transformable.S, err = ctx.marshalScalar(ct.S)
		}
	case *Sealed:
		if ct == nil {
			return nil, xerrors.Errorf("nil ciphertext: %w", ErrMalformed)
		}
		w.Kind = int32(KindSealed)
		w.Sealed = &sealedWire{Masked: ct.Masked}
		w.Sealed.X, err = ctx.marshalPoint(ct.X)
		if err == nil {
			w.Sealed.E, err = ctx.marshalPoint(ct.E)
		}
		if err == nil {
			w.Sealed.C, err = ctx.marshalPoint(ct.C)
		}
	default:
		return nil, xerrors.Errorf("unknown ciphertext %T: %w", c, ErrMalformed)
	}
	if err != nil {
		return nil, err
	}
	return protobuf.Encode(&w)
}

// UnmarshalCiphertext parses a ciphertext written by MarshalCiphertext.
// The kind tag must match the variant that is present.
func (ctx *Context) UnmarshalCiphertext(buf []byte) (Ciphertext, error) {
	ctx.mustBeInitialized()
	var w ciphertextWire
	if err := ctx.decode(buf, &w, func() string { return w.Curve }); err != nil {
		return nil, err
	}
	switch Kind(w.Kind) {
	case KindTransformable:
		if w.Transformable == nil || w.Sealed != nil {
			return nil, xerrors.Errorf("kind does not match content: %w", ErrMalformed)
		}
		t := &Transformable{Masked: w.Transformable.Masked}
		var err error
		if err = ctx.checkMasked(t.Masked); err != nil {
			return nil, err
		}
		if t.E, err = ctx.unmarshalPoint(w.Transformable.E); err != nil {
			return nil, err
		}
		if t.C, err = ctx.unmarshalPoint(w.Transformable.C); err != nil {
			return nil, err
		}
		if t.D, err = ctx.unmarshalPoint(w.Transformable.D); err != nil {
			return nil, err
		}
		if t.S, err = ctx.unmarshalScalar(w.Transformable.S); err != nil {
			return nil, err
		}
		return t, nil
	case KindSealed:
		if w.Sealed == nil || w.Transformable != nil {
			return nil, xerrors.Errorf("kind does not match content: %w", ErrMalformed)
		}
		s := &Sealed{Masked: w.Sealed.Masked}
		var err error
		if err = ctx.checkMasked(s.Masked); err != nil {
			return nil, err
		}
		if s.X, err = ctx.unmarshalPoint(w.Sealed.X); err != nil {
			return nil, err
		}
		if s.E, err = ctx.unmarshalPoint(w.Sealed.E); err != nil {
			return nil, err
		}
		if s.C, err = ctx.unmarshalPoint(w.Sealed.C); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, xerrors.Errorf("unknown kind %d: %w", w.Kind, ErrMalformed)
	}
}

// MarshalReEncryptionKey returns the byte form of rk, as handed to a proxy.
func (ctx *Context) MarshalReEncryptionKey(rk *ReEncryptionKey) ([]byte, error) {
	ctx.mustBeInitialized()
	if rk == nil {
		return nil, xerrors.Errorf("nil re-encryption key: %w", ErrMalformed)
	}
	w := reEncryptionKeyWire{Curve: string(ctx.curve)}
	var err error
	if w.Delegator, err = ctx.marshalPoint(rk.Delegator); err != nil {
		return nil, err
	}
	if w.Delegatee, err = ctx.marshalPoint(rk.Delegatee); err != nil {
		return nil, err
	}
	if w.X, err = ctx.marshalPoint(rk.X); err != nil {
		return nil, err
	}
	if w.R, err = ctx.marshalScalar(rk.R); err != nil {
		return nil, err
	}
	return protobuf.Encode(&w)
}

// UnmarshalReEncryptionKey parses a key written by MarshalReEncryptionKey.
func (ctx *Context) UnmarshalReEncryptionKey(buf []byte) (*ReEncryptionKey, error) {
	ctx.mustBeInitialized()
	var w reEncryptionKeyWire
	if err := ctx.decode(buf, &w, func() string { return w.Curve }); err != nil {
		return nil, err
	}
	rk := &ReEncryptionKey{}
	var err error
	if rk.Delegator, err = ctx.unmarshalPoint(w.Delegator); err != nil {
		return nil, err
	}
	if rk.Delegatee, err = ctx.unmarshalPoint(w.Delegatee); err != nil {
		return nil, err
	}
	if rk.X, err = ctx.unmarshalPoint(w.X); err != nil {
		return nil, err
	}
	if rk.R, err = ctx.unmarshalScalar(w.R); err != nil {
		return nil, err
	}
	return rk, nil
}

// MarshalSignature returns the byte form of sig.
func (ctx *Context) MarshalSignature(sig *Signature) ([]byte, error) {
	ctx.mustBeInitialized()
	if sig == nil {
		return nil, xerrors.Errorf("nil signature: %w", ErrMalformed)
	}
	w := signatureWire{Curve: string(ctx.curve)}
	var err error
	if w.E, err = ctx.marshalScalar(sig.E); err != nil {
		return nil, err
	}
	if w.S, err = ctx.marshalScalar(sig.S); err != nil {
		return nil, err
	}
	return protobuf.Encode(&w)
}

// UnmarshalSignature parses a signature written by MarshalSignature.
func (ctx *Context) UnmarshalSignature(buf []byte) (*Signature, error) {
	ctx.mustBeInitialized()
	var w signatureWire
	if err := ctx.decode(buf, &w, func() string { return w.Curve }); err != nil {
		return nil, err
	}
	sig := &Signature{}
	var err error
	if sig.E, err = ctx.unmarshalScalar(w.E); err != nil {
		return nil, err
	}
	if sig.S, err = ctx.unmarshalScalar(w.S); err != nil {
		return nil, err
	}
	return sig, nil
}

// MarshalPublicKey returns the byte form of pk, tagged with the curve.
func (ctx *Context) MarshalPublicKey(pk kyber.Point) ([]byte, error) {
	ctx.mustBeInitialized()
	buf, err := ctx.marshalPoint(pk)
	if err != nil {
		return nil, err
	}
	return protobuf.Encode(&publicKeyWire{Curve: string(ctx.curve), Point: buf})
}

// UnmarshalPublicKey parses a key written by MarshalPublicKey.
func (ctx *Context) UnmarshalPublicKey(buf []byte) (kyber.Point, error) {
	ctx.mustBeInitialized()
	var w publicKeyWire
	if err := ctx.decode(buf, &w, func() string { return w.Curve }); err != nil {
		return nil, err
	}
	return ctx.unmarshalPoint(w.Point)
}

// decode reads a protobuf message into msg and checks the curve it names.
func (ctx *Context) decode(buf []byte, msg interface{}, curve func() string) error {
	if len(buf) == 0 {
		return xerrors.Errorf("empty buffer: %w", ErrMalformed)
	}
	if err := protobuf.Decode(buf, msg); err != nil {
		return xerrors.Errorf("%v: %w", err, ErrMalformed)
	}
	if c := curve(); c != string(ctx.curve) {
		return xerrors.Errorf("got %q, expected %s: %w", c, ctx.curve, ErrWrongCurve)
	}
	return nil
}

// checkMasked verifies that masked can hold a message of at most L0 bytes
// and its tag.
func (ctx *Context) checkMasked(masked []byte) error {
	if len(masked) < TagLen || len(masked)-TagLen > ctx.l0 {
		return xerrors.Errorf("masked message of %d bytes: %w", len(masked), ErrMalformed)
	}
	return nil
}

func (ctx *Context) marshalPoint(p kyber.Point) ([]byte, error) {
	if err := ctx.checkPoints(p); err != nil {
		return nil, err
	}
	return p.MarshalBinary()
}

func (ctx *Context) marshalScalar(s kyber.Scalar) ([]byte, error) {
	if err := ctx.checkScalars(s); err != nil {
		return nil, err
	}
	return s.MarshalBinary()
}

func (ctx *Context) unmarshalPoint(buf []byte) (kyber.Point, error) {
	if len(buf) != ctx.suite.PointLen() {
		return nil, xerrors.Errorf("point of %d bytes: %w", len(buf), ErrMalformed)
	}
	p := ctx.suite.Point()
	if err := p.UnmarshalBinary(buf); err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrMalformed)
	}
	return p, nil
}

func (ctx *Context) unmarshalScalar(buf []byte) (kyber.Scalar, error) {
	if len(buf) != ctx.suite.ScalarLen() {
		return nil, xerrors.Errorf("scalar of %d bytes: %w", len(buf), ErrMalformed)
	}
	s := ctx.suite.Scalar()
	if err := s.UnmarshalBinary(buf); err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrMalformed)
	}
	return s, nil
}
