package pre

import (
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/protobuf"
	"golang.org/x/xerrors"
)

// KeyPair holds the secret scalar of a party and the matching public point.
// The secret never leaves the pair: it is only used by the operations of the
// context that need it, and by ExportKeyPair for persistence.
type KeyPair struct {
	public  kyber.Point
	private kyber.Scalar
}

// GenerateKeyPair draws a fresh non-zero secret and computes its public
// point.
func (ctx *Context) GenerateKeyPair() *KeyPair {
	ctx.mustBeInitialized()
	x := ctx.pickNonZero()
	return &KeyPair{
		public:  ctx.suite.Point().Mul(x, nil),
		private: x,
	}
}

// Public returns a copy of the public key.
func (kp *KeyPair) Public() kyber.Point {
	return kp.public.Clone()
}

// Destroy overwrites the secret. The pair must not be used afterwards.
func (kp *KeyPair) Destroy() {
	if kp.private != nil {
		kp.private.Zero()
		kp.private = nil
	}
}

func (ctx *Context) secretOf(kp *KeyPair) (kyber.Scalar, error) {
	if kp == nil || kp.private == nil {
		return nil, xerrors.New("pre: key pair is nil or destroyed")
	}
	if err := ctx.checkPoints(kp.public); err != nil {
		return nil, err
	}
	return kp.private, nil
}

type keyPairWire struct {
	Curve   string
	Public  []byte
	Private []byte
}

// ExportKeyPair returns the byte form of a key pair, including its secret,
// for storage by the owner.
func (ctx *Context) ExportKeyPair(kp *KeyPair) ([]byte, error) {
	ctx.mustBeInitialized()
	x, err := ctx.secretOf(kp)
	if err != nil {
		return nil, err
	}
	pub, err := kp.public.MarshalBinary()
	if err != nil {
		return nil, err
	}
	priv, err := x.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return protobuf.Encode(&keyPairWire{
		Curve:   string(ctx.curve),
		Public:  pub,
		Private: priv,
	})
}

// ImportKeyPair reads a key pair written by ExportKeyPair and checks that
// the public point matches the secret.
func (ctx *Context) ImportKeyPair(buf []byte) (*KeyPair, error) {
	ctx.mustBeInitialized()
	var w keyPairWire
	if err := protobuf.Decode(buf, &w); err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrMalformed)
	}
	if w.Curve != string(ctx.curve) {
		return nil, xerrors.Errorf("key pair is on %s: %w", w.Curve, ErrWrongCurve)
	}
	pub, err := ctx.unmarshalPoint(w.Public)
	if err != nil {
		return nil, err
	}
	x := ctx.suite.Scalar()
	if err := x.UnmarshalBinary(w.Private); err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrMalformed)
	}
	if x.Equal(ctx.suite.Scalar().Zero()) || !ctx.suite.Point().Mul(x, nil).Equal(pub) {
		return nil, xerrors.Errorf("public key does not match the secret: %w", ErrMalformed)
	}
	return &KeyPair{public: pub, private: x}, nil
}
