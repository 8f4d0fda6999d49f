package pre

import (
	"encoding/binary"
	"reflect"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// Context holds the group and the length parameters every other operation
// works with. It is created once by Init, never modified afterwards and can
// be shared by any number of goroutines.
//
// Calling an operation on a nil Context, or on one that was not returned by
// Init, is a programming error and panics with ErrUninitializedContext.
type Context struct {
	curve CurveID
	suite Suite
	l0    int
	l1    int
	codec *Codec
	// pointType and scalarType are the dynamic types of the suite, used to
	// reject elements of another curve at the boundary.
	pointType  reflect.Type
	scalarType reflect.Type
}

// Init sets up a context on the given curve. l0 bounds the length of the
// byte strings the codec carries and l1 the length of a plaintext.
// It fails if the curve is unknown or if l1 > l0.
func Init(l0, l1 int, curve CurveID) (*Context, error) {
	suite, err := findSuite(curve)
	if err != nil {
		return nil, err
	}
	if l1 > l0 {
		return nil, xerrors.Errorf("L1 (%d) > L0 (%d): %w", l1, l0, ErrInvalidLength)
	}
	if l1 < 0 {
		return nil, xerrors.Errorf("negative L1: %w", ErrInvalidLength)
	}
	codec := newCodec(suite, l0)

	ctx := &Context{
		curve:      curve,
		suite:      suite,
		l0:         l0,
		l1:         l1,
		codec:      codec,
		pointType:  reflect.TypeOf(suite.Point()),
		scalarType: reflect.TypeOf(suite.Scalar()),
	}
	log.Lvlf2("Initialized context on %s with L0=%d, L1=%d", curve, l0, l1)
	return ctx, nil
}

// Curve returns the identifier of the curve of the context.
func (ctx *Context) Curve() CurveID {
	ctx.mustBeInitialized()
	return ctx.curve
}

// Suite returns the suite of the context.
func (ctx *Context) Suite() Suite {
	ctx.mustBeInitialized()
	return ctx.suite
}

// L0 returns the longest byte string the codec carries.
func (ctx *Context) L0() int {
	ctx.mustBeInitialized()
	return ctx.l0
}

// L1 returns the maximal byte length of a plaintext.
func (ctx *Context) L1() int {
	ctx.mustBeInitialized()
	return ctx.l1
}

// Codec returns the message codec of the context.
func (ctx *Context) Codec() *Codec {
	ctx.mustBeInitialized()
	return ctx.codec
}

func (ctx *Context) mustBeInitialized() {
	if ctx == nil || ctx.suite == nil {
		panic(ErrUninitializedContext)
	}
}

// ownsPoint returns true if p is a non-nil point of the context's group.
func (ctx *Context) ownsPoint(p kyber.Point) bool {
	return p != nil && reflect.TypeOf(p) == ctx.pointType
}

func (ctx *Context) checkPoints(points ...kyber.Point) error {
	for _, p := range points {
		if !ctx.ownsPoint(p) {
			return xerrors.Errorf("expected a %s point: %w", ctx.curve, ErrWrongCurve)
		}
	}
	return nil
}

func (ctx *Context) checkScalars(scalars ...kyber.Scalar) error {
	for _, s := range scalars {
		if s == nil || reflect.TypeOf(s) != ctx.scalarType {
			return xerrors.Errorf("expected a %s scalar: %w", ctx.curve, ErrWrongCurve)
		}
	}
	return nil
}

// hashToScalar hashes a domain tag followed by the marshalled points and the
// extra byte slices into a scalar.
func (ctx *Context) hashToScalar(tag string, points []kyber.Point, extra ...[]byte) kyber.Scalar {
	h := ctx.suite.Hash()
	h.Write([]byte(tag))
	for _, p := range points {
		p.MarshalTo(h)
	}
	for _, e := range extra {
		binary.Write(h, binary.BigEndian, uint32(len(e)))
		h.Write(e)
	}
	return ctx.suite.Scalar().SetBytes(h.Sum(nil))
}

// pickNonZero returns a uniformly random scalar different from zero.
func (ctx *Context) pickNonZero() kyber.Scalar {
	zero := ctx.suite.Scalar().Zero()
	for {
		s := ctx.suite.Scalar().Pick(ctx.suite.RandomStream())
		if !s.Equal(zero) {
			return s
		}
	}
}
