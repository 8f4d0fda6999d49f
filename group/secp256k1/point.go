package secp256k1

import (
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"go.dedis.ch/kyber/v3"
)

// pointLen is the size of a compressed SEC1 encoding. The point at infinity
// is encoded as pointLen zero bytes.
const pointLen = 33

// point is kept in affine form (Z = 1) between operations, which is what
// the btcec arithmetic expects of its inputs. The point at infinity has
// X = Y = 0.
type point struct {
	p btcec.JacobianPoint
}

func newPoint() *point {
	P := &point{}
	P.setInfinity()
	return P
}

func (P *point) setInfinity() {
	P.p.X.Zero()
	P.p.Y.Zero()
	P.p.Z.SetInt(1)
}

func (P *point) isInfinity() bool {
	return P.p.X.IsZero() && P.p.Y.IsZero()
}

func (P *point) MarshalBinary() ([]byte, error) {
	buf := make([]byte, pointLen)
	if P.isInfinity() {
		return buf, nil
	}
	buf[0] = 0x02
	if P.p.Y.IsOdd() {
		buf[0] = 0x03
	}
	P.p.X.PutBytesUnchecked(buf[1:])
	return buf, nil
}

func (P *point) UnmarshalBinary(buf []byte) error {
	if len(buf) != pointLen {
		return errors.New("secp256k1: wrong point length")
	}
	infinity := true
	for _, b := range buf {
		if b != 0 {
			infinity = false
			break
		}
	}
	if infinity {
		P.setInfinity()
		return nil
	}
	pub, err := btcec.ParsePubKey(buf)
	if err != nil {
		return err
	}
	pub.AsJacobian(&P.p)
	return nil
}

func (P *point) String() string {
	buf, _ := P.MarshalBinary()
	return hex.EncodeToString(buf)
}

func (P *point) MarshalSize() int {
	return pointLen
}

func (P *point) MarshalTo(w io.Writer) (int, error) {
	buf, err := P.MarshalBinary()
	if err != nil {
		return 0, err
	}
	return w.Write(buf)
}

func (P *point) UnmarshalFrom(r io.Reader) (int, error) {
	buf := make([]byte, pointLen)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return n, err
	}
	return n, P.UnmarshalBinary(buf)
}

func (P *point) Equal(P2 kyber.Point) bool {
	Q := P2.(*point)
	if P.isInfinity() || Q.isInfinity() {
		return P.isInfinity() && Q.isInfinity()
	}
	return P.p.X.Equals(&Q.p.X) && P.p.Y.Equals(&Q.p.Y)
}

func (P *point) Null() kyber.Point {
	P.setInfinity()
	return P
}

func (P *point) Base() kyber.Point {
	btcec.GeneratorJacobian(&P.p)
	P.p.ToAffine()
	return P
}

func (P *point) Pick(rand cipher.Stream) kyber.Point {
	return P.Embed(nil, rand)
}

func (P *point) Set(P2 kyber.Point) kyber.Point {
	P.p.Set(&P2.(*point).p)
	return P
}

func (P *point) Clone() kyber.Point {
	return newPoint().Set(P)
}

// EmbedLen leaves one byte for the length and one byte of randomness for
// the search of a valid x-coordinate.
func (P *point) EmbedLen() int {
	return (256 - 8 - 8) / 8
}

// Embed stores up to EmbedLen bytes of data in the x-coordinate: a length
// byte followed by the data, the rest being filled from rand until the
// value is the x-coordinate of a curve point.
func (P *point) Embed(data []byte, rand cipher.Stream) kyber.Point {
	dl := P.EmbedLen()
	if dl > len(data) {
		dl = len(data)
	}

	for {
		var b [32]byte
		rand.XORKeyStream(b[:], b[:])
		if data != nil {
			b[0] = byte(dl)
			copy(b[1:1+dl], data)
		}

		var x, y btcec.FieldVal
		if x.SetByteSlice(b[:]) {
			continue
		}
		if !btcec.DecompressY(&x, false, &y) {
			continue
		}
		P.p.X.Set(&x)
		P.p.Y.Set(&y)
		P.p.Z.SetInt(1)
		return P
	}
}

func (P *point) Data() ([]byte, error) {
	if P.isInfinity() {
		return nil, errors.New("secp256k1: no data in the point at infinity")
	}
	b := P.p.X.Bytes()
	dl := int(b[0])
	if dl > P.EmbedLen() {
		return nil, errors.New("secp256k1: invalid embedded data length")
	}
	return append([]byte{}, b[1:1+dl]...), nil
}

func (P *point) Add(A, B kyber.Point) kyber.Point {
	var r btcec.JacobianPoint
	btcec.AddNonConst(&A.(*point).p, &B.(*point).p, &r)
	return P.setResult(&r)
}

func (P *point) Sub(A, B kyber.Point) kyber.Point {
	nb := newPoint().Neg(B)
	return P.Add(A, nb)
}

func (P *point) Neg(A kyber.Point) kyber.Point {
	P.Set(A)
	if !P.isInfinity() {
		P.p.Y.Negate(1).Normalize()
	}
	return P
}

// Mul sets P to s * B, or to s * G when B is nil.
func (P *point) Mul(s kyber.Scalar, B kyber.Point) kyber.Point {
	k := &s.(*scalar).v
	var r btcec.JacobianPoint
	if B == nil {
		btcec.ScalarBaseMultNonConst(k, &r)
		return P.setResult(&r)
	}
	Q := B.(*point)
	if Q.isInfinity() || k.IsZero() {
		P.setInfinity()
		return P
	}
	btcec.ScalarMultNonConst(k, &Q.p, &r)
	return P.setResult(&r)
}

func (P *point) setResult(r *btcec.JacobianPoint) kyber.Point {
	if (r.X.IsZero() && r.Y.IsZero()) || r.Z.IsZero() {
		P.setInfinity()
		return P
	}
	r.ToAffine()
	P.p.Set(r)
	return P
}
