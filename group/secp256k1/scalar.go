package secp256k1

import (
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/util/random"
)

const scalarLen = 32

// order is the prime order of the group generated by the base point.
var order = btcec.Params().N

type scalar struct {
	v btcec.ModNScalar
}

func newScalar() *scalar {
	return &scalar{}
}

func (s *scalar) setBig(i *big.Int) kyber.Scalar {
	var buf [scalarLen]byte
	new(big.Int).Mod(i, order).FillBytes(buf[:])
	s.v.SetBytes(&buf)
	return s
}

func (s *scalar) MarshalBinary() ([]byte, error) {
	b := s.v.Bytes()
	return b[:], nil
}

func (s *scalar) UnmarshalBinary(buf []byte) error {
	if len(buf) != scalarLen {
		return errors.New("secp256k1: wrong scalar length")
	}
	var b [scalarLen]byte
	copy(b[:], buf)
	if s.v.SetBytes(&b) != 0 {
		return errors.New("secp256k1: scalar not reduced modulo the group order")
	}
	return nil
}

func (s *scalar) String() string {
	b := s.v.Bytes()
	return hex.EncodeToString(b[:])
}

func (s *scalar) MarshalSize() int {
	return scalarLen
}

func (s *scalar) MarshalTo(w io.Writer) (int, error) {
	buf, err := s.MarshalBinary()
	if err != nil {
		return 0, err
	}
	return w.Write(buf)
}

func (s *scalar) UnmarshalFrom(r io.Reader) (int, error) {
	buf := make([]byte, scalarLen)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return n, err
	}
	return n, s.UnmarshalBinary(buf)
}

func (s *scalar) Equal(s2 kyber.Scalar) bool {
	return s.v.Equals(&s2.(*scalar).v)
}

func (s *scalar) Set(a kyber.Scalar) kyber.Scalar {
	s.v.Set(&a.(*scalar).v)
	return s
}

func (s *scalar) Clone() kyber.Scalar {
	c := newScalar()
	c.v.Set(&s.v)
	return c
}

func (s *scalar) SetInt64(v int64) kyber.Scalar {
	return s.setBig(big.NewInt(v))
}

func (s *scalar) Zero() kyber.Scalar {
	s.v.Zero()
	return s
}

func (s *scalar) One() kyber.Scalar {
	s.v.SetInt(1)
	return s
}

func (s *scalar) Add(a, b kyber.Scalar) kyber.Scalar {
	var t btcec.ModNScalar
	t.Add2(&a.(*scalar).v, &b.(*scalar).v)
	s.v.Set(&t)
	return s
}

func (s *scalar) Sub(a, b kyber.Scalar) kyber.Scalar {
	var nb, t btcec.ModNScalar
	nb.NegateVal(&b.(*scalar).v)
	t.Add2(&a.(*scalar).v, &nb)
	s.v.Set(&t)
	return s
}

func (s *scalar) Neg(a kyber.Scalar) kyber.Scalar {
	var t btcec.ModNScalar
	t.NegateVal(&a.(*scalar).v)
	s.v.Set(&t)
	return s
}

func (s *scalar) Mul(a, b kyber.Scalar) kyber.Scalar {
	var t btcec.ModNScalar
	t.Mul2(&a.(*scalar).v, &b.(*scalar).v)
	s.v.Set(&t)
	return s
}

// Div sets s to a / b. Dividing by zero yields zero.
func (s *scalar) Div(a, b kyber.Scalar) kyber.Scalar {
	var inv, t btcec.ModNScalar
	inv.InverseValNonConst(&b.(*scalar).v)
	t.Mul2(&a.(*scalar).v, &inv)
	s.v.Set(&t)
	return s
}

func (s *scalar) Inv(a kyber.Scalar) kyber.Scalar {
	var t btcec.ModNScalar
	t.InverseValNonConst(&a.(*scalar).v)
	s.v.Set(&t)
	return s
}

func (s *scalar) Pick(rand cipher.Stream) kyber.Scalar {
	return s.setBig(random.Int(order, rand))
}

// SetBytes interprets buf as a big-endian integer and reduces it modulo the
// group order, so hash outputs of any length map onto a scalar.
func (s *scalar) SetBytes(buf []byte) kyber.Scalar {
	return s.setBig(new(big.Int).SetBytes(buf))
}
