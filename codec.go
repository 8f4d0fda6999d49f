package pre

import (
	"crypto/subtle"
	"encoding/binary"

	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"
)

// TagLen is the number of bytes of validity tag stored next to the message.
const TagLen = 8

// Codec maps byte strings of up to Capacity bytes to a group element and a
// masked byte string, and back. The element is derived from the data and
// keys an XOF that masks the data followed by a tag. Only the element goes
// through the group operations of a ciphertext, so the capacity does not
// depend on the curve.
//
// An element that did not come out of Encode (the result of a decryption
// with the wrong key, or of a tampered ciphertext) unmasks to bytes whose
// tag does not match, and decodes as invalid.
type Codec struct {
	suite    Suite
	capacity int
}

func newCodec(s Suite, capacity int) *Codec {
	return &Codec{suite: s, capacity: capacity}
}

// Capacity returns the longest message the codec accepts.
func (c *Codec) Capacity() int {
	return c.capacity
}

// Encode deterministically maps data to an element and the masked form of
// data and its tag, len(data)+TagLen bytes long.
func (c *Codec) Encode(data []byte) (kyber.Point, []byte, error) {
	if len(data) > c.capacity {
		return nil, nil, xerrors.Errorf("%d bytes, codec holds %d: %w",
			len(data), c.capacity, ErrMessageTooLong)
	}
	seed := append([]byte("pre-codec-element"), data...)
	k := c.suite.Point().Pick(c.suite.XOF(seed))

	payload := make([]byte, 0, len(data)+TagLen)
	payload = append(payload, data...)
	payload = append(payload, c.tag(k, data)...)
	masked := make([]byte, len(payload))
	c.mask(k).XORKeyStream(masked, payload)
	return k, masked, nil
}

// Decode unmasks the data with the element k. The boolean is false if the
// pair does not hold a valid encoding.
func (c *Codec) Decode(k kyber.Point, masked []byte) ([]byte, bool) {
	if k == nil || len(masked) < TagLen || len(masked)-TagLen > c.capacity {
		return nil, false
	}
	payload := make([]byte, len(masked))
	c.mask(k).XORKeyStream(payload, masked)
	data := payload[:len(payload)-TagLen]
	tag := payload[len(payload)-TagLen:]
	if subtle.ConstantTimeCompare(tag, c.tag(k, data)) != 1 {
		return nil, false
	}
	return data, true
}

func (c *Codec) mask(k kyber.Point) kyber.XOF {
	buf, _ := k.MarshalBinary()
	return c.suite.XOF(append([]byte("pre-codec-mask"), buf...))
}

func (c *Codec) tag(k kyber.Point, data []byte) []byte {
	h := c.suite.Hash()
	h.Write([]byte("pre-codec"))
	k.MarshalTo(h)
	binary.Write(h, binary.BigEndian, uint32(len(data)))
	h.Write(data)
	return h.Sum(nil)[:TagLen]
}
