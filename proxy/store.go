// Package proxy provides the semi-trusted party of proxy re-encryption. It
// keeps the re-encryption keys it was handed in a bbolt database and
// transforms ciphertexts for the delegations it holds.
//
// The proxy never sees a secret key nor a plaintext. Revoking a delegation
// removes its key from the database.
package proxy

import (
	"bytes"
	"time"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/onet/v3/log"
	"go.dedis.ch/pre"
	"go.dedis.ch/protobuf"
	bbolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
)

// BucketName is the bbolt bucket where the keys are stored.
var BucketName = []byte("pre-proxy")

// ErrNotAuthorized is returned when the proxy holds no key for a delegation.
var ErrNotAuthorized = xerrors.New("proxy: delegation not authorized")

// Proxy stores re-encryption keys and applies them. It is safe for
// concurrent use, every access goes through a bbolt transaction.
type Proxy struct {
	ctx    *pre.Context
	db     *bbolt.DB
	bucket []byte
}

// New returns a proxy working on the curve of ctx and storing its keys in
// db.
func New(ctx *pre.Context, db *bbolt.DB) (*Proxy, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(BucketName)
		return err
	})
	if err != nil {
		return nil, pre.ErrorOrNil(err, "creating bucket")
	}
	return &Proxy{
		ctx:    ctx,
		db:     db,
		bucket: BucketName,
	}, nil
}

// Authorize stores rk so that ciphertexts of its delegator can be
// re-encrypted for its delegatee. An existing key for the same pair is
// replaced.
func (p *Proxy) Authorize(rk *pre.ReEncryptionKey) error {
	if rk == nil {
		return xerrors.New("proxy: missing re-encryption key")
	}
	buf, err := p.ctx.MarshalReEncryptionKey(rk)
	if err != nil {
		return pre.ErrorOrNil(err, "encoding key")
	}
	key, err := p.pairKey(rk.Delegator, rk.Delegatee)
	if err != nil {
		return err
	}
	val, err := protobuf.Encode(&delegation{
		ReKey:      buf,
		Authorized: time.Now().Unix(),
	})
	if err != nil {
		return pre.ErrorOrNil(err, "encoding delegation")
	}

	err = p.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(p.bucket).Put(key, val)
	})
	if err != nil {
		return pre.ErrorOrNil(err, "storing delegation")
	}
	log.Lvlf2("Authorized delegation %s -> %s", rk.Delegator, rk.Delegatee)
	return nil
}

// Revoke discards the key of the delegation from delegator to delegatee.
func (p *Proxy) Revoke(delegator, delegatee kyber.Point) error {
	key, err := p.pairKey(delegator, delegatee)
	if err != nil {
		return err
	}
	err = p.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(p.bucket)
		if b.Get(key) == nil {
			return ErrNotAuthorized
		}
		return b.Delete(key)
	})
	if err != nil {
		return pre.WrapError(err)
	}
	log.Lvlf2("Revoked delegation %s -> %s", delegator, delegatee)
	return nil
}

// Delegatees returns the active delegations of delegator.
func (p *Proxy) Delegatees(delegator kyber.Point) ([]Delegation, error) {
	prefix, err := p.marshalPoint(delegator)
	if err != nil {
		return nil, err
	}

	var list []Delegation
	err = p.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(p.bucket).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var d delegation
			if err := protobuf.Decode(v, &d); err != nil {
				return err
			}
			delegatee := p.ctx.Suite().Point()
			if err := delegatee.UnmarshalBinary(k[len(prefix):]); err != nil {
				return err
			}
			list = append(list, Delegation{
				Delegator:  delegator,
				Delegatee:  delegatee,
				Authorized: d.Authorized,
			})
		}
		return nil
	})
	if err != nil {
		return nil, pre.ErrorOrNil(err, "reading delegations")
	}
	return list, nil
}

// ReEncrypt transforms c, addressed to delegator, for delegatee. It fails
// with ErrNotAuthorized if no key is stored for the pair, and with the
// errors of pre.Context.ReEncrypt otherwise.
func (p *Proxy) ReEncrypt(c pre.Ciphertext, delegator, delegatee kyber.Point) (pre.Ciphertext, error) {
	rk, err := p.reKey(delegator, delegatee)
	if err != nil {
		return nil, err
	}
	out, err := p.ctx.ReEncrypt(c, rk, delegator)
	if err != nil {
		log.Lvl2("Refused to re-encrypt:", err)
		return nil, pre.WrapError(err)
	}
	return out, nil
}

// reKey loads the key of the pair.
func (p *Proxy) reKey(delegator, delegatee kyber.Point) (*pre.ReEncryptionKey, error) {
	key, err := p.pairKey(delegator, delegatee)
	if err != nil {
		return nil, err
	}

	var d delegation
	err = p.db.View(func(tx *bbolt.Tx) error {
		buf := tx.Bucket(p.bucket).Get(key)
		if buf == nil {
			return ErrNotAuthorized
		}
		return protobuf.Decode(buf, &d)
	})
	if err != nil {
		return nil, pre.WrapError(err)
	}

	rk, err := p.ctx.UnmarshalReEncryptionKey(d.ReKey)
	if err != nil {
		return nil, pre.ErrorOrNil(err, "decoding key")
	}
	return rk, nil
}

// pairKey is the database key of a delegation: both points in their
// binary form, delegator first, so that a prefix scan lists the delegatees.
func (p *Proxy) pairKey(delegator, delegatee kyber.Point) ([]byte, error) {
	a, err := p.marshalPoint(delegator)
	if err != nil {
		return nil, err
	}
	b, err := p.marshalPoint(delegatee)
	if err != nil {
		return nil, err
	}
	return append(a, b...), nil
}

func (p *Proxy) marshalPoint(pt kyber.Point) ([]byte, error) {
	if pt == nil {
		return nil, xerrors.Errorf("missing public key: %w", pre.ErrMalformed)
	}
	buf, err := pt.MarshalBinary()
	if err != nil {
		return nil, pre.ErrorOrNil(err, "encoding public key")
	}
	if len(buf) != p.ctx.Suite().PointLen() {
		return nil, xerrors.Errorf("public key of another curve: %w", pre.ErrWrongCurve)
	}
	return buf, nil
}
