package proxy

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/onet/v3/log"
	"go.dedis.ch/pre"
	bbolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
)

func TestMain(m *testing.M) {
	log.MainTest(m)
}

func newTestProxy(t *testing.T) (*pre.Context, *Proxy, func()) {
	ctx, err := pre.Init(32, 16, pre.CurveSecp256k1)
	require.NoError(t, err)
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "proxy.db"), 0600, nil)
	require.NoError(t, err)
	p, err := New(ctx, db)
	require.NoError(t, err)
	return ctx, p, func() { require.NoError(t, db.Close()) }
}

func TestProxy_ReEncrypt(t *testing.T) {
	ctx, p, done := newTestProxy(t)
	defer done()

	owner := ctx.GenerateKeyPair()
	consumer := ctx.GenerateKeyPair()
	msg := []byte("via the proxy")

	c, err := ctx.Encrypt(owner.Public(), msg, true)
	require.NoError(t, err)

	_, err = p.ReEncrypt(c, owner.Public(), consumer.Public())
	require.True(t, xerrors.Is(err, ErrNotAuthorized))

	rk, err := ctx.ReKeyGen(owner, consumer.Public())
	require.NoError(t, err)
	require.NoError(t, p.Authorize(rk))

	out, err := p.ReEncrypt(c, owner.Public(), consumer.Public())
	require.NoError(t, err)
	got, ok := ctx.Decrypt(out, consumer).Message()
	require.True(t, ok)
	require.Equal(t, msg, got)

	sealed, err := ctx.Encrypt(owner.Public(), msg, false)
	require.NoError(t, err)
	_, err = p.ReEncrypt(sealed, owner.Public(), consumer.Public())
	require.True(t, xerrors.Is(err, pre.ErrNotTransformable))

	// No key in the other direction.
	_, err = p.ReEncrypt(c, consumer.Public(), owner.Public())
	require.True(t, xerrors.Is(err, ErrNotAuthorized))
}

func TestProxy_Revoke(t *testing.T) {
	ctx, p, done := newTestProxy(t)
	defer done()

	owner := ctx.GenerateKeyPair()
	consumers := []*pre.KeyPair{ctx.GenerateKeyPair(), ctx.GenerateKeyPair(), ctx.GenerateKeyPair()}
	for _, kp := range consumers {
		rk, err := ctx.ReKeyGen(owner, kp.Public())
		require.NoError(t, err)
		require.NoError(t, p.Authorize(rk))
	}
	// Delegations of someone else are not listed.
	rk, err := ctx.ReKeyGen(consumers[0], owner.Public())
	require.NoError(t, err)
	require.NoError(t, p.Authorize(rk))

	list, err := p.Delegatees(owner.Public())
	require.NoError(t, err)
	require.Len(t, list, len(consumers))
	for _, d := range list {
		require.True(t, d.Delegator.Equal(owner.Public()))
		require.NotZero(t, d.Authorized)
	}

	require.NoError(t, p.Revoke(owner.Public(), consumers[1].Public()))
	err = p.Revoke(owner.Public(), consumers[1].Public())
	require.True(t, xerrors.Is(err, ErrNotAuthorized))

	list, err = p.Delegatees(owner.Public())
	require.NoError(t, err)
	require.Len(t, list, len(consumers)-1)
	for _, d := range list {
		require.False(t, d.Delegatee.Equal(consumers[1].Public()))
	}

	c, err := ctx.Encrypt(owner.Public(), []byte("revoked"), true)
	require.NoError(t, err)
	_, err = p.ReEncrypt(c, owner.Public(), consumers[1].Public())
	require.True(t, xerrors.Is(err, ErrNotAuthorized))
	_, err = p.ReEncrypt(c, owner.Public(), consumers[2].Public())
	require.NoError(t, err)
}

// Keys survive a restart of the proxy.
func TestProxy_Persistence(t *testing.T) {
	ctx, err := pre.Init(32, 16, pre.CurveEd25519)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "proxy.db")

	owner := ctx.GenerateKeyPair()
	consumer := ctx.GenerateKeyPair()
	rk, err := ctx.ReKeyGen(owner, consumer.Public())
	require.NoError(t, err)

	db, err := bbolt.Open(path, 0600, nil)
	require.NoError(t, err)
	p, err := New(ctx, db)
	require.NoError(t, err)
	require.NoError(t, p.Authorize(rk))
	require.NoError(t, db.Close())

	db, err = bbolt.Open(path, 0600, nil)
	require.NoError(t, err)
	defer db.Close()
	p, err = New(ctx, db)
	require.NoError(t, err)

	c, err := ctx.Encrypt(owner.Public(), []byte("after restart"), true)
	require.NoError(t, err)
	out, err := p.ReEncrypt(c, owner.Public(), consumer.Public())
	require.NoError(t, err)
	require.True(t, ctx.Decrypt(out, consumer).Valid())
}

func TestProxy_WrongCurve(t *testing.T) {
	_, p, done := newTestProxy(t)
	defer done()

	other, err := pre.Init(32, 16, pre.CurveP256)
	require.NoError(t, err)
	a := other.GenerateKeyPair()
	b := other.GenerateKeyPair()
	rk, err := other.ReKeyGen(a, b.Public())
	require.NoError(t, err)

	err = p.Authorize(rk)
	require.True(t, xerrors.Is(err, pre.ErrWrongCurve))
	_, err = p.Delegatees(a.Public())
	require.True(t, xerrors.Is(err, pre.ErrWrongCurve))
	require.Error(t, p.Authorize(nil))
}
