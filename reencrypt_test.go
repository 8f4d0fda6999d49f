package pre

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestReEncrypt(t *testing.T) {
	forAllCurves(t, func(t *testing.T, ctx *Context) {
		a := ctx.GenerateKeyPair()
		b := ctx.GenerateKeyPair()
		c := ctx.GenerateKeyPair()
		msg := []byte("shared with bob")

		ct, err := ctx.Encrypt(a.Public(), msg, true)
		require.NoError(t, err)
		rk, err := ctx.ReKeyGen(a, b.Public())
		require.NoError(t, err)
		require.True(t, rk.Delegator.Equal(a.Public()))
		require.True(t, rk.Delegatee.Equal(b.Public()))

		ct2, err := ctx.ReEncrypt(ct, rk, a.Public())
		require.NoError(t, err)
		require.Equal(t, KindSealed, ct2.Kind())

		got, ok := ctx.Decrypt(ct2, b).Message()
		require.True(t, ok)
		require.Equal(t, msg, got)

		// Only the delegatee can open the result.
		require.False(t, ctx.Decrypt(ct2, c).Valid())
		require.False(t, ctx.Decrypt(ct2, a).Valid())

		// The result cannot be forwarded again.
		rkBC, err := ctx.ReKeyGen(b, c.Public())
		require.NoError(t, err)
		_, err = ctx.ReEncrypt(ct2, rkBC, b.Public())
		require.True(t, xerrors.Is(err, ErrNotTransformable))
	})
}

func TestReEncrypt_Sealed(t *testing.T) {
	forAllCurves(t, func(t *testing.T, ctx *Context) {
		a := ctx.GenerateKeyPair()
		b := ctx.GenerateKeyPair()
		rk, err := ctx.ReKeyGen(a, b.Public())
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			ct, err := ctx.Encrypt(a.Public(), []byte{byte(i)}, false)
			require.NoError(t, err)
			out, err := ctx.ReEncrypt(ct, rk, a.Public())
			require.True(t, xerrors.Is(err, ErrNotTransformable))
			require.Nil(t, out)
		}
	})
}

func TestReEncrypt_KeyMismatch(t *testing.T) {
	forAllCurves(t, func(t *testing.T, ctx *Context) {
		a := ctx.GenerateKeyPair()
		b := ctx.GenerateKeyPair()
		c := ctx.GenerateKeyPair()
		rk, err := ctx.ReKeyGen(a, b.Public())
		require.NoError(t, err)

		// The key was issued by a, not c.
		forC, err := ctx.Encrypt(c.Public(), []byte("for carol"), true)
		require.NoError(t, err)
		_, err = ctx.ReEncrypt(forC, rk, c.Public())
		require.True(t, xerrors.Is(err, ErrKeyMismatch))

		// The ciphertext is not addressed to a.
		_, err = ctx.ReEncrypt(forC, rk, a.Public())
		require.True(t, xerrors.Is(err, ErrKeyMismatch))

		// A tampered ciphertext no longer proves to be addressed to a.
		forA, err := ctx.EncryptTransformable(a.Public(), []byte("for alice"))
		require.NoError(t, err)
		bad := *forA
		bad.C = ctx.Suite().Point().Add(forA.C, ctx.Suite().Point().Base())
		_, err = ctx.ReEncrypt(&bad, rk, a.Public())
		require.True(t, xerrors.Is(err, ErrKeyMismatch))

		_, err = ctx.ReEncrypt(forA, nil, a.Public())
		require.Error(t, err)
		_, err = ctx.ReEncrypt(nil, rk, a.Public())
		require.True(t, xerrors.Is(err, ErrMalformed))
	})
}

// A re-encryption key does not work in the other direction.
func TestReEncrypt_Directional(t *testing.T) {
	forAllCurves(t, func(t *testing.T, ctx *Context) {
		a := ctx.GenerateKeyPair()
		b := ctx.GenerateKeyPair()
		rk, err := ctx.ReKeyGen(a, b.Public())
		require.NoError(t, err)

		forB, err := ctx.Encrypt(b.Public(), []byte("for bob"), true)
		require.NoError(t, err)
		_, err = ctx.ReEncrypt(forB, rk, b.Public())
		require.True(t, xerrors.Is(err, ErrKeyMismatch))

		// Swapping the roles in the key does not help either.
		swapped := *rk
		swapped.Delegator, swapped.Delegatee = rk.Delegatee, rk.Delegator
		out, err := ctx.ReEncrypt(forB, &swapped, b.Public())
		require.NoError(t, err)
		require.False(t, ctx.Decrypt(out, a).Valid())
	})
}

// A delegatee holding the re-encryption key recovers the delegator's secret.
// This is a known limit of the construction and is documented on
// ReEncryptionKey.
func TestReEncryptionKey_DelegateeCollusion(t *testing.T) {
	forAllCurves(t, func(t *testing.T, ctx *Context) {
		s := ctx.Suite()
		a := ctx.GenerateKeyPair()
		b := ctx.GenerateKeyPair()
		rk, err := ctx.ReKeyGen(a, b.Public())
		require.NoError(t, err)

		d := ctx.delegationScalar(rk.X, b.Public(), s.Point().Mul(b.private, rk.X))
		recovered := s.Scalar().Div(d, rk.R)
		require.True(t, recovered.Equal(a.private))
		require.True(t, s.Point().Mul(recovered, nil).Equal(a.Public()))
	})
}
