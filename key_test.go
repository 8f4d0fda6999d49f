package pre

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/protobuf"
	"golang.org/x/xerrors"
)

func TestKeyPair(t *testing.T) {
	forAllCurves(t, func(t *testing.T, ctx *Context) {
		kp := ctx.GenerateKeyPair()
		s := ctx.Suite()
		require.False(t, kp.private.Equal(s.Scalar().Zero()))
		require.True(t, kp.Public().Equal(s.Point().Mul(kp.private, nil)))

		// Public returns a copy.
		pub := kp.Public()
		pub.Add(pub, s.Point().Base())
		require.False(t, pub.Equal(kp.Public()))

		require.False(t, kp.Public().Equal(ctx.GenerateKeyPair().Public()))
	})
}

func TestKeyPair_Destroy(t *testing.T) {
	ctx, err := Init(32, 16, CurveSecp256k1)
	require.NoError(t, err)
	kp := ctx.GenerateKeyPair()
	c, err := ctx.Encrypt(kp.Public(), []byte("before"), true)
	require.NoError(t, err)

	kp.Destroy()
	require.False(t, ctx.Decrypt(c, kp).Valid())
	_, err = ctx.Sign(kp, []byte("after"))
	require.Error(t, err)
	_, err = ctx.ReKeyGen(kp, ctx.GenerateKeyPair().Public())
	require.Error(t, err)
	_, err = ctx.ExportKeyPair(kp)
	require.Error(t, err)
}

func TestKeyPair_ExportImport(t *testing.T) {
	forAllCurves(t, func(t *testing.T, ctx *Context) {
		kp := ctx.GenerateKeyPair()
		buf, err := ctx.ExportKeyPair(kp)
		require.NoError(t, err)

		kp2, err := ctx.ImportKeyPair(buf)
		require.NoError(t, err)
		require.True(t, kp.Public().Equal(kp2.Public()))
		require.True(t, kp.private.Equal(kp2.private))

		// A ciphertext for the original opens with the imported pair.
		c, err := ctx.Encrypt(kp.Public(), []byte("persisted"), false)
		require.NoError(t, err)
		msg, ok := ctx.Decrypt(c, kp2).Message()
		require.True(t, ok)
		require.Equal(t, []byte("persisted"), msg)

		_, err = ctx.ImportKeyPair([]byte{0xff, 0x01})
		require.Error(t, err)
	})
}

func TestKeyPair_ImportMismatch(t *testing.T) {
	ctx, err := Init(32, 16, CurveEd25519)
	require.NoError(t, err)
	kp1 := ctx.GenerateKeyPair()
	kp2 := ctx.GenerateKeyPair()

	pub, err := kp1.public.MarshalBinary()
	require.NoError(t, err)
	priv, err := kp2.private.MarshalBinary()
	require.NoError(t, err)
	buf, err := protobuf.Encode(&keyPairWire{Curve: string(CurveEd25519), Public: pub, Private: priv})
	require.NoError(t, err)
	_, err = ctx.ImportKeyPair(buf)
	require.True(t, xerrors.Is(err, ErrMalformed))

	other, err := Init(32, 16, CurveP256)
	require.NoError(t, err)
	buf, err = ctx.ExportKeyPair(kp1)
	require.NoError(t, err)
	_, err = other.ImportKeyPair(buf)
	require.True(t, xerrors.Is(err, ErrWrongCurve))
}
