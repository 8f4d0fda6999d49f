package pre

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

// TestScenario follows a data owner A sharing a secret with a consumer B
// through a proxy, while a third party C stays out.
func TestScenario(t *testing.T) {
	forAllCurves(t, func(t *testing.T, ctx *Context) {
		a := ctx.GenerateKeyPair()
		b := ctx.GenerateKeyPair()
		c := ctx.GenerateKeyPair()
		msg := []byte("0123456789abcdef")
		require.Len(t, msg, ctx.L1())

		c1, err := ctx.Encrypt(a.Public(), msg, true)
		require.NoError(t, err)
		got, ok := ctx.Decrypt(c1, a).Message()
		require.True(t, ok)
		require.Equal(t, msg, got)

		rk, err := ctx.ReKeyGen(a, b.Public())
		require.NoError(t, err)
		c2, err := ctx.ReEncrypt(c1, rk, a.Public())
		require.NoError(t, err)
		got, ok = ctx.Decrypt(c2, b).Message()
		require.True(t, ok)
		require.Equal(t, msg, got)
		require.False(t, ctx.Decrypt(c2, c).Valid())

		sig, err := ctx.Sign(a, msg)
		require.NoError(t, err)
		require.True(t, ctx.Verify(msg, sig, a.Public()))

		c3, err := ctx.Encrypt(a.Public(), msg, false)
		require.NoError(t, err)
		got, ok = ctx.Decrypt(c3, a).Message()
		require.True(t, ok)
		require.Equal(t, msg, got)
		_, err = ctx.ReEncrypt(c3, rk, a.Public())
		require.True(t, xerrors.Is(err, ErrNotTransformable))
	})
}

// One context serves many goroutines at once.
func TestScenario_Parallel(t *testing.T) {
	ctx, err := Init(32, 16, CurveSecp256k1)
	require.NoError(t, err)
	owner := ctx.GenerateKeyPair()

	const n = 16
	results := make([]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			consumer := ctx.GenerateKeyPair()
			msg := []byte{byte(i), 'p', 'r', 'e'}
			ct, err := ctx.Encrypt(owner.Public(), msg, true)
			if err != nil {
				return
			}
			rk, err := ctx.ReKeyGen(owner, consumer.Public())
			if err != nil {
				return
			}
			out, err := ctx.ReEncrypt(ct, rk, owner.Public())
			if err != nil {
				return
			}
			got, ok := ctx.Decrypt(out, consumer).Message()
			sig, err := ctx.Sign(consumer, msg)
			results[i] = ok && string(got) == string(msg) && err == nil &&
				ctx.Verify(msg, sig, consumer.Public())
		}(i)
	}
	wg.Wait()
	for i, ok := range results {
		require.True(t, ok, "goroutine %d failed", i)
	}
}
