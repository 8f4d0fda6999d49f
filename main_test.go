package pre

import (
	"testing"

	"go.dedis.ch/onet/v3/log"
)

func TestMain(m *testing.M) {
	log.MainTest(m)
}

// forAllCurves runs f on a context with L0=32 and L1=16 for every
// supported curve.
func forAllCurves(t *testing.T, f func(t *testing.T, ctx *Context)) {
	for _, curve := range Curves {
		t.Run(string(curve), func(t *testing.T) {
			ctx, err := Init(32, 16, curve)
			if err != nil {
				t.Fatal(err)
			}
			f(t, ctx)
		})
	}
}
