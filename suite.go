package pre

import (
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/suites"
	"go.dedis.ch/pre/group/secp256k1"
	"golang.org/x/xerrors"
)

// Suite is what the engine needs from a cryptographic suite: a prime-order
// group with a hash, an XOF and a source of randomness.
type Suite interface {
	kyber.Group
	kyber.HashFactory
	kyber.XOFFactory
	kyber.Random
}

// CurveID names one of the supported groups.
type CurveID string

const (
	// CurveSecp256k1 is the curve of Bitcoin and Ethereum.
	CurveSecp256k1 CurveID = "secp256k1"
	// CurveEd25519 is the twisted Edwards curve of Ed25519.
	CurveEd25519 CurveID = "Ed25519"
	// CurveP256 is the NIST P-256 curve.
	CurveP256 CurveID = "P256"
)

// Curves lists the supported curves.
var Curves = []CurveID{CurveSecp256k1, CurveEd25519, CurveP256}

var suiteRegister = map[CurveID]func() (Suite, error){
	CurveSecp256k1: func() (Suite, error) {
		return secp256k1.NewBlakeSHA256Secp256k1(), nil
	},
	CurveEd25519: kyberSuite("Ed25519"),
	CurveP256:    kyberSuite("P256"),
}

func kyberSuite(name string) func() (Suite, error) {
	return func() (Suite, error) {
		s, err := suites.Find(name)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func findSuite(curve CurveID) (Suite, error) {
	f := suiteRegister[curve]
	if f == nil {
		return nil, xerrors.Errorf("%q: %w", curve, ErrUnsupportedCurve)
	}
	s, err := f()
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrUnsupportedCurve)
	}
	return s, nil
}
