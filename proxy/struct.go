package proxy

import (
	"go.dedis.ch/kyber/v3"
)

// delegation is the value stored for every authorized pair.
type delegation struct {
	// ReKey is the re-encryption key in its wire form.
	ReKey []byte
	// Authorized is the unix time in seconds of the authorization.
	Authorized int64
}

// Delegation describes an active delegation of the proxy.
type Delegation struct {
	Delegator  kyber.Point
	Delegatee  kyber.Point
	Authorized int64
}
