/*
Package pre implements unidirectional, single-hop proxy re-encryption of
short messages over prime-order elliptic curve groups.

A data owner encrypts a short secret, typically a symmetric key, under its
own public key. Later it can hand a re-encryption key to a semi-trusted
proxy, which transforms the ciphertext so that a chosen recipient can open
it. The proxy only works on public values: it learns neither the message nor
any secret key.

Ciphertexts come in two kinds. A Transformable ciphertext can be converted
by a proxy holding a re-encryption key of its recipient. A Sealed ciphertext
can only be opened by its recipient, and the proxy refuses it. Ciphertexts
coming out of the proxy are sealed, so a delegation cannot be chained.

Every operation is a method of a Context, created once with Init and safe
for concurrent use:

	ctx, err := pre.Init(32, 16, pre.CurveSecp256k1)
	alice := ctx.GenerateKeyPair()
	bob := ctx.GenerateKeyPair()
	c, err := ctx.Encrypt(alice.Public(), msg, true)
	rk, err := ctx.ReKeyGen(alice, bob.Public())
	c2, err := ctx.ReEncrypt(c, rk, alice.Public())
	msg, ok := ctx.Decrypt(c2, bob).Message()

The same key pairs sign and verify Schnorr signatures.

Because a key pair holds a single secret, a proxy colluding with a delegatee
can recover the secret of the delegator. Only hand re-encryption keys to
proxies that do not cooperate with the delegatees.
*/
package pre
