// Demo of proxy re-encryption between three parties. It does the following
// steps:
//  1. the data owner encrypts a secret key to itself and decrypts it
//  2. the data owner hands a re-encryption key for the data consumer to the
//     proxy, which re-encrypts the ciphertext for the data consumer
//  3. a third party fails to decrypt the re-encrypted ciphertext
//  4. the data owner signs the secret key
//  5. the data owner encrypts the secret key without the intention of
//     sharing it, and the proxy refuses to re-encrypt it
//
// The curve can be given as first parameter, secp256k1 is the default.
package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"

	"go.dedis.ch/kyber/v3/util/random"
	"go.dedis.ch/onet/v3/log"
	"go.dedis.ch/pre"
	"go.dedis.ch/pre/proxy"
	bbolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
)

const (
	l0 = 32
	l1 = 32
)

func main() {
	curve := pre.CurveSecp256k1
	if len(os.Args) > 1 {
		curve = pre.CurveID(os.Args[1])
	}
	ctx, err := pre.Init(l0, l1, curve)
	log.ErrFatal(err)

	dir, err := ioutil.TempDir("", "pre-demo")
	log.ErrFatal(err)
	defer os.RemoveAll(dir)
	db, err := bbolt.Open(filepath.Join(dir, "proxy.db"), 0600, nil)
	log.ErrFatal(err)
	defer db.Close()
	px, err := proxy.New(ctx, db)
	log.ErrFatal(err)

	owner := ctx.GenerateKeyPair()
	consumer := ctx.GenerateKeyPair()
	third := ctx.GenerateKeyPair()
	defer owner.Destroy()
	defer consumer.Destroy()
	defer third.Destroy()

	// The secret is usually a 256-bit key of a symmetric cipher protecting
	// the actual data.
	secret := random.Bits(l1*8, false, random.New())

	log.Info("1. Data owner encrypts and decrypts its secret")
	c1, err := ctx.Encrypt(owner.Public(), secret, true)
	log.ErrFatal(err)
	d1, ok := ctx.Decrypt(c1, owner).Message()
	log.Infof("Data owner decrypts [transformable]: %t, same as the secret: %t",
		ok, bytes.Equal(d1, secret))

	log.Info("2. Data owner shares the secret with the data consumer through the proxy")
	rk, err := ctx.ReKeyGen(owner, consumer.Public())
	log.ErrFatal(err)
	log.ErrFatal(px.Authorize(rk))
	c2, err := px.ReEncrypt(c1, owner.Public(), consumer.Public())
	log.ErrFatal(err)
	log.Info("Re-encrypted ciphertext generated by the proxy")
	d2, ok := ctx.Decrypt(c2, consumer).Message()
	log.Infof("Data consumer decrypts the re-encrypted ciphertext: %t, same as the secret: %t",
		ok, bytes.Equal(d2, secret))

	log.Info("3. Third party tries to decrypt")
	log.Infof("Unauthorized third party decrypts the re-encrypted ciphertext: %t",
		ctx.Decrypt(c2, third).Valid())

	log.Info("4. Data owner signs the secret")
	sig, err := ctx.Sign(owner, secret)
	log.ErrFatal(err)
	log.Infof("Signature verified: %t", ctx.Verify(secret, sig, owner.Public()))

	log.Info("5. Data owner encrypts a secret it does not want to share")
	c3, err := ctx.Encrypt(owner.Public(), secret, false)
	log.ErrFatal(err)
	d3, ok := ctx.Decrypt(c3, owner).Message()
	log.Infof("Data owner decrypts [sealed]: %t, same as the secret: %t",
		ok, bytes.Equal(d3, secret))
	_, err = px.ReEncrypt(c3, owner.Public(), consumer.Public())
	if !xerrors.Is(err, pre.ErrNotTransformable) {
		log.Fatal("The proxy should have refused the sealed ciphertext, got", err)
	}
	log.Info("Proxy refused to re-encrypt:", err)

	log.ErrFatal(px.Revoke(owner.Public(), consumer.Public()))
	log.Info("Delegation revoked, done")
}
