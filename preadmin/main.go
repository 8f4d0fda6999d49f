// Preadmin manages key pairs, ciphertexts and the proxy of a proxy
// re-encryption setup. Binary values are read and printed in hex.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/onet/v3/cfgpath"
	"go.dedis.ch/onet/v3/log"
	"go.dedis.ch/pre"
	"go.dedis.ch/pre/proxy"
)

const appName = "preadmin"

var cliApp = cli.NewApp()

// getDataPath is a function pointer so that tests can hook and modify this.
var getDataPath = cfgpath.GetDataPath

var gitTag = "dev"

func init() {
	cliApp.Name = appName
	cliApp.Usage = "Proxy re-encryption of short secrets"
	cliApp.Version = gitTag
	cliApp.Commands = cmds // stored in "commands.go"
	cliApp.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "debug, d",
			Value: 0,
			Usage: "debug-level: 1 for terse, 5 for maximal",
		},
		cli.StringFlag{
			Name:   "config, c",
			EnvVar: "PRE_CONFIG",
			Value:  getDataPath(appName),
			Usage:  "path to configuration-directory",
		},
	}
	cliApp.Before = func(c *cli.Context) error {
		log.SetDebugVisible(c.Int("debug"))
		configPath = c.String("config")
		return nil
	}
}

func main() {
	err := cliApp.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func initConfig(c *cli.Context) error {
	cfg := &config{Curve: c.String("curve"), L0: 32, L1: c.Int("l1")}
	// Refuse parameters the engine cannot work with.
	if _, err := pre.Init(cfg.L0, cfg.L1, pre.CurveID(cfg.Curve)); err != nil {
		return err
	}
	if err := saveConfig(cfg); err != nil {
		return err
	}
	log.Infof("Configuration in %s: %s with messages of up to %d bytes",
		configPath, cfg.Curve, cfg.L1)
	return nil
}

func keygen(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("please give: name")
	}
	ctx, err := loadContext()
	if err != nil {
		return err
	}
	kp := ctx.GenerateKeyPair()
	defer kp.Destroy()
	if err := saveKeyPair(ctx, c.Args().First(), kp); err != nil {
		return err
	}
	return printPublic(c, ctx, kp)
}

func show(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("please give: name")
	}
	ctx, err := loadContext()
	if err != nil {
		return err
	}
	kp, err := loadKeyPair(ctx, c.Args().First())
	if err != nil {
		return err
	}
	defer kp.Destroy()
	return printPublic(c, ctx, kp)
}

func encrypt(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("please give: recipient message")
	}
	ctx, err := loadContext()
	if err != nil {
		return err
	}
	pk, err := loadPublic(ctx, c.Args().First())
	if err != nil {
		return err
	}
	ct, err := ctx.Encrypt(pk, []byte(c.Args().Get(1)), !c.Bool("sealed"))
	if err != nil {
		return err
	}
	buf, err := ctx.MarshalCiphertext(ct)
	if err != nil {
		return err
	}
	log.Lvl2("Created a", ct.Kind(), "ciphertext")
	return printHex(c, buf)
}

func decrypt(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("please give: name ciphertext")
	}
	ctx, err := loadContext()
	if err != nil {
		return err
	}
	kp, err := loadKeyPair(ctx, c.Args().First())
	if err != nil {
		return err
	}
	defer kp.Destroy()
	ct, err := readCiphertext(ctx, c.Args().Get(1))
	if err != nil {
		return err
	}
	msg, ok := ctx.Decrypt(ct, kp).Message()
	if !ok {
		return errors.New("invalid decryption: wrong key or tampered ciphertext")
	}
	_, err = fmt.Fprintf(c.App.Writer, "%s\n", msg)
	return err
}

func rekey(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("please give: name delegatee")
	}
	ctx, err := loadContext()
	if err != nil {
		return err
	}
	kp, err := loadKeyPair(ctx, c.Args().First())
	if err != nil {
		return err
	}
	defer kp.Destroy()
	delegatee, err := loadPublic(ctx, c.Args().Get(1))
	if err != nil {
		return err
	}
	rk, err := ctx.ReKeyGen(kp, delegatee)
	if err != nil {
		return err
	}
	buf, err := ctx.MarshalReEncryptionKey(rk)
	if err != nil {
		return err
	}
	return printHex(c, buf)
}

func sign(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("please give: name message")
	}
	ctx, err := loadContext()
	if err != nil {
		return err
	}
	kp, err := loadKeyPair(ctx, c.Args().First())
	if err != nil {
		return err
	}
	defer kp.Destroy()
	sig, err := ctx.Sign(kp, []byte(c.Args().Get(1)))
	if err != nil {
		return err
	}
	buf, err := ctx.MarshalSignature(sig)
	if err != nil {
		return err
	}
	return printHex(c, buf)
}

func verify(c *cli.Context) error {
	if c.NArg() < 3 {
		return errors.New("please give: signer message signature")
	}
	ctx, err := loadContext()
	if err != nil {
		return err
	}
	pk, err := loadPublic(ctx, c.Args().First())
	if err != nil {
		return err
	}
	buf, err := hex.DecodeString(c.Args().Get(2))
	if err != nil {
		return err
	}
	sig, err := ctx.UnmarshalSignature(buf)
	if err != nil {
		return err
	}
	if !ctx.Verify([]byte(c.Args().Get(1)), sig, pk) {
		return errors.New("invalid signature")
	}
	_, err = fmt.Fprintln(c.App.Writer, "signature is valid")
	return err
}

func proxyAuthorize(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("please give: rekey")
	}
	return withProxy(func(ctx *pre.Context, p *proxy.Proxy) error {
		buf, err := hex.DecodeString(c.Args().First())
		if err != nil {
			return err
		}
		rk, err := ctx.UnmarshalReEncryptionKey(buf)
		if err != nil {
			return err
		}
		return p.Authorize(rk)
	})
}

func proxyReEncrypt(c *cli.Context) error {
	if c.NArg() < 3 {
		return errors.New("please give: delegator delegatee ciphertext")
	}
	return withProxy(func(ctx *pre.Context, p *proxy.Proxy) error {
		delegator, delegatee, err := readPair(ctx, c)
		if err != nil {
			return err
		}
		ct, err := readCiphertext(ctx, c.Args().Get(2))
		if err != nil {
			return err
		}
		out, err := p.ReEncrypt(ct, delegator, delegatee)
		if err != nil {
			return err
		}
		buf, err := ctx.MarshalCiphertext(out)
		if err != nil {
			return err
		}
		return printHex(c, buf)
	})
}

func proxyRevoke(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("please give: delegator delegatee")
	}
	return withProxy(func(ctx *pre.Context, p *proxy.Proxy) error {
		delegator, delegatee, err := readPair(ctx, c)
		if err != nil {
			return err
		}
		return p.Revoke(delegator, delegatee)
	})
}

func proxyList(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("please give: delegator")
	}
	return withProxy(func(ctx *pre.Context, p *proxy.Proxy) error {
		delegator, err := loadPublic(ctx, c.Args().First())
		if err != nil {
			return err
		}
		list, err := p.Delegatees(delegator)
		if err != nil {
			return err
		}
		for _, d := range list {
			buf, err := ctx.MarshalPublicKey(d.Delegatee)
			if err != nil {
				return err
			}
			if err := printHex(c, buf); err != nil {
				return err
			}
		}
		return nil
	})
}

// withProxy opens the proxy database of the configuration for the duration
// of f.
func withProxy(f func(ctx *pre.Context, p *proxy.Proxy) error) error {
	ctx, err := loadContext()
	if err != nil {
		return err
	}
	db, err := openProxyDB()
	if err != nil {
		return err
	}
	defer db.Close()
	p, err := proxy.New(ctx, db)
	if err != nil {
		return err
	}
	return f(ctx, p)
}

func readPair(ctx *pre.Context, c *cli.Context) (delegator, delegatee kyber.Point, err error) {
	delegator, err = loadPublic(ctx, c.Args().First())
	if err != nil {
		return
	}
	delegatee, err = loadPublic(ctx, c.Args().Get(1))
	return
}

func readCiphertext(ctx *pre.Context, arg string) (pre.Ciphertext, error) {
	buf, err := hex.DecodeString(arg)
	if err != nil {
		return nil, err
	}
	return ctx.UnmarshalCiphertext(buf)
}

func printPublic(c *cli.Context, ctx *pre.Context, kp *pre.KeyPair) error {
	buf, err := ctx.MarshalPublicKey(kp.Public())
	if err != nil {
		return err
	}
	return printHex(c, buf)
}

func printHex(c *cli.Context, buf []byte) error {
	_, err := fmt.Fprintln(c.App.Writer, hex.EncodeToString(buf))
	return err
}
