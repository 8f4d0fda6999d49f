package main

import (
	"github.com/urfave/cli"
)

var cmds = cli.Commands{
	{
		Name:   "init",
		Usage:  "write the group parameters of the configuration",
		Action: initConfig,
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "curve",
				Value: defaultCurve,
				Usage: "one of secp256k1, Ed25519 or P256",
			},
			cli.IntFlag{
				Name:  "l1",
				Value: defaultL1,
				Usage: "maximal length of a message in bytes",
			},
		},
	},
	{
		Name:      "keygen",
		Usage:     "create a new key pair and print its public key",
		Aliases:   []string{"k"},
		ArgsUsage: "name",
		Action:    keygen,
	},
	{
		Name:      "show",
		Usage:     "print the public key of a key pair",
		ArgsUsage: "name",
		Action:    show,
	},
	{
		Name:      "encrypt",
		Usage:     "encrypt a message to a public key",
		Aliases:   []string{"e"},
		ArgsUsage: "recipient message",
		Action:    encrypt,
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "sealed, s",
				Usage: "create a ciphertext the proxy cannot re-encrypt",
			},
		},
	},
	{
		Name:      "decrypt",
		Usage:     "decrypt a ciphertext with a key pair",
		Aliases:   []string{"d"},
		ArgsUsage: "name ciphertext",
		Action:    decrypt,
	},
	{
		Name:      "rekey",
		Usage:     "create the re-encryption key from a key pair to a public key",
		ArgsUsage: "name delegatee",
		Action:    rekey,
	},
	{
		Name:      "sign",
		Usage:     "sign a message with a key pair",
		ArgsUsage: "name message",
		Action:    sign,
	},
	{
		Name:      "verify",
		Usage:     "verify the signature of a message",
		ArgsUsage: "signer message signature",
		Action:    verify,
	},
	{
		Name:  "proxy",
		Usage: "act as the proxy",
		Subcommands: cli.Commands{
			{
				Name:      "authorize",
				Usage:     "store a re-encryption key",
				ArgsUsage: "rekey",
				Action:    proxyAuthorize,
			},
			{
				Name:      "reencrypt",
				Usage:     "re-encrypt a ciphertext of the delegator for the delegatee",
				ArgsUsage: "delegator delegatee ciphertext",
				Action:    proxyReEncrypt,
			},
			{
				Name:      "revoke",
				Usage:     "discard the re-encryption key of a delegation",
				ArgsUsage: "delegator delegatee",
				Action:    proxyRevoke,
			},
			{
				Name:      "list",
				Usage:     "list the delegatees of a delegator",
				ArgsUsage: "delegator",
				Action:    proxyList,
			},
		},
	},
}
