package main

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/onet/v3/log"
	"go.dedis.ch/pre"
	bbolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
)

const (
	configFile = "pre.toml"
	keyDir     = "keys"
	proxyDB    = "proxy.db"

	defaultCurve = string(pre.CurveSecp256k1)
	defaultL1    = 16
)

// configPath is the directory of the configuration, set by the global
// --config flag.
var configPath string

// config holds the group parameters every command works with.
type config struct {
	Curve string
	L0    int
	L1    int
}

// keyFile is the content of a key pair file. Both values are hex encoded.
type keyFile struct {
	Curve   string
	Public  string
	KeyPair string
}

func loadConfig() (*config, error) {
	cfg := &config{Curve: defaultCurve, L0: 32, L1: defaultL1}
	fn := filepath.Join(configPath, configFile)
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		log.Lvl2("No configuration in", configPath, "- using the defaults")
		return cfg, nil
	}
	if _, err := toml.DecodeFile(fn, cfg); err != nil {
		return nil, xerrors.Errorf("reading %s: %w", fn, err)
	}
	return cfg, nil
}

func saveConfig(cfg *config) error {
	if err := os.MkdirAll(configPath, 0700); err != nil {
		return err
	}
	return writeToml(filepath.Join(configPath, configFile), cfg)
}

func loadContext() (*pre.Context, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return pre.Init(cfg.L0, cfg.L1, pre.CurveID(cfg.Curve))
}

// errInvalidKeyName is returned for key names that would not stay inside
// the key directory.
var errInvalidKeyName = xerrors.New("invalid key name")

// keyPath returns the file of the key pair called name. The name must be a
// plain file name: no separator, not "." nor "..".
func keyPath(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", xerrors.Errorf("%q: %w", name, errInvalidKeyName)
	}
	return filepath.Join(configPath, keyDir, name+".toml"), nil
}

func saveKeyPair(ctx *pre.Context, name string, kp *pre.KeyPair) error {
	fn, err := keyPath(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(fn); err == nil {
		return xerrors.Errorf("key %s already exists", name)
	}
	buf, err := ctx.ExportKeyPair(kp)
	if err != nil {
		return err
	}
	pub, err := ctx.MarshalPublicKey(kp.Public())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fn), 0700); err != nil {
		return err
	}
	return writeToml(fn, &keyFile{
		Curve:   string(ctx.Curve()),
		Public:  hex.EncodeToString(pub),
		KeyPair: hex.EncodeToString(buf),
	})
}

func loadKeyPair(ctx *pre.Context, name string) (*pre.KeyPair, error) {
	fn, err := keyPath(name)
	if err != nil {
		return nil, err
	}
	var kf keyFile
	if _, err := toml.DecodeFile(fn, &kf); err != nil {
		return nil, xerrors.Errorf("reading key %s: %w", name, err)
	}
	buf, err := hex.DecodeString(kf.KeyPair)
	if err != nil {
		return nil, err
	}
	return ctx.ImportKeyPair(buf)
}

// loadPublic accepts either the name of a key pair of the configuration or
// a hex encoded public key.
func loadPublic(ctx *pre.Context, arg string) (kyber.Point, error) {
	if fn, err := keyPath(arg); err == nil {
		var kf keyFile
		if _, err := toml.DecodeFile(fn, &kf); err == nil {
			arg = kf.Public
		}
	}
	buf, err := hex.DecodeString(arg)
	if err != nil {
		return nil, xerrors.New("not a key name nor a hex public key: " + arg)
	}
	return ctx.UnmarshalPublicKey(buf)
}

func openProxyDB() (*bbolt.DB, error) {
	if err := os.MkdirAll(configPath, 0700); err != nil {
		return nil, err
	}
	return bbolt.Open(filepath.Join(configPath, proxyDB), 0600, nil)
}

func writeToml(fn string, v interface{}) error {
	f, err := os.OpenFile(fn, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
