package clk

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/hkdf"
)

// KeyPair holds the two secret keys used by one field's keyed hash pair.
type KeyPair [2][]byte

// KeyList holds one KeyPair per schema field, in field order. It is derived
// once per run and must not be modified afterwards.
type KeyList []KeyPair

// KDFParams configures key derivation. Zero values are replaced by the
// package defaults.
type KDFParams struct {
	Type    string // only "HKDF" is supported
	Hash    string // "SHA256", "SHA512" or "BLAKE3"
	KeySize int    // bytes per derived key
	Salt    []byte
	Info    []byte
}

func (p KDFParams) withDefaults() KDFParams {
	if p.Type == "" {
		p.Type = DefaultKDFType
	}
	if p.Hash == "" {
		p.Hash = DefaultKDFHash
	}
	if p.KeySize == 0 {
		p.KeySize = DefaultKDFKeySize
	}
	if p.Salt == nil {
		p.Salt = DefaultKDFSalt()
	}
	if p.Info == nil {
		p.Info = []byte(DefaultKDFInfo)
	}
	return p
}

func (p KDFParams) hashFunc() (func() hash.Hash, error) {
	switch strings.ToUpper(p.Hash) {
	case "SHA256":
		return sha256.New, nil
	case "SHA512":
		return sha512.New, nil
	case "BLAKE3":
		return func() hash.Hash { return blake3.New() }, nil
	default:
		return nil, fmt.Errorf("%w: unsupported kdf hash algorithm %q", ErrConfig, p.Hash)
	}
}

func (p KDFParams) check() (func() hash.Hash, error) {
	if !strings.EqualFold(p.Type, "HKDF") {
		return nil, fmt.Errorf("%w: unsupported kdf %q", ErrConfig, p.Type)
	}
	if p.KeySize <= 0 {
		return nil, fmt.Errorf("%w: kdf key size must be positive, got %d", ErrConfig, p.KeySize)
	}
	return p.hashFunc()
}

// DeriveKeys derives a KeyList with one KeyPair per field from one or two
// master secrets.
//
// With two secrets, each secret supplies one key of every pair. With a
// single secret, twice as much key material is expanded from it and split
// in half. The result is a pure function of the secrets and params.
func DeriveKeys(secrets [][]byte, numFields int, p KDFParams) (KeyList, error) {
	if numFields <= 0 {
		return nil, fmt.Errorf("%w: field count must be positive, got %d", ErrConfig, numFields)
	}
	if len(secrets) != 1 && len(secrets) != 2 {
		return nil, fmt.Errorf("%w: expected one or two master secrets, got %d", ErrConfig, len(secrets))
	}
	p = p.withDefaults()
	h, err := p.check()
	if err != nil {
		return nil, err
	}

	var halves [2][][]byte
	if len(secrets) == 2 {
		for s := range 2 {
			halves[s], err = expand(h, secrets[s], numFields, p)
			if err != nil {
				return nil, err
			}
		}
	} else {
		all, err := expand(h, secrets[0], 2*numFields, p)
		if err != nil {
			return nil, err
		}
		halves[0], halves[1] = all[:numFields], all[numFields:]
	}

	keys := make(KeyList, numFields)
	for i := range keys {
		keys[i] = KeyPair{halves[0][i], halves[1][i]}
	}
	return keys, nil
}

// expand runs HKDF over secret and splits the output into n keys.
func expand(h func() hash.Hash, secret []byte, n int, p KDFParams) ([][]byte, error) {
	out := make([]byte, n*p.KeySize)
	if _, err := io.ReadFull(hkdf.New(h, secret, p.Salt, p.Info), out); err != nil {
		// HKDF refuses to produce more than 255 hash blocks.
		return nil, fmt.Errorf("%w: hkdf cannot derive %d bytes: %v", ErrConfig, len(out), err)
	}
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = out[i*p.KeySize : (i+1)*p.KeySize : (i+1)*p.KeySize]
	}
	return keys, nil
}
