// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ed25519 signs coin spends. Verification follows ZIP-215
// (https://zips.z.cash/zip-0215) so every ledger accepts exactly the same
// signatures regardless of which library produced them.
package ed25519

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/hdevalence/ed25519consensus"

	"github.com/ava-labs/hyperamm/codec"
)

type (
	PublicKey  [ed25519.PublicKeySize]byte
	PrivateKey [ed25519.PrivateKeySize]byte
	Signature  [ed25519.SignatureSize]byte
)

const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	// ed25519.PrivateKey is seed|publicKey.
	PrivateKeySeedLen = ed25519.SeedSize
	SignatureLen      = ed25519.SignatureSize
)

var (
	EmptyPublicKey  = PublicKey{}
	EmptyPrivateKey = PrivateKey{}
	EmptySignature  = Signature{}
)

// GeneratePrivateKey returns a Ed25519 PrivateKey.
func GeneratePrivateKey() (PrivateKey, error) {
	_, k, err := ed25519.GenerateKey(nil)
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k), nil
}

// LoadPrivateKey parses a hex encoded private key.
func LoadPrivateKey(s string) (PrivateKey, error) {
	b, err := codec.LoadHex(s, PrivateKeyLen)
	if err != nil {
		return EmptyPrivateKey, ErrInvalidPrivateKey
	}
	return PrivateKey(b), nil
}

// PublicKey returns the last 32 bytes of p.
func (p PrivateKey) PublicKey() PublicKey {
	return PublicKey(p[PrivateKeySeedLen:])
}

// Sign returns a valid signature for msg using pk.
func Sign(msg []byte, pk PrivateKey) Signature {
	return Signature(ed25519.Sign(pk[:], msg))
}

// Verify returns whether s is a valid signature of msg by p.
func Verify(msg []byte, p PublicKey, s Signature) bool {
	return ed25519consensus.Verify(p[:], msg, s[:])
}

func (p PublicKey) MarshalText() ([]byte, error) {
	return marshalHex(p[:]), nil
}

func (p *PublicKey) UnmarshalText(input []byte) error {
	b, err := codec.LoadHex(string(input), PublicKeyLen)
	if err != nil {
		return ErrInvalidPublicKey
	}
	copy(p[:], b)
	return nil
}

func (s Signature) MarshalText() ([]byte, error) {
	return marshalHex(s[:]), nil
}

func (s *Signature) UnmarshalText(input []byte) error {
	b, err := codec.LoadHex(string(input), SignatureLen)
	if err != nil {
		return ErrInvalidSignature
	}
	copy(s[:], b)
	return nil
}

func marshalHex(b []byte) []byte {
	result := make([]byte, len(b)*2+2)
	copy(result, `0x`)
	hex.Encode(result[2:], b)
	return result
}
