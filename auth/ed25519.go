// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package auth binds a spend to the key that owns the coins it consumes.
// An address is the hash of a public key, so only the holder of the
// matching private key can produce an [ED25519] that resolves to it.
package auth

import (
	"context"

	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/crypto/ed25519"
	"github.com/ava-labs/hyperamm/utils"
)

type ED25519 struct {
	Signer    ed25519.PublicKey `json:"signer"`
	Signature ed25519.Signature `json:"signature"`

	addr codec.Address
}

func (d *ED25519) address() codec.Address {
	if d.addr == codec.EmptyAddress {
		d.addr = NewED25519Address(d.Signer)
	}
	return d.addr
}

// Verify checks that [d] signs [msg].
func (d *ED25519) Verify(_ context.Context, msg []byte) error {
	if !ed25519.Verify(msg, d.Signer, d.Signature) {
		return ErrInvalidSignature
	}
	return nil
}

// Actor is the address whose coins the signature may spend.
func (d *ED25519) Actor() codec.Address {
	return d.address()
}

type ED25519Factory struct {
	priv ed25519.PrivateKey
}

func NewED25519Factory(priv ed25519.PrivateKey) *ED25519Factory {
	return &ED25519Factory{priv}
}

func (d *ED25519Factory) Sign(msg []byte) *ED25519 {
	return &ED25519{Signer: d.priv.PublicKey(), Signature: ed25519.Sign(msg, d.priv)}
}

func (d *ED25519Factory) Address() codec.Address {
	return NewED25519Address(d.priv.PublicKey())
}

func NewED25519Address(pk ed25519.PublicKey) codec.Address {
	return codec.CreateAddress(ED25519ID, utils.ToID(pk[:]))
}

// PrivateKey is a generated key and the address it controls.
type PrivateKey struct {
	Address codec.Address
	Bytes   []byte
}

// GeneratePrivateKey returns a fresh ed25519 key.
func GeneratePrivateKey() (*PrivateKey, error) {
	p, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		Address: NewED25519Address(p.PublicKey()),
		Bytes:   p[:],
	}, nil
}

// Factory returns a signer for [p].
func (p *PrivateKey) Factory() *ED25519Factory {
	return NewED25519Factory(ed25519.PrivateKey(p.Bytes))
}
