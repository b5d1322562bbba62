// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"fmt"

	"github.com/ava-labs/hyperamm/auth"
	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/coin"
	"github.com/ava-labs/hyperamm/consts"
)

const digestInitial = 256

// Signed is an operation that spends coins and must carry a signature of
// its digest by their owner.
type Signed interface {
	Digest() []byte
	Authorization() *auth.ED25519
}

// NewDigest starts the message signed for the operation [name]. Every
// digest covers the coins it spends, and a coin is spent once, so a
// signature cannot be replayed.
func NewDigest(name string) *codec.Packer {
	p := codec.NewWriter(digestInitial, consts.MaxInt)
	p.PackFixedBytes([]byte(consts.Name))
	p.PackByte(byte(len(name)))
	p.PackFixedBytes([]byte(name))
	return p
}

// Authorize verifies [a] over [msg]. The signer may then spend its own
// coins for the rest of the transaction. A transaction has at most one
// signer.
func (tx *Tx) Authorize(ctx context.Context, a *auth.ED25519, msg []byte) (codec.Address, error) {
	if a == nil {
		return codec.EmptyAddress, auth.ErrMissingAuth
	}
	if err := a.Verify(ctx, msg); err != nil {
		return codec.EmptyAddress, err
	}
	actor := a.Actor()
	if tx.spender != codec.EmptyAddress && tx.spender != actor {
		return codec.EmptyAddress, fmt.Errorf("%w: %s already signed", ErrMultipleSigners, tx.spender)
	}
	tx.spender = actor
	return actor, nil
}

// authorize checks the signature of [op] if it has one. Unsigned
// operations can only spend coins of a signer authorized earlier in the
// transaction.
func (tx *Tx) authorize(ctx context.Context, op Signed) error {
	a := op.Authorization()
	if a == nil {
		return nil
	}
	_, err := tx.Authorize(ctx, a, op.Digest())
	return err
}

func (tx *Tx) burn(ctx context.Context, c coin.Coin, amount uint64) (*coin.BurnResult, error) {
	if tx.spender == codec.EmptyAddress {
		return nil, auth.ErrMissingAuth
	}
	return coin.Burn(ctx, tx.view, c, amount, tx.spender)
}
