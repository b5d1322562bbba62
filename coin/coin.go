// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package coin implements value as discrete, uniquely nonced coins. A coin
// is consumed exactly once: burning deletes it and mints at most one change
// coin of the same type for the remainder.
package coin

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hyperamm/arith"
	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/consts"
	"github.com/ava-labs/hyperamm/state"
	"github.com/ava-labs/hyperamm/storage"
	"github.com/ava-labs/hyperamm/utils"
)

type Coin struct {
	Nonce   ids.ID `json:"nonce"`
	TypeTag ids.ID `json:"typeTag"`
	Amount  uint64 `json:"amount"`
}

// Marshal writes every field of [c] to [p].
func (c Coin) Marshal(p *codec.Packer) {
	p.PackID(c.Nonce)
	p.PackID(c.TypeTag)
	p.PackUint64(c.Amount)
}

// BurnResult is the outcome of [Burn]. Sent carries the burned amount and
// Change, if any, is the freshly minted remainder.
type BurnResult struct {
	Sent   Coin  `json:"sent"`
	Change *Coin `json:"change,omitempty"`
}

// NonceFor derives the nonce of the [counter]-th coin minted.
func NonceFor(tag ids.ID, owner codec.Address, counter uint64) ids.ID {
	b := make([]byte, 0, consts.IDLen+codec.AddressLen+consts.Uint64Len)
	b = append(b, tag[:]...)
	b = append(b, owner[:]...)
	b = binary.BigEndian.AppendUint64(b, counter)
	return utils.ToID(b)
}

// Mint creates a new coin of [tag] owned by [to].
func Mint(ctx context.Context, mu state.Mutable, tag ids.ID, to codec.Address, amount uint64) (Coin, error) {
	if amount == 0 {
		return Coin{}, ErrZeroAmount
	}
	if to == codec.EmptyAddress {
		return Coin{}, ErrInvalidRecipient
	}
	supply, err := storage.GetSupply(ctx, mu, tag)
	if err != nil {
		return Coin{}, err
	}
	supply, err = arith.Add64(supply, amount)
	if err != nil {
		return Coin{}, fmt.Errorf("%w: supply of %s", err, tag)
	}
	counter, err := storage.GetNonceCounter(ctx, mu)
	if err != nil {
		return Coin{}, err
	}
	next, err := arith.Add64(counter, 1)
	if err != nil {
		return Coin{}, err
	}
	nonce := NonceFor(tag, to, counter)
	if err := storage.SetCoin(ctx, mu, nonce, &storage.CoinRecord{
		TypeTag: tag,
		Amount:  amount,
		Owner:   to,
	}); err != nil {
		return Coin{}, err
	}
	if err := storage.SetNonceCounter(ctx, mu, next); err != nil {
		return Coin{}, err
	}
	if err := storage.SetSupply(ctx, mu, tag, supply); err != nil {
		return Coin{}, err
	}
	return Coin{Nonce: nonce, TypeTag: tag, Amount: amount}, nil
}

// Burn consumes [c] on behalf of [spender] and destroys [amount] of it.
// Only the owner of [c] may spend it. Anything left over is minted back to
// the owner as a change coin.
func Burn(ctx context.Context, mu state.Mutable, c Coin, amount uint64, spender codec.Address) (*BurnResult, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	record, err := lookup(ctx, mu, c)
	if err != nil {
		return nil, err
	}
	if record.Owner != spender {
		return nil, fmt.Errorf("%w: %s", ErrNotOwner, c.Nonce)
	}
	if amount > record.Amount {
		return nil, fmt.Errorf("%w: burning %d from %d", ErrInsufficientCoinAmount, amount, record.Amount)
	}
	supply, err := storage.GetSupply(ctx, mu, c.TypeTag)
	if err != nil {
		return nil, err
	}
	supply, err = arith.Sub64(supply, record.Amount)
	if err != nil {
		return nil, err
	}
	if err := storage.DeleteCoin(ctx, mu, c.Nonce); err != nil {
		return nil, err
	}
	if err := storage.SetSupply(ctx, mu, c.TypeTag, supply); err != nil {
		return nil, err
	}
	result := &BurnResult{Sent: Coin{Nonce: c.Nonce, TypeTag: c.TypeTag, Amount: amount}}
	if remainder := record.Amount - amount; remainder > 0 {
		change, err := Mint(ctx, mu, c.TypeTag, record.Owner, remainder)
		if err != nil {
			return nil, err
		}
		result.Change = &change
	}
	return result, nil
}

// Get returns the unspent coin with [nonce] and its owner.
func Get(ctx context.Context, im state.Immutable, nonce ids.ID) (Coin, codec.Address, error) {
	record, err := storage.GetCoin(ctx, im, nonce)
	if errors.Is(err, database.ErrNotFound) {
		return Coin{}, codec.EmptyAddress, ErrCoinNotFound
	}
	if err != nil {
		return Coin{}, codec.EmptyAddress, err
	}
	return Coin{Nonce: nonce, TypeTag: record.TypeTag, Amount: record.Amount}, record.Owner, nil
}

// TotalSupply returns the amount of [tag] held in unspent coins.
func TotalSupply(ctx context.Context, im state.Immutable, tag ids.ID) (uint64, error) {
	return storage.GetSupply(ctx, im, tag)
}

func lookup(ctx context.Context, im state.Immutable, c Coin) (*storage.CoinRecord, error) {
	record, err := storage.GetCoin(ctx, im, c.Nonce)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCoinNotFound, c.Nonce)
	}
	if err != nil {
		return nil, err
	}
	if record.TypeTag != c.TypeTag || record.Amount != c.Amount {
		return nil, fmt.Errorf("%w: %s", ErrCoinMismatch, c.Nonce)
	}
	return record, nil
}
