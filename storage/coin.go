// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/consts"
	"github.com/ava-labs/hyperamm/state"
)

const coinRecordLen = consts.IDLen + consts.Uint64Len + codec.AddressLen

// CoinRecord is the stored form of an unspent coin.
type CoinRecord struct {
	TypeTag ids.ID
	Amount  uint64
	Owner   codec.Address
}

func (c *CoinRecord) Marshal() []byte {
	w := codec.NewWriter(coinRecordLen, coinRecordLen)
	w.PackID(c.TypeTag)
	w.PackUint64(c.Amount)
	w.PackAddress(c.Owner)
	return w.Bytes()
}

func UnmarshalCoinRecord(b []byte) (*CoinRecord, error) {
	var (
		r = codec.NewReader(b, coinRecordLen)
		c CoinRecord
	)
	r.UnpackID(true, &c.TypeTag)
	c.Amount = r.UnpackUint64(true)
	r.UnpackAddress(&c.Owner)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if !r.Empty() {
		return nil, ErrExtraBytes
	}
	return &c, nil
}

// GetCoin returns [database.ErrNotFound] for spent or unknown nonces.
func GetCoin(ctx context.Context, im state.Immutable, nonce ids.ID) (*CoinRecord, error) {
	v, err := im.GetValue(ctx, CoinKey(nonce))
	if err != nil {
		return nil, err
	}
	return UnmarshalCoinRecord(v)
}

func SetCoin(ctx context.Context, mu state.Mutable, nonce ids.ID, c *CoinRecord) error {
	return mu.Insert(ctx, CoinKey(nonce), c.Marshal())
}

func DeleteCoin(ctx context.Context, mu state.Mutable, nonce ids.ID) error {
	return mu.Remove(ctx, CoinKey(nonce))
}
