// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hyperamm/arith"
	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/consts"
	"github.com/ava-labs/hyperamm/oracle"
	"github.com/ava-labs/hyperamm/state"
)

const (
	kLastLen = 16
	pairLen  = 4*consts.IDLen + 4*consts.Uint64Len + kLastLen + 4*consts.Uint64Len
)

// Pair is the persisted state of a liquidity pool. Token0 always sorts
// before Token1.
type Pair struct {
	ID     ids.ID `json:"id"`
	Token0 ids.ID `json:"token0"`
	Token1 ids.ID `json:"token1"`
	LPTag  ids.ID `json:"lpTag"`
	Index  uint64 `json:"index"`

	Reserve0      uint64     `json:"reserve0"`
	Reserve1      uint64     `json:"reserve1"`
	LPTotalSupply uint64     `json:"lpTotalSupply"`
	KLast         arith.U128 `json:"kLast"`

	Oracle oracle.Counters `json:"oracle"`
}

func (p *Pair) Marshal() []byte {
	w := codec.NewWriter(pairLen, pairLen)
	w.PackID(p.ID)
	w.PackID(p.Token0)
	w.PackID(p.Token1)
	w.PackID(p.LPTag)
	w.PackUint64(p.Index)
	w.PackUint64(p.Reserve0)
	w.PackUint64(p.Reserve1)
	w.PackUint64(p.LPTotalSupply)
	kLast := p.KLast.Bytes16()
	w.PackFixedBytes(kLast[:])
	w.PackUint64(p.Oracle.Price0VolCumulative)
	w.PackUint64(p.Oracle.Price1VolCumulative)
	w.PackUint64(p.Oracle.Volume0Cumulative)
	w.PackUint64(p.Oracle.Volume1Cumulative)
	return w.Bytes()
}

func UnmarshalPair(b []byte) (*Pair, error) {
	var (
		r     = codec.NewReader(b, pairLen)
		p     Pair
		kLast = make([]byte, kLastLen)
	)
	r.UnpackID(true, &p.ID)
	r.UnpackID(true, &p.Token0)
	r.UnpackID(true, &p.Token1)
	r.UnpackID(true, &p.LPTag)
	p.Index = r.UnpackUint64(false)
	p.Reserve0 = r.UnpackUint64(false)
	p.Reserve1 = r.UnpackUint64(false)
	p.LPTotalSupply = r.UnpackUint64(false)
	r.UnpackFixedBytes(kLastLen, &kLast)
	p.Oracle.Price0VolCumulative = r.UnpackUint64(false)
	p.Oracle.Price1VolCumulative = r.UnpackUint64(false)
	p.Oracle.Volume0Cumulative = r.UnpackUint64(false)
	p.Oracle.Volume1Cumulative = r.UnpackUint64(false)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if !r.Empty() {
		return nil, ErrExtraBytes
	}
	k, err := arith.U128FromBytes(kLast)
	if err != nil {
		return nil, err
	}
	p.KLast = k
	return &p, nil
}

// GetPair returns [database.ErrNotFound] if no pair is stored for [pairID].
func GetPair(ctx context.Context, im state.Immutable, pairID ids.ID) (*Pair, error) {
	v, err := im.GetValue(ctx, PairKey(pairID))
	if err != nil {
		return nil, err
	}
	return UnmarshalPair(v)
}

func SetPair(ctx context.Context, mu state.Mutable, p *Pair) error {
	return mu.Insert(ctx, PairKey(p.ID), p.Marshal())
}
