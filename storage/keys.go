// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hyperamm/consts"
	"github.com/ava-labs/hyperamm/keys"
	"github.com/ava-labs/hyperamm/state"
)

func idKey(prefix byte, id ids.ID, chunks uint16) []byte {
	k := make([]byte, 0, 1+consts.IDLen+consts.Uint16Len)
	k = append(k, prefix)
	k = append(k, id[:]...)
	return keys.EncodeChunks(k, chunks)
}

// PairKey is the key of the pair record for [pairID].
func PairKey(pairID ids.ID) []byte {
	return idKey(pairPrefix, pairID, PairChunks)
}

// PairIndexKey maps a creation index to a pair id.
func PairIndexKey(index uint64) []byte {
	k := make([]byte, 0, 1+consts.Uint64Len+consts.Uint16Len)
	k = append(k, pairIndexPrefix)
	k = binary.BigEndian.AppendUint64(k, index)
	return keys.EncodeChunks(k, PairIndexChunks)
}

// LPTagKey maps an LP tag back to its pair id.
func LPTagKey(lpTag ids.ID) []byte {
	return idKey(lpTagPrefix, lpTag, LPTagChunks)
}

func PairCountKey() []byte {
	return keys.EncodeChunks([]byte{pairCountPrefix}, CounterChunks)
}

func CoinKey(nonce ids.ID) []byte {
	return idKey(coinPrefix, nonce, CoinChunks)
}

func NonceCounterKey() []byte {
	return keys.EncodeChunks([]byte{nonceCounterPrefix}, CounterChunks)
}

func SupplyKey(tag ids.ID) []byte {
	return idKey(supplyPrefix, tag, SupplyChunks)
}

// getUint64 treats a missing key as zero.
func getUint64(ctx context.Context, im state.Immutable, key []byte) (uint64, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(v) != consts.Uint64Len {
		return 0, ErrCorruptValue
	}
	return binary.BigEndian.Uint64(v), nil
}

func setUint64(ctx context.Context, mu state.Mutable, key []byte, v uint64) error {
	return mu.Insert(ctx, key, binary.BigEndian.AppendUint64(nil, v))
}

func getID(ctx context.Context, im state.Immutable, key []byte) (ids.ID, error) {
	v, err := im.GetValue(ctx, key)
	if err != nil {
		return ids.Empty, err
	}
	if len(v) != consts.IDLen {
		return ids.Empty, ErrCorruptValue
	}
	return ids.ID(v), nil
}

func GetPairCount(ctx context.Context, im state.Immutable) (uint64, error) {
	return getUint64(ctx, im, PairCountKey())
}

func SetPairCount(ctx context.Context, mu state.Mutable, count uint64) error {
	return setUint64(ctx, mu, PairCountKey(), count)
}

// GetPairIDAt returns the id of the pair created at [index].
func GetPairIDAt(ctx context.Context, im state.Immutable, index uint64) (ids.ID, error) {
	return getID(ctx, im, PairIndexKey(index))
}

func SetPairIDAt(ctx context.Context, mu state.Mutable, index uint64, pairID ids.ID) error {
	return mu.Insert(ctx, PairIndexKey(index), pairID[:])
}

// GetLPTagPair returns the pair that issues [lpTag].
func GetLPTagPair(ctx context.Context, im state.Immutable, lpTag ids.ID) (ids.ID, error) {
	return getID(ctx, im, LPTagKey(lpTag))
}

func SetLPTagPair(ctx context.Context, mu state.Mutable, lpTag ids.ID, pairID ids.ID) error {
	return mu.Insert(ctx, LPTagKey(lpTag), pairID[:])
}

func GetNonceCounter(ctx context.Context, im state.Immutable) (uint64, error) {
	return getUint64(ctx, im, NonceCounterKey())
}

func SetNonceCounter(ctx context.Context, mu state.Mutable, counter uint64) error {
	return setUint64(ctx, mu, NonceCounterKey(), counter)
}

// GetSupply returns the outstanding (minted minus burned) amount of [tag].
func GetSupply(ctx context.Context, im state.Immutable, tag ids.ID) (uint64, error) {
	return getUint64(ctx, im, SupplyKey(tag))
}

func SetSupply(ctx context.Context, mu state.Mutable, tag ids.ID, supply uint64) error {
	if supply == 0 {
		return mu.Remove(ctx, SupplyKey(tag))
	}
	return setUint64(ctx, mu, SupplyKey(tag), supply)
}
