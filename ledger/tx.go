// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hyperamm/arith"
	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/coin"
	"github.com/ava-labs/hyperamm/pair"
	"github.com/ava-labs/hyperamm/pricing"
	"github.com/ava-labs/hyperamm/state"
	"github.com/ava-labs/hyperamm/storage"
	"github.com/ava-labs/hyperamm/tstate"
)

// Tx is a single transactional view of the ledger. It is only valid inside
// the [Ledger.Update] or [Ledger.View] callback that created it.
type Tx struct {
	ledger *Ledger
	view   *tstate.TStateView

	// spender is the address whose coins this transaction may burn.
	spender codec.Address

	added   int
	removed int
	swaps   int
	created []*storage.Pair
}

func newTx(l *Ledger, view *tstate.TStateView) *Tx {
	return &Tx{ledger: l, view: view}
}

// State exposes the view for callers composing their own changes.
func (tx *Tx) State() state.Mutable {
	return tx.view
}

func (tx *Tx) Model() pricing.Model {
	return tx.ledger.model
}

func (tx *Tx) GetPair(ctx context.Context, tokenA, tokenB ids.ID) (*storage.Pair, error) {
	s, err := pair.Sort(tokenA, tokenB)
	if err != nil {
		return nil, err
	}
	return tx.loadPair(ctx, s)
}

// GetPairReserves returns the reserves in caller order.
func (tx *Tx) GetPairReserves(ctx context.Context, tokenA, tokenB ids.ID) (uint64, uint64, error) {
	s, err := pair.Sort(tokenA, tokenB)
	if err != nil {
		return 0, 0, err
	}
	p, err := tx.loadPair(ctx, s)
	if err != nil {
		return 0, 0, err
	}
	reserveA, reserveB := s.Unsort(p.Reserve0, p.Reserve1)
	return reserveA, reserveB, nil
}

func (tx *Tx) GetPairAt(ctx context.Context, index uint64) (*storage.Pair, error) {
	pairID, err := storage.GetPairIDAt(ctx, tx.view, index)
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: index %d", ErrPairNotFound, index)
	}
	if err != nil {
		return nil, err
	}
	return storage.GetPair(ctx, tx.view, pairID)
}

func (tx *Tx) Faucet(ctx context.Context, f *Faucet) (coin.Coin, error) {
	_, err := storage.GetLPTagPair(ctx, tx.view, f.TypeTag)
	switch {
	case err == nil:
		return coin.Coin{}, fmt.Errorf("%w: %s", ErrLPTagNotMintable, f.TypeTag)
	case !isNotFound(err):
		return coin.Coin{}, err
	}
	return coin.Mint(ctx, tx.view, f.TypeTag, f.To, f.Amount)
}

func (tx *Tx) loadPair(ctx context.Context, s pair.Sorted) (*storage.Pair, error) {
	pairID := s.ID()
	p, err := storage.GetPair(ctx, tx.view, pairID)
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrPairNotFound, pairID)
	}
	return p, err
}

// loadOrCreatePair registers a new pair if none exists for [s]. The pair is
// only persisted if the enclosing operation succeeds.
func (tx *Tx) loadOrCreatePair(ctx context.Context, s pair.Sorted) (*storage.Pair, error) {
	pairID := s.ID()
	p, err := storage.GetPair(ctx, tx.view, pairID)
	if err == nil || !isNotFound(err) {
		return p, err
	}
	// LP coins may only come from deposits into this pair. Any coin of the
	// tag minted before the pair existed would claim a share of it.
	lpTag := pair.LPTag(pairID)
	outstanding, err := coin.TotalSupply(ctx, tx.view, lpTag)
	if err != nil {
		return nil, err
	}
	if outstanding != 0 {
		return nil, fmt.Errorf("%w: %d of %s", ErrLPTagInUse, outstanding, lpTag)
	}
	count, err := storage.GetPairCount(ctx, tx.view)
	if err != nil {
		return nil, err
	}
	next, err := arith.Add64(count, 1)
	if err != nil {
		return nil, err
	}
	p = &storage.Pair{
		ID:     pairID,
		Token0: s.Token0,
		Token1: s.Token1,
		LPTag:  lpTag,
		Index:  count,
	}
	if err := storage.SetPairIDAt(ctx, tx.view, count, pairID); err != nil {
		return nil, err
	}
	if err := storage.SetLPTagPair(ctx, tx.view, p.LPTag, pairID); err != nil {
		return nil, err
	}
	if err := storage.SetPairCount(ctx, tx.view, next); err != nil {
		return nil, err
	}
	tx.created = append(tx.created, p)
	return p, nil
}

func (tx *Tx) feeOn() bool {
	return tx.ledger.feeTo != codec.EmptyAddress
}

// mintFee issues the protocol fee accrued since the last liquidity change
// and returns whether the fee is on.
func (tx *Tx) mintFee(ctx context.Context, p *storage.Pair) (bool, error) {
	if !tx.feeOn() {
		p.KLast = arith.U128{}
		return false, nil
	}
	liquidity, err := tx.ledger.model.ProtocolFee(p.Reserve0, p.Reserve1, p.KLast, p.LPTotalSupply)
	if err != nil {
		return true, err
	}
	if liquidity == 0 {
		return true, nil
	}
	supply, err := arith.Add64(p.LPTotalSupply, liquidity)
	if err != nil {
		return true, err
	}
	if _, err := coin.Mint(ctx, tx.view, p.LPTag, tx.ledger.feeTo, liquidity); err != nil {
		return true, err
	}
	p.LPTotalSupply = supply
	return true, nil
}

// protocolFee is [mintFee] without side effects.
func (tx *Tx) protocolFee(p *storage.Pair) (uint64, error) {
	if !tx.feeOn() {
		return 0, nil
	}
	return tx.ledger.model.ProtocolFee(p.Reserve0, p.Reserve1, p.KLast, p.LPTotalSupply)
}
