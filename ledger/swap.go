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
	"github.com/ava-labs/hyperamm/storage"
)

// swapPair is a pair oriented in swap direction.
type swapPair struct {
	sorted     pair.Sorted
	pair       *storage.Pair
	reserveIn  uint64
	reserveOut uint64
}

func (tx *Tx) loadSwapPair(ctx context.Context, tokenIn, tokenOut ids.ID) (*swapPair, error) {
	s, err := pair.Sort(tokenIn, tokenOut)
	if err != nil {
		return nil, err
	}
	p, err := tx.loadPair(ctx, s)
	if err != nil {
		return nil, err
	}
	reserveIn, reserveOut := s.Unsort(p.Reserve0, p.Reserve1)
	return &swapPair{
		sorted:     s,
		pair:       p,
		reserveIn:  reserveIn,
		reserveOut: reserveOut,
	}, nil
}

func (tx *Tx) SwapExactTokensForTokens(ctx context.Context, a *SwapExactTokensForTokens) (*SwapResult, error) {
	ctx, span := tx.ledger.tracer.Start(ctx, "Tx.SwapExactTokensForTokens")
	defer span.End()

	if err := tx.authorize(ctx, a); err != nil {
		return nil, err
	}
	sp, err := tx.loadSwapPair(ctx, a.CoinIn.TypeTag, a.TokenOut)
	if err != nil {
		return nil, err
	}
	amountOut, err := tx.ledger.model.GetAmountOut(a.AmountIn, sp.reserveIn, sp.reserveOut)
	if err != nil {
		return nil, err
	}
	if amountOut < a.AmountOutMin {
		return nil, fmt.Errorf("%w: %d < %d", ErrInsufficientOutputAmount, amountOut, a.AmountOutMin)
	}
	return tx.settleSwap(ctx, sp, a.CoinIn, a.AmountIn, a.TokenOut, amountOut, a.To)
}

func (tx *Tx) SwapTokensForExactTokens(ctx context.Context, a *SwapTokensForExactTokens) (*SwapResult, error) {
	ctx, span := tx.ledger.tracer.Start(ctx, "Tx.SwapTokensForExactTokens")
	defer span.End()

	if err := tx.authorize(ctx, a); err != nil {
		return nil, err
	}
	sp, err := tx.loadSwapPair(ctx, a.CoinIn.TypeTag, a.TokenOut)
	if err != nil {
		return nil, err
	}
	amountIn, err := tx.ledger.model.GetAmountIn(a.AmountOut, sp.reserveIn, sp.reserveOut)
	if err != nil {
		return nil, err
	}
	if amountIn > a.AmountInMax {
		return nil, fmt.Errorf("%w: %d > %d", ErrExcessiveInputAmount, amountIn, a.AmountInMax)
	}
	return tx.settleSwap(ctx, sp, a.CoinIn, amountIn, a.TokenOut, a.AmountOut, a.To)
}

// settleSwap burns [amountIn] from [coinIn], moves the reserves and mints
// [amountOut] of [tokenOut] to [to]. The constant product is checked
// before anything is written back to the pair.
func (tx *Tx) settleSwap(
	ctx context.Context,
	sp *swapPair,
	coinIn coin.Coin,
	amountIn uint64,
	tokenOut ids.ID,
	amountOut uint64,
	to codec.Address,
) (*SwapResult, error) {
	if coinIn.Amount < amountIn {
		return nil, fmt.Errorf("%w: need %d, coin holds %d", coin.ErrInsufficientCoinAmount, amountIn, coinIn.Amount)
	}
	newIn, err := arith.Add64(sp.reserveIn, amountIn)
	if err != nil {
		return nil, err
	}
	newOut, err := arith.Sub64(sp.reserveOut, amountOut)
	if err != nil {
		return nil, err
	}
	if err := pricing.CheckK(sp.reserveIn, sp.reserveOut, newIn, newOut); err != nil {
		return nil, err
	}
	burn, err := tx.burn(ctx, coinIn, amountIn)
	if err != nil {
		return nil, err
	}
	out, err := coin.Mint(ctx, tx.view, tokenOut, to, amountOut)
	if err != nil {
		return nil, err
	}
	sp.pair.Reserve0, sp.pair.Reserve1 = sp.sorted.Amounts(newIn, newOut)
	if err := storage.SetPair(ctx, tx.view, sp.pair); err != nil {
		return nil, err
	}
	tx.swaps++
	return &SwapResult{
		AmountIn:  amountIn,
		AmountOut: amountOut,
		CoinOut:   out,
		Change:    burn.Change,
	}, nil
}
