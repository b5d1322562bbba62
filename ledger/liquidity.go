// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hyperamm/arith"
	"github.com/ava-labs/hyperamm/coin"
	"github.com/ava-labs/hyperamm/pair"
	"github.com/ava-labs/hyperamm/pricing"
	"github.com/ava-labs/hyperamm/storage"
)

// AddLiquidity deposits the optimal amounts of both coins into the pair,
// creating it on first use, and mints LP coins to the recipient.
func (tx *Tx) AddLiquidity(ctx context.Context, a *AddLiquidity) (*AddLiquidityResult, error) {
	ctx, span := tx.ledger.tracer.Start(ctx, "Tx.AddLiquidity")
	defer span.End()

	if err := tx.authorize(ctx, a); err != nil {
		return nil, err
	}
	s, err := pair.Sort(a.CoinA.TypeTag, a.CoinB.TypeTag)
	if err != nil {
		return nil, err
	}
	p, err := tx.loadOrCreatePair(ctx, s)
	if err != nil {
		return nil, err
	}
	reserveA, reserveB := s.Unsort(p.Reserve0, p.Reserve1)
	amountA, amountB, err := pricing.OptimalAmounts(
		a.CoinA.Amount,
		a.CoinB.Amount,
		a.AmountAMin,
		a.AmountBMin,
		reserveA,
		reserveB,
	)
	if err != nil {
		return nil, err
	}
	amount0, amount1 := s.Amounts(amountA, amountB)

	feeOn, err := tx.mintFee(ctx, p)
	if err != nil {
		return nil, err
	}
	liquidity, locked, err := tx.ledger.model.MintLiquidity(amount0, amount1, p.Reserve0, p.Reserve1, p.LPTotalSupply)
	if err != nil {
		return nil, err
	}

	burnA, err := tx.burn(ctx, a.CoinA, amountA)
	if err != nil {
		return nil, err
	}
	burnB, err := tx.burn(ctx, a.CoinB, amountB)
	if err != nil {
		return nil, err
	}

	tx.ledger.oracle.OnLiquidityAdded(&p.Oracle, amount0, amount1, p.Reserve0, p.Reserve1)
	if p.Reserve0, err = arith.Add64(p.Reserve0, amount0); err != nil {
		return nil, err
	}
	if p.Reserve1, err = arith.Add64(p.Reserve1, amount1); err != nil {
		return nil, err
	}
	minted, err := arith.Add64(liquidity, locked)
	if err != nil {
		return nil, err
	}
	if p.LPTotalSupply, err = arith.Add64(p.LPTotalSupply, minted); err != nil {
		return nil, err
	}
	lpCoin, err := coin.Mint(ctx, tx.view, p.LPTag, a.To, liquidity)
	if err != nil {
		return nil, err
	}
	if feeOn {
		p.KLast = arith.MulU64(p.Reserve0, p.Reserve1)
	}
	if err := storage.SetPair(ctx, tx.view, p); err != nil {
		return nil, err
	}
	tx.added++
	return &AddLiquidityResult{
		PairID:    p.ID,
		AmountA:   amountA,
		AmountB:   amountB,
		Liquidity: liquidity,
		LPCoin:    lpCoin,
		ChangeA:   burnA.Change,
		ChangeB:   burnB.Change,
	}, nil
}

// RemoveLiquidity burns [RemoveLiquidity.Liquidity] shares and pays out the
// proportional share of both reserves.
func (tx *Tx) RemoveLiquidity(ctx context.Context, r *RemoveLiquidity) (*RemoveLiquidityResult, error) {
	ctx, span := tx.ledger.tracer.Start(ctx, "Tx.RemoveLiquidity")
	defer span.End()

	if err := tx.authorize(ctx, r); err != nil {
		return nil, err
	}
	s, err := pair.Sort(r.TokenA, r.TokenB)
	if err != nil {
		return nil, err
	}
	p, err := tx.loadPair(ctx, s)
	if err != nil {
		return nil, err
	}
	if r.LPCoin.TypeTag != p.LPTag {
		return nil, fmt.Errorf("%w: got %s, expected %s", ErrMismatchedLPToken, r.LPCoin.TypeTag, p.LPTag)
	}
	if r.Liquidity == 0 || r.Liquidity > r.LPCoin.Amount {
		return nil, fmt.Errorf("%w: burning %d of %d", ErrInsufficientLiquidityBurned, r.Liquidity, r.LPCoin.Amount)
	}

	feeOn, err := tx.mintFee(ctx, p)
	if err != nil {
		return nil, err
	}
	amount0, amount1, err := tx.ledger.model.BurnAmounts(r.Liquidity, p.Reserve0, p.Reserve1, p.LPTotalSupply)
	if err != nil {
		return nil, err
	}
	amountA, amountB := s.Unsort(amount0, amount1)
	if amountA < r.AmountAMin {
		return nil, fmt.Errorf("%w: %d < %d", ErrInsufficientAAmount, amountA, r.AmountAMin)
	}
	if amountB < r.AmountBMin {
		return nil, fmt.Errorf("%w: %d < %d", ErrInsufficientBAmount, amountB, r.AmountBMin)
	}

	burn, err := tx.burn(ctx, r.LPCoin, r.Liquidity)
	if err != nil {
		return nil, err
	}
	if p.Reserve0, err = arith.Sub64(p.Reserve0, amount0); err != nil {
		return nil, err
	}
	if p.Reserve1, err = arith.Sub64(p.Reserve1, amount1); err != nil {
		return nil, err
	}
	if p.LPTotalSupply, err = arith.Sub64(p.LPTotalSupply, r.Liquidity); err != nil {
		return nil, err
	}
	coinA, err := coin.Mint(ctx, tx.view, r.TokenA, r.To, amountA)
	if err != nil {
		return nil, err
	}
	coinB, err := coin.Mint(ctx, tx.view, r.TokenB, r.To, amountB)
	if err != nil {
		return nil, err
	}
	if feeOn {
		p.KLast = arith.MulU64(p.Reserve0, p.Reserve1)
	}
	if err := storage.SetPair(ctx, tx.view, p); err != nil {
		return nil, err
	}
	tx.removed++
	return &RemoveLiquidityResult{
		AmountA:  amountA,
		AmountB:  amountB,
		CoinA:    coinA,
		CoinB:    coinB,
		LPChange: burn.Change,
	}, nil
}

// QuoteRemoveLiquidity returns, in caller order, what burning [liquidity]
// shares would pay out now, including the effect of any pending protocol
// fee.
func (tx *Tx) QuoteRemoveLiquidity(ctx context.Context, tokenA, tokenB ids.ID, liquidity uint64) (uint64, uint64, error) {
	s, err := pair.Sort(tokenA, tokenB)
	if err != nil {
		return 0, 0, err
	}
	p, err := tx.loadPair(ctx, s)
	if err != nil {
		return 0, 0, err
	}
	fee, err := tx.protocolFee(p)
	if err != nil {
		return 0, 0, err
	}
	supply, err := arith.Add64(p.LPTotalSupply, fee)
	if err != nil {
		return 0, 0, err
	}
	amount0, amount1, err := tx.ledger.model.BurnAmounts(liquidity, p.Reserve0, p.Reserve1, supply)
	if err != nil {
		return 0, 0, err
	}
	amountA, amountB := s.Unsort(amount0, amount1)
	return amountA, amountB, nil
}
