// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package router enforces caller slippage bounds before delegating to the
// ledger and chains swaps along multi-hop paths.
package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/hyperamm/auth"
	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/coin"
	"github.com/ava-labs/hyperamm/ledger"
	"github.com/ava-labs/hyperamm/pair"
	"github.com/ava-labs/hyperamm/pricing"
)

type Router struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Router {
	return &Router{ledger: l}
}

const (
	swapExactInName  = "router.swapExactIn"
	swapExactOutName = "router.swapExactOut"
)

var (
	_ ledger.Signed = (*SwapExactIn)(nil)
	_ ledger.Signed = (*SwapExactOut)(nil)
)

// SwapExactIn sells exactly [AmountIn] of the first tag of [Path] for as
// much of the last tag as possible.
type SwapExactIn struct {
	CoinIn       coin.Coin     `json:"coinIn"`
	AmountIn     uint64        `json:"amountIn"`
	AmountOutMin uint64        `json:"amountOutMin"`
	Path         []ids.ID      `json:"path"`
	To           codec.Address `json:"to"`

	Auth *auth.ED25519 `json:"auth,omitempty"`
}

func (s *SwapExactIn) Digest() []byte {
	p := ledger.NewDigest(swapExactInName)
	s.CoinIn.Marshal(p)
	p.PackUint64(s.AmountIn)
	p.PackUint64(s.AmountOutMin)
	packPath(p, s.Path)
	p.PackAddress(s.To)
	return p.Bytes()
}

func (s *SwapExactIn) Authorization() *auth.ED25519 {
	return s.Auth
}

func (s *SwapExactIn) Sign(f *auth.ED25519Factory) *SwapExactIn {
	s.Auth = f.Sign(s.Digest())
	return s
}

// SwapExactOut buys exactly [AmountOut] of the last tag of [Path].
type SwapExactOut struct {
	CoinIn      coin.Coin     `json:"coinIn"`
	AmountOut   uint64        `json:"amountOut"`
	AmountInMax uint64        `json:"amountInMax"`
	Path        []ids.ID      `json:"path"`
	To          codec.Address `json:"to"`

	Auth *auth.ED25519 `json:"auth,omitempty"`
}

func (s *SwapExactOut) Digest() []byte {
	p := ledger.NewDigest(swapExactOutName)
	s.CoinIn.Marshal(p)
	p.PackUint64(s.AmountOut)
	p.PackUint64(s.AmountInMax)
	packPath(p, s.Path)
	p.PackAddress(s.To)
	return p.Bytes()
}

func (s *SwapExactOut) Authorization() *auth.ED25519 {
	return s.Auth
}

func (s *SwapExactOut) Sign(f *auth.ED25519Factory) *SwapExactOut {
	s.Auth = f.Sign(s.Digest())
	return s
}

func packPath(p *codec.Packer, path []ids.ID) {
	p.PackUint64(uint64(len(path)))
	for _, tag := range path {
		p.PackID(tag)
	}
}

// hopRecipient keeps intermediate coins with the signer so the next hop
// can spend them. Only the final hop pays [to].
func hopRecipient(hop int, path []ids.ID, spender, to codec.Address) codec.Address {
	if hop == len(path)-2 {
		return to
	}
	return spender
}

// PathResult holds the amount moved at every hop. Amounts[0] is the input
// and the last element is the output.
type PathResult struct {
	Amounts []uint64   `json:"amounts"`
	CoinOut coin.Coin  `json:"coinOut"`
	Change  *coin.Coin `json:"change,omitempty"`
}

// Quote returns the amount of B worth [amountA] at the reserve ratio.
func (*Router) Quote(amountA, reserveA, reserveB uint64) (uint64, error) {
	return pricing.Quote(amountA, reserveA, reserveB)
}

// AddLiquidity rejects the deposit if the amounts accepted at the current
// reserves fall below the caller minimums.
func (r *Router) AddLiquidity(ctx context.Context, args *ledger.AddLiquidity) (*ledger.AddLiquidityResult, error) {
	var res *ledger.AddLiquidityResult
	err := r.ledger.Update(ctx, args.Name(), func(ctx context.Context, tx *ledger.Tx) error {
		reserveA, reserveB, err := tx.GetPairReserves(ctx, args.CoinA.TypeTag, args.CoinB.TypeTag)
		if err != nil && !errors.Is(err, ledger.ErrPairNotFound) {
			return err
		}
		if _, _, err := pricing.OptimalAmounts(
			args.CoinA.Amount,
			args.CoinB.Amount,
			args.AmountAMin,
			args.AmountBMin,
			reserveA,
			reserveB,
		); err != nil {
			return err
		}
		res, err = tx.AddLiquidity(ctx, args)
		return err
	})
	return res, err
}

// RemoveLiquidity rejects the withdrawal if either leg would pay out less
// than the caller minimum.
func (r *Router) RemoveLiquidity(ctx context.Context, args *ledger.RemoveLiquidity) (*ledger.RemoveLiquidityResult, error) {
	var res *ledger.RemoveLiquidityResult
	err := r.ledger.Update(ctx, args.Name(), func(ctx context.Context, tx *ledger.Tx) error {
		amountA, amountB, err := tx.QuoteRemoveLiquidity(ctx, args.TokenA, args.TokenB, args.Liquidity)
		if err != nil {
			return err
		}
		if amountA < args.AmountAMin {
			return fmt.Errorf("%w: %d < %d", ErrInsufficientAAmount, amountA, args.AmountAMin)
		}
		if amountB < args.AmountBMin {
			return fmt.Errorf("%w: %d < %d", ErrInsufficientBAmount, amountB, args.AmountBMin)
		}
		res, err = tx.RemoveLiquidity(ctx, args)
		return err
	})
	return res, err
}

func (r *Router) SwapExactTokensForTokens(ctx context.Context, args *SwapExactIn) (*PathResult, error) {
	if err := validatePath(args.CoinIn.TypeTag, args.Path); err != nil {
		return nil, err
	}
	var res *PathResult
	err := r.ledger.Update(ctx, "swapExactTokensForTokens", func(ctx context.Context, tx *ledger.Tx) error {
		spender, err := tx.Authorize(ctx, args.Auth, args.Digest())
		if err != nil {
			return err
		}
		amounts, err := amountsOut(ctx, tx, args.AmountIn, args.Path)
		if err != nil {
			return err
		}
		if last := amounts[len(amounts)-1]; last < args.AmountOutMin {
			return fmt.Errorf("%w: %d < %d", ErrInsufficientOutputAmount, last, args.AmountOutMin)
		}
		res = &PathResult{Amounts: amounts}
		current := args.CoinIn
		for i := 0; i < len(args.Path)-1; i++ {
			hop, err := tx.SwapExactTokensForTokens(ctx, &ledger.SwapExactTokensForTokens{
				CoinIn:       current,
				AmountIn:     amounts[i],
				TokenOut:     args.Path[i+1],
				AmountOutMin: amounts[i+1],
				To:           hopRecipient(i, args.Path, spender, args.To),
			})
			if err != nil {
				return fmt.Errorf("hop %d: %w", i, err)
			}
			if i == 0 {
				res.Change = hop.Change
			}
			current = hop.CoinOut
		}
		res.CoinOut = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Router) SwapTokensForExactTokens(ctx context.Context, args *SwapExactOut) (*PathResult, error) {
	if err := validatePath(args.CoinIn.TypeTag, args.Path); err != nil {
		return nil, err
	}
	var res *PathResult
	err := r.ledger.Update(ctx, "swapTokensForExactTokens", func(ctx context.Context, tx *ledger.Tx) error {
		spender, err := tx.Authorize(ctx, args.Auth, args.Digest())
		if err != nil {
			return err
		}
		amounts, err := amountsIn(ctx, tx, args.AmountOut, args.Path)
		if err != nil {
			return err
		}
		if amounts[0] > args.AmountInMax {
			return fmt.Errorf("%w: %d > %d", ErrExcessiveInputAmount, amounts[0], args.AmountInMax)
		}
		res = &PathResult{Amounts: amounts}
		current := args.CoinIn
		for i := 0; i < len(args.Path)-1; i++ {
			hop, err := tx.SwapTokensForExactTokens(ctx, &ledger.SwapTokensForExactTokens{
				CoinIn:      current,
				AmountOut:   amounts[i+1],
				AmountInMax: amounts[i],
				TokenOut:    args.Path[i+1],
				To:          hopRecipient(i, args.Path, spender, args.To),
			})
			if err != nil {
				return fmt.Errorf("hop %d: %w", i, err)
			}
			if i == 0 {
				res.Change = hop.Change
			}
			current = hop.CoinOut
		}
		res.CoinOut = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetAmountsOut returns the amounts a swap of [amountIn] along [path] would
// move at the current reserves.
func (r *Router) GetAmountsOut(ctx context.Context, amountIn uint64, path []ids.ID) ([]uint64, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}
	var amounts []uint64
	err := r.ledger.View(ctx, func(ctx context.Context, tx *ledger.Tx) error {
		var err error
		amounts, err = amountsOut(ctx, tx, amountIn, path)
		return err
	})
	return amounts, err
}

// GetAmountsIn returns the amounts needed at every hop to receive
// [amountOut] at the end of [path].
func (r *Router) GetAmountsIn(ctx context.Context, amountOut uint64, path []ids.ID) ([]uint64, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}
	var amounts []uint64
	err := r.ledger.View(ctx, func(ctx context.Context, tx *ledger.Tx) error {
		var err error
		amounts, err = amountsIn(ctx, tx, amountOut, path)
		return err
	})
	return amounts, err
}

func amountsOut(ctx context.Context, tx *ledger.Tx, amountIn uint64, path []ids.ID) ([]uint64, error) {
	amounts := make([]uint64, len(path))
	amounts[0] = amountIn
	for i := 0; i < len(path)-1; i++ {
		reserveIn, reserveOut, err := tx.GetPairReserves(ctx, path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		amounts[i+1], err = tx.Model().GetAmountOut(amounts[i], reserveIn, reserveOut)
		if err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

func amountsIn(ctx context.Context, tx *ledger.Tx, amountOut uint64, path []ids.ID) ([]uint64, error) {
	amounts := make([]uint64, len(path))
	amounts[len(amounts)-1] = amountOut
	for i := len(path) - 1; i > 0; i-- {
		reserveIn, reserveOut, err := tx.GetPairReserves(ctx, path[i-1], path[i])
		if err != nil {
			return nil, err
		}
		amounts[i-1], err = tx.Model().GetAmountIn(amounts[i], reserveIn, reserveOut)
		if err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

func validatePath(tokenIn ids.ID, path []ids.ID) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if path[0] != tokenIn {
		return fmt.Errorf("%w: path starts at %s, coin is %s", ErrInvalidPath, path[0], tokenIn)
	}
	return nil
}

// checkPath requires at least one hop and no pair visited twice, so that
// amounts computed up front match what every hop executes.
func checkPath(path []ids.ID) error {
	if len(path) < 2 {
		return fmt.Errorf("%w: %d tags", ErrInvalidPath, len(path))
	}
	seen := set.NewSet[ids.ID](len(path) - 1)
	for i := 0; i < len(path)-1; i++ {
		pairID, err := pair.Identity(path[i], path[i+1])
		if err != nil {
			return err
		}
		if seen.Contains(pairID) {
			return fmt.Errorf("%w: pair %s visited twice", ErrInvalidPath, pairID)
		}
		seen.Add(pairID)
	}
	return nil
}
