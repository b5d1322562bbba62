// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "github.com/ava-labs/hyperamm/arith"

const (
	DefaultFeeNumerator     uint64 = 30
	DefaultFeeDenominator   uint64 = 10_000
	DefaultMinimumLiquidity uint64 = 1_000
)

// Model prices deposits, withdrawals and swaps for a single pair. All
// amounts and reserves are in sorted token order unless named In/Out.
type Model interface {
	MinimumLiquidity() uint64

	// MintLiquidity returns the shares issued for a deposit and the shares
	// locked forever (only non-zero for the first deposit).
	MintLiquidity(amount0, amount1, reserve0, reserve1, supply uint64) (uint64, uint64, error)
	BurnAmounts(liquidity, reserve0, reserve1, supply uint64) (uint64, uint64, error)
	ProtocolFee(reserve0, reserve1 uint64, kLast arith.U128, supply uint64) (uint64, error)

	GetAmountOut(amountIn, reserveIn, reserveOut uint64) (uint64, error)
	GetAmountIn(amountOut, reserveIn, reserveOut uint64) (uint64, error)
}

// Quote returns the amount of B worth [amountA] at the ratio of the reserves.
func Quote(amountA, reserveA, reserveB uint64) (uint64, error) {
	if amountA == 0 {
		return 0, ErrInsufficientAmount
	}
	if reserveA == 0 || reserveB == 0 {
		return 0, ErrInsufficientLiquidity
	}
	return arith.MulDiv(amountA, reserveB, reserveA)
}

// OptimalAmounts returns the largest deposit not exceeding the desired
// amounts that matches the current reserve ratio. Arguments are in caller
// order. An empty pair accepts the desired amounts unchanged.
func OptimalAmounts(desiredA, desiredB, minA, minB, reserveA, reserveB uint64) (uint64, uint64, error) {
	if reserveA == 0 && reserveB == 0 {
		return desiredA, desiredB, nil
	}
	bOptimal, err := Quote(desiredA, reserveA, reserveB)
	if err != nil {
		return 0, 0, err
	}
	if bOptimal <= desiredB {
		if bOptimal < minB {
			return 0, 0, ErrInsufficientBAmount
		}
		return desiredA, bOptimal, nil
	}
	aOptimal, err := Quote(desiredB, reserveB, reserveA)
	if err != nil {
		return 0, 0, err
	}
	if aOptimal > desiredA || aOptimal < minA {
		return 0, 0, ErrInsufficientAAmount
	}
	return aOptimal, desiredB, nil
}

// CheckK fails unless reserve0'*reserve1' >= reserve0*reserve1.
func CheckK(before0, before1, after0, after1 uint64) error {
	if arith.MulU64(after0, after1).Cmp(arith.MulU64(before0, before1)) < 0 {
		return ErrConstantProduct
	}
	return nil
}
