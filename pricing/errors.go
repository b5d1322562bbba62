// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "errors"

var (
	ErrInvalidFee              = errors.New("fee numerator must be below a positive denominator")
	ErrInvalidMinimumLiquidity = errors.New("minimum liquidity must be positive")

	ErrInsufficientAmount       = errors.New("insufficient amount")
	ErrInsufficientLiquidity    = errors.New("insufficient liquidity")
	ErrInsufficientAAmount      = errors.New("insufficient A amount")
	ErrInsufficientBAmount      = errors.New("insufficient B amount")
	ErrInsufficientInputAmount  = errors.New("insufficient input amount")
	ErrInsufficientOutputAmount = errors.New("insufficient output amount")
	ErrExcessiveInputAmount     = errors.New("insufficient input amount: exceeds maximum")

	ErrInsufficientLiquidityMinted = errors.New("insufficient liquidity minted")
	ErrInsufficientLiquidityBurned = errors.New("insufficient liquidity burned")
	ErrInsufficientReserves        = errors.New("insufficient reserves")
	ErrConstantProduct             = errors.New("constant product decreased")
)
