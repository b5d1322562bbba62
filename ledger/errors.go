// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"errors"

	"github.com/ava-labs/hyperamm/pair"
	"github.com/ava-labs/hyperamm/pricing"
)

var (
	ErrClosed             = errors.New("ledger closed")
	ErrPairNotFound       = errors.New("pair not found")
	ErrMismatchedLPToken  = errors.New("coin is not the LP token of the pair")
	ErrLPTagNotMintable   = errors.New("LP tokens can only be minted by providing liquidity")
	ErrInvariantViolated  = errors.New("invariant violated")
	ErrMultipleSigners    = errors.New("operation signed by more than one key")
	ErrLPTagInUse         = errors.New("LP tag already has outstanding coins")
	ErrIdenticalAddresses = pair.ErrIdenticalAddresses

	ErrInsufficientAAmount         = pricing.ErrInsufficientAAmount
	ErrInsufficientBAmount         = pricing.ErrInsufficientBAmount
	ErrInsufficientInputAmount     = pricing.ErrInsufficientInputAmount
	ErrInsufficientOutputAmount    = pricing.ErrInsufficientOutputAmount
	ErrExcessiveInputAmount        = pricing.ErrExcessiveInputAmount
	ErrInsufficientLiquidity       = pricing.ErrInsufficientLiquidity
	ErrInsufficientLiquidityMinted = pricing.ErrInsufficientLiquidityMinted
	ErrInsufficientLiquidityBurned = pricing.ErrInsufficientLiquidityBurned
	ErrInsufficientReserves        = pricing.ErrInsufficientReserves
	ErrConstantProduct             = pricing.ErrConstantProduct
)
