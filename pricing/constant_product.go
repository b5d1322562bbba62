// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"github.com/ava-labs/hyperamm/arith"
)

var _ Model = (*ConstantProduct)(nil)

// ConstantProduct is the x*y=k model with a proportional swap fee of
// feeNumerator/feeDenominator.
type ConstantProduct struct {
	feeNumerator     uint64
	feeDenominator   uint64
	minimumLiquidity uint64
}

func NewConstantProduct(feeNumerator, feeDenominator, minimumLiquidity uint64) (*ConstantProduct, error) {
	if feeDenominator == 0 || feeNumerator >= feeDenominator {
		return nil, ErrInvalidFee
	}
	if minimumLiquidity == 0 {
		return nil, ErrInvalidMinimumLiquidity
	}
	return &ConstantProduct{
		feeNumerator:     feeNumerator,
		feeDenominator:   feeDenominator,
		minimumLiquidity: minimumLiquidity,
	}, nil
}

func (c *ConstantProduct) MinimumLiquidity() uint64 {
	return c.minimumLiquidity
}

// Fee returns the fee numerator and denominator.
func (c *ConstantProduct) Fee() (uint64, uint64) {
	return c.feeNumerator, c.feeDenominator
}

func (c *ConstantProduct) MintLiquidity(amount0, amount1, reserve0, reserve1, supply uint64) (uint64, uint64, error) {
	if supply == 0 {
		root, err := arith.MulU64(amount0, amount1).Sqrt()
		if err != nil {
			return 0, 0, err
		}
		liquidity, err := root.Uint64()
		if err != nil {
			return 0, 0, err
		}
		if liquidity <= c.minimumLiquidity {
			return 0, 0, ErrInsufficientLiquidityMinted
		}
		return liquidity - c.minimumLiquidity, c.minimumLiquidity, nil
	}
	liquidity0, err := arith.MulDiv(amount0, supply, reserve0)
	if err != nil {
		return 0, 0, err
	}
	liquidity1, err := arith.MulDiv(amount1, supply, reserve1)
	if err != nil {
		return 0, 0, err
	}
	liquidity := min(liquidity0, liquidity1)
	if liquidity == 0 {
		return 0, 0, ErrInsufficientLiquidityMinted
	}
	return liquidity, 0, nil
}

// BurnAmounts never lets the supply fall below the locked minimum, even if
// the caller holds every share.
func (c *ConstantProduct) BurnAmounts(liquidity, reserve0, reserve1, supply uint64) (uint64, uint64, error) {
	if liquidity == 0 || liquidity > supply || supply-liquidity < c.minimumLiquidity {
		return 0, 0, ErrInsufficientLiquidityBurned
	}
	amount0, err := arith.MulDiv(liquidity, reserve0, supply)
	if err != nil {
		return 0, 0, err
	}
	amount1, err := arith.MulDiv(liquidity, reserve1, supply)
	if err != nil {
		return 0, 0, err
	}
	if amount0 == 0 || amount1 == 0 {
		return 0, 0, ErrInsufficientLiquidityBurned
	}
	// Shares are backed by the locked minimum, so draining a reserve means
	// the caller asked for more than was ever issued.
	if amount0 >= reserve0 || amount1 >= reserve1 {
		return 0, 0, ErrInsufficientReserves
	}
	return amount0, amount1, nil
}

// ProtocolFee returns the shares owed to the fee recipient for the growth
// of sqrt(k) since [kLast]: supply*(√k-√kLast)/(5√k+√kLast).
func (c *ConstantProduct) ProtocolFee(reserve0, reserve1 uint64, kLast arith.U128, supply uint64) (uint64, error) {
	if kLast.IsZero() {
		return 0, nil
	}
	rootK, err := arith.MulU64(reserve0, reserve1).Sqrt()
	if err != nil {
		return 0, err
	}
	rootKLast, err := kLast.Sqrt()
	if err != nil {
		return 0, err
	}
	if rootK.Cmp(rootKLast) <= 0 {
		return 0, nil
	}
	growth, err := rootK.Sub(rootKLast)
	if err != nil {
		return 0, err
	}
	num, err := growth.U256().Mul(arith.NewU256(supply))
	if err != nil {
		return 0, err
	}
	denom, err := rootK.U256().Mul(arith.NewU256(5))
	if err != nil {
		return 0, err
	}
	denom, err = denom.Add(rootKLast.U256())
	if err != nil {
		return 0, err
	}
	liquidity, err := num.Div(denom)
	if err != nil {
		return 0, err
	}
	return liquidity.Uint64()
}

// GetAmountOut returns the output of an exact input swap:
// amountIn*(D-N)*reserveOut / (reserveIn*D + amountIn*(D-N)).
func (c *ConstantProduct) GetAmountOut(amountIn, reserveIn, reserveOut uint64) (uint64, error) {
	if amountIn == 0 {
		return 0, ErrInsufficientInputAmount
	}
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrInsufficientLiquidity
	}
	amountInWithFee := arith.MulU64(amountIn, c.feeDenominator-c.feeNumerator).U256()
	num, err := amountInWithFee.Mul(arith.NewU256(reserveOut))
	if err != nil {
		return 0, err
	}
	denom, err := arith.MulU64(reserveIn, c.feeDenominator).U256().Add(amountInWithFee)
	if err != nil {
		return 0, err
	}
	out, err := num.Div(denom)
	if err != nil {
		return 0, err
	}
	amountOut, err := out.Uint64()
	if err != nil {
		return 0, err
	}
	if amountOut == 0 {
		return 0, ErrInsufficientOutputAmount
	}
	return amountOut, nil
}

// GetAmountIn returns the smallest input that yields at least [amountOut]:
// ceil(reserveIn*amountOut*D / ((reserveOut-amountOut)*(D-N))).
func (c *ConstantProduct) GetAmountIn(amountOut, reserveIn, reserveOut uint64) (uint64, error) {
	if amountOut == 0 {
		return 0, ErrInsufficientOutputAmount
	}
	if reserveIn == 0 || reserveOut == 0 || amountOut >= reserveOut {
		return 0, ErrInsufficientLiquidity
	}
	num, err := arith.MulU64(reserveIn, amountOut).U256().Mul(arith.NewU256(c.feeDenominator))
	if err != nil {
		return 0, err
	}
	denom := arith.MulU64(reserveOut-amountOut, c.feeDenominator-c.feeNumerator).U256()
	q, err := num.Div(denom)
	if err != nil {
		return 0, err
	}
	r, err := num.Rem(denom)
	if err != nil {
		return 0, err
	}
	if !r.IsZero() {
		q, err = q.Add(arith.NewU256(1))
		if err != nil {
			return 0, err
		}
	}
	return q.Uint64()
}
