// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import "github.com/ava-labs/hyperamm/arith"

var (
	_ Strategy = None{}
	_ Strategy = Volume{}
)

// None leaves the counters untouched.
type None struct{}

func (None) Name() string { return NoneName }

func (None) OnLiquidityAdded(*Counters, uint64, uint64, uint64, uint64) {}

// Volume tracks the deposited volume of each token and the deposit valued in
// the other token at the pre-deposit price.
type Volume struct{}

func (Volume) Name() string { return VolumeName }

func (Volume) OnLiquidityAdded(c *Counters, amount0, amount1, reserve0, reserve1 uint64) {
	c.Volume0Cumulative = arith.SaturatingAdd64(c.Volume0Cumulative, amount0)
	c.Volume1Cumulative = arith.SaturatingAdd64(c.Volume1Cumulative, amount1)
	c.Price0VolCumulative = arith.SaturatingAdd64(c.Price0VolCumulative, valueIn(amount0, reserve1, reserve0, amount1))
	c.Price1VolCumulative = arith.SaturatingAdd64(c.Price1VolCumulative, valueIn(amount1, reserve0, reserve1, amount0))
}

// valueIn prices [amount] at reserveOther/reserveSelf. A pair without
// reserves is priced by the deposit itself.
func valueIn(amount, reserveOther, reserveSelf, fallback uint64) uint64 {
	if reserveSelf == 0 {
		return fallback
	}
	v, err := arith.MulDiv(amount, reserveOther, reserveSelf)
	if err != nil {
		return ^uint64(0)
	}
	return v
}
