// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	Name = "hyperamm"
	HRP  = "amm"

	IDLen     = 32
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)
	IntLen    = 4
	Uint16Len = 2
	Uint64Len = 8
	MaxUint16 = ^uint16(0)
	MaxUint64 = ^uint64(0)

	// Widths (in bits) of the fixed-width integers used by the engine.
	U128Bits = 128
	U256Bits = 256
)
