// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package arith

import (
	"math"

	"github.com/holiman/uint256"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

func Add64(a, b uint64) (uint64, error) {
	return smath.Add64(a, b)
}

func Sub64(a, b uint64) (uint64, error) {
	return smath.Sub(a, b)
}

func Mul64(a, b uint64) (uint64, error) {
	return smath.Mul64(a, b)
}

func Div64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

func Rem64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a % b, nil
}

// SaturatingAdd64 returns a+b, or the maximum uint64 if the sum overflows.
func SaturatingAdd64(a, b uint64) uint64 {
	s, err := smath.Add64(a, b)
	if err != nil {
		return math.MaxUint64
	}
	return s
}

// Sqrt64 returns floor(sqrt(y)) using the babylonian method.
func Sqrt64(y uint64) uint64 {
	if y > 3 {
		z := y
		x := y/2 + 1
		for x < z {
			z = x
			x = (y/x + x) / 2
		}
		return z
	} else if y != 0 {
		return 1
	}
	return 0
}

// MulDiv returns floor(a*b/c). The product is computed with 256 bits of
// precision so only the quotient has to fit in a uint64.
func MulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrDivisionByZero
	}
	var p uint256.Int
	p.Mul(uint256.NewInt(a), uint256.NewInt(b))
	p.Div(&p, uint256.NewInt(c))
	if !p.IsUint64() {
		return 0, ErrOverflow
	}
	return p.Uint64(), nil
}

// MulDivUp returns ceil(a*b/c).
func MulDivUp(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrDivisionByZero
	}
	var (
		p   uint256.Int
		q   uint256.Int
		rem uint256.Int
		d   = uint256.NewInt(c)
	)
	p.Mul(uint256.NewInt(a), uint256.NewInt(b))
	q.Div(&p, d)
	rem.Mod(&p, d)
	if !rem.IsZero() {
		q.AddUint64(&q, 1)
	}
	if !q.IsUint64() {
		return 0, ErrOverflow
	}
	return q.Uint64(), nil
}
