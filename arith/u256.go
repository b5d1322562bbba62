// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package arith

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// U256 is an unsigned 256-bit integer. Every operation that would wrap
// returns an error instead.
type U256 struct {
	v uint256.Int
}

func NewU256(x uint64) U256 {
	var u U256
	u.v.SetUint64(x)
	return u
}

// U256FromBig converts a non-negative [b] that fits in 256 bits.
func U256FromBig(b *big.Int) (U256, error) {
	var u U256
	if b == nil || b.Sign() < 0 {
		return u, ErrInvalidEncoding
	}
	if u.v.SetFromBig(b) {
		return U256{}, ErrOverflow
	}
	return u, nil
}

// U256FromBytes interprets [b] as a big-endian integer of at most 32 bytes.
func U256FromBytes(b []byte) (U256, error) {
	var u U256
	if len(b) > 32 {
		return u, ErrOverflow
	}
	u.v.SetBytes(b)
	return u, nil
}

func (x U256) Add(y U256) (U256, error) {
	var z U256
	if _, overflow := z.v.AddOverflow(&x.v, &y.v); overflow {
		return U256{}, ErrOverflow
	}
	return z, nil
}

func (x U256) Sub(y U256) (U256, error) {
	var z U256
	if _, underflow := z.v.SubOverflow(&x.v, &y.v); underflow {
		return U256{}, ErrUnderflow
	}
	return z, nil
}

func (x U256) Mul(y U256) (U256, error) {
	var z U256
	if _, overflow := z.v.MulOverflow(&x.v, &y.v); overflow {
		return U256{}, ErrOverflow
	}
	return z, nil
}

func (x U256) Div(y U256) (U256, error) {
	if y.v.IsZero() {
		return U256{}, ErrDivisionByZero
	}
	var z U256
	z.v.Div(&x.v, &y.v)
	return z, nil
}

func (x U256) Rem(y U256) (U256, error) {
	if y.v.IsZero() {
		return U256{}, ErrDivisionByZero
	}
	var z U256
	z.v.Mod(&x.v, &y.v)
	return z, nil
}

// Sqrt returns floor(sqrt(x)). The result is checked against
// root² <= x < (root+1)² before it is returned.
func (x U256) Sqrt() (U256, error) {
	root := U256{v: sqrt(&x.v)}
	if err := checkSqrt(&x.v, &root.v); err != nil {
		return U256{}, err
	}
	return root, nil
}

func (x U256) Cmp(y U256) int {
	return x.v.Cmp(&y.v)
}

func (x U256) IsZero() bool {
	return x.v.IsZero()
}

// Uint64 returns x if it fits in 64 bits.
func (x U256) Uint64() (uint64, error) {
	if !x.v.IsUint64() {
		return 0, ErrOverflow
	}
	return x.v.Uint64(), nil
}

// U128 narrows x, failing if it is wider than 128 bits.
func (x U256) U128() (U128, error) {
	if x.v.BitLen() > 128 {
		return U128{}, ErrOverflow
	}
	return U128{v: x.v}, nil
}

func (x U256) Big() *big.Int {
	return x.v.ToBig()
}

// Bytes32 returns the big-endian encoding of x.
func (x U256) Bytes32() [32]byte {
	return x.v.Bytes32()
}

func (x U256) String() string {
	return x.v.ToBig().String()
}

// MarshalText encodes x as a decimal string.
func (x U256) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *U256) UnmarshalText(text []byte) error {
	b, ok := new(big.Int).SetString(string(text), 10)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidEncoding, text)
	}
	u, err := U256FromBig(b)
	if err != nil {
		return err
	}
	*x = u
	return nil
}

func sqrt(y *uint256.Int) uint256.Int {
	var z uint256.Int
	switch {
	case y.GtUint64(3):
		var x, q uint256.Int
		z.Set(y)
		x.Rsh(y, 1)
		x.AddUint64(&x, 1)
		for x.Lt(&z) {
			z.Set(&x)
			q.Div(y, &x)
			x.Add(&q, &x)
			x.Rsh(&x, 1)
		}
	case !y.IsZero():
		z.SetOne()
	}
	return z
}

func checkSqrt(x, root *uint256.Int) error {
	var sq uint256.Int
	if _, overflow := sq.MulOverflow(root, root); overflow || sq.Gt(x) {
		return ErrSqrtOverestimate
	}
	var next uint256.Int
	if _, overflow := next.AddOverflow(root, uint256.NewInt(1)); overflow {
		return nil
	}
	if _, overflow := sq.MulOverflow(&next, &next); overflow {
		return nil
	}
	if !sq.Gt(x) {
		return ErrSqrtUnderestimate
	}
	return nil
}
