// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package arith

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// U128 is an unsigned 128-bit integer. Any result wider than 128 bits fails
// with [ErrOverflow].
type U128 struct {
	v uint256.Int
}

func NewU128(x uint64) U128 {
	var u U128
	u.v.SetUint64(x)
	return u
}

// U128FromBig converts a non-negative [b] that fits in 128 bits.
func U128FromBig(b *big.Int) (U128, error) {
	w, err := U256FromBig(b)
	if err != nil {
		return U128{}, err
	}
	return w.U128()
}

// U128FromBytes interprets [b] as a big-endian integer of at most 16 bytes.
func U128FromBytes(b []byte) (U128, error) {
	if len(b) > 16 {
		return U128{}, ErrOverflow
	}
	var u U128
	u.v.SetBytes(b)
	return u, nil
}

// MulU64 returns a*b, which always fits in 128 bits.
func MulU64(a, b uint64) U128 {
	var u U128
	u.v.Mul(uint256.NewInt(a), uint256.NewInt(b))
	return u
}

func (x U128) U256() U256 {
	return U256{v: x.v}
}

func (x U128) Add(y U128) (U128, error) {
	z, err := x.U256().Add(y.U256())
	if err != nil {
		return U128{}, err
	}
	return z.U128()
}

func (x U128) Sub(y U128) (U128, error) {
	z, err := x.U256().Sub(y.U256())
	if err != nil {
		return U128{}, err
	}
	return z.U128()
}

func (x U128) Mul(y U128) (U128, error) {
	z, err := x.U256().Mul(y.U256())
	if err != nil {
		return U128{}, err
	}
	return z.U128()
}

func (x U128) Div(y U128) (U128, error) {
	z, err := x.U256().Div(y.U256())
	if err != nil {
		return U128{}, err
	}
	return z.U128()
}

func (x U128) Rem(y U128) (U128, error) {
	z, err := x.U256().Rem(y.U256())
	if err != nil {
		return U128{}, err
	}
	return z.U128()
}

func (x U128) Sqrt() (U128, error) {
	z, err := x.U256().Sqrt()
	if err != nil {
		return U128{}, err
	}
	return z.U128()
}

func (x U128) Cmp(y U128) int {
	return x.v.Cmp(&y.v)
}

func (x U128) IsZero() bool {
	return x.v.IsZero()
}

func (x U128) Uint64() (uint64, error) {
	return x.U256().Uint64()
}

func (x U128) Big() *big.Int {
	return x.v.ToBig()
}

// Bytes16 returns the big-endian encoding of x.
func (x U128) Bytes16() [16]byte {
	var out [16]byte
	b := x.v.Bytes32()
	copy(out[:], b[16:])
	return out
}

func (x U128) String() string {
	return x.v.ToBig().String()
}

func (x U128) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *U128) UnmarshalText(text []byte) error {
	b, ok := new(big.Int).SetString(string(text), 10)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidEncoding, text)
	}
	u, err := U128FromBig(b)
	if err != nil {
		return err
	}
	*x = u
	return nil
}
