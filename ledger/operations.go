// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hyperamm/auth"
	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/coin"
)

var (
	_ Operation = (*AddLiquidity)(nil)
	_ Operation = (*RemoveLiquidity)(nil)
	_ Operation = (*SwapExactTokensForTokens)(nil)
	_ Operation = (*SwapTokensForExactTokens)(nil)
	_ Operation = (*Faucet)(nil)

	_ Signed = (*AddLiquidity)(nil)
	_ Signed = (*RemoveLiquidity)(nil)
	_ Signed = (*SwapExactTokensForTokens)(nil)
	_ Signed = (*SwapTokensForExactTokens)(nil)
)

// Operation is a state transition the ledger can run atomically.
type Operation interface {
	Name() string
	Execute(ctx context.Context, tx *Tx) (any, error)
}

// AddLiquidity deposits up to the full amount of both coins. The desired
// amounts are the coin amounts.
type AddLiquidity struct {
	CoinA      coin.Coin     `json:"coinA"`
	CoinB      coin.Coin     `json:"coinB"`
	AmountAMin uint64        `json:"amountAMin"`
	AmountBMin uint64        `json:"amountBMin"`
	To         codec.Address `json:"to"`

	Auth *auth.ED25519 `json:"auth,omitempty"`
}

type AddLiquidityResult struct {
	PairID    ids.ID     `json:"pairID"`
	AmountA   uint64     `json:"amountA"`
	AmountB   uint64     `json:"amountB"`
	Liquidity uint64     `json:"liquidity"`
	LPCoin    coin.Coin  `json:"lpCoin"`
	ChangeA   *coin.Coin `json:"changeA,omitempty"`
	ChangeB   *coin.Coin `json:"changeB,omitempty"`
}

func (*AddLiquidity) Name() string {
	return "addLiquidity"
}

func (a *AddLiquidity) Execute(ctx context.Context, tx *Tx) (any, error) {
	res, err := tx.AddLiquidity(ctx, a)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (a *AddLiquidity) Digest() []byte {
	p := NewDigest(a.Name())
	a.CoinA.Marshal(p)
	a.CoinB.Marshal(p)
	p.PackUint64(a.AmountAMin)
	p.PackUint64(a.AmountBMin)
	p.PackAddress(a.To)
	return p.Bytes()
}

func (a *AddLiquidity) Authorization() *auth.ED25519 {
	return a.Auth
}

// Sign attaches a signature by the owner of both coins.
func (a *AddLiquidity) Sign(f *auth.ED25519Factory) *AddLiquidity {
	a.Auth = f.Sign(a.Digest())
	return a
}

type RemoveLiquidity struct {
	TokenA     ids.ID        `json:"tokenA"`
	TokenB     ids.ID        `json:"tokenB"`
	LPCoin     coin.Coin     `json:"lpCoin"`
	Liquidity  uint64        `json:"liquidity"`
	AmountAMin uint64        `json:"amountAMin"`
	AmountBMin uint64        `json:"amountBMin"`
	To         codec.Address `json:"to"`

	Auth *auth.ED25519 `json:"auth,omitempty"`
}

type RemoveLiquidityResult struct {
	AmountA  uint64     `json:"amountA"`
	AmountB  uint64     `json:"amountB"`
	CoinA    coin.Coin  `json:"coinA"`
	CoinB    coin.Coin  `json:"coinB"`
	LPChange *coin.Coin `json:"lpChange,omitempty"`
}

func (*RemoveLiquidity) Name() string {
	return "removeLiquidity"
}

func (r *RemoveLiquidity) Execute(ctx context.Context, tx *Tx) (any, error) {
	res, err := tx.RemoveLiquidity(ctx, r)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *RemoveLiquidity) Digest() []byte {
	p := NewDigest(r.Name())
	p.PackID(r.TokenA)
	p.PackID(r.TokenB)
	r.LPCoin.Marshal(p)
	p.PackUint64(r.Liquidity)
	p.PackUint64(r.AmountAMin)
	p.PackUint64(r.AmountBMin)
	p.PackAddress(r.To)
	return p.Bytes()
}

func (r *RemoveLiquidity) Authorization() *auth.ED25519 {
	return r.Auth
}

func (r *RemoveLiquidity) Sign(f *auth.ED25519Factory) *RemoveLiquidity {
	r.Auth = f.Sign(r.Digest())
	return r
}

type SwapExactTokensForTokens struct {
	CoinIn       coin.Coin     `json:"coinIn"`
	AmountIn     uint64        `json:"amountIn"`
	TokenOut     ids.ID        `json:"tokenOut"`
	AmountOutMin uint64        `json:"amountOutMin"`
	To           codec.Address `json:"to"`

	Auth *auth.ED25519 `json:"auth,omitempty"`
}

func (*SwapExactTokensForTokens) Name() string {
	return "swapExactTokensForTokens"
}

func (s *SwapExactTokensForTokens) Execute(ctx context.Context, tx *Tx) (any, error) {
	res, err := tx.SwapExactTokensForTokens(ctx, s)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *SwapExactTokensForTokens) Digest() []byte {
	p := NewDigest(s.Name())
	s.CoinIn.Marshal(p)
	p.PackUint64(s.AmountIn)
	p.PackID(s.TokenOut)
	p.PackUint64(s.AmountOutMin)
	p.PackAddress(s.To)
	return p.Bytes()
}

func (s *SwapExactTokensForTokens) Authorization() *auth.ED25519 {
	return s.Auth
}

func (s *SwapExactTokensForTokens) Sign(f *auth.ED25519Factory) *SwapExactTokensForTokens {
	s.Auth = f.Sign(s.Digest())
	return s
}

type SwapTokensForExactTokens struct {
	CoinIn      coin.Coin     `json:"coinIn"`
	AmountOut   uint64        `json:"amountOut"`
	AmountInMax uint64        `json:"amountInMax"`
	TokenOut    ids.ID        `json:"tokenOut"`
	To          codec.Address `json:"to"`

	Auth *auth.ED25519 `json:"auth,omitempty"`
}

func (*SwapTokensForExactTokens) Name() string {
	return "swapTokensForExactTokens"
}

func (s *SwapTokensForExactTokens) Execute(ctx context.Context, tx *Tx) (any, error) {
	res, err := tx.SwapTokensForExactTokens(ctx, s)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *SwapTokensForExactTokens) Digest() []byte {
	p := NewDigest(s.Name())
	s.CoinIn.Marshal(p)
	p.PackUint64(s.AmountOut)
	p.PackUint64(s.AmountInMax)
	p.PackID(s.TokenOut)
	p.PackAddress(s.To)
	return p.Bytes()
}

func (s *SwapTokensForExactTokens) Authorization() *auth.ED25519 {
	return s.Auth
}

func (s *SwapTokensForExactTokens) Sign(f *auth.ED25519Factory) *SwapTokensForExactTokens {
	s.Auth = f.Sign(s.Digest())
	return s
}

type SwapResult struct {
	AmountIn  uint64     `json:"amountIn"`
	AmountOut uint64     `json:"amountOut"`
	CoinOut   coin.Coin  `json:"coinOut"`
	Change    *coin.Coin `json:"change,omitempty"`
}

type Faucet struct {
	TypeTag ids.ID        `json:"typeTag"`
	Amount  uint64        `json:"amount"`
	To      codec.Address `json:"to"`
}

func (*Faucet) Name() string {
	return "faucet"
}

func (f *Faucet) Execute(ctx context.Context, tx *Tx) (any, error) {
	c, err := tx.Faucet(ctx, f)
	if err != nil {
		return nil, err
	}
	return c, nil
}
