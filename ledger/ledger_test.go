// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger_test

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ava-labs/hyperamm/arith"
	"github.com/ava-labs/hyperamm/auth"
	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/codec/codectest"
	"github.com/ava-labs/hyperamm/coin"
	"github.com/ava-labs/hyperamm/ledger"
	"github.com/ava-labs/hyperamm/ledger/ledgertest"
	"github.com/ava-labs/hyperamm/oracle"
	"github.com/ava-labs/hyperamm/pair"
	"github.com/ava-labs/hyperamm/pebble"
	"github.com/ava-labs/hyperamm/storage"
	"github.com/ava-labs/hyperamm/trace"
)

func faucet(t require.TestingT, l *ledger.Ledger, tag ids.ID, amount uint64, to codec.Address) coin.Coin {
	c, err := l.Faucet(context.Background(), &ledger.Faucet{TypeTag: tag, Amount: amount, To: to})
	require.NoError(t, err)
	return c
}

// seed creates a pair holding [amountA] of a fresh tag A and [amountB] of
// a fresh tag B. The LP coin goes to [key].
func seed(t require.TestingT, l *ledger.Ledger, key *auth.ED25519Factory, amountA, amountB uint64) (ids.ID, ids.ID, *ledger.AddLiquidityResult) {
	var (
		tagA = ids.GenerateTestID()
		tagB = ids.GenerateTestID()
		addr = key.Address()
	)
	res, err := l.AddLiquidity(context.Background(), (&ledger.AddLiquidity{
		CoinA: faucet(t, l, tagA, amountA, addr),
		CoinB: faucet(t, l, tagB, amountB, addr),
		To:    addr,
	}).Sign(key))
	require.NoError(t, err)
	return tagA, tagB, res
}

func TestAddLiquidityNewPair(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	key := ledgertest.NewKey(t)

	tagA, tagB, res := seed(t, l, key, 2_000, 1_000)
	require.Equal(uint64(2_000), res.AmountA)
	require.Equal(uint64(1_000), res.AmountB)
	require.Equal(uint64(414), res.Liquidity)
	require.Equal(uint64(414), res.LPCoin.Amount)
	require.Nil(res.ChangeA)
	require.Nil(res.ChangeB)

	pairID, err := l.GetPairIdentity(tagB, tagA)
	require.NoError(err)
	require.Equal(pairID, res.PairID)
	require.Equal(pair.LPTag(pairID), res.LPCoin.TypeTag)

	p, err := l.GetPair(ctx, tagB, tagA)
	require.NoError(err)
	s, err := pair.Sort(tagA, tagB)
	require.NoError(err)
	reserve0, reserve1 := s.Amounts(2_000, 1_000)
	require.Equal(s.Token0, p.Token0)
	require.Equal(reserve0, p.Reserve0)
	require.Equal(reserve1, p.Reserve1)
	require.Equal(uint64(1_414), p.LPTotalSupply)
	require.True(p.KLast.IsZero())

	reserveA, reserveB, err := l.GetPairReserves(ctx, tagA, tagB)
	require.NoError(err)
	require.Equal(uint64(2_000), reserveA)
	require.Equal(uint64(1_000), reserveB)

	supply, err := l.GetLpTokenTotalSupply(ctx, tagA, tagB)
	require.NoError(err)
	require.Equal(uint64(1_414), supply)

	count, err := l.GetAllPairLength(ctx)
	require.NoError(err)
	require.Equal(uint64(1), count)

	first, err := l.GetPairAt(ctx, 0)
	require.NoError(err)
	require.Equal(p, first)
	_, err = l.GetPairAt(ctx, 1)
	require.ErrorIs(err, ledger.ErrPairNotFound)

	require.NoError(l.CheckInvariants(ctx))
}

func TestAddLiquidity(t *testing.T) {
	ctx := context.Background()
	key := ledgertest.NewKey(t)
	addr := key.Address()

	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	tagA, tagB, _ := seed(t, l, key, 2_000, 1_000)
	other := ledgertest.NewKey(t)

	pairs, err := l.GetAllPairLength(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), pairs)
	noNewPair := func(ctx context.Context, t *testing.T, l *ledger.Ledger, _ any) {
		count, err := l.GetAllPairLength(ctx)
		require.NoError(t, err)
		require.Equal(t, pairs, count)
	}

	tampered := (&ledger.AddLiquidity{
		CoinA: faucet(t, l, tagA, 100, addr),
		CoinB: faucet(t, l, tagB, 100, addr),
		To:    addr,
	}).Sign(key)
	tampered.To = other.Address()

	tests := []ledgertest.OperationTest{
		{
			Name: "identical assets",
			Operation: (&ledger.AddLiquidity{
				CoinA: faucet(t, l, tagA, 100, addr),
				CoinB: faucet(t, l, tagA, 100, addr),
				To:    addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrIdenticalAddresses,
			Assertion:   noNewPair,
		},
		{
			Name: "new pair at minimum liquidity",
			Operation: (&ledger.AddLiquidity{
				CoinA: faucet(t, l, ids.GenerateTestID(), 1_000, addr),
				CoinB: faucet(t, l, ids.GenerateTestID(), 1_000, addr),
				To:    addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrInsufficientLiquidityMinted,
			Assertion:   noNewPair,
		},
		{
			Name: "unsigned",
			Operation: &ledger.AddLiquidity{
				CoinA: faucet(t, l, tagA, 100, addr),
				CoinB: faucet(t, l, tagB, 100, addr),
				To:    addr,
			},
			ExpectedErr: auth.ErrMissingAuth,
		},
		{
			Name:        "signature does not cover the operation",
			Operation:   tampered,
			ExpectedErr: auth.ErrInvalidSignature,
		},
		{
			Name: "coins owned by someone else",
			Operation: (&ledger.AddLiquidity{
				CoinA: faucet(t, l, tagA, 100, addr),
				CoinB: faucet(t, l, tagB, 100, addr),
				To:    other.Address(),
			}).Sign(other),
			ExpectedErr: coin.ErrNotOwner,
		},
		{
			Name: "b below minimum",
			Operation: (&ledger.AddLiquidity{
				CoinA:      faucet(t, l, tagA, 100, addr),
				CoinB:      faucet(t, l, tagB, 100, addr),
				AmountBMin: 60,
				To:         addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrInsufficientBAmount,
		},
		{
			Name: "a below minimum",
			Operation: (&ledger.AddLiquidity{
				CoinA:      faucet(t, l, tagA, 100, addr),
				CoinB:      faucet(t, l, tagB, 40, addr),
				AmountAMin: 90,
				To:         addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrInsufficientAAmount,
		},
		{
			Name: "forged coin",
			Operation: (&ledger.AddLiquidity{
				CoinA: coin.Coin{Nonce: ids.GenerateTestID(), TypeTag: tagA, Amount: 100},
				CoinB: faucet(t, l, tagB, 100, addr),
				To:    addr,
			}).Sign(key),
			ExpectedErr: coin.ErrCoinNotFound,
		},
		{
			Name: "empty recipient",
			Operation: (&ledger.AddLiquidity{
				CoinA: faucet(t, l, tagA, 100, addr),
				CoinB: faucet(t, l, tagB, 100, addr),
			}).Sign(key),
			ExpectedErr: coin.ErrInvalidRecipient,
		},
		{
			Name: "deposit at reserve ratio with change",
			Operation: (&ledger.AddLiquidity{
				CoinA: faucet(t, l, tagA, 100, addr),
				CoinB: faucet(t, l, tagB, 100, addr),
				To:    addr,
			}).Sign(key),
			Assertion: func(ctx context.Context, t *testing.T, l *ledger.Ledger, output any) {
				require := require.New(t)

				res, ok := output.(*ledger.AddLiquidityResult)
				require.True(ok)
				require.Equal(uint64(100), res.AmountA)
				require.Equal(uint64(50), res.AmountB)
				require.Equal(uint64(70), res.Liquidity)
				require.Nil(res.ChangeA)
				require.NotNil(res.ChangeB)
				require.Equal(uint64(50), res.ChangeB.Amount)
				require.Equal(tagB, res.ChangeB.TypeTag)

				_, owner, err := l.GetCoin(ctx, res.ChangeB.Nonce)
				require.NoError(err)
				require.Equal(addr, owner)

				reserveA, reserveB, err := l.GetPairReserves(ctx, tagA, tagB)
				require.NoError(err)
				require.Equal(uint64(2_100), reserveA)
				require.Equal(uint64(1_050), reserveB)
			},
		},
	}
	for _, tt := range tests {
		tt.Ledger = l
		tt.Run(ctx, t)
	}
	noNewPair(ctx, t, l, nil)
}

func TestAddLiquidityConsumesCoins(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	key := ledgertest.NewKey(t)
	addr := key.Address()

	coinA := faucet(t, l, ids.GenerateTestID(), 5_000, addr)
	coinB := faucet(t, l, ids.GenerateTestID(), 5_000, addr)
	op := (&ledger.AddLiquidity{CoinA: coinA, CoinB: coinB, To: addr}).Sign(key)
	_, err := l.AddLiquidity(ctx, op)
	require.NoError(err)

	_, _, err = l.GetCoin(ctx, coinA.Nonce)
	require.ErrorIs(err, coin.ErrCoinNotFound)

	_, err = l.AddLiquidity(ctx, op)
	require.ErrorIs(err, coin.ErrCoinNotFound)
}

func TestRemoveLiquidity(t *testing.T) {
	ctx := context.Background()
	key := ledgertest.NewKey(t)
	addr := key.Address()

	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	tagA, tagB, res := seed(t, l, key, 2_000, 1_000)
	lpCoin := res.LPCoin

	tests := []ledgertest.OperationTest{
		{
			Name: "identical assets",
			Operation: (&ledger.RemoveLiquidity{
				TokenA: tagA, TokenB: tagA, LPCoin: lpCoin, Liquidity: 1, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrIdenticalAddresses,
		},
		{
			Name: "pair not found",
			Operation: (&ledger.RemoveLiquidity{
				TokenA: tagA, TokenB: ids.GenerateTestID(), LPCoin: lpCoin, Liquidity: 1, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrPairNotFound,
		},
		{
			Name: "wrong lp coin",
			Operation: (&ledger.RemoveLiquidity{
				TokenA: tagA, TokenB: tagB, LPCoin: faucet(t, l, tagA, 10, addr), Liquidity: 1, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrMismatchedLPToken,
		},
		{
			Name: "zero liquidity",
			Operation: (&ledger.RemoveLiquidity{
				TokenA: tagA, TokenB: tagB, LPCoin: lpCoin, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrInsufficientLiquidityBurned,
		},
		{
			Name: "more than the coin holds",
			Operation: (&ledger.RemoveLiquidity{
				TokenA: tagA, TokenB: tagB, LPCoin: lpCoin, Liquidity: 415, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrInsufficientLiquidityBurned,
		},
		{
			Name: "dust",
			Operation: (&ledger.RemoveLiquidity{
				TokenA: tagA, TokenB: tagB, LPCoin: lpCoin, Liquidity: 1, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrInsufficientLiquidityBurned,
		},
		{
			Name: "a below minimum",
			Operation: (&ledger.RemoveLiquidity{
				TokenA: tagA, TokenB: tagB, LPCoin: lpCoin, Liquidity: 414, AmountAMin: 586, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrInsufficientAAmount,
		},
		{
			Name: "b below minimum",
			Operation: (&ledger.RemoveLiquidity{
				TokenA: tagA, TokenB: tagB, LPCoin: lpCoin, Liquidity: 414, AmountBMin: 293, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrInsufficientBAmount,
		},
		{
			Name: "partial withdrawal returns lp change",
			Operation: (&ledger.RemoveLiquidity{
				TokenA: tagB, TokenB: tagA, LPCoin: lpCoin, Liquidity: 400, To: addr,
			}).Sign(key),
			Assertion: func(ctx context.Context, t *testing.T, l *ledger.Ledger, output any) {
				require := require.New(t)

				res, ok := output.(*ledger.RemoveLiquidityResult)
				require.True(ok)
				// caller order is (B, A)
				require.Equal(uint64(282), res.AmountA)
				require.Equal(uint64(565), res.AmountB)
				require.Equal(tagB, res.CoinA.TypeTag)
				require.Equal(tagA, res.CoinB.TypeTag)
				require.NotNil(res.LPChange)
				require.Equal(uint64(14), res.LPChange.Amount)

				supply, err := l.GetLpTokenTotalSupply(ctx, tagA, tagB)
				require.NoError(err)
				require.Equal(uint64(1_014), supply)

				reserveA, reserveB, err := l.GetPairReserves(ctx, tagA, tagB)
				require.NoError(err)
				require.Equal(uint64(2_000-565), reserveA)
				require.Equal(uint64(1_000-282), reserveB)
			},
		},
	}
	for _, tt := range tests {
		tt.Ledger = l
		tt.Run(ctx, t)
	}
}

func TestRoundTripReturnsLess(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	key := ledgertest.NewKey(t)
	addr := key.Address()

	tagA, tagB, res := seed(t, l, key, 2_000, 1_000)
	out, err := l.RemoveLiquidity(ctx, (&ledger.RemoveLiquidity{
		TokenA:    tagA,
		TokenB:    tagB,
		LPCoin:    res.LPCoin,
		Liquidity: res.LPCoin.Amount,
		To:        addr,
	}).Sign(key))
	require.NoError(err)
	require.Equal(uint64(585), out.AmountA)
	require.Equal(uint64(292), out.AmountB)
	require.Less(out.AmountA, res.AmountA)
	require.Less(out.AmountB, res.AmountB)
	require.Nil(out.LPChange)

	supply, err := l.GetLpTokenTotalSupply(ctx, tagA, tagB)
	require.NoError(err)
	require.Equal(uint64(1_000), supply)
	require.NoError(l.CheckInvariants(ctx))
}

func TestSwapExactTokensForTokens(t *testing.T) {
	ctx := context.Background()
	key := ledgertest.NewKey(t)
	addr := key.Address()

	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	tagA, tagB, _ := seed(t, l, key, 10_000, 5_000)

	tests := []ledgertest.OperationTest{
		{
			Name: "identical assets",
			Operation: (&ledger.SwapExactTokensForTokens{
				CoinIn: faucet(t, l, tagA, 2_000, addr), AmountIn: 2_000, TokenOut: tagA, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrIdenticalAddresses,
		},
		{
			Name: "pair not found",
			Operation: (&ledger.SwapExactTokensForTokens{
				CoinIn: faucet(t, l, tagA, 2_000, addr), AmountIn: 2_000, TokenOut: ids.GenerateTestID(), To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrPairNotFound,
		},
		{
			Name: "zero input",
			Operation: (&ledger.SwapExactTokensForTokens{
				CoinIn: faucet(t, l, tagA, 2_000, addr), TokenOut: tagB, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrInsufficientInputAmount,
		},
		{
			Name: "below minimum output",
			Operation: (&ledger.SwapExactTokensForTokens{
				CoinIn: faucet(t, l, tagA, 2_000, addr), AmountIn: 2_000, TokenOut: tagB, AmountOutMin: 832, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrInsufficientOutputAmount,
		},
		{
			Name: "coin too small",
			Operation: (&ledger.SwapExactTokensForTokens{
				CoinIn: faucet(t, l, tagA, 1_999, addr), AmountIn: 2_000, TokenOut: tagB, To: addr,
			}).Sign(key),
			ExpectedErr: coin.ErrInsufficientCoinAmount,
		},
		{
			Name: "swap with change",
			Operation: (&ledger.SwapExactTokensForTokens{
				CoinIn: faucet(t, l, tagA, 3_000, addr), AmountIn: 2_000, TokenOut: tagB, AmountOutMin: 831, To: addr,
			}).Sign(key),
			Assertion: func(ctx context.Context, t *testing.T, l *ledger.Ledger, output any) {
				require := require.New(t)

				res, ok := output.(*ledger.SwapResult)
				require.True(ok)
				require.Equal(uint64(2_000), res.AmountIn)
				require.Equal(uint64(831), res.AmountOut)
				require.Less(res.AmountOut, uint64(2_000*5_000/12_000))
				require.Equal(tagB, res.CoinOut.TypeTag)
				require.NotNil(res.Change)
				require.Equal(uint64(1_000), res.Change.Amount)

				reserveA, reserveB, err := l.GetPairReserves(ctx, tagA, tagB)
				require.NoError(err)
				require.Equal(uint64(12_000), reserveA)
				require.Equal(uint64(4_169), reserveB)
				require.Equal(1, arith.MulU64(reserveA, reserveB).Cmp(arith.MulU64(10_000, 5_000)))
			},
		},
	}
	for _, tt := range tests {
		tt.Ledger = l
		tt.Run(ctx, t)
	}
}

func TestSwapTokensForExactTokens(t *testing.T) {
	ctx := context.Background()
	key := ledgertest.NewKey(t)
	addr := key.Address()

	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	tagA, tagB, _ := seed(t, l, key, 10_000, 5_000)

	tests := []ledgertest.OperationTest{
		{
			Name: "zero output",
			Operation: (&ledger.SwapTokensForExactTokens{
				CoinIn: faucet(t, l, tagA, 2_000, addr), AmountInMax: 2_000, TokenOut: tagB, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrInsufficientOutputAmount,
		},
		{
			Name: "drains the reserve",
			Operation: (&ledger.SwapTokensForExactTokens{
				CoinIn: faucet(t, l, tagA, 2_000, addr), AmountOut: 5_000, AmountInMax: 2_000, TokenOut: tagB, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrInsufficientLiquidity,
		},
		{
			Name: "above maximum input",
			Operation: (&ledger.SwapTokensForExactTokens{
				CoinIn: faucet(t, l, tagA, 2_000, addr), AmountOut: 831, AmountInMax: 1_999, TokenOut: tagB, To: addr,
			}).Sign(key),
			ExpectedErr: ledger.ErrExcessiveInputAmount,
		},
		{
			Name: "exact output",
			Operation: (&ledger.SwapTokensForExactTokens{
				CoinIn: faucet(t, l, tagA, 2_000, addr), AmountOut: 831, AmountInMax: 2_000, TokenOut: tagB, To: addr,
			}).Sign(key),
			Assertion: func(ctx context.Context, t *testing.T, l *ledger.Ledger, output any) {
				require := require.New(t)

				res, ok := output.(*ledger.SwapResult)
				require.True(ok)
				require.Equal(uint64(2_000), res.AmountIn)
				require.Equal(uint64(831), res.AmountOut)
				require.Equal(uint64(831), res.CoinOut.Amount)
				require.Nil(res.Change)
			},
		},
	}
	for _, tt := range tests {
		tt.Ledger = l
		tt.Run(ctx, t)
	}
}

func TestFaucet(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	key := ledgertest.NewKey(t)
	addr := key.Address()

	_, _, res := seed(t, l, key, 2_000, 1_000)
	_, err := l.Faucet(ctx, &ledger.Faucet{TypeTag: res.LPCoin.TypeTag, Amount: 1, To: addr})
	require.ErrorIs(err, ledger.ErrLPTagNotMintable)

	_, err = l.Faucet(ctx, &ledger.Faucet{TypeTag: ids.GenerateTestID(), To: addr})
	require.ErrorIs(err, coin.ErrZeroAmount)

	c := faucet(t, l, ids.GenerateTestID(), 7, addr)
	got, owner, err := l.GetCoin(ctx, c.Nonce)
	require.NoError(err)
	require.Equal(c, got)
	require.Equal(addr, owner)
}

func TestSpendForeignCoin(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	victim := ledgertest.NewKey(t)
	thief := ledgertest.NewKey(t)

	tagA, tagB, seeded := seed(t, l, victim, 10_000, 5_000)
	stash := faucet(t, l, tagA, 2_000, victim.Address())

	// the nonce is public, the key is not
	_, owner, err := l.GetCoin(ctx, stash.Nonce)
	require.NoError(err)
	require.Equal(victim.Address(), owner)

	_, err = l.SwapExactTokensForTokens(ctx, (&ledger.SwapExactTokensForTokens{
		CoinIn:   stash,
		AmountIn: 2_000,
		TokenOut: tagB,
		To:       thief.Address(),
	}).Sign(thief))
	require.ErrorIs(err, coin.ErrNotOwner)

	_, err = l.SwapTokensForExactTokens(ctx, (&ledger.SwapTokensForExactTokens{
		CoinIn:      stash,
		AmountOut:   100,
		AmountInMax: 2_000,
		TokenOut:    tagB,
		To:          thief.Address(),
	}).Sign(thief))
	require.ErrorIs(err, coin.ErrNotOwner)

	_, err = l.RemoveLiquidity(ctx, (&ledger.RemoveLiquidity{
		TokenA:    tagA,
		TokenB:    tagB,
		LPCoin:    seeded.LPCoin,
		Liquidity: seeded.LPCoin.Amount,
		To:        thief.Address(),
	}).Sign(thief))
	require.ErrorIs(err, coin.ErrNotOwner)

	// a victim signature cannot be redirected to the thief
	redirected := (&ledger.SwapExactTokensForTokens{
		CoinIn:   stash,
		AmountIn: 2_000,
		TokenOut: tagB,
		To:       victim.Address(),
	}).Sign(victim)
	redirected.To = thief.Address()
	_, err = l.SwapExactTokensForTokens(ctx, redirected)
	require.ErrorIs(err, auth.ErrInvalidSignature)

	c, owner, err := l.GetCoin(ctx, stash.Nonce)
	require.NoError(err)
	require.Equal(stash, c)
	require.Equal(victim.Address(), owner)
	reserveA, reserveB, err := l.GetPairReserves(ctx, tagA, tagB)
	require.NoError(err)
	require.Equal(uint64(10_000), reserveA)
	require.Equal(uint64(5_000), reserveB)

	// the owner can still spend it, once
	op := (&ledger.SwapExactTokensForTokens{
		CoinIn:   stash,
		AmountIn: 2_000,
		TokenOut: tagB,
		To:       victim.Address(),
	}).Sign(victim)
	_, err = l.SwapExactTokensForTokens(ctx, op)
	require.NoError(err)
	_, err = l.SwapExactTokensForTokens(ctx, op)
	require.ErrorIs(err, coin.ErrCoinNotFound)
	require.NoError(l.CheckInvariants(ctx))
}

func TestMultipleSigners(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	alice := ledgertest.NewKey(t)
	bob := ledgertest.NewKey(t)

	tagA, tagB, _ := seed(t, l, alice, 10_000, 5_000)
	first := (&ledger.SwapExactTokensForTokens{
		CoinIn:   faucet(t, l, tagA, 100, alice.Address()),
		AmountIn: 100,
		TokenOut: tagB,
		To:       alice.Address(),
	}).Sign(alice)
	second := (&ledger.SwapExactTokensForTokens{
		CoinIn:   faucet(t, l, tagA, 100, bob.Address()),
		AmountIn: 100,
		TokenOut: tagB,
		To:       bob.Address(),
	}).Sign(bob)

	before, err := l.GetPair(ctx, tagA, tagB)
	require.NoError(err)
	err = l.Update(ctx, "batch", func(ctx context.Context, tx *ledger.Tx) error {
		if _, err := tx.SwapExactTokensForTokens(ctx, first); err != nil {
			return err
		}
		_, err := tx.SwapExactTokensForTokens(ctx, second)
		return err
	})
	require.ErrorIs(err, ledger.ErrMultipleSigners)

	// the first swap was rolled back with the second
	after, err := l.GetPair(ctx, tagA, tagB)
	require.NoError(err)
	require.Equal(before, after)
}

// An LP tag is derivable before its pair exists. Coins of that tag minted
// early must not let their holder claim the first deposit.
func TestPreMintedLPTag(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	attacker := ledgertest.NewKey(t)
	victim := ledgertest.NewKey(t)

	tagA, tagB := ids.GenerateTestID(), ids.GenerateTestID()
	pairID, err := l.GetPairIdentity(tagA, tagB)
	require.NoError(err)
	lpTag := pair.LPTag(pairID)

	premint := faucet(t, l, lpTag, 1_000_000, attacker.Address())
	coinA := faucet(t, l, tagA, 100_000, victim.Address())
	coinB := faucet(t, l, tagB, 100_000, victim.Address())
	_, err = l.AddLiquidity(ctx, (&ledger.AddLiquidity{
		CoinA: coinA,
		CoinB: coinB,
		To:    victim.Address(),
	}).Sign(victim))
	require.ErrorIs(err, ledger.ErrLPTagInUse)

	// the deposit never happened
	count, err := l.GetAllPairLength(ctx)
	require.NoError(err)
	require.Zero(count)
	for _, c := range []coin.Coin{coinA, coinB} {
		_, owner, err := l.GetCoin(ctx, c.Nonce)
		require.NoError(err)
		require.Equal(victim.Address(), owner)
	}

	_, err = l.RemoveLiquidity(ctx, (&ledger.RemoveLiquidity{
		TokenA:    tagA,
		TokenB:    tagB,
		LPCoin:    premint,
		Liquidity: premint.Amount - 1,
		To:        attacker.Address(),
	}).Sign(attacker))
	require.ErrorIs(err, ledger.ErrPairNotFound)
	require.NoError(l.CheckInvariants(ctx))
}

func TestGetPairIdentityIsOrderIndependent(t *testing.T) {
	require := require.New(t)
	l := ledgertest.NewLedger(t, ledger.DefaultParams())

	a, b := ids.GenerateTestID(), ids.GenerateTestID()
	ab, err := l.GetPairIdentity(a, b)
	require.NoError(err)
	ba, err := l.GetPairIdentity(b, a)
	require.NoError(err)
	require.Equal(ab, ba)

	_, err = l.GetPairIdentity(a, a)
	require.ErrorIs(err, ledger.ErrIdenticalAddresses)
}

func TestProtocolFee(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	params := ledger.DefaultParams()
	params.FeeTo = codectest.NewRandomAddress()
	l := ledgertest.NewLedger(t, params)
	key := ledgertest.NewKey(t)
	addr := key.Address()

	tagA, tagB, _ := seed(t, l, key, 1_000_000, 1_000_000)
	p, err := l.GetPair(ctx, tagA, tagB)
	require.NoError(err)
	require.Equal(arith.MulU64(1_000_000, 1_000_000), p.KLast)

	for i := 0; i < 10; i++ {
		_, err := l.SwapExactTokensForTokens(ctx, (&ledger.SwapExactTokensForTokens{
			CoinIn:   faucet(t, l, tagA, 100_000, addr),
			AmountIn: 100_000,
			TokenOut: tagB,
			To:       addr,
		}).Sign(key))
		require.NoError(err)
		_, err = l.SwapExactTokensForTokens(ctx, (&ledger.SwapExactTokensForTokens{
			CoinIn:   faucet(t, l, tagB, 100_000, addr),
			AmountIn: 100_000,
			TokenOut: tagA,
			To:       addr,
		}).Sign(key))
		require.NoError(err)
	}

	before, err := l.GetPair(ctx, tagA, tagB)
	require.NoError(err)
	require.Equal(p.KLast, before.KLast)

	reserveA, reserveB, err := l.GetPairReserves(ctx, tagA, tagB)
	require.NoError(err)
	res, err := l.AddLiquidity(ctx, (&ledger.AddLiquidity{
		CoinA: faucet(t, l, tagA, reserveA/10, addr),
		CoinB: faucet(t, l, tagB, reserveB, addr),
		To:    addr,
	}).Sign(key))
	require.NoError(err)

	after, err := l.GetPair(ctx, tagA, tagB)
	require.NoError(err)
	require.Greater(after.LPTotalSupply, before.LPTotalSupply+res.Liquidity)
	require.Equal(arith.MulU64(after.Reserve0, after.Reserve1), after.KLast)
	require.NoError(l.CheckInvariants(ctx))
}

func TestProtocolFeeOff(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	key := ledgertest.NewKey(t)
	addr := key.Address()

	tagA, tagB, _ := seed(t, l, key, 1_000_000, 1_000_000)
	_, err := l.SwapExactTokensForTokens(ctx, (&ledger.SwapExactTokensForTokens{
		CoinIn:   faucet(t, l, tagA, 100_000, addr),
		AmountIn: 100_000,
		TokenOut: tagB,
		To:       addr,
	}).Sign(key))
	require.NoError(err)

	before, err := l.GetPair(ctx, tagA, tagB)
	require.NoError(err)
	reserveA, reserveB, err := l.GetPairReserves(ctx, tagA, tagB)
	require.NoError(err)
	res, err := l.AddLiquidity(ctx, (&ledger.AddLiquidity{
		CoinA: faucet(t, l, tagA, reserveA, addr),
		CoinB: faucet(t, l, tagB, reserveB, addr),
		To:    addr,
	}).Sign(key))
	require.NoError(err)

	after, err := l.GetPair(ctx, tagA, tagB)
	require.NoError(err)
	require.Equal(before.LPTotalSupply+res.Liquidity, after.LPTotalSupply)
	require.True(after.KLast.IsZero())
}

func TestOracleStrategy(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	tracer, err := trace.New(&trace.Config{})
	require.NoError(err)
	strategy := oracle.NewMockStrategy(ctrl)
	l, err := ledger.New(logging.NoLog{}, tracer, prometheus.NewRegistry(), memdb.New(), ledger.DefaultParams(), strategy)
	require.NoError(err)

	var (
		key  = ledgertest.NewKey(t)
		addr = key.Address()
		tagA = ids.GenerateTestID()
		tagB = ids.GenerateTestID()
	)
	s, err := pair.Sort(tagA, tagB)
	require.NoError(err)
	amount0, amount1 := s.Amounts(2_000, 1_000)
	strategy.EXPECT().OnLiquidityAdded(gomock.Any(), amount0, amount1, uint64(0), uint64(0)).Times(1)

	_, err = l.AddLiquidity(ctx, (&ledger.AddLiquidity{
		CoinA: faucet(t, l, tagA, 2_000, addr),
		CoinB: faucet(t, l, tagB, 1_000, addr),
		To:    addr,
	}).Sign(key))
	require.NoError(err)

	// rejected deposits never reach the strategy
	_, err = l.AddLiquidity(ctx, (&ledger.AddLiquidity{
		CoinA:      faucet(t, l, tagA, 100, addr),
		CoinB:      faucet(t, l, tagB, 100, addr),
		AmountBMin: 100,
		To:         addr,
	}).Sign(key))
	require.ErrorIs(err, ledger.ErrInsufficientBAmount)
}

func TestVolumeOracleCounters(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := ledgertest.NewLedger(t, ledger.DefaultParams())
	key := ledgertest.NewKey(t)
	addr := key.Address()

	tagA, tagB, _ := seed(t, l, key, 2_000, 1_000)
	initial, err := l.GetPair(ctx, tagA, tagB)
	require.NoError(err)
	require.Equal(uint64(3_000), initial.Oracle.Volume0Cumulative+initial.Oracle.Volume1Cumulative)

	_, err = l.AddLiquidity(ctx, (&ledger.AddLiquidity{
		CoinA: faucet(t, l, tagA, 200, addr),
		CoinB: faucet(t, l, tagB, 100, addr),
		To:    addr,
	}).Sign(key))
	require.NoError(err)
	p, err := l.GetPair(ctx, tagA, tagB)
	require.NoError(err)
	require.Equal(uint64(3_300), p.Oracle.Volume0Cumulative+p.Oracle.Volume1Cumulative)
	require.GreaterOrEqual(p.Oracle.Price0VolCumulative, initial.Oracle.Price0VolCumulative)
	require.GreaterOrEqual(p.Oracle.Price1VolCumulative, initial.Oracle.Price1VolCumulative)
}

func TestClosed(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := ledgertest.NewLedger(t, ledger.DefaultParams())

	require.NoError(l.Close())
	require.NoError(l.Close())

	_, err := l.GetAllPairLength(ctx)
	require.ErrorIs(err, ledger.ErrClosed)
	_, err = l.Faucet(ctx, &ledger.Faucet{TypeTag: ids.GenerateTestID(), Amount: 1, To: codectest.NewRandomAddress()})
	require.ErrorIs(err, ledger.ErrClosed)

	called := false
	require.ErrorIs(l.Update(ctx, "noop", func(context.Context, *ledger.Tx) error {
		called = true
		return nil
	}), ledger.ErrClosed)
	require.ErrorIs(l.View(ctx, func(context.Context, *ledger.Tx) error {
		called = true
		return nil
	}), ledger.ErrClosed)
	require.False(called)
}

func TestPersistence(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	open := func() *ledger.Ledger {
		db, _, err := storage.New(pebble.NewDefaultConfig(), dir, storage.StateNamespace)
		require.NoError(err)
		tracer, err := trace.New(&trace.Config{})
		require.NoError(err)
		strategy, err := oracle.New(oracle.NoneName)
		require.NoError(err)
		l, err := ledger.New(logging.NoLog{}, tracer, prometheus.NewRegistry(), db, ledger.DefaultParams(), strategy)
		require.NoError(err)
		return l
	}

	l := open()
	tagA, tagB, res := seed(t, l, ledgertest.NewKey(t), 2_000, 1_000)
	require.NoError(l.Close())

	l = open()
	defer l.Close()
	p, err := l.GetPair(ctx, tagA, tagB)
	require.NoError(err)
	require.Equal(uint64(1_414), p.LPTotalSupply)
	c, _, err := l.GetCoin(ctx, res.LPCoin.Nonce)
	require.NoError(err)
	require.Equal(res.LPCoin, c)
	require.NoError(l.CheckInvariants(ctx))
}

func BenchmarkSwapExactTokensForTokens(b *testing.B) {
	key := ledgertest.NewKey(b)
	var tagA, tagB ids.ID
	bench := ledgertest.OperationBenchmark{
		Name: "signed swap",
		CreateLedger: func() *ledger.Ledger {
			l := ledgertest.NewLedger(b, ledger.DefaultParams())
			tagA, tagB, _ = seed(b, l, key, 10_000_000, 5_000_000)
			return l
		},
		Operation: func(l *ledger.Ledger) ledger.Operation {
			return (&ledger.SwapExactTokensForTokens{
				CoinIn:   faucet(b, l, tagA, 2_000, key.Address()),
				AmountIn: 2_000,
				TokenOut: tagB,
				To:       key.Address(),
			}).Sign(key)
		},
	}
	bench.Run(context.Background(), b)
}
