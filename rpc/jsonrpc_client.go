// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"
	"sync"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/coin"
	"github.com/ava-labs/hyperamm/ledger"
	"github.com/ava-labs/hyperamm/requester"
	"github.com/ava-labs/hyperamm/router"
	"github.com/ava-labs/hyperamm/storage"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester

	// pair identities never change
	l          sync.Mutex
	identities map[[2]ids.ID]*IdentityReply
}

// NewJSONRPCClient returns a client for the service mounted below [uri].
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	return &JSONRPCClient{
		requester:  requester.New(uri, Name),
		identities: make(map[[2]ids.ID]*IdentityReply),
	}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) AddLiquidity(ctx context.Context, args *ledger.AddLiquidity) (*ledger.AddLiquidityResult, error) {
	resp := new(ledger.AddLiquidityResult)
	if err := cli.requester.SendRequest(
		ctx,
		"addLiquidity",
		args,
		resp,
	); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) RemoveLiquidity(ctx context.Context, args *ledger.RemoveLiquidity) (*ledger.RemoveLiquidityResult, error) {
	resp := new(ledger.RemoveLiquidityResult)
	if err := cli.requester.SendRequest(
		ctx,
		"removeLiquidity",
		args,
		resp,
	); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) SwapExactTokensForTokens(ctx context.Context, args *router.SwapExactIn) (*router.PathResult, error) {
	resp := new(router.PathResult)
	if err := cli.requester.SendRequest(
		ctx,
		"swapExactTokensForTokens",
		args,
		resp,
	); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) SwapTokensForExactTokens(ctx context.Context, args *router.SwapExactOut) (*router.PathResult, error) {
	resp := new(router.PathResult)
	if err := cli.requester.SendRequest(
		ctx,
		"swapTokensForExactTokens",
		args,
		resp,
	); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) GetPair(ctx context.Context, tokenA, tokenB ids.ID) (*storage.Pair, error) {
	resp := new(PairReply)
	err := cli.requester.SendRequest(
		ctx,
		"getPair",
		&PairArgs{TokenA: tokenA, TokenB: tokenB},
		resp,
	)
	return resp.Pair, err
}

func (cli *JSONRPCClient) GetPairAt(ctx context.Context, index uint64) (*storage.Pair, error) {
	resp := new(PairReply)
	err := cli.requester.SendRequest(
		ctx,
		"getPairAt",
		&IndexArgs{Index: index},
		resp,
	)
	return resp.Pair, err
}

func (cli *JSONRPCClient) GetPairReserves(ctx context.Context, tokenA, tokenB ids.ID) (uint64, uint64, error) {
	resp := new(ReservesReply)
	err := cli.requester.SendRequest(
		ctx,
		"getPairReserves",
		&PairArgs{TokenA: tokenA, TokenB: tokenB},
		resp,
	)
	return resp.ReserveA, resp.ReserveB, err
}

// GetPairIdentity returns the pair id and LP tag of {tokenA, tokenB}.
func (cli *JSONRPCClient) GetPairIdentity(ctx context.Context, tokenA, tokenB ids.ID) (ids.ID, ids.ID, error) {
	key := [2]ids.ID{tokenA, tokenB}
	cli.l.Lock()
	cached, ok := cli.identities[key]
	cli.l.Unlock()
	if ok {
		return cached.PairID, cached.LPTag, nil
	}

	resp := new(IdentityReply)
	if err := cli.requester.SendRequest(
		ctx,
		"getPairIdentity",
		&PairArgs{TokenA: tokenA, TokenB: tokenB},
		resp,
	); err != nil {
		return ids.Empty, ids.Empty, err
	}
	cli.l.Lock()
	cli.identities[key] = resp
	cli.l.Unlock()
	return resp.PairID, resp.LPTag, nil
}

func (cli *JSONRPCClient) GetAllPairLength(ctx context.Context) (uint64, error) {
	resp := new(LengthReply)
	err := cli.requester.SendRequest(
		ctx,
		"getAllPairLength",
		nil,
		resp,
	)
	return resp.Length, err
}

func (cli *JSONRPCClient) GetLpTokenTotalSupply(ctx context.Context, tokenA, tokenB ids.ID) (uint64, error) {
	resp := new(SupplyReply)
	err := cli.requester.SendRequest(
		ctx,
		"getLpTokenTotalSupply",
		&PairArgs{TokenA: tokenA, TokenB: tokenB},
		resp,
	)
	return resp.Supply, err
}

func (cli *JSONRPCClient) GetAmountsOut(ctx context.Context, amountIn uint64, path []ids.ID) ([]uint64, error) {
	resp := new(AmountsReply)
	err := cli.requester.SendRequest(
		ctx,
		"getAmountsOut",
		&AmountsArgs{Amount: amountIn, Path: path},
		resp,
	)
	return resp.Amounts, err
}

func (cli *JSONRPCClient) GetAmountsIn(ctx context.Context, amountOut uint64, path []ids.ID) ([]uint64, error) {
	resp := new(AmountsReply)
	err := cli.requester.SendRequest(
		ctx,
		"getAmountsIn",
		&AmountsArgs{Amount: amountOut, Path: path},
		resp,
	)
	return resp.Amounts, err
}

func (cli *JSONRPCClient) Faucet(ctx context.Context, tag ids.ID, amount uint64, to codec.Address) (coin.Coin, error) {
	resp := new(CoinReply)
	err := cli.requester.SendRequest(
		ctx,
		"faucet",
		&ledger.Faucet{TypeTag: tag, Amount: amount, To: to},
		resp,
	)
	return resp.Coin, err
}

func (cli *JSONRPCClient) GetCoin(ctx context.Context, nonce ids.ID) (coin.Coin, codec.Address, error) {
	resp := new(CoinReply)
	err := cli.requester.SendRequest(
		ctx,
		"getCoin",
		&CoinArgs{Nonce: nonce},
		resp,
	)
	return resp.Coin, resp.Owner, err
}
