// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/coin"
	"github.com/ava-labs/hyperamm/ledger"
	"github.com/ava-labs/hyperamm/pair"
	"github.com/ava-labs/hyperamm/router"
	"github.com/ava-labs/hyperamm/storage"
)

type JSONRPCServer struct {
	log    logging.Logger
	tracer trace.Tracer
	ledger *ledger.Ledger
	router *router.Router
}

func NewJSONRPCServer(log logging.Logger, tracer trace.Tracer, l *ledger.Ledger) *JSONRPCServer {
	return &JSONRPCServer{
		log:    log,
		tracer: tracer,
		ledger: l,
		router: router.New(l),
	}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) error {
	j.log.Info("ping")
	reply.Success = true
	return nil
}

func (j *JSONRPCServer) AddLiquidity(req *http.Request, args *ledger.AddLiquidity, reply *ledger.AddLiquidityResult) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.AddLiquidity")
	defer span.End()

	res, err := j.router.AddLiquidity(ctx, args)
	if err != nil {
		return err
	}
	*reply = *res
	return nil
}

func (j *JSONRPCServer) RemoveLiquidity(req *http.Request, args *ledger.RemoveLiquidity, reply *ledger.RemoveLiquidityResult) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.RemoveLiquidity")
	defer span.End()

	res, err := j.router.RemoveLiquidity(ctx, args)
	if err != nil {
		return err
	}
	*reply = *res
	return nil
}

func (j *JSONRPCServer) SwapExactTokensForTokens(req *http.Request, args *router.SwapExactIn, reply *router.PathResult) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.SwapExactTokensForTokens")
	defer span.End()

	res, err := j.router.SwapExactTokensForTokens(ctx, args)
	if err != nil {
		return err
	}
	*reply = *res
	return nil
}

func (j *JSONRPCServer) SwapTokensForExactTokens(req *http.Request, args *router.SwapExactOut, reply *router.PathResult) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.SwapTokensForExactTokens")
	defer span.End()

	res, err := j.router.SwapTokensForExactTokens(ctx, args)
	if err != nil {
		return err
	}
	*reply = *res
	return nil
}

type PairArgs struct {
	TokenA ids.ID `json:"tokenA"`
	TokenB ids.ID `json:"tokenB"`
}

type PairReply struct {
	Pair *storage.Pair `json:"pair"`
}

func (j *JSONRPCServer) GetPair(req *http.Request, args *PairArgs, reply *PairReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetPair")
	defer span.End()

	p, err := j.ledger.GetPair(ctx, args.TokenA, args.TokenB)
	if err != nil {
		return err
	}
	reply.Pair = p
	return nil
}

type IndexArgs struct {
	Index uint64 `json:"index"`
}

func (j *JSONRPCServer) GetPairAt(req *http.Request, args *IndexArgs, reply *PairReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetPairAt")
	defer span.End()

	p, err := j.ledger.GetPairAt(ctx, args.Index)
	if err != nil {
		return err
	}
	reply.Pair = p
	return nil
}

type ReservesReply struct {
	ReserveA uint64 `json:"reserveA"`
	ReserveB uint64 `json:"reserveB"`
}

func (j *JSONRPCServer) GetPairReserves(req *http.Request, args *PairArgs, reply *ReservesReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetPairReserves")
	defer span.End()

	reserveA, reserveB, err := j.ledger.GetPairReserves(ctx, args.TokenA, args.TokenB)
	if err != nil {
		return err
	}
	reply.ReserveA = reserveA
	reply.ReserveB = reserveB
	return nil
}

type IdentityReply struct {
	PairID ids.ID `json:"pairID"`
	LPTag  ids.ID `json:"lpTag"`
}

func (j *JSONRPCServer) GetPairIdentity(_ *http.Request, args *PairArgs, reply *IdentityReply) error {
	pairID, err := j.ledger.GetPairIdentity(args.TokenA, args.TokenB)
	if err != nil {
		return err
	}
	reply.PairID = pairID
	reply.LPTag = pair.LPTag(pairID)
	return nil
}

type LengthReply struct {
	Length uint64 `json:"length"`
}

func (j *JSONRPCServer) GetAllPairLength(req *http.Request, _ *struct{}, reply *LengthReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetAllPairLength")
	defer span.End()

	length, err := j.ledger.GetAllPairLength(ctx)
	if err != nil {
		return err
	}
	reply.Length = length
	return nil
}

type SupplyReply struct {
	Supply uint64 `json:"supply"`
}

func (j *JSONRPCServer) GetLpTokenTotalSupply(req *http.Request, args *PairArgs, reply *SupplyReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetLpTokenTotalSupply")
	defer span.End()

	supply, err := j.ledger.GetLpTokenTotalSupply(ctx, args.TokenA, args.TokenB)
	if err != nil {
		return err
	}
	reply.Supply = supply
	return nil
}

type AmountsArgs struct {
	Amount uint64   `json:"amount"`
	Path   []ids.ID `json:"path"`
}

type AmountsReply struct {
	Amounts []uint64 `json:"amounts"`
}

func (j *JSONRPCServer) GetAmountsOut(req *http.Request, args *AmountsArgs, reply *AmountsReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetAmountsOut")
	defer span.End()

	amounts, err := j.router.GetAmountsOut(ctx, args.Amount, args.Path)
	if err != nil {
		return err
	}
	reply.Amounts = amounts
	return nil
}

func (j *JSONRPCServer) GetAmountsIn(req *http.Request, args *AmountsArgs, reply *AmountsReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetAmountsIn")
	defer span.End()

	amounts, err := j.router.GetAmountsIn(ctx, args.Amount, args.Path)
	if err != nil {
		return err
	}
	reply.Amounts = amounts
	return nil
}

type CoinReply struct {
	Coin  coin.Coin     `json:"coin"`
	Owner codec.Address `json:"owner"`
}

func (j *JSONRPCServer) Faucet(req *http.Request, args *ledger.Faucet, reply *CoinReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Faucet")
	defer span.End()

	c, err := j.ledger.Faucet(ctx, args)
	if err != nil {
		return err
	}
	j.log.Debug("faucet",
		zap.Stringer("typeTag", args.TypeTag),
		zap.Uint64("amount", args.Amount),
		zap.Stringer("to", args.To),
	)
	reply.Coin = c
	reply.Owner = args.To
	return nil
}

type CoinArgs struct {
	Nonce ids.ID `json:"nonce"`
}

func (j *JSONRPCServer) GetCoin(req *http.Request, args *CoinArgs, reply *CoinReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetCoin")
	defer span.End()

	c, owner, err := j.ledger.GetCoin(ctx, args.Nonce)
	if err != nil {
		return err
	}
	reply.Coin = c
	reply.Owner = owner
	return nil
}
