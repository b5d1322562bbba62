// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger owns every pair and the coins that move through them.
// Each operation runs in a single transactional view that is written to
// the database as one batch on success and discarded on any error.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/coin"
	"github.com/ava-labs/hyperamm/oracle"
	"github.com/ava-labs/hyperamm/pair"
	"github.com/ava-labs/hyperamm/pricing"
	"github.com/ava-labs/hyperamm/state"
	"github.com/ava-labs/hyperamm/storage"
	"github.com/ava-labs/hyperamm/tstate"
)

const changedKeysEstimate = 16

type Params struct {
	MinimumLiquidity uint64
	FeeNumerator     uint64
	FeeDenominator   uint64

	// FeeTo receives the protocol fee. The fee is off when it is empty.
	FeeTo codec.Address
}

func DefaultParams() Params {
	return Params{
		MinimumLiquidity: pricing.DefaultMinimumLiquidity,
		FeeNumerator:     pricing.DefaultFeeNumerator,
		FeeDenominator:   pricing.DefaultFeeDenominator,
	}
}

type Ledger struct {
	log     logging.Logger
	tracer  trace.Tracer
	metrics *metrics

	model  pricing.Model
	oracle oracle.Strategy
	feeTo  codec.Address

	// l serializes writers. Readers only need a consistent database.
	l      sync.RWMutex
	db     state.Database
	reader *state.Reader
	closed atomic.Bool
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	r prometheus.Registerer,
	db state.Database,
	params Params,
	strategy oracle.Strategy,
) (*Ledger, error) {
	model, err := pricing.NewConstantProduct(params.FeeNumerator, params.FeeDenominator, params.MinimumLiquidity)
	if err != nil {
		return nil, err
	}
	m, err := newMetrics(r)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		log:     log,
		tracer:  tracer,
		metrics: m,
		model:   model,
		oracle:  strategy,
		feeTo:   params.FeeTo,
		db:      db,
		reader:  state.NewReader(db),
	}
	count, err := storage.GetPairCount(context.Background(), l.reader)
	if err != nil {
		return nil, err
	}
	m.pairs.Set(float64(count))
	return l, nil
}

// Model returns the pricing model used for every pair.
func (l *Ledger) Model() pricing.Model {
	return l.model
}

// Update runs [f] in a fresh view and commits every change it made as a
// single batch. If [f] returns an error nothing is written.
func (l *Ledger) Update(ctx context.Context, name string, f func(context.Context, *Tx) error) error {
	ctx, span := l.tracer.Start(
		ctx, "Ledger.Update",
		oteltrace.WithAttributes(attribute.String("operation", name)),
	)
	defer span.End()

	if l.closed.Load() {
		return ErrClosed
	}
	l.l.Lock()
	defer l.l.Unlock()
	// Close may have won the lock while we waited.
	if l.closed.Load() {
		return ErrClosed
	}

	ts := tstate.New(changedKeysEstimate)
	tx := newTx(l, ts.NewView(l.reader))
	if err := f(ctx, tx); err != nil {
		l.metrics.rejected.Inc()
		l.log.Debug("rejected operation",
			zap.String("operation", name),
			zap.Error(err),
		)
		return err
	}
	tx.view.Commit()

	start := time.Now()
	batch := l.db.NewBatch()
	changes, err := ts.WriteTo(ctx, l.tracer, batch)
	if err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	l.metrics.commit.Observe(float64(time.Since(start)))
	l.metrics.stateChanges.Add(float64(changes))
	l.record(tx)
	return nil
}

// View runs [f] against the current state. Changes made through the view
// are discarded.
func (l *Ledger) View(ctx context.Context, f func(context.Context, *Tx) error) error {
	ctx, span := l.tracer.Start(ctx, "Ledger.View")
	defer span.End()

	if l.closed.Load() {
		return ErrClosed
	}
	l.l.RLock()
	defer l.l.RUnlock()
	if l.closed.Load() {
		return ErrClosed
	}

	return f(ctx, newTx(l, tstate.New(0).NewView(l.reader)))
}

func (l *Ledger) record(tx *Tx) {
	l.metrics.liquidityAdded.Add(float64(tx.added))
	l.metrics.liquidityRemoved.Add(float64(tx.removed))
	l.metrics.swaps.Add(float64(tx.swaps))
	for _, p := range tx.created {
		l.metrics.pairs.Inc()
		l.log.Info("created pair",
			zap.Stringer("pairID", p.ID),
			zap.Stringer("token0", p.Token0),
			zap.Stringer("token1", p.Token1),
			zap.Stringer("lpTag", p.LPTag),
			zap.Uint64("index", p.Index),
		)
	}
}

// Execute runs [op] in its own view and returns its result.
func (l *Ledger) Execute(ctx context.Context, op Operation) (any, error) {
	var out any
	if err := l.Update(ctx, op.Name(), func(ctx context.Context, tx *Tx) error {
		var err error
		out, err = op.Execute(ctx, tx)
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Ledger) AddLiquidity(ctx context.Context, args *AddLiquidity) (*AddLiquidityResult, error) {
	var res *AddLiquidityResult
	err := l.Update(ctx, args.Name(), func(ctx context.Context, tx *Tx) error {
		var err error
		res, err = tx.AddLiquidity(ctx, args)
		return err
	})
	return res, err
}

func (l *Ledger) RemoveLiquidity(ctx context.Context, args *RemoveLiquidity) (*RemoveLiquidityResult, error) {
	var res *RemoveLiquidityResult
	err := l.Update(ctx, args.Name(), func(ctx context.Context, tx *Tx) error {
		var err error
		res, err = tx.RemoveLiquidity(ctx, args)
		return err
	})
	return res, err
}

func (l *Ledger) SwapExactTokensForTokens(ctx context.Context, args *SwapExactTokensForTokens) (*SwapResult, error) {
	var res *SwapResult
	err := l.Update(ctx, args.Name(), func(ctx context.Context, tx *Tx) error {
		var err error
		res, err = tx.SwapExactTokensForTokens(ctx, args)
		return err
	})
	return res, err
}

func (l *Ledger) SwapTokensForExactTokens(ctx context.Context, args *SwapTokensForExactTokens) (*SwapResult, error) {
	var res *SwapResult
	err := l.Update(ctx, args.Name(), func(ctx context.Context, tx *Tx) error {
		var err error
		res, err = tx.SwapTokensForExactTokens(ctx, args)
		return err
	})
	return res, err
}

// Faucet mints a coin of an external asset. LP tags are refused.
func (l *Ledger) Faucet(ctx context.Context, args *Faucet) (coin.Coin, error) {
	var c coin.Coin
	err := l.Update(ctx, args.Name(), func(ctx context.Context, tx *Tx) error {
		var err error
		c, err = tx.Faucet(ctx, args)
		return err
	})
	return c, err
}

// GetPair returns the pair of {tokenA, tokenB} in either order.
func (l *Ledger) GetPair(ctx context.Context, tokenA, tokenB ids.ID) (*storage.Pair, error) {
	var p *storage.Pair
	err := l.View(ctx, func(ctx context.Context, tx *Tx) error {
		var err error
		p, err = tx.GetPair(ctx, tokenA, tokenB)
		return err
	})
	return p, err
}

// GetPairReserves returns the reserves of the pair in caller order.
func (l *Ledger) GetPairReserves(ctx context.Context, tokenA, tokenB ids.ID) (uint64, uint64, error) {
	var reserveA, reserveB uint64
	err := l.View(ctx, func(ctx context.Context, tx *Tx) error {
		var err error
		reserveA, reserveB, err = tx.GetPairReserves(ctx, tokenA, tokenB)
		return err
	})
	return reserveA, reserveB, err
}

// GetPairIdentity is independent of argument order and of whether the pair
// exists.
func (*Ledger) GetPairIdentity(tokenA, tokenB ids.ID) (ids.ID, error) {
	return pair.Identity(tokenA, tokenB)
}

func (l *Ledger) GetAllPairLength(ctx context.Context) (uint64, error) {
	var count uint64
	err := l.View(ctx, func(ctx context.Context, tx *Tx) error {
		var err error
		count, err = storage.GetPairCount(ctx, tx.view)
		return err
	})
	return count, err
}

// GetLpTokenTotalSupply includes the shares locked at creation.
func (l *Ledger) GetLpTokenTotalSupply(ctx context.Context, tokenA, tokenB ids.ID) (uint64, error) {
	p, err := l.GetPair(ctx, tokenA, tokenB)
	if err != nil {
		return 0, err
	}
	return p.LPTotalSupply, nil
}

// GetPairAt returns the [index]-th pair created.
func (l *Ledger) GetPairAt(ctx context.Context, index uint64) (*storage.Pair, error) {
	var p *storage.Pair
	err := l.View(ctx, func(ctx context.Context, tx *Tx) error {
		var err error
		p, err = tx.GetPairAt(ctx, index)
		return err
	})
	return p, err
}

// GetCoin returns an unspent coin and its owner.
func (l *Ledger) GetCoin(ctx context.Context, nonce ids.ID) (coin.Coin, codec.Address, error) {
	var (
		c     coin.Coin
		owner codec.Address
	)
	err := l.View(ctx, func(ctx context.Context, tx *Tx) error {
		var err error
		c, owner, err = coin.Get(ctx, tx.view, nonce)
		return err
	})
	return c, owner, err
}

// CheckInvariants walks every pair and verifies the relations between its
// reserves, its share supply and the outstanding LP coins.
func (l *Ledger) CheckInvariants(ctx context.Context) error {
	return l.View(ctx, func(ctx context.Context, tx *Tx) error {
		count, err := storage.GetPairCount(ctx, tx.view)
		if err != nil {
			return err
		}
		for i := uint64(0); i < count; i++ {
			p, err := tx.GetPairAt(ctx, i)
			if err != nil {
				return err
			}
			if err := tx.checkPair(ctx, p); err != nil {
				return fmt.Errorf("%w: pair %s at %d: %w", ErrInvariantViolated, p.ID, i, err)
			}
		}
		return nil
	})
}

// Close waits for in-flight operations and closes the database.
func (l *Ledger) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	l.l.Lock()
	defer l.l.Unlock()

	return l.db.Close()
}

func isNotFound(err error) bool {
	return errors.Is(err, database.ErrNotFound)
}
