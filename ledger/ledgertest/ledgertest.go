// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgertest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hyperamm/auth"
	"github.com/ava-labs/hyperamm/ledger"
	"github.com/ava-labs/hyperamm/oracle"
	"github.com/ava-labs/hyperamm/trace"
)

// NewLedger returns a ledger over an in-memory database.
func NewLedger(t require.TestingT, params ledger.Params) *ledger.Ledger {
	require := require.New(t)

	tracer, err := trace.New(&trace.Config{Enabled: false})
	require.NoError(err)
	strategy, err := oracle.New(oracle.DefaultStrategy)
	require.NoError(err)
	l, err := ledger.New(
		logging.NoLog{},
		tracer,
		prometheus.NewRegistry(),
		memdb.New(),
		params,
		strategy,
	)
	require.NoError(err)
	return l
}

// NewKey returns a signer. Coins sent to its address can only be spent by
// operations it signs.
func NewKey(t require.TestingT) *auth.ED25519Factory {
	key, err := auth.GeneratePrivateKey()
	require.NoError(t, err)
	return key.Factory()
}

// OperationTest is a single parameterized test. It executes the operation
// against the ledger and checks that all assertions pass.
type OperationTest struct {
	Name string

	Operation ledger.Operation
	Ledger    *ledger.Ledger

	// ExpectedOutput is only compared when set. Coin nonces depend on
	// history so most tests assert on them in [Assertion] instead.
	ExpectedOutput any
	ExpectedErr    error

	Assertion func(context.Context, *testing.T, *ledger.Ledger, any)
}

// Run executes the [OperationTest] and makes sure all assertions pass.
func (test *OperationTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		output, err := test.Ledger.Execute(ctx, test.Operation)
		require.ErrorIs(err, test.ExpectedErr)
		if test.ExpectedErr != nil {
			require.Nil(output)
		}
		if test.ExpectedOutput != nil {
			require.Equal(test.ExpectedOutput, output)
		}
		require.NoError(test.Ledger.CheckInvariants(ctx))

		if test.Assertion != nil {
			test.Assertion(ctx, t, test.Ledger, output)
		}
	})
}

// OperationBenchmark is a parameterized benchmark. To avoid sharing state
// between runs, a fresh ledger is created for each iteration with
// [CreateLedger].
type OperationBenchmark struct {
	Name string

	CreateLedger func() *ledger.Ledger
	Operation    func(*ledger.Ledger) ledger.Operation

	ExpectedErr error
}

// Run executes the [OperationBenchmark].
func (test *OperationBenchmark) Run(ctx context.Context, b *testing.B) {
	require := require.New(b)

	ledgers := make([]*ledger.Ledger, b.N)
	ops := make([]ledger.Operation, b.N)
	for i := 0; i < b.N; i++ {
		ledgers[i] = test.CreateLedger()
		ops[i] = test.Operation(ledgers[i])
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := ledgers[i].Execute(ctx, ops[i])
		require.ErrorIs(err, test.ExpectedErr)
	}
}
