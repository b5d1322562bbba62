// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hyperamm/oracle"
	"github.com/ava-labs/hyperamm/trace"
)

// Operations queued behind the lock when Close starts must not run against
// the closed database.
func TestCloseWhileWaitingForLock(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	tracer, err := trace.New(&trace.Config{})
	require.NoError(err)
	strategy, err := oracle.New(oracle.NoneName)
	require.NoError(err)
	l, err := New(logging.NoLog{}, tracer, prometheus.NewRegistry(), memdb.New(), DefaultParams(), strategy)
	require.NoError(err)

	// hold the writer lock so everything below queues up
	l.l.Lock()

	var (
		updated = make(chan error, 1)
		viewed  = make(chan error, 1)
		closed  = make(chan error, 1)
		ran     = make(chan struct{}, 2)
	)
	go func() {
		updated <- l.Update(ctx, "queued", func(context.Context, *Tx) error {
			ran <- struct{}{}
			return nil
		})
	}()
	go func() {
		viewed <- l.View(ctx, func(context.Context, *Tx) error {
			ran <- struct{}{}
			return nil
		})
	}()
	// let both pass the unlocked check before closing
	time.Sleep(50 * time.Millisecond)
	go func() {
		closed <- l.Close()
	}()
	require.Eventually(l.closed.Load, time.Second, time.Millisecond)

	l.l.Unlock()
	require.NoError(<-closed)
	require.ErrorIs(<-updated, ErrClosed)
	require.ErrorIs(<-viewed, ErrClosed)
	require.Empty(ran)
}
