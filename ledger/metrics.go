// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ledger"

type metrics struct {
	liquidityAdded   prometheus.Counter
	liquidityRemoved prometheus.Counter
	swaps            prometheus.Counter
	rejected         prometheus.Counter
	stateChanges     prometheus.Counter
	pairs            prometheus.Gauge

	commit metric.Averager
}

func newCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	commit, err := metric.NewAverager(
		"",
		namespace+"_commit",
		"time spent writing an accepted operation to the database",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		liquidityAdded:   newCounter("liquidity_added", "number of accepted liquidity deposits"),
		liquidityRemoved: newCounter("liquidity_removed", "number of accepted liquidity withdrawals"),
		swaps:            newCounter("swaps", "number of accepted swaps"),
		rejected:         newCounter("rejected", "number of rejected operations"),
		stateChanges:     newCounter("state_changes", "number of keys written by accepted operations"),
		pairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pairs",
			Help:      "number of pairs created",
		}),
		commit: commit,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.liquidityAdded),
		r.Register(m.liquidityRemoved),
		r.Register(m.swaps),
		r.Register(m.rejected),
		r.Register(m.stateChanges),
		r.Register(m.pairs),
	)
	return m, errs.Err
}
