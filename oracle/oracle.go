// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package oracle maintains the cumulative price and volume counters stored
// with each pair. The counters are telemetry only: reserves and shares never
// depend on them.
package oracle

import (
	"errors"
	"fmt"
	"sort"
)

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=mock_strategy.go . Strategy

const (
	NoneName   = "none"
	VolumeName = "volume"

	DefaultStrategy = VolumeName
)

var ErrUnknownStrategy = errors.New("unknown oracle strategy")

// Counters are saturating and never decrease.
type Counters struct {
	Price0VolCumulative uint64 `json:"price0VolCumulative"`
	Price1VolCumulative uint64 `json:"price1VolCumulative"`
	Volume0Cumulative   uint64 `json:"volume0Cumulative"`
	Volume1Cumulative   uint64 `json:"volume1Cumulative"`
}

// Strategy updates [Counters] when liquidity is added to a pair. Amounts
// and reserves are in sorted token order and reserves are the values before
// the deposit is applied.
type Strategy interface {
	Name() string
	OnLiquidityAdded(c *Counters, amount0, amount1, reserve0, reserve1 uint64)
}

var strategies = map[string]func() Strategy{
	NoneName:   func() Strategy { return None{} },
	VolumeName: func() Strategy { return Volume{} },
}

// New returns the strategy registered under [name]. An empty name selects
// [DefaultStrategy].
func New(name string) (Strategy, error) {
	if name == "" {
		name = DefaultStrategy
	}
	f, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return f(), nil
}

// Names returns the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
