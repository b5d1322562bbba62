// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

// Key prefixes
const (
	pairPrefix byte = iota
	pairIndexPrefix
	lpTagPrefix
	pairCountPrefix
	coinPrefix
	nonceCounterPrefix
	supplyPrefix
)

// Chunks
const (
	PairChunks      uint16 = 4
	PairIndexChunks uint16 = 1
	LPTagChunks     uint16 = 1
	CounterChunks   uint16 = 1
	CoinChunks      uint16 = 2
	SupplyChunks    uint16 = 1
)

// Database namespaces
const (
	StateNamespace = "statedb"
)
