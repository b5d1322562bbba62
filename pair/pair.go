// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pair

import (
	"bytes"
	"errors"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hyperamm/utils"
)

var ErrIdenticalAddresses = errors.New("identical addresses")

var lpTagPrefix = []byte("lp")

// Sorted is a canonically ordered tag pair. Swapped is set when the caller
// passed the tags in the opposite order.
type Sorted struct {
	Token0  ids.ID
	Token1  ids.ID
	Swapped bool
}

// Sort orders [a] and [b] lexicographically.
func Sort(a, b ids.ID) (Sorted, error) {
	switch bytes.Compare(a[:], b[:]) {
	case -1:
		return Sorted{Token0: a, Token1: b}, nil
	case 1:
		return Sorted{Token0: b, Token1: a, Swapped: true}, nil
	default:
		return Sorted{}, ErrIdenticalAddresses
	}
}

// Amounts maps values given in caller order (a, b) to sorted order.
func (s Sorted) Amounts(a, b uint64) (uint64, uint64) {
	if s.Swapped {
		return b, a
	}
	return a, b
}

// Unsort maps values in sorted order back to caller order.
func (s Sorted) Unsort(v0, v1 uint64) (uint64, uint64) {
	return s.Amounts(v0, v1)
}

// ID derives the pair identifier from the sorted tags.
func (s Sorted) ID() ids.ID {
	return utils.ConcatID(s.Token0[:], s.Token1[:])
}

// Identity returns the order independent identifier of the pair {a, b}.
func Identity(a, b ids.ID) (ids.ID, error) {
	s, err := Sort(a, b)
	if err != nil {
		return ids.Empty, err
	}
	return s.ID(), nil
}

// LPTag is the asset-type tag of the shares issued by [pairID].
func LPTag(pairID ids.ID) ids.ID {
	return utils.ConcatID(lpTagPrefix, pairID[:])
}
