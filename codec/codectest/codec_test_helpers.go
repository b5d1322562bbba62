// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codectest

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hyperamm/codec"
)

// NewRandomAddress returns a random address for use during testing.
func NewRandomAddress() codec.Address {
	return codec.CreateAddress(0, ids.GenerateTestID())
}
