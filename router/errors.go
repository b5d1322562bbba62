// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package router

import (
	"errors"

	"github.com/ava-labs/hyperamm/ledger"
)

var (
	ErrInvalidPath = errors.New("invalid path")

	ErrInsufficientAAmount      = ledger.ErrInsufficientAAmount
	ErrInsufficientBAmount      = ledger.ErrInsufficientBAmount
	ErrInsufficientOutputAmount = ledger.ErrInsufficientOutputAmount
	ErrExcessiveInputAmount     = ledger.ErrExcessiveInputAmount
)
