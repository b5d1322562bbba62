// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package coin

import "errors"

var (
	ErrZeroAmount             = errors.New("amount must be positive")
	ErrInvalidRecipient       = errors.New("invalid recipient")
	ErrCoinNotFound           = errors.New("coin not found or already spent")
	ErrCoinMismatch           = errors.New("coin does not match stored value")
	ErrInsufficientCoinAmount = errors.New("insufficient coin amount")
	ErrNotOwner               = errors.New("coin is not owned by the spender")
)
