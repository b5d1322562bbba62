// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package arith

import (
	"errors"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	ErrOverflow          = smath.ErrOverflow
	ErrUnderflow         = smath.ErrUnderflow
	ErrDivisionByZero    = errors.New("division by zero")
	ErrSqrtOverestimate  = errors.New("sqrt overestimate")
	ErrSqrtUnderestimate = errors.New("sqrt underestimate")
	ErrInvalidEncoding   = errors.New("invalid integer encoding")
)
