// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import "errors"

var (
	ErrMissingAuth      = errors.New("operation is not signed")
	ErrInvalidSignature = errors.New("invalid signature")
)
