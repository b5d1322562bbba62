// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"strings"
)

func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// LoadHex decodes [s], which may carry a 0x prefix. If [expectedSize] is not
// -1 the decoded value must be exactly that long.
func LoadHex(s string, expectedSize int) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, err
	}
	if expectedSize != -1 && len(b) != expectedSize {
		return nil, ErrInvalidSize
	}
	return b, nil
}
