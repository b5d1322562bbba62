// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const fromBits, toBits = 8, 5

// AddressBech32 returns the bech32 encoding of [a] under [hrp].
func AddressBech32(hrp string, a Address) (string, error) {
	conv, err := bech32.ConvertBits(a[:], fromBits, toBits, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, conv)
}

// MustAddressBech32 panics if [a] cannot be encoded.
func MustAddressBech32(hrp string, a Address) string {
	s, err := AddressBech32(hrp, a)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseAddressBech32 decodes a bech32 address and checks its hrp.
func ParseAddressBech32(hrp, saddr string) (Address, error) {
	phrp, data, err := bech32.Decode(saddr)
	if err != nil {
		return EmptyAddress, err
	}
	if phrp != hrp {
		return EmptyAddress, ErrIncorrectHRP
	}
	b, err := bech32.ConvertBits(data, toBits, fromBits, false)
	if err != nil {
		return EmptyAddress, err
	}
	// The padding added when converting to 5 bit groups may leave one extra
	// byte behind.
	if len(b) < AddressLen {
		return EmptyAddress, ErrInsufficientLength
	}
	return Address(b[:AddressLen]), nil
}

// ParseAnyAddress accepts either the hex or the bech32 form of an address.
func ParseAnyAddress(hrp, s string) (Address, error) {
	if a, err := StringToAddress(s); err == nil {
		return a, nil
	}
	return ParseAddressBech32(hrp, s)
}
