// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

const testHRP = "amm"

func TestAddress(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(0, ids.GenerateTestID())

	addrStr, err := addr.MarshalText()
	require.NoError(err)

	var parsedAddr Address
	require.NoError(parsedAddr.UnmarshalText(addrStr))
	require.Equal(addr, parsedAddr)
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(1, ids.GenerateTestID())

	addrJSONBytes, err := json.Marshal(addr)
	require.NoError(err)

	var parsedAddr Address
	require.NoError(json.Unmarshal(addrJSONBytes, &parsedAddr))
	require.Equal(addr, parsedAddr)
}

func TestAddressString(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(0, ids.GenerateTestID())

	originalAddr, err := StringToAddress(addr.String())
	require.NoError(err)
	require.Equal(addr, originalAddr)

	_, err = StringToAddress("0x0102")
	require.ErrorIs(err, ErrInvalidSize)
}

func TestAddressBech32(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(2, ids.GenerateTestID())

	s, err := AddressBech32(testHRP, addr)
	require.NoError(err)
	require.Equal(s, MustAddressBech32(testHRP, addr))

	parsed, err := ParseAddressBech32(testHRP, s)
	require.NoError(err)
	require.Equal(addr, parsed)

	_, err = ParseAddressBech32("other", s)
	require.ErrorIs(err, ErrIncorrectHRP)

	anyAddr, err := ParseAnyAddress(testHRP, s)
	require.NoError(err)
	require.Equal(addr, anyAddr)

	anyAddr, err = ParseAnyAddress(testHRP, addr.String())
	require.NoError(err)
	require.Equal(addr, anyAddr)
}

func TestPacker(t *testing.T) {
	require := require.New(t)
	id := ids.GenerateTestID()
	addr := CreateAddress(0, ids.GenerateTestID())

	wp := NewWriter(0, 128)
	wp.PackID(id)
	wp.PackUint64(42)
	wp.PackAddress(addr)
	wp.PackByte(7)
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), 128)
	var (
		uid   ids.ID
		uaddr Address
	)
	rp.UnpackID(true, &uid)
	require.Equal(id, uid)
	require.Equal(uint64(42), rp.UnpackUint64(true))
	rp.UnpackAddress(&uaddr)
	require.Equal(addr, uaddr)
	require.Equal(byte(7), rp.UnpackByte())
	require.True(rp.Empty())
	require.NoError(rp.Err())
}

func TestPackerRequiredFields(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(0, 128)
	wp.PackID(ids.Empty)
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), 128)
	var id ids.ID
	rp.UnpackID(true, &id)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerLimit(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(0, 4)
	wp.PackUint64(1)
	require.Error(wp.Err())
}
