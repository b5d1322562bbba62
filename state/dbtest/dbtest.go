// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dbtest

import (
	"context"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/hyperamm/state"
)

var _ state.Mutable = (*TestDB)(nil)

// TestDB is a map backed [state.Mutable] for tests that do not need
// transactional views.
type TestDB struct {
	storage map[string][]byte
}

func NewTestDB() *TestDB {
	return &TestDB{
		storage: make(map[string][]byte),
	}
}

func (db *TestDB) GetValue(_ context.Context, key []byte) (value []byte, err error) {
	val, ok := db.storage[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return val, nil
}

func (db *TestDB) Insert(_ context.Context, key []byte, value []byte) error {
	db.storage[string(key)] = value
	return nil
}

func (db *TestDB) Remove(_ context.Context, key []byte) error {
	delete(db.storage, string(key))
	return nil
}

// Len returns the number of stored keys.
func (db *TestDB) Len() int {
	return len(db.storage)
}
