// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"slices"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/hyperamm/keys"
	"github.com/ava-labs/hyperamm/state"
)

// TState defines a struct for storing temporary state. Views commit into
// it and it is written to the database as a single batch.
type TState struct {
	l           sync.RWMutex
	changedKeys map[string]maybe.Maybe[[]byte]
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(changedSize int) *TState {
	return &TState{changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize)}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// Insert should only be called if you know what you are doing (updates
// here are not reflected in views that already read [key]).
func (ts *TState) Insert(_ context.Context, key, value []byte) error {
	if !keys.VerifyValue(key, value) {
		return ErrInvalidKeyValue
	}
	ts.l.Lock()
	defer ts.l.Unlock()

	ts.changedKeys[string(key)] = maybe.Some(value)
	return nil
}

// PendingChanges returns the number of keys changed by committed views.
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// WriteTo applies all committed changes to [w] in key order and returns
// the number of keys written.
//
// Once [WriteTo] is called, [TState] should not be used again (the bytes
// stored are consumed).
func (ts *TState) WriteTo(
	ctx context.Context,
	t trace.Tracer, //nolint:interfacer
	w database.KeyValueWriterDeleter,
) (int, error) {
	_, span := t.Start(ctx, "TState.WriteTo")
	defer span.End()

	ts.l.Lock()
	defer ts.l.Unlock()

	changed := maps.Keys(ts.changedKeys)
	slices.Sort(changed)
	for _, k := range changed {
		v := ts.changedKeys[k]
		if v.IsNothing() {
			if err := w.Delete([]byte(k)); err != nil {
				return 0, err
			}
			continue
		}
		if err := w.Put([]byte(k), v.Value()); err != nil {
			return 0, err
		}
	}
	return len(changed), nil
}

// NewView returns a view over [base] that also observes every change
// already committed to ts.
func (ts *TState) NewView(base state.Immutable) *TStateView {
	return &TStateView{
		ts:                 ts,
		base:               base,
		pendingChangedKeys: make(map[string]maybe.Maybe[[]byte]),
		ops:                make([]*op, 0, defaultOps),
	}
}
