// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{})
	require.NoError(err)
	require.IsType(&noOpTracer{}, tracer)

	_, span := tracer.Start(context.Background(), "test")
	require.False(span.SpanContext().IsValid())
	span.End()
	require.NoError(tracer.Close())
}

func TestEnabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{
		Enabled:         true,
		TraceSampleRate: 1,
		Endpoint:        "http://127.0.0.1:1/api/v2/spans",
		Agent:           "test",
		Version:         "v0.0.1",
	})
	require.NoError(err)

	_, span := tracer.Start(context.Background(), "test")
	require.True(span.SpanContext().IsValid())
	span.End()
}
