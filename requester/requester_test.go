// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package requester

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendRequest(t *testing.T) {
	require := require.New(t)

	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     any    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		method = req.Method
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  map[string]any{"success": true},
		})
	}))
	defer srv.Close()

	reply := struct {
		Success bool `json:"success"`
	}{}
	require.NoError(New(srv.URL, "svc").SendRequest(context.Background(), "ping", nil, &reply))
	require.True(reply.Success)
	require.Equal("svc.ping", method)
}

func TestInvalidURI(t *testing.T) {
	require := require.New(t)

	err := New("://bad", "svc").SendRequest(context.Background(), "ping", nil, &struct{}{})
	require.Error(err)
}
