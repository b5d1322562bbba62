// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/rpc/v2"

	"github.com/ava-labs/hyperamm/ledger"
)

// NewHandler serves [l] as the JSON-RPC service [Name].
func NewHandler(log logging.Logger, tracer trace.Tracer, l *ledger.Ledger) (http.Handler, error) {
	server := rpc.NewServer()
	codec := json.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	if err := server.RegisterService(NewJSONRPCServer(log, tracer, l), Name); err != nil {
		return nil, err
	}
	return server, nil
}
