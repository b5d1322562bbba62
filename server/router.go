// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/gorilla/mux"
)

var ErrRouteAlreadyExists = errors.New("route already exists")

// router dispatches to handlers registered while the server is running.
type router struct {
	lock   sync.RWMutex
	router *mux.Router
	routes map[string]set.Set[string] // base -> endpoints
}

func newRouter() *router {
	return &router{
		router: mux.NewRouter(),
		routes: make(map[string]set.Set[string]),
	}
}

func (r *router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	r.router.ServeHTTP(w, req)
}

func (r *router) AddRouter(base, endpoint string, handler http.Handler) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	endpoints, ok := r.routes[base]
	if !ok {
		endpoints = set.NewSet[string](1)
		r.routes[base] = endpoints
	}
	if endpoints.Contains(endpoint) {
		return fmt.Errorf("%w: %s%s", ErrRouteAlreadyExists, base, endpoint)
	}
	endpoints.Add(endpoint)
	r.router.Handle(base+endpoint, handler)
	return nil
}
