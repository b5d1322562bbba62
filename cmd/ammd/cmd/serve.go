// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"net"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/hyperamm/rpc"
	"github.com/ava-labs/hyperamm/server"
)

const (
	baseURL         = "/ext"
	metricsEndpoint = "metrics"
)

func newServeCmd(d *daemon) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON-RPC API until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return d.serve(ctx)
		},
	}
}

func (d *daemon) serve(ctx context.Context) error {
	n, err := d.openNode()
	if err != nil {
		return err
	}
	defer func() {
		if err := n.Close(); err != nil {
			d.log.Error("failed to close node", zap.Error(err))
		}
	}()

	apiRegistry := prometheus.NewRegistry()
	metrics, err := server.NewMetricsWrapper(apiRegistry)
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", d.config.Address())
	if err != nil {
		return err
	}
	srv, err := server.New(
		baseURL,
		d.log,
		listener,
		d.config.HTTP,
		d.config.AllowedOrigins,
		d.config.AllowedHosts,
		metrics,
	)
	if err != nil {
		return err
	}

	handler, err := rpc.NewHandler(d.log, n.tracer, n.ledger)
	if err != nil {
		return err
	}
	if err := srv.AddRoute(handler, strings.TrimPrefix(rpc.JSONRPCEndpoint, "/"), ""); err != nil {
		return err
	}
	gatherer := append(n.gatherer, apiRegistry)
	if err := srv.AddRoute(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}), metricsEndpoint, ""); err != nil {
		return err
	}

	d.log.Info("serving",
		zap.String("address", listener.Addr().String()),
		zap.String("dataDir", d.config.DataDir),
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Dispatch)
	g.Go(func() error {
		<-gctx.Done()
		d.log.Info("triggering server shutdown")
		return srv.Shutdown()
	})
	return g.Wait()
}
