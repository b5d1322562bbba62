// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"path/filepath"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ava-labs/hyperamm/config"
	"github.com/ava-labs/hyperamm/consts"
	"github.com/ava-labs/hyperamm/ledger"
	"github.com/ava-labs/hyperamm/storage"

	amtrace "github.com/ava-labs/hyperamm/trace"
)

const logsFolder = "logs"

type daemon struct {
	configPath string
	logLevel   string
	dataDir    string

	config *config.Config
	log    logging.Logger
}

func NewRootCmd() *cobra.Command {
	d := &daemon{}
	cmd := &cobra.Command{
		Use:   "ammd",
		Short: "Constant-product AMM node",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return d.init()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cobra.EnablePrefixMatching = true
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.PersistentFlags().StringVar(&d.configPath, "config", "", "path to a .json or .yaml config file")
	cmd.PersistentFlags().StringVar(&d.logLevel, "log-level", "", "log level, overrides the config")
	cmd.PersistentFlags().StringVar(&d.dataDir, "data-dir", "", "data directory, overrides the config")

	cmd.AddCommand(
		newServeCmd(d),
		newPairsCmd(d),
		newQuoteCmd(d),
	)
	return cmd
}

func (d *daemon) init() error {
	var (
		c   *config.Config
		err error
	)
	if d.configPath == "" {
		c, err = config.New(nil)
	} else {
		c, err = config.Load(d.configPath)
	}
	if err != nil {
		return err
	}
	if d.logLevel != "" {
		c.LogLevel = d.logLevel
	}
	if d.dataDir != "" {
		c.DataDir = d.dataDir
	}
	if err := c.Validate(); err != nil {
		return err
	}
	level, err := c.GetLogLevel()
	if err != nil {
		return err
	}
	logDir := c.LogDir
	if logDir == "" {
		logDir = filepath.Join(c.DataDir, logsFolder)
	}

	d.config = c
	d.log = newLogger(consts.Name, level, logDir)
	return nil
}

// node is a ledger opened over the configured pebble database.
type node struct {
	ledger   *ledger.Ledger
	tracer   trace.Tracer
	gatherer prometheus.Gatherers
}

func (d *daemon) openNode() (*node, error) {
	params, err := d.config.GetLedgerParams()
	if err != nil {
		return nil, err
	}
	strategy, err := d.config.GetOracleStrategy()
	if err != nil {
		return nil, err
	}
	tracer, err := amtrace.New(d.config.GetTraceConfig())
	if err != nil {
		return nil, err
	}
	db, dbRegistry, err := storage.New(d.config.Pebble, d.config.DataDir, storage.StateNamespace)
	if err != nil {
		return nil, errors.Join(err, tracer.Close())
	}
	registry := prometheus.NewRegistry()
	l, err := ledger.New(d.log, tracer, registry, db, params, strategy)
	if err != nil {
		return nil, errors.Join(err, db.Close(), tracer.Close())
	}
	return &node{
		ledger:   l,
		tracer:   tracer,
		gatherer: prometheus.Gatherers{registry, dbRegistry},
	}, nil
}

func (n *node) Close() error {
	errs := wrappers.Errs{}
	errs.Add(
		n.ledger.Close(),
		n.tracer.Close(),
	)
	return errs.Err
}
