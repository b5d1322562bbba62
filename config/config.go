// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/consts"
	"github.com/ava-labs/hyperamm/ledger"
	"github.com/ava-labs/hyperamm/oracle"
	"github.com/ava-labs/hyperamm/pebble"
	"github.com/ava-labs/hyperamm/pricing"
	"github.com/ava-labs/hyperamm/server"
	"github.com/ava-labs/hyperamm/trace"
)

const (
	DefaultHTTPHost = "127.0.0.1"
	DefaultHTTPPort = 9650
)

var (
	ErrInvalidFee              = pricing.ErrInvalidFee
	ErrInvalidMinimumLiquidity = pricing.ErrInvalidMinimumLiquidity
	ErrUnsupportedFormat       = errors.New("unsupported config format")
)

type Config struct {
	// Pricing
	MinimumLiquidity uint64 `json:"minimumLiquidity" yaml:"minimumLiquidity"`
	FeeNumerator     uint64 `json:"feeNumerator" yaml:"feeNumerator"`
	FeeDenominator   uint64 `json:"feeDenominator" yaml:"feeDenominator"`
	FeeTo            string `json:"feeTo" yaml:"feeTo"` // hex or bech32, empty disables the protocol fee
	OracleStrategy   string `json:"oracleStrategy" yaml:"oracleStrategy"`

	// Node
	LogLevel       string   `json:"logLevel" yaml:"logLevel"`
	LogDir         string   `json:"logDir" yaml:"logDir"`
	DataDir        string   `json:"dataDir" yaml:"dataDir"`
	HTTPHost       string   `json:"httpHost" yaml:"httpHost"`
	HTTPPort       uint16   `json:"httpPort" yaml:"httpPort"`
	AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`
	AllowedHosts   []string `json:"allowedHosts" yaml:"allowedHosts"`

	HTTP   server.HTTPConfig `json:"http" yaml:"http"`
	Pebble pebble.Config     `json:"pebble" yaml:"pebble"`
	Trace  trace.Config      `json:"trace" yaml:"trace"`
}

func defaults() *Config {
	return &Config{
		MinimumLiquidity: pricing.DefaultMinimumLiquidity,
		FeeNumerator:     pricing.DefaultFeeNumerator,
		FeeDenominator:   pricing.DefaultFeeDenominator,
		OracleStrategy:   oracle.DefaultStrategy,
		LogLevel:         logging.Info.String(),
		DataDir:          ".hyperamm",
		HTTPHost:         DefaultHTTPHost,
		HTTPPort:         DefaultHTTPPort,
		AllowedOrigins:   []string{"*"},
		AllowedHosts:     []string{"localhost"},
		HTTP:             server.NewDefaultHTTPConfig(),
		Pebble:           pebble.NewDefaultConfig(),
		Trace: trace.Config{
			TraceSampleRate: 1,
			AppName:         consts.Name,
		},
	}
}

// New applies [b], a JSON document, on top of the defaults.
func New(b []byte) (*Config, error) {
	c := defaults()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	return c, c.Validate()
}

// Load reads a JSON or YAML config from [path].
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".json":
		return New(b)
	case ".yaml", ".yml":
		c := defaults()
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, err
		}
		return c, c.Validate()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func (c *Config) Validate() error {
	if c.FeeDenominator == 0 || c.FeeNumerator >= c.FeeDenominator {
		return fmt.Errorf("%w: %d/%d", ErrInvalidFee, c.FeeNumerator, c.FeeDenominator)
	}
	if c.MinimumLiquidity == 0 {
		return ErrInvalidMinimumLiquidity
	}
	if _, err := oracle.New(c.OracleStrategy); err != nil {
		return err
	}
	if _, err := c.GetLogLevel(); err != nil {
		return err
	}
	_, err := c.GetFeeTo()
	return err
}

func (c *Config) GetLogLevel() (logging.Level, error) {
	return logging.ToLevel(c.LogLevel)
}

// GetFeeTo returns [codec.EmptyAddress] when no fee recipient is set.
func (c *Config) GetFeeTo() (codec.Address, error) {
	if c.FeeTo == "" {
		return codec.EmptyAddress, nil
	}
	return codec.ParseAnyAddress(consts.HRP, c.FeeTo)
}

func (c *Config) GetLedgerParams() (ledger.Params, error) {
	feeTo, err := c.GetFeeTo()
	if err != nil {
		return ledger.Params{}, err
	}
	return ledger.Params{
		MinimumLiquidity: c.MinimumLiquidity,
		FeeNumerator:     c.FeeNumerator,
		FeeDenominator:   c.FeeDenominator,
		FeeTo:            feeTo,
	}, nil
}

func (c *Config) GetOracleStrategy() (oracle.Strategy, error) {
	return oracle.New(c.OracleStrategy)
}

func (c *Config) GetTraceConfig() *trace.Config {
	return &c.Trace
}

// Address is the host:port the HTTP server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}
