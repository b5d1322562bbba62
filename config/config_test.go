// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hyperamm/codec"
	"github.com/ava-labs/hyperamm/consts"
	"github.com/ava-labs/hyperamm/oracle"
	"github.com/ava-labs/hyperamm/pricing"
)

func TestDefaults(t *testing.T) {
	require := require.New(t)

	c, err := New(nil)
	require.NoError(err)
	require.Equal(pricing.DefaultMinimumLiquidity, c.MinimumLiquidity)
	require.Equal(pricing.DefaultFeeNumerator, c.FeeNumerator)
	require.Equal(pricing.DefaultFeeDenominator, c.FeeDenominator)
	require.Equal(oracle.DefaultStrategy, c.OracleStrategy)
	require.False(c.Trace.Enabled)
	require.Equal("127.0.0.1:9650", c.Address())

	level, err := c.GetLogLevel()
	require.NoError(err)
	require.Equal(logging.Info, level)

	params, err := c.GetLedgerParams()
	require.NoError(err)
	require.Equal(codec.EmptyAddress, params.FeeTo)
}

func TestNew(t *testing.T) {
	feeTo := codec.CreateAddress(0, ids.GenerateTestID())

	tests := []struct {
		name        string
		input       string
		expectedErr error
		check       func(*require.Assertions, *Config)
	}{
		{
			name:  "overrides",
			input: `{"minimumLiquidity":1,"feeNumerator":0,"oracleStrategy":"none","logLevel":"debug","httpPort":8080}`,
			check: func(require *require.Assertions, c *Config) {
				require.Equal(uint64(1), c.MinimumLiquidity)
				require.Zero(c.FeeNumerator)
				require.Equal(pricing.DefaultFeeDenominator, c.FeeDenominator)
				require.Equal(uint16(8080), c.HTTPPort)
				level, err := c.GetLogLevel()
				require.NoError(err)
				require.Equal(logging.Debug, level)
			},
		},
		{
			name:  "hex fee recipient",
			input: `{"feeTo":"` + feeTo.String() + `"}`,
			check: func(require *require.Assertions, c *Config) {
				got, err := c.GetFeeTo()
				require.NoError(err)
				require.Equal(feeTo, got)
			},
		},
		{
			name:  "bech32 fee recipient",
			input: `{"feeTo":"` + codec.MustAddressBech32(consts.HRP, feeTo) + `"}`,
			check: func(require *require.Assertions, c *Config) {
				got, err := c.GetFeeTo()
				require.NoError(err)
				require.Equal(feeTo, got)
			},
		},
		{
			name:        "fee equal to denominator",
			input:       `{"feeNumerator":100,"feeDenominator":100}`,
			expectedErr: ErrInvalidFee,
		},
		{
			name:        "zero denominator",
			input:       `{"feeNumerator":0,"feeDenominator":0}`,
			expectedErr: ErrInvalidFee,
		},
		{
			name:        "zero minimum liquidity",
			input:       `{"minimumLiquidity":0}`,
			expectedErr: ErrInvalidMinimumLiquidity,
		},
		{
			name:        "unknown oracle",
			input:       `{"oracleStrategy":"twap"}`,
			expectedErr: oracle.ErrUnknownStrategy,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			c, err := New([]byte(tt.input))
			require.ErrorIs(err, tt.expectedErr)
			if tt.check != nil {
				tt.check(require, c)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(os.WriteFile(yamlPath, []byte("minimumLiquidity: 10\ndataDir: /tmp/amm\npebble:\n  maxOpenFiles: 16\nhttp:\n  readTimeout: 5s\n"), 0o600))
	c, err := Load(yamlPath)
	require.NoError(err)
	require.Equal(uint64(10), c.MinimumLiquidity)
	require.Equal("/tmp/amm", c.DataDir)
	require.Equal(16, c.Pebble.MaxOpenFiles)
	require.Equal(5*time.Second, c.HTTP.ReadTimeout)
	require.Equal(120*time.Second, c.HTTP.IdleTimeout)
	require.Equal(pricing.DefaultFeeDenominator, c.FeeDenominator)

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(os.WriteFile(jsonPath, []byte(`{"httpHost":"0.0.0.0"}`), 0o600))
	c, err = Load(jsonPath)
	require.NoError(err)
	require.Equal("0.0.0.0", c.HTTPHost)

	tomlPath := filepath.Join(dir, "config.toml")
	require.NoError(os.WriteFile(tomlPath, nil, 0o600))
	_, err = Load(tomlPath)
	require.ErrorIs(err, ErrUnsupportedFormat)
}
