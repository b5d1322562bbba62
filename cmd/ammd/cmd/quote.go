// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ava-labs/hyperamm/pricing"
	"github.com/ava-labs/hyperamm/utils"
)

func newQuoteCmd(d *daemon) *cobra.Command {
	var exactOut bool
	cmd := &cobra.Command{
		Use:   "quote [amount] [reserveIn] [reserveOut]",
		Short: "Price a single swap against the given reserves",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			var amounts [3]uint64
			for i, arg := range args {
				v, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return err
				}
				amounts[i] = v
			}
			return d.quote(amounts[0], amounts[1], amounts[2], exactOut)
		},
	}
	cmd.Flags().BoolVar(&exactOut, "exact-out", false, "treat [amount] as the desired output")
	return cmd
}

func (d *daemon) quote(amount, reserveIn, reserveOut uint64, exactOut bool) error {
	model, err := pricing.NewConstantProduct(d.config.FeeNumerator, d.config.FeeDenominator, d.config.MinimumLiquidity)
	if err != nil {
		return err
	}
	if exactOut {
		in, err := model.GetAmountIn(amount, reserveIn, reserveOut)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}amount in:{{/}} %d\n", in)
		return nil
	}
	out, err := model.GetAmountOut(amount, reserveIn, reserveOut)
	if err != nil {
		return err
	}
	utils.Outf("{{yellow}}amount out:{{/}} %d\n", out)
	return nil
}
