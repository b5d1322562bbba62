// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ava-labs/hyperamm/utils"
)

func newPairsCmd(d *daemon) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "List the pairs stored in the data directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return d.pairs(cmd.Context(), check)
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "verify the ledger invariants")
	return cmd
}

func (d *daemon) pairs(ctx context.Context, check bool) (err error) {
	n, err := d.openNode()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := n.Close(); err == nil {
			err = cerr
		}
	}()

	length, err := n.ledger.GetAllPairLength(ctx)
	if err != nil {
		return err
	}
	utils.Outf("{{yellow}}pairs:{{/}} %d\n", length)
	for i := uint64(0); i < length; i++ {
		p, err := n.ledger.GetPairAt(ctx, i)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{cyan}}%d{{/}} %s\n  %s: %d\n  %s: %d\n  lp %s supply=%d\n",
			p.Index,
			p.ID,
			p.Token0, p.Reserve0,
			p.Token1, p.Reserve1,
			p.LPTag, p.LPTotalSupply,
		)
	}
	if !check {
		return nil
	}
	if err := n.ledger.CheckInvariants(ctx); err != nil {
		return err
	}
	utils.Outf("{{green}}invariants hold{{/}}\n")
	return nil
}
