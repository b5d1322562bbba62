// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ava-labs/hyperamm/arith"
	"github.com/ava-labs/hyperamm/coin"
	"github.com/ava-labs/hyperamm/pair"
	"github.com/ava-labs/hyperamm/storage"
)

func (tx *Tx) checkPair(ctx context.Context, p *storage.Pair) error {
	if bytes.Compare(p.Token0[:], p.Token1[:]) >= 0 {
		return fmt.Errorf("tokens %s and %s are not sorted", p.Token0, p.Token1)
	}
	s, err := pair.Sort(p.Token0, p.Token1)
	if err != nil {
		return err
	}
	if s.ID() != p.ID || pair.LPTag(p.ID) != p.LPTag {
		return fmt.Errorf("identity does not match tokens %s and %s", p.Token0, p.Token1)
	}
	empty0, empty1, emptySupply := p.Reserve0 == 0, p.Reserve1 == 0, p.LPTotalSupply == 0
	if empty0 != empty1 || empty0 != emptySupply {
		return fmt.Errorf("reserves %d/%d with supply %d", p.Reserve0, p.Reserve1, p.LPTotalSupply)
	}
	minimum := tx.ledger.model.MinimumLiquidity()
	if p.LPTotalSupply < minimum {
		return fmt.Errorf("supply %d below minimum liquidity %d", p.LPTotalSupply, minimum)
	}
	outstanding, err := coin.TotalSupply(ctx, tx.view, p.LPTag)
	if err != nil {
		return err
	}
	issued, err := arith.Add64(outstanding, minimum)
	if err != nil {
		return err
	}
	if issued != p.LPTotalSupply {
		return fmt.Errorf("%d LP coins outstanding with supply %d", outstanding, p.LPTotalSupply)
	}
	return nil
}
