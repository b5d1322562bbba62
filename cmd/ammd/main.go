// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"

	"github.com/ava-labs/hyperamm/cmd/ammd/cmd"
	"github.com/ava-labs/hyperamm/utils"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		utils.Outf("{{red}}error: {{/}}%+v\n", err)
		os.Exit(1)
	}
}
