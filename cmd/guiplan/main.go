// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"
	"os"

	"github.com/juju/juju-gui/cmd"
)

func main() {
	os.Exit(Main(os.Args))
}

// Main runs the guiplan command with the given arguments and returns the
// exit code.
func Main(args []string) int {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		return 2
	}
	return cmd.Main(newPlanCommand(), ctx, args[1:])
}
