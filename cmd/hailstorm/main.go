// SPDX-License-Identifier: MIT

// Command hailstorm finds the rock ray that collides with every hailstone.
//
//	hailstorm solve input.txt 1
//	hailstorm crossings input.txt --min 200000000000000 --max 400000000000000
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/hailstorm/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
