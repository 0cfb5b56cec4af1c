// SPDX-License-Identifier: MIT

// Command lvsim drives the particle simulation, the iterative linear
// solvers and the solver convergence study from the command line.
//
// Usage:
//
//	lvsim simulate [flags]   run a particle scene and snapshot it
//	lvsim solve    [flags]   solve A·x = b for a matrix file
//	lvsim converge [flags]   run the convergence study
//
// Every command reads defaults from an optional YAML file (--config);
// explicit flags win over the file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "lvsim:", err)
		stop()
		os.Exit(1)
	}
}
