// SPDX-License-Identifier: MIT

package main

import (
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	verbosity  int
	cfg        Config
	log        logr.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: DefaultConfig(), log: logr.Discard()}
	root := &cobra.Command{
		Use:           "lvsim",
		Short:         "Particle collision simulation and iterative linear solvers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			stdr.SetVerbosity(a.verbosity)
			a.log = stdr.New(log.New(cmd.ErrOrStderr(), "", log.LstdFlags)).WithName("lvsim")
			if a.configPath == "" {
				return nil
			}
			cfg, err := LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log.V(1).Info("config loaded", "path", a.configPath)

			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().IntVarP(&a.verbosity, "verbosity", "v", 0, "log verbosity (0 info, 1 setup, 2 per-step)")

	root.AddCommand(newSimulateCmd(a), newSolveCmd(a), newConvergeCmd(a))

	return root
}
