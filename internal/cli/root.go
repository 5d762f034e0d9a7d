// SPDX-License-Identifier: MIT

// Package cli implements the clustex command-line interface.
//
// Commands:
//   - orbits: build the orbit list of the configured primitive structure
//     and write it as a snapshot,
//   - counts: map the orbit list onto the configured supercell and write
//     the cluster counts.
//
// Every command reads a TOML configuration (see package config) and
// supports --verbose (-v) for debug logging. The logger travels in the
// command context.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the information printed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the clustex CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "clustex",
		Short:        "clustex enumerates symmetry-distinct lattice clusters",
		Long:         `clustex groups the clusters of a crystal structure into orbits of symmetry-equivalent site tuples and counts their occupations in supercells.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("clustex %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newOrbitsCmd())
	root.AddCommand(newCountsCmd())

	return root
}
