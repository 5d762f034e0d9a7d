// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/clustex/export"
)

func newOrbitsCmd() *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "orbits",
		Short: "Build the orbit list of the primitive structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, ol, err := primitiveOrbits(cmd.Context(), flags.config)
			if err != nil {
				return err
			}
			return writeSnapshot(cmd, flags, export.FromOrbitList(ol))
		},
	}
	flags.register(cmd)

	return cmd
}
