// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/clustex/clustercounts"
	"github.com/katalvlaran/clustex/export"
	"github.com/katalvlaran/clustex/localorbit"
)

func newCountsCmd() *cobra.Command {
	var (
		flags        outputFlags
		workers      int
		orderIntact  bool
		permuteSites bool
	)

	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Count cluster occupations in the configured supercell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers < 1 {
				return fmt.Errorf("--workers %d: must be at least 1", workers)
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			f, prim, ol, err := primitiveOrbits(ctx, flags.config)
			if err != nil {
				return err
			}
			super, err := f.Supercell(prim)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			gen, err := localorbit.New(ol, super,
				localorbit.WithWorkers(workers), localorbit.WithLogger(logger))
			if err != nil {
				return err
			}
			full, err := gen.FullOrbitList(ctx)
			if err != nil {
				return err
			}
			prog.done("supercell orbit list", "cells", gen.NumberOfUniqueOffsets(), "orbits", full.Len())

			counts := clustercounts.New()
			if err := counts.CountOrbitList(super, full, orderIntact, permuteSites); err != nil {
				return err
			}
			logger.Debug("clusters counted", "clusters", counts.Len(), "total", counts.Total())

			snap := &export.Snapshot{Version: export.Version}
			snap.AddCounts(counts)
			return writeSnapshot(cmd, flags, snap)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.GOMAXPROCS(0), "local orbit lists built concurrently")
	cmd.Flags().BoolVar(&orderIntact, "order-intact", false, "count species tuples in site order")
	cmd.Flags().BoolVar(&permuteSites, "permute", false, "permute site tuples into representative order first")

	return cmd
}
