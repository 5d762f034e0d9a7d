// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/clustex/config"
	"github.com/katalvlaran/clustex/export"
	"github.com/katalvlaran/clustex/orbitlist"
	"github.com/katalvlaran/clustex/structure"
)

// outputFlags are shared by every command writing a snapshot.
type outputFlags struct {
	config string
	output string
	format string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "TOML configuration file (required)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&o.format, "format", "f", string(export.FormatYAML), "snapshot format: yaml or cbor")
	_ = cmd.MarkFlagRequired("config")
}

// primitiveOrbits loads the configuration and builds the primitive orbit list.
func primitiveOrbits(ctx context.Context, path string) (*config.File, *structure.Structure, *orbitlist.OrbitList, error) {
	logger := loggerFromContext(ctx)

	f, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	prim, err := f.Structure()
	if err != nil {
		return nil, nil, nil, err
	}
	ops, err := f.Operations()
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Debug("configuration loaded", "path", path, "sites", prim.Size(), "operations", len(ops))

	prog := newProgress(logger)
	ol, err := orbitlist.FromStructure(prim, ops, f.Cutoffs(), orbitlist.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, err
	}
	prog.done("primitive orbit list", "orbits", ol.Len())

	return f, prim, ol, nil
}

// writeSnapshot encodes snap to the output file or the command's stdout.
func writeSnapshot(cmd *cobra.Command, flags outputFlags, snap *export.Snapshot) (err error) {
	format, err := export.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if flags.output != "" && flags.output != "-" {
		file, cerr := os.Create(flags.output)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		defer func() {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}()
		w = file
	}
	if err := export.Encode(w, snap, format); err != nil {
		return err
	}

	sum, err := snap.Fingerprint()
	if err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Info("snapshot written", "format", format, "fingerprint", sum.Short())

	return nil
}
