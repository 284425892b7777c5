package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/chitx/config"
)

func newConfigCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and check configuration files",
	}

	cmd.AddCommand(
		newConfigInitCmd(rc),
		newConfigValidateCmd(rc),
	)

	return cmd
}

func newConfigInitCmd(rc *RootConfig) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file (YAML for .yaml/.yml, JSON otherwise)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().SaveToFile(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "chitx.yaml", "Output path")
	return cmd
}

func newConfigValidateCmd(rc *RootConfig) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a configuration file and report problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := file
			if path == "" {
				path = rc.ConfigPath
			}
			if path == "" {
				return fmt.Errorf("missing --file")
			}
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (solver tolerance %g, max iterations %d, %d benchmarks)\n",
				path, cfg.Solver.Tolerance, cfg.Solver.MaxIterations, len(cfg.Benchmarks))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Config file to check (default --config)")
	return cmd
}
