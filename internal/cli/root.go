package cli

import (
	"os"

	"github.com/PaoloLupo/rcsection/internal/config"
	"github.com/PaoloLupo/rcsection/internal/logging"
	"github.com/spf13/cobra"
)

// NewRootCmd wires CLI flags to configuration and runs fixture generation.
func NewRootCmd() *cobra.Command {
	flags := config.Default()
	var configPath string

	cmd := &cobra.Command{
		Use:           "fixturegen",
		Short:         "Generate a Typst test fixture for every rcsection example",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logging.Configure(os.Stdout, flags.Verbose)

			cfg, err := resolveConfig(cmd, configPath, flags)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			writer := newWriter(cfg)
			if err := generate(cmd.Context(), cfg, writer); err != nil {
				return err
			}
			if cfg.Watch {
				return runWatch(cmd.Context(), cfg, writer)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Optional YAML config file")
	cmd.Flags().StringVar(&flags.In, "in", flags.In, "Directory containing example inputs")
	cmd.Flags().StringVar(&flags.Out, "out", flags.Out, "Directory receiving one fixture directory per example")
	cmd.Flags().StringVar(&flags.Ext, "ext", flags.Ext, "Example file extension")
	cmd.Flags().BoolVar(&flags.Recursive, "recursive", flags.Recursive, "Discover examples in subdirectories too")
	cmd.Flags().StringVar(&flags.OutputName, "output-name", flags.OutputName, "Fixture file name inside each fixture directory")
	cmd.Flags().StringVar(&flags.OnCollision, "on-collision", flags.OnCollision, "Policy when two examples share a fixture directory (overwrite|fail)")
	cmd.Flags().BoolVar(&flags.Check, "check", flags.Check, "Verify fixtures are up to date without writing")
	cmd.Flags().BoolVar(&flags.Watch, "watch", flags.Watch, "Keep running and regenerate fixtures when examples change")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", flags.Verbose, "Enable debug logging")
	cmd.Flags().StringVar(&flags.ReportJSON, "report-json", "", "Optional JSON report output path")
	cmd.Flags().StringVar(&flags.ReportCSV, "report-csv", "", "Optional CSV report output path")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file, if any.
func resolveConfig(cmd *cobra.Command, configPath string, flags config.Config) (config.Config, error) {
	if configPath == "" {
		return flags, nil
	}

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return cfg, err
	}

	overrides := map[string]func(){
		"in":           func() { cfg.In = flags.In },
		"out":          func() { cfg.Out = flags.Out },
		"ext":          func() { cfg.Ext = flags.Ext },
		"recursive":    func() { cfg.Recursive = flags.Recursive },
		"output-name":  func() { cfg.OutputName = flags.OutputName },
		"on-collision": func() { cfg.OnCollision = flags.OnCollision },
		"report-json":  func() { cfg.ReportJSON = flags.ReportJSON },
		"report-csv":   func() { cfg.ReportCSV = flags.ReportCSV },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	cfg.Check = flags.Check
	cfg.Watch = flags.Watch
	cfg.Verbose = flags.Verbose
	return cfg, nil
}
