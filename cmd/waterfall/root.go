package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grindlemire/go-waterfall/internal/config"
	"github.com/grindlemire/go-waterfall/internal/debug"
)

// rootOptions is shared by every subcommand. cfg is filled in before any
// subcommand runs.
type rootOptions struct {
	configPath string
	debugLog   string

	v   *viper.Viper
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: config.New()}

	cmd := &cobra.Command{
		Use:           "waterfall",
		Short:         "Masonry layout engine playground.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = debug.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath+")")
	flags.StringVar(&opts.debugLog, "debug-log", "", "write a debug log to this file")
	flags.Int("columns", 0, "number of columns")
	flags.Int("column-size", 0, "column width")
	flags.Int("gutter", 0, "space between columns and between bricks")
	flags.Float64("threshold", 0, "viewport padding; above 10 it is absolute, otherwise a multiple of the viewport height")
	flags.Int("max-unpositioned", 0, "items measured per pass")

	bindings := map[string]string{
		"layout.column_num":       "columns",
		"layout.column_size":      "column-size",
		"layout.gutter":           "gutter",
		"layout.threshold":        "threshold",
		"layout.max_unpositioned": "max-unpositioned",
		"debug.log_path":          "debug-log",
	}
	for key, flag := range bindings {
		// Only fails for a nil flag, which would be a typo above.
		if err := opts.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind %s: %v", flag, err))
		}
	}

	addView(cmd, opts)
	addSimulate(cmd, opts)
	addBench(cmd, opts)
	addGen(cmd, opts)
	addVersion(cmd)
	return cmd
}

func (o *rootOptions) load() error {
	cfg, err := config.Load(o.v, o.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	if cfg.Debug.LogPath != "" {
		if err := debug.Init(cfg.Debug.LogPath); err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
	}
	return nil
}
