package main

import (
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-waterfall/internal/fixture"
	"github.com/grindlemire/go-waterfall/internal/viewer"
)

func addView(topLevel *cobra.Command, opts *rootOptions) {
	var (
		count int
		seed  int64
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "view [fixture.toml]",
		Short: "Browse a fixture in the terminal.",
		Example: `
waterfall view bricks.toml
waterfall view --count 500 --columns 4
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("columns") {
				cfg.Viewer.AutoColumns = false
			}
			if cmd.Flags().Changed("watch") {
				cfg.Viewer.Watch = watch
			}

			path, file, err := loadOrGenerate(args, count, seed, 0)
			if err != nil {
				return err
			}
			return viewer.Run(cmd.Context(), viewer.Options{
				Config:  cfg,
				Fixture: file,
				Path:    path,
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 200, "bricks to generate when no fixture is given")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for generated bricks")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload the fixture when it changes")

	topLevel.AddCommand(cmd)
}

// loadOrGenerate reads the fixture named in args, or generates one. The
// returned path is empty for generated fixtures.
func loadOrGenerate(args []string, count int, seed int64, maxHeight int) (string, fixture.File, error) {
	if len(args) > 0 {
		f, err := fixture.Load(args[0])
		return args[0], f, err
	}
	f, err := fixture.Generate(fixture.GenerateOptions{
		Count:     count,
		Seed:      seed,
		MinHeight: 1,
		MaxHeight: maxHeight,
	})
	return "", f, err
}
