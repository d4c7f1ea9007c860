package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-waterfall/internal/fixture"
)

func addGen(topLevel *cobra.Command, _ *rootOptions) {
	gen := fixture.GenerateOptions{}
	cmd := &cobra.Command{
		Use:   "gen <fixture.toml>",
		Short: "Write a fixture of random bricks.",
		Example: `
waterfall gen bricks.toml --count 300 --children 2
waterfall gen bricks.toml --max-height 0   # let the viewer measure cards
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fixture.Generate(gen)
			if err != nil {
				return err
			}
			if err := fixture.Save(args[0], f); err != nil {
				return err
			}
			green := color.New(color.FgGreen).SprintFunc()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d bricks, %d children to %s\n",
				green("wrote"), len(f.Bricks), len(f.Children), args[0])
			return nil
		},
	}
	cmd.Flags().IntVar(&gen.Count, "count", 100, "number of bricks")
	cmd.Flags().Int64Var(&gen.Seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&gen.MinHeight, "min-height", 2, "smallest fixed height")
	cmd.Flags().IntVar(&gen.MaxHeight, "max-height", 12, "largest fixed height, 0 to omit heights")
	cmd.Flags().IntVar(&gen.Children, "children", 0, "inline children placed ahead of the bricks")

	topLevel.AddCommand(cmd)
}
