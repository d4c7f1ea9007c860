package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	waterfall "github.com/grindlemire/go-waterfall"
	"github.com/grindlemire/go-waterfall/internal/config"
	"github.com/grindlemire/go-waterfall/internal/fixture"
	"github.com/grindlemire/go-waterfall/internal/headless"
)

type simulateOptions struct {
	height        int
	defaultHeight int
	positions     []int
	page          int
	count         int
	seed          int64
	json          bool
}

func addSimulate(topLevel *cobra.Command, opts *rootOptions) {
	so := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate [fixture.toml]",
		Short: "Lay out a fixture without a terminal and report every step.",
		Long: `Lay out a fixture with fixed brick heights. Without --scroll the
simulation pages down one viewport at a time until every brick is placed.`,
		Example: `
waterfall simulate bricks.toml --height 40
waterfall simulate --count 100 --scroll 0,30,60 --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, file, err := loadOrGenerate(args, so.count, so.seed, 3*so.defaultHeight)
			if err != nil {
				return err
			}
			steps, err := simulate(cmd.Context(), opts.cfg, file, so)
			if err != nil {
				return err
			}
			if so.json {
				return printStepsJSON(cmd.OutOrStdout(), steps)
			}
			printSteps(cmd.OutOrStdout(), steps, len(file.Catalog()))
			return nil
		},
	}
	cmd.Flags().IntVar(&so.height, "height", 40, "viewport height")
	cmd.Flags().IntVar(&so.defaultHeight, "default-height", 6, "height of bricks that do not set one")
	cmd.Flags().IntSliceVar(&so.positions, "scroll", nil, "scroll positions to visit, in order")
	cmd.Flags().IntVar(&so.page, "page", 0, "scroll step when paging to the end (default the viewport height)")
	cmd.Flags().IntVar(&so.count, "count", 100, "bricks to generate when no fixture is given")
	cmd.Flags().Int64Var(&so.seed, "seed", 1, "seed for generated bricks")
	cmd.Flags().BoolVar(&so.json, "json", false, "print steps as JSON")

	topLevel.AddCommand(cmd)
}

func simulate(ctx context.Context, cfg config.Config, file fixture.File, so *simulateOptions) ([]headless.Step, error) {
	host := headless.New(so.height, headless.Fixed(fixture.Height, so.defaultHeight))
	e, err := waterfall.New(host, waterfall.WithConfig(cfg.Engine()))
	if err != nil {
		return nil, err
	}
	defer e.Dispose()
	file.Apply(e)

	if len(so.positions) > 0 {
		return headless.Scroll(ctx, e, so.positions)
	}
	page := so.page
	if page <= 0 {
		page = so.height
	}
	return headless.ScrollToEnd(ctx, e, page)
}

func printSteps(w io.Writer, steps []headless.Step, total int) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Scroll"), bold("Viewport"), bold("Passes"), bold("Placed"), bold("Mounted"), bold("Visible"), bold("Height"))
	for _, s := range steps {
		placed := fmt.Sprintf("%d/%d", s.Placed, total)
		if s.Result.Placed == 0 {
			placed = faint(placed)
		}
		tbl.AddRow(s.ScrollPosition,
			fmt.Sprintf("%d..%d", s.Viewport.Top, s.Viewport.Bottom),
			s.Result.Passes, placed, s.Rendered, s.Visible, s.ContainerHeight)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

type stepJSON struct {
	Scroll          int  `json:"scroll"`
	ViewportTop     int  `json:"viewportTop"`
	ViewportBottom  int  `json:"viewportBottom"`
	Passes          int  `json:"passes"`
	Placed          int  `json:"placed"`
	Mounted         int  `json:"mounted"`
	Visible         int  `json:"visible"`
	ContainerHeight int  `json:"containerHeight"`
	Exhausted       bool `json:"exhausted,omitempty"`
}

func printStepsJSON(w io.Writer, steps []headless.Step) error {
	out := make([]stepJSON, len(steps))
	for i, s := range steps {
		out[i] = stepJSON{
			Scroll:          s.ScrollPosition,
			ViewportTop:     s.Viewport.Top,
			ViewportBottom:  s.Viewport.Bottom,
			Passes:          s.Result.Passes,
			Placed:          s.Placed,
			Mounted:         s.Rendered,
			Visible:         s.Visible,
			ContainerHeight: s.ContainerHeight,
			Exhausted:       s.Result.Exhausted,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
