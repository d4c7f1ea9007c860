package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	waterfall "github.com/grindlemire/go-waterfall"
	"github.com/grindlemire/go-waterfall/internal/config"
	"github.com/grindlemire/go-waterfall/internal/fixture"
	"github.com/grindlemire/go-waterfall/internal/headless"
)

type benchResult struct {
	columns   int
	elapsed   time.Duration
	passes    int
	positions int
	height    int
}

func addBench(topLevel *cobra.Command, opts *rootOptions) {
	var (
		columns  []int
		count    int
		seed     int64
		height   int
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time scrolling a generated fixture to the end for several column counts.",
		Example: `
waterfall bench --items 5000 --column-counts 1,2,4,8
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := fixture.Generate(fixture.GenerateOptions{Count: count, Seed: seed, MinHeight: 2, MaxHeight: 20})
			if err != nil {
				return err
			}
			results, err := bench(cmd.Context(), opts.cfg, file, columns, height, parallel)
			if err != nil {
				return err
			}
			printBench(cmd.OutOrStdout(), results, count)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&columns, "column-counts", []int{1, 2, 4, 8}, "column counts to run")
	cmd.Flags().IntVar(&count, "items", 1000, "bricks to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for generated bricks")
	cmd.Flags().IntVar(&height, "height", 40, "viewport height")
	cmd.Flags().IntVar(&parallel, "parallel", 4, "column counts to run at once")

	topLevel.AddCommand(cmd)
}

// bench runs one engine per column count. Engines share nothing, so they run
// in parallel.
func bench(ctx context.Context, cfg config.Config, file fixture.File, columns []int, height, parallel int) ([]benchResult, error) {
	catalog := file.Catalog()
	results := make([]benchResult, len(columns))

	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, n := range columns {
		g.Go(func() error {
			ec := cfg.Engine()
			ec.ColumnNum = n
			host := headless.New(height, headless.Fixed(fixture.Height, 6))
			e, err := waterfall.New(host, waterfall.WithConfig(ec))
			if err != nil {
				return fmt.Errorf("%d columns: %w", n, err)
			}
			defer e.Dispose()

			start := time.Now()
			e.SetCatalog(catalog)
			steps, err := headless.ScrollToEnd(ctx, e, height)
			if err != nil {
				return fmt.Errorf("%d columns: %w", n, err)
			}

			r := benchResult{columns: n, elapsed: time.Since(start), positions: len(steps), height: e.ContainerHeight()}
			for _, s := range steps {
				r.passes += s.Result.Passes
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].columns < results[j].columns })
	return results, nil
}

func printBench(w io.Writer, results []benchResult, items int) {
	bold := color.New(color.Bold).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Columns"), bold("Elapsed"), bold("Per item"), bold("Scroll steps"), bold("Passes"), bold("Height"))
	for _, r := range results {
		per := time.Duration(0)
		if items > 0 {
			per = r.elapsed / time.Duration(items)
		}
		tbl.AddRow(r.columns, r.elapsed.Round(time.Microsecond), per, r.positions, r.passes, r.height)
	}
	_, _ = fmt.Fprintln(w, tbl)
}
