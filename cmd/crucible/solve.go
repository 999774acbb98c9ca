package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/crucible/runpath"
)

// errUnreachable is returned when no legal route exists.
var errUnreachable = &ExitError{Code: 2, Message: "unreachable"}

func newSolveCmd(a *app) *cobra.Command {
	var (
		sf    searchFlags
		from  string
		stats bool
	)
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Print the minimal cost from one start cell to the end cell",
		Long: `Reads a grid (one row per line, "-" for stdin) and prints the minimal
total cost of a route made of straight runs of min-run..max-run cells
with a turn between runs. Exits with status 2 when no route exists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if err := sf.apply(cmd, &cfg); err != nil {
				return err
			}
			g, err := loadGrid(cmd, args[0], cfg.GridFormat())
			if err != nil {
				return err
			}
			start, err := parseCoordinate(from, g.TopLeft())
			if err != nil {
				return err
			}
			end, err := parseCoordinate(sf.to, g.BottomRight())
			if err != nil {
				return err
			}

			ctx, cancel := withTimeout(cmd.Context(), cfg.Search.Timeout)
			defer cancel()
			res, err := runpath.Search(ctx, g, start, end,
				append(cfg.SearchOptions(g), runpath.WithLogger(a.logger))...)
			if err != nil {
				return err
			}
			if !res.Found {
				fmt.Fprintln(a.stdout, "unreachable")
				return errUnreachable
			}

			fmt.Fprintln(a.stdout, res.Cost)
			if stats {
				fmt.Fprintf(a.stdout, "finalized=%d pushed=%d improved=%d\n", res.Finalized, res.Pushed, res.Improved)
			}
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "start cell as x,y (default top-left)")
	cmd.Flags().BoolVar(&stats, "stats", false, "also print search counters")

	return cmd
}

func newSweepCmd(a *app) *cobra.Command {
	var (
		sf      searchFlags
		workers int
		all     bool
	)
	cmd := &cobra.Command{
		Use:   "sweep FILE",
		Short: "Try every border cell as start and print the cheapest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("workers") {
				cfg.Sweep.Workers = workers
			}
			if err := sf.apply(cmd, &cfg); err != nil {
				return err
			}
			g, err := loadGrid(cmd, args[0], cfg.GridFormat())
			if err != nil {
				return err
			}
			end, err := parseCoordinate(sf.to, g.BottomRight())
			if err != nil {
				return err
			}

			ctx, cancel := withTimeout(cmd.Context(), cfg.Search.Timeout)
			defer cancel()
			out, err := runpath.Sweep(ctx, g, g.Border(), end,
				append(cfg.SearchOptions(g), runpath.WithLogger(a.logger))...)
			if err != nil {
				return err
			}

			if all {
				tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "FROM\tCOST")
				for _, sr := range out.Results {
					cost := "unreachable"
					if sr.Result.Found {
						cost = fmt.Sprint(sr.Result.Cost)
					}
					fmt.Fprintf(tw, "%s\t%s\n", sr.From, cost)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			if !out.Found {
				fmt.Fprintln(a.stdout, "unreachable")
				return errUnreachable
			}
			fmt.Fprintf(a.stdout, "best %s %d\n", out.Best.From, out.Best.Result.Cost)

			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent searches (default: config or NumCPU)")
	cmd.Flags().BoolVar(&all, "all", false, "print every start's cost")

	return cmd
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
