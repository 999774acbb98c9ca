package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/crucible/internal/scenario"
)

func newScenarioCmd(a *app) *cobra.Command {
	var (
		vars    map[string]string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "run FILE.hcl...",
		Short: "Run HCL scenarios and check their expected costs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := scenario.NewLoader(vars)
			var all []scenario.Scenario
			for _, path := range args {
				scs, err := loader.LoadFile(path)
				if err != nil {
					return err
				}
				all = append(all, scs...)
			}

			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Sweep.Workers
			}
			outs, err := scenario.Run(cmd.Context(), all, workers, a.logger)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tRUNS\tRESULT\tSTATUS\tELAPSED")
			failed := 0
			for _, o := range outs {
				status := "ok"
				if !o.Pass() {
					status = "FAIL"
					failed++
				}
				fmt.Fprintf(tw, "%s\t%d..%d\t%s\t%s\t%s\n",
					o.Scenario.Name, o.Scenario.MinRun, o.Scenario.MaxRun, o.Describe(), status, o.Elapsed.Round(time.Microsecond))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if failed > 0 {
				return &ExitError{Code: 1, Message: fmt.Sprintf("%d of %d scenarios failed", failed, len(outs))}
			}

			return nil
		},
	}
	cmd.Flags().StringToStringVar(&vars, "var", nil, "scenario variable as name=value, available as var.name")
	cmd.Flags().IntVar(&workers, "workers", 0, "scenarios run concurrently (default: config, 0 = all)")

	return cmd
}
