package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/payroll-engine/internal/app"
	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

// periodFlags binds --year and --month, defaulting to the current month.
func periodFlags(cmd *cobra.Command, year, month *int) {
	now := time.Now()
	cmd.Flags().IntVar(year, "year", now.Year(), "payroll year")
	cmd.Flags().IntVar(month, "month", int(now.Month()), "payroll month (1-12)")
}

func computeCmd() *cobra.Command {
	var (
		year, month int
		persist     bool
	)
	cmd := &cobra.Command{
		Use:   "compute <employee-id>",
		Short: "Compute one employee's payroll for a month",
		Long: `Computes gross, deductions and net for one employee. Without --persist
nothing is written: leave is not consumed and no result is stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, _ *config.Config, s *app.Services) error {
				b, err := s.Payroll.ComputePayroll(ctx, payroll.ComputeRequest{
					EmployeeID: args[0],
					Year:       year,
					Month:      month,
					DryRun:     !persist,
					Actor:      actor(),
				})
				if err != nil {
					return err
				}
				return printBreakdown(b)
			})
		},
	}
	periodFlags(cmd, &year, &month)
	cmd.Flags().BoolVar(&persist, "persist", false, "store the result and consume leave")
	return cmd
}

func runCmd() *cobra.Command {
	var (
		year, month int
		persist     bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute payroll for every employee with an active contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, _ *config.Config, s *app.Services) error {
				report, err := s.Payroll.RunPeriod(ctx, payroll.RunRequest{
					Year:   year,
					Month:  month,
					DryRun: !persist,
					Actor:  actor(),
				})
				if err != nil {
					return err
				}
				if err := printRunReport(report); err != nil {
					return err
				}
				if len(report.Failures) > 0 {
					return fmt.Errorf("%d of %d employees failed", len(report.Failures), len(report.Failures)+len(report.Breakdowns))
				}
				return nil
			})
		},
	}
	periodFlags(cmd, &year, &month)
	cmd.Flags().BoolVar(&persist, "persist", false, "store results and consume leave")
	return cmd
}

func resultCmd() *cobra.Command {
	var year, month int
	var all bool
	cmd := &cobra.Command{
		Use:   "result [employee-id]",
		Short: "Show a stored payroll result",
		Long:  "Show the stored result of one employee, or with --all every stored result of the period.",
		Args: func(cmd *cobra.Command, args []string) error {
			listAll, _ := cmd.Flags().GetBool("all")
			if listAll {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, _ *config.Config, s *app.Services) error {
				if all {
					results, err := s.Payroll.ListResults(ctx, year, month)
					if err != nil {
						return err
					}
					return printPeriodResults(results)
				}

				res, err := s.Payroll.GetResult(ctx, args[0], year, month)
				if err != nil {
					return err
				}
				if err := printBreakdown(res.Breakdown); err != nil {
					return err
				}
				fmt.Printf("computed by %s at %s\n", res.ComputedBy, res.UpdatedAt.Format(time.RFC3339))
				return nil
			})
		},
	}
	periodFlags(cmd, &year, &month)
	cmd.Flags().BoolVar(&all, "all", false, "list every stored result of the period")
	return cmd
}

// snapshotCmd prints the configured rates without touching the database.
func snapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print the rate generation in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			snap, err := cfg.Payroll.Snapshot()
			if err != nil {
				return err
			}
			return printSnapshot(snap)
		},
	}
}
