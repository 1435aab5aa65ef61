package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmlabs-hris/payroll-engine/internal/app"
	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
)

func leaveCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "leave", Short: "Manage leave balances"}
	cmd.AddCommand(leaveBalancesCmd())
	cmd.AddCommand(leaveCarryoverCmd())
	cmd.AddCommand(leaveAccrueCmd())
	return cmd
}

func leaveBalancesCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "balances <employee-id>",
		Short: "Show the rolling leave balances of an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, _ *config.Config, s *app.Services) error {
				summary, err := s.Leave.GetBalances(ctx, args[0], year)
				if err != nil {
					return err
				}
				return printBalances(summary)
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "last year of the window")
	return cmd
}

func leaveCarryoverCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "carryover",
		Short: "Carry unused leave of the two previous years into --year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, _ *config.Config, s *app.Services) error {
				report, err := s.Leave.ProcessCarryover(ctx, actor(), leave.CarryoverRequest{Year: year})
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(report)
				}
				tw := newTable()
				tw.SetTitle(fmt.Sprintf("Carryover into %d", report.Year))
				tw.AppendHeader(table.Row{"Employee", "Carried days", "Purged rows"})
				for _, e := range report.Entries {
					tw.AppendRow(table.Row{e.EmployeeID, e.CarriedDays.String(), e.PurgedRows})
				}
				tw.AppendFooter(table.Row{"processed", report.Processed, ""})
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "target year")
	return cmd
}

func leaveAccrueCmd() *cobra.Command {
	var year, month int
	cmd := &cobra.Command{
		Use:   "accrue",
		Short: "Credit the monthly leave entitlement",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, _ *config.Config, s *app.Services) error {
				report, err := s.Leave.AccrueMonth(ctx, leave.AccrueRequest{Year: year, Month: month})
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(report)
				}
				fmt.Printf("%04d-%02d: %d credited, %d already accrued\n", report.Year, report.Month, len(report.Credited), len(report.Skipped))
				return nil
			})
		},
	}
	periodFlags(cmd, &year, &month)
	return cmd
}
