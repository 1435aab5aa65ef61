package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/payroll-engine/internal/app"
	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
)

func contractCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "contract", Short: "Apply contract transitions"}
	cmd.AddCommand(contractRenewCmd())
	cmd.AddCommand(contractCDDCmd())
	cmd.AddCommand(contractCDICmd())
	cmd.AddCommand(contractTerminateCmd())
	return cmd
}

func withContract(cmd *cobra.Command, fn func(ctx context.Context, svc contract.ContractService) (contract.TransitionResponse, error)) error {
	return withServices(cmd.Context(), func(ctx context.Context, _ *config.Config, s *app.Services) error {
		res, err := fn(ctx, s.Contract)
		if err != nil {
			return err
		}
		return printTransition(res)
	})
}

func contractRenewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "renew <contract-id>",
		Short: "Renew a trial period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContract(cmd, func(ctx context.Context, svc contract.ContractService) (contract.TransitionResponse, error) {
				return svc.RenewTrial(ctx, actor(), args[0])
			})
		},
	}
}

func contractCDDCmd() *cobra.Command {
	var months int
	cmd := &cobra.Command{
		Use:   "cdd <contract-id>",
		Short: "Convert a trial into a fixed-term contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContract(cmd, func(ctx context.Context, svc contract.ContractService) (contract.TransitionResponse, error) {
				return svc.ConvertToCDD(ctx, actor(), args[0], contract.ConvertToCDDRequest{Months: months})
			})
		},
	}
	cmd.Flags().IntVar(&months, "months", 0, "duration in months (0 uses the default)")
	return cmd
}

func contractCDICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cdi <contract-id>",
		Short: "Convert a contract into a permanent one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContract(cmd, func(ctx context.Context, svc contract.ContractService) (contract.TransitionResponse, error) {
				return svc.ConvertToCDI(ctx, actor(), args[0])
			})
		},
	}
}

func contractTerminateCmd() *cobra.Command {
	var date, reason string
	cmd := &cobra.Command{
		Use:   "terminate <contract-id>",
		Short: "Terminate a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.TerminateRequest{Reason: reason}
			if date != "" {
				req.Date = &date
			}
			return withContract(cmd, func(ctx context.Context, svc contract.ContractService) (contract.TransitionResponse, error) {
				return svc.Terminate(ctx, actor(), args[0], req)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "termination date YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&reason, "reason", "", "termination reason")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}
