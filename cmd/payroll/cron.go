package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/payroll-engine/internal/app"
	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/cron"
)

func newScheduler(cfg *config.Config, s *app.Services) *cron.Scheduler {
	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(s.Leave, true, true).RegisterJobs(scheduler)
	cron.NewContractJobs(s.ContractRepo, s.Alerts, cfg.Cron.ExpiryWindowDays).RegisterJobs(scheduler)
	return scheduler
}

func cronCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cron", Short: "Run background jobs by hand"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the registered jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range newScheduler(&config.Config{}, &app.Services{}).Names() {
				fmt.Println(name)
			}
			return nil
		},
	})
	cmd.AddCommand(cronRunCmd())
	return cmd
}

func cronRunCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "run [job]",
		Short: "Run one job, or all of them, once",
		Long: `Jobs only act in their own slot (the first hour of the day, January 1st for
carryover), so running them outside it does nothing unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, cfg *config.Config, s *app.Services) error {
				var job string
				if len(args) == 1 {
					job = args[0]
				}
				if force {
					ctx = cron.WithForce(ctx)
				} else if notice := slotNotice(time.Now(), job); notice != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), notice)
				}

				scheduler := newScheduler(cfg, s)
				if job == "" {
					return scheduler.RunOnce(ctx)
				}
				return scheduler.RunJob(ctx, job)
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "run jobs even outside their slot")
	return cmd
}

// slotNotice explains why an unforced run of job at now would not act. An
// empty job stands for every job.
func slotNotice(now time.Time, job string) string {
	now = now.UTC()
	if !cron.InDailySlot(now) {
		return fmt.Sprintf("notice: %s is outside the 00:00-00:59 UTC slot, jobs will not act (use --force)", now.Format("15:04 MST"))
	}
	if (job == "" || job == "leave_year_end_carryover") && (now.Month() != time.January || now.Day() != 1) {
		return "notice: carryover only acts on January 1st (use --force)"
	}
	return ""
}
