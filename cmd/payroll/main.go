package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmlabs-hris/payroll-engine/internal/app"
	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	notificationService "github.com/cmlabs-hris/payroll-engine/internal/service/notification"
)

var rootCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Payroll engine CLI",
	Long: `payroll computes monthly pay from contracts and attendance, manages
employment contract transitions, and maintains the rolling leave balances.

Configuration is read from the same environment as the API server (DB_*,
JWT_*, PAYROLL_*, HR_HOLIDAYS). Flags override the environment; every flag
can also be set as PAYROLL_<FLAG> with dashes replaced by underscores.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("PAYROLL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().String("actor-id", "", "actor recorded on mutations (defaults to the scheduler identity)")
	rootCmd.PersistentFlags().String("actor-name", "", "display name of the actor")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string (overrides DB_*)")
	rootCmd.PersistentFlags().String("rates-file", "", "YAML rates file (overrides PAYROLL_RATES_FILE)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("actor-id", rootCmd.PersistentFlags().Lookup("actor-id"))
	_ = viper.BindPFlag("actor-name", rootCmd.PersistentFlags().Lookup("actor-name"))
	_ = viper.BindPFlag("database-url", rootCmd.PersistentFlags().Lookup("database-url"))
	_ = viper.BindPFlag("rates-file", rootCmd.PersistentFlags().Lookup("rates-file"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func registerCommands() {
	rootCmd.AddCommand(computeCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(resultCmd())
	rootCmd.AddCommand(snapshotCmd())
	rootCmd.AddCommand(leaveCmd())
	rootCmd.AddCommand(contractCmd())
	rootCmd.AddCommand(cronCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if rates := viper.GetString("rates-file"); rates != "" {
		cfg.Payroll.RatesFile = rates
	}
	return cfg, nil
}

func databaseURL(cfg *config.Config) string {
	if dsn := viper.GetString("database-url"); dsn != "" {
		return dsn
	}
	return cfg.DatabaseURL()
}

func actor() audit.Actor {
	return audit.Actor{ID: viper.GetString("actor-id"), Name: viper.GetString("actor-name")}.OrSystem()
}

// withServices opens the database, runs fn and flushes queued alerts before
// returning.
func withServices(ctx context.Context, fn func(ctx context.Context, cfg *config.Config, s *app.Services) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	snapshot, err := cfg.Payroll.Snapshot()
	if err != nil {
		return err
	}

	db, err := database.NewPostgreSQLDB(databaseURL(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	services := app.NewServices(db, snapshot, notificationService.Config{})
	defer services.Close()

	return fn(ctx, cfg, services)
}
