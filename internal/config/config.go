package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the rate generation inputs
type PayrollConfig struct {
	RatesFile       string
	Holidays        []string
	DeductIncomeTax bool
	ContributionCap string
}

// CronConfig toggles the background leave and contract jobs
type CronConfig struct {
	Enabled          bool
	AccrualEnabled   bool
	CarryoverEnabled bool
	ExpiryEnabled    bool
	ExpiryWindowDays int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll configuration
	deductTax, err := getEnvBool("PAYROLL_DEDUCT_INCOME_TAX", false)
	if err != nil {
		return nil, err
	}

	config.Payroll = PayrollConfig{
		RatesFile:       getEnv("PAYROLL_RATES_FILE", ""),
		Holidays:        getEnvSlice("HR_HOLIDAYS"),
		DeductIncomeTax: deductTax,
		ContributionCap: getEnv("PAYROLL_CONTRIBUTION_CAP", ""),
	}

	// Cron configuration
	if config.Cron, err = loadCron(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadCron() (CronConfig, error) {
	var c CronConfig
	var err error

	if c.Enabled, err = getEnvBool("CRON_ENABLED", true); err != nil {
		return c, err
	}
	if c.AccrualEnabled, err = getEnvBool("CRON_LEAVE_ACCRUAL", true); err != nil {
		return c, err
	}
	if c.CarryoverEnabled, err = getEnvBool("CRON_LEAVE_CARRYOVER", true); err != nil {
		return c, err
	}
	if c.ExpiryEnabled, err = getEnvBool("CRON_CONTRACT_EXPIRY", true); err != nil {
		return c, err
	}
	if c.ExpiryWindowDays, err = strconv.Atoi(getEnv("CRON_CONTRACT_EXPIRY_DAYS", "30")); err != nil {
		return c, fmt.Errorf("invalid CRON_CONTRACT_EXPIRY_DAYS: %w", err)
	}
	return c, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Cron.ExpiryWindowDays <= 0 {
		return fmt.Errorf("CRON_CONTRACT_EXPIRY_DAYS must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ========== RATES ==========

// ratesFile mirrors the optional YAML override. Absent keys keep the defaults.
type ratesFile struct {
	Version string `yaml:"version"`

	HoursPerMonthNonAgri *decimal.Decimal `yaml:"hours_per_month_non_agri"`
	HoursPerMonthAgri    *decimal.Decimal `yaml:"hours_per_month_agri"`

	EmployeeContributionRate *decimal.Decimal `yaml:"employee_contribution_rate"`
	EmployerContributionRate *decimal.Decimal `yaml:"employer_contribution_rate"`
	ContributionCap          *string          `yaml:"contribution_cap"`
	HealthContributionRate   *decimal.Decimal `yaml:"health_contribution_rate"`

	NightRate   *decimal.Decimal `yaml:"night_rate"`
	SundayRate  *decimal.Decimal `yaml:"sunday_rate"`
	HolidayRate *decimal.Decimal `yaml:"holiday_rate"`

	OvertimeCapHours       *decimal.Decimal `yaml:"overtime_cap_hours"`
	OvertimeFirstTierHours *decimal.Decimal `yaml:"overtime_first_tier_hours"`
	OvertimeFirstTierRate  *decimal.Decimal `yaml:"overtime_first_tier_rate"`
	OvertimeSecondTierRate *decimal.Decimal `yaml:"overtime_second_tier_rate"`

	WorkDayHours          *decimal.Decimal `yaml:"work_day_hours"`
	LatePenaltyMultiplier *decimal.Decimal `yaml:"late_penalty_multiplier"`
	AbsenceWorkingDays    *decimal.Decimal `yaml:"absence_working_days"`

	Holidays        []string             `yaml:"holidays"`
	TaxBrackets     []payroll.TaxBracket `yaml:"tax_brackets"`
	DeductIncomeTax *bool                `yaml:"deduct_income_tax"`
}

// Snapshot builds the rate generation: defaults, then the rates file, then
// environment overrides. The result is validated.
func (p PayrollConfig) Snapshot() (payroll.Snapshot, error) {
	snap := payroll.DefaultSnapshot()

	if p.RatesFile != "" {
		raw, err := os.ReadFile(p.RatesFile)
		if err != nil {
			return payroll.Snapshot{}, fmt.Errorf("failed to read rates file: %w", err)
		}
		if err := applyRates(&snap, raw); err != nil {
			return payroll.Snapshot{}, err
		}
	}

	if len(p.Holidays) > 0 {
		snap.Holidays = append([]string(nil), p.Holidays...)
	}
	if p.DeductIncomeTax {
		snap.DeductIncomeTax = true
	}
	if p.ContributionCap != "" {
		limit, err := payroll.ParseContributionCap(p.ContributionCap)
		if err != nil {
			return payroll.Snapshot{}, err
		}
		snap.ContributionCap = limit
	}

	if err := snap.Validate(); err != nil {
		return payroll.Snapshot{}, err
	}
	return snap, nil
}

func applyRates(snap *payroll.Snapshot, raw []byte) error {
	var f ratesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("failed to parse rates file: %w", err)
	}

	if f.Version != "" {
		snap.Version = f.Version
	}

	set := func(dst *decimal.Decimal, v *decimal.Decimal) {
		if v != nil {
			*dst = *v
		}
	}
	set(&snap.HoursPerMonthNonAgri, f.HoursPerMonthNonAgri)
	set(&snap.HoursPerMonthAgri, f.HoursPerMonthAgri)
	set(&snap.EmployeeContributionRate, f.EmployeeContributionRate)
	set(&snap.EmployerContributionRate, f.EmployerContributionRate)
	set(&snap.HealthContributionRate, f.HealthContributionRate)
	set(&snap.NightRate, f.NightRate)
	set(&snap.SundayRate, f.SundayRate)
	set(&snap.HolidayRate, f.HolidayRate)
	set(&snap.OvertimeCapHours, f.OvertimeCapHours)
	set(&snap.OvertimeFirstTierHours, f.OvertimeFirstTierHours)
	set(&snap.OvertimeFirstTierRate, f.OvertimeFirstTierRate)
	set(&snap.OvertimeSecondTierRate, f.OvertimeSecondTierRate)
	set(&snap.WorkDayHours, f.WorkDayHours)
	set(&snap.LatePenaltyMultiplier, f.LatePenaltyMultiplier)
	set(&snap.AbsenceWorkingDays, f.AbsenceWorkingDays)

	if f.ContributionCap != nil {
		limit, err := payroll.ParseContributionCap(*f.ContributionCap)
		if err != nil {
			return err
		}
		snap.ContributionCap = limit
	}
	if len(f.Holidays) > 0 {
		snap.Holidays = f.Holidays
	}
	if len(f.TaxBrackets) > 0 {
		snap.TaxBrackets = f.TaxBrackets
	}
	if f.DeductIncomeTax != nil {
		snap.DeductIncomeTax = *f.DeductIncomeTax
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	result := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
