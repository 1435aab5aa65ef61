package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-engine/internal/app"
	"github.com/cmlabs-hris/payroll-engine/internal/config"
)

func TestNewScheduler_RegistersEveryJob(t *testing.T) {
	names := newScheduler(&config.Config{}, &app.Services{}).Names()
	assert.Equal(t, []string{"contract_expiry_alerts", "leave_monthly_accrual", "leave_year_end_carryover"}, names)
}

func TestCronRunCmd_Force(t *testing.T) {
	cmd := cronRunCmd()
	force, err := cmd.Flags().GetBool("force")
	require.NoError(t, err)
	assert.False(t, force)
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}))
}

func TestSlotNotice(t *testing.T) {
	assert.Contains(t, slotNotice(time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC), ""), "--force")
	assert.Contains(t, slotNotice(time.Date(2025, 3, 10, 0, 30, 0, 0, time.UTC), ""), "January 1st")
	assert.Empty(t, slotNotice(time.Date(2025, 3, 10, 0, 30, 0, 0, time.UTC), "leave_monthly_accrual"))
	assert.Empty(t, slotNotice(time.Date(2026, 1, 1, 0, 5, 0, 0, time.UTC), ""))
}

func TestComputeCmd_Flags(t *testing.T) {
	cmd := computeCmd()

	persist, err := cmd.Flags().GetBool("persist")
	require.NoError(t, err)
	assert.False(t, persist, "compute must default to a dry run")

	month, err := cmd.Flags().GetInt("month")
	require.NoError(t, err)
	assert.True(t, month >= 1 && month <= 12)

	assert.Error(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"emp-1"}))
}

func TestResultCmd_AllTakesNoEmployee(t *testing.T) {
	cmd := resultCmd()
	assert.Error(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"emp-1"}))

	require.NoError(t, cmd.Flags().Set("all", "true"))
	assert.NoError(t, cmd.Args(cmd, nil))
	assert.Error(t, cmd.Args(cmd, []string{"emp-1"}))
}

func TestMigrateCmd_RejectsUnknownAction(t *testing.T) {
	cmd := migrateCmd()
	assert.Error(t, cmd.Args(cmd, []string{"sideways"}))
	assert.NoError(t, cmd.Args(cmd, []string{"version"}))
	assert.Error(t, cmd.Args(cmd, []string{"up", "down"}))
}

func TestTerminateCmd_RequiresReason(t *testing.T) {
	cmd := contractTerminateCmd()
	flag := cmd.Flags().Lookup("reason")
	require.NotNil(t, flag)
	assert.Equal(t, []string{"true"}, flag.Annotations["cobra_annotation_bash_completion_one_required_flag"])
}
