package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	return tw
}

func printBreakdown(b payroll.Breakdown) error {
	if viper.GetBool("json") {
		return printJSON(b)
	}
	tw := newTable()
	tw.SetTitle(fmt.Sprintf("%s %04d-%02d (rates %s)", b.EmployeeID, b.Year, b.Month, b.SnapshotVersion))
	tw.AppendHeader(table.Row{"Item", "Amount"})
	if !b.HasContract {
		tw.AppendRow(table.Row{"contract", "none active"})
	}
	tw.AppendRows([]table.Row{
		{"salary base", b.SalaryBase.StringFixed(2)},
		{"hours worked", b.HoursWorked.StringFixed(2)},
		{"overtime hours", b.OvertimeHours.StringFixed(2)},
		{"hourly rate", b.HourlyRate.StringFixed(2)},
		{"overtime pay", b.Details.OvertimePay.StringFixed(2)},
		{"night premium", b.Details.NightPremium.StringFixed(2)},
		{"sunday premium", b.Details.SundayPremium.StringFixed(2)},
		{"holiday premium", b.Details.HolidayPremium.StringFixed(2)},
	})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"gross", b.Gross.StringFixed(2)})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"employee contribution", b.EmployeeContribution.StringFixed(2)},
		{"health contribution", b.HealthContribution.StringFixed(2)},
		{"income tax", b.IncomeTax.StringFixed(2)},
		{fmt.Sprintf("absences (%d days)", b.AbsenceDays), b.AbsenceDeduction.StringFixed(2)},
		{"total deductions", b.TotalDeductions.StringFixed(2)},
	})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"net", b.Net.StringFixed(2)})
	tw.AppendFooter(table.Row{"employer contribution", b.EmployerContribution.StringFixed(2)})
	tw.Render()
	if b.DryRun {
		fmt.Println("dry run: nothing was stored")
	}
	return nil
}

func printRunReport(r payroll.RunReport) error {
	if viper.GetBool("json") {
		return printJSON(r)
	}
	tw := newTable()
	tw.SetTitle(fmt.Sprintf("Payroll %04d-%02d", r.Year, r.Month))
	tw.AppendHeader(table.Row{"Employee", "Gross", "Deductions", "Net"})
	for _, b := range r.Breakdowns {
		tw.AppendRow(table.Row{b.EmployeeID, b.Gross.StringFixed(2), b.TotalDeductions.StringFixed(2), b.Net.StringFixed(2)})
	}
	tw.AppendFooter(table.Row{"total", r.TotalGross.StringFixed(2), "", r.TotalNet.StringFixed(2)})
	tw.Render()

	if len(r.Failures) > 0 {
		ft := newTable()
		ft.SetTitle("Failures")
		ft.AppendHeader(table.Row{"Employee", "Error"})
		for _, f := range r.Failures {
			ft.AppendRow(table.Row{f.EmployeeID, f.Error})
		}
		ft.Render()
	}
	return nil
}

func printPeriodResults(r payroll.PeriodResultsResponse) error {
	if viper.GetBool("json") {
		return printJSON(r)
	}
	tw := newTable()
	tw.SetTitle(fmt.Sprintf("Stored payroll %04d-%02d", r.Year, r.Month))
	tw.AppendHeader(table.Row{"Employee", "Gross", "Deductions", "Net", "Computed by", "Updated"})
	gross, net := decimal.Zero, decimal.Zero
	for _, res := range r.Results {
		b := res.Breakdown
		gross = gross.Add(b.Gross)
		net = net.Add(b.Net)
		tw.AppendRow(table.Row{b.EmployeeID, b.Gross.StringFixed(2), b.TotalDeductions.StringFixed(2), b.Net.StringFixed(2),
			res.ComputedBy, res.UpdatedAt.Format(time.RFC3339)})
	}
	tw.AppendFooter(table.Row{fmt.Sprintf("%d results", r.Total), gross.StringFixed(2), "", net.StringFixed(2), "", ""})
	tw.Render()
	return nil
}

func printSnapshot(s payroll.Snapshot) error {
	if viper.GetBool("json") {
		return printJSON(s)
	}
	tw := newTable()
	tw.SetTitle("Rates " + s.Version)
	tw.AppendHeader(table.Row{"Parameter", "Value"})
	tw.AppendRows([]table.Row{
		{"hours per month (non-agri)", s.HoursPerMonthNonAgri.String()},
		{"hours per month (agri)", s.HoursPerMonthAgri.String()},
		{"employee contribution rate", s.EmployeeContributionRate.String()},
		{"employer contribution rate", s.EmployerContributionRate.String()},
		{"health contribution rate", s.HealthContributionRate.String()},
		{"contribution cap", s.ContributionCap.String()},
		{"night rate", s.NightRate.String()},
		{"sunday rate", s.SundayRate.String()},
		{"holiday rate", s.HolidayRate.String()},
		{"overtime cap hours", s.OvertimeCapHours.String()},
		{"work day hours", s.WorkDayHours.String()},
		{"late penalty multiplier", s.LatePenaltyMultiplier.String()},
		{"absence working days", s.AbsenceWorkingDays.String()},
		{"deduct income tax", s.DeductIncomeTax},
		{"holidays", len(s.Holidays)},
	})
	tw.Render()
	return nil
}

func printBalances(s leave.BalanceSummaryResponse) error {
	if viper.GetBool("json") {
		return printJSON(s)
	}
	tw := newTable()
	tw.SetTitle(fmt.Sprintf("Leave %s as of %d", s.EmployeeID, s.AsOfYear))
	tw.AppendHeader(table.Row{"Year", "Entitlement", "Used", "Available"})
	for _, b := range s.Balances {
		tw.AppendRow(table.Row{b.Year, b.EntitlementDays.String(), b.UsedDays.String(), b.AvailableDays.String()})
	}
	tw.AppendFooter(table.Row{"", "", "total", s.TotalAvailable.String()})
	tw.Render()
	return nil
}

func printTransition(t contract.TransitionResponse) error {
	if viper.GetBool("json") {
		return printJSON(t)
	}
	c := t.Contract
	end := "-"
	if c.EndDate != nil {
		end = *c.EndDate
	}
	tw := newTable()
	tw.AppendHeader(table.Row{"Contract", "State", "Active", "Start", "End", "Renewals"})
	tw.AppendRow(table.Row{c.ID, c.State, c.Active, c.StartDate, end, fmt.Sprintf("%d/%d", c.TrialRenewals, c.MaxTrialRenewals)})
	tw.Render()

	et := newTable()
	et.AppendHeader(table.Row{"Action", "From", "To", "Details", "Actor"})
	for _, e := range t.Events {
		et.AppendRow(table.Row{e.Action, e.FromState, e.ToState, e.Details, e.ActorID})
	}
	et.Render()
	return nil
}
