package payroll

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReportEmployee is the employee data the monthly report needs.
type ReportEmployee struct {
	ID       string
	Name     string
	JobTitle *string
	IsActive bool
}

type ReportRow struct {
	EmployeeID   string
	EmployeeName string
	JobTitle     *string
	Salaries     decimal.Decimal
	Bonuses      decimal.Decimal
	Deductions   decimal.Decimal
	Advances     decimal.Decimal
	Net          decimal.Decimal
	PaymentCount int
}

type MonthlyReport struct {
	Month  time.Time
	Rows   []ReportRow
	Totals ReportRow
}

// BuildMonthlyReport totals a month of payments per employee.
// Rows exist for every active employee and for anyone else who was paid that month.
// Each row's net is salaries + bonuses - deductions - advances.
func BuildMonthlyReport(month time.Time, employees []ReportEmployee, payments []Payment) MonthlyReport {
	rows := make(map[string]*ReportRow, len(employees))
	for _, e := range employees {
		if !e.IsActive {
			continue
		}
		rows[e.ID] = newReportRow(e.ID, e.Name, e.JobTitle)
	}

	byID := make(map[string]ReportEmployee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	for _, p := range payments {
		row, ok := rows[p.EmployeeID]
		if !ok {
			name := p.EmployeeID
			var jobTitle *string
			if e, known := byID[p.EmployeeID]; known {
				name, jobTitle = e.Name, e.JobTitle
			} else if p.EmployeeName != nil {
				name = *p.EmployeeName
			}
			row = newReportRow(p.EmployeeID, name, jobTitle)
			rows[p.EmployeeID] = row
		}

		row.PaymentCount++
		switch p.PaymentType {
		case PaymentTypeSalary:
			row.Salaries = row.Salaries.Add(p.Amount)
		case PaymentTypeBonus:
			row.Bonuses = row.Bonuses.Add(p.Amount)
		case PaymentTypeDeduction:
			row.Deductions = row.Deductions.Add(p.Amount)
		case PaymentTypeAdvance:
			row.Advances = row.Advances.Add(p.Amount)
		}
	}

	report := MonthlyReport{
		Month:  monthStart(month),
		Rows:   make([]ReportRow, 0, len(rows)),
		Totals: *newReportRow("", "Total", nil),
	}
	for _, row := range rows {
		row.Net = row.Salaries.Add(row.Bonuses).Sub(row.Deductions).Sub(row.Advances)

		report.Totals.Salaries = report.Totals.Salaries.Add(row.Salaries)
		report.Totals.Bonuses = report.Totals.Bonuses.Add(row.Bonuses)
		report.Totals.Deductions = report.Totals.Deductions.Add(row.Deductions)
		report.Totals.Advances = report.Totals.Advances.Add(row.Advances)
		report.Totals.Net = report.Totals.Net.Add(row.Net)
		report.Totals.PaymentCount += row.PaymentCount

		report.Rows = append(report.Rows, *row)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		a, b := strings.ToLower(report.Rows[i].EmployeeName), strings.ToLower(report.Rows[j].EmployeeName)
		if a != b {
			return a < b
		}
		return report.Rows[i].EmployeeID < report.Rows[j].EmployeeID
	})

	return report
}

func newReportRow(id, name string, jobTitle *string) *ReportRow {
	return &ReportRow{
		EmployeeID:   id,
		EmployeeName: name,
		JobTitle:     jobTitle,
		Salaries:     decimal.Zero,
		Bonuses:      decimal.Zero,
		Deductions:   decimal.Zero,
		Advances:     decimal.Zero,
		Net:          decimal.Zero,
	}
}
