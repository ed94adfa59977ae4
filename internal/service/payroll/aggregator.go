package payroll

import (
	"sort"
	"time"

	"github.com/facilops/payroll-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// AdjustmentTotals are the month's attendance-derived adjustment sums for
// one assignment. Not gated by date: adjustments apply for the whole period
// regardless of whether the day has elapsed.
type AdjustmentTotals struct {
	Bonus    decimal.Decimal
	Penalty  decimal.Decimal
	Support  decimal.Decimal
	Overtime decimal.Decimal
}

// GroupByAssignment partitions attendance records by assignment, each group
// sorted ascending by date.
func GroupByAssignment(records []attendance.Attendance) map[string][]attendance.Attendance {
	groups := make(map[string][]attendance.Attendance)
	for _, r := range records {
		groups[r.AssignmentID] = append(groups[r.AssignmentID], r)
	}
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})
	}
	return groups
}

// RealWorkDays counts records whose date has elapsed relative to asOf. A
// record scheduled for a future date exists but has not been worked yet, so
// it does not count. Comparison is by calendar day.
func RealWorkDays(group []attendance.Attendance, asOf time.Time) int {
	cutoff := truncateToDay(asOf)
	count := 0
	for _, r := range group {
		if !truncateToDay(r.Date).After(cutoff) {
			count++
		}
	}
	return count
}

// MonthlyTotals sums the adjustment fields across the group. An empty group
// yields all zeroes.
func MonthlyTotals(group []attendance.Attendance) AdjustmentTotals {
	totals := AdjustmentTotals{
		Bonus:    decimal.Zero,
		Penalty:  decimal.Zero,
		Support:  decimal.Zero,
		Overtime: decimal.Zero,
	}
	for _, r := range group {
		totals.Bonus = totals.Bonus.Add(r.Bonus)
		totals.Penalty = totals.Penalty.Add(r.Penalty)
		totals.Support = totals.Support.Add(r.SupportCost)
		totals.Overtime = totals.Overtime.Add(r.OvertimeAmount)
	}
	return totals
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
