package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one employee's work-day entry against one assignment.
// Created by the external attendance-management flow; payroll reads and
// aggregates it, and editing one is what triggers a recalculation.
type Attendance struct {
	ID             string
	AssignmentID   string
	EmployeeID     string
	CustomerID     string
	Date           time.Time
	WorkHours      decimal.Decimal
	Bonus          decimal.Decimal
	Penalty        decimal.Decimal
	SupportCost    decimal.Decimal
	OvertimeAmount decimal.Decimal
	IsOvertime     bool
	Description    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
