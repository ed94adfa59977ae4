package assignment

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssignmentType determines which salary formula applies to the assignment.
type AssignmentType string

const (
	// TypeFixedByContract carries a whole-contract amount in SalaryAtTime;
	// the daily rate is prorated over PlannedDays.
	TypeFixedByContract AssignmentType = "fixed_by_contract"

	// The remaining types carry a per-day rate in SalaryAtTime directly.
	TypeFixedByDay     AssignmentType = "fixed_by_day"
	TypeTemporary      AssignmentType = "temporary"
	TypeFixedByCompany AssignmentType = "fixed_by_company"
	TypeSupport        AssignmentType = "support"
)

func (t AssignmentType) Valid() bool {
	switch t {
	case TypeFixedByContract, TypeFixedByDay, TypeTemporary, TypeFixedByCompany, TypeSupport:
		return true
	}
	return false
}

type AssignmentStatus string

const (
	StatusInProgress AssignmentStatus = "in_progress"
	StatusCompleted  AssignmentStatus = "completed"
)

// Assignment is one employee's work placement at one customer. SalaryAtTime
// is the rate basis frozen when the assignment was made; AdditionalAllowance
// is mutable and re-enters payroll on every recalculation.
type Assignment struct {
	ID                  string
	EmployeeID          string
	CustomerID          string
	ContractID          *string
	Type                AssignmentType
	SalaryAtTime        decimal.Decimal
	PlannedDays         int
	AdditionalAllowance decimal.Decimal
	Status              AssignmentStatus
	StartDate           time.Time
	EndDate             *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
