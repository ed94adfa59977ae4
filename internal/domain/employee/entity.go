package employee

import "time"

// Employee is owned by the external staff-records service; payroll only
// resolves identity and display fields from it.
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Status       EmploymentStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
)
