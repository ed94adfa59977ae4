package assignment

import "errors"

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrInvalidPlannedDays = errors.New("planned days must be positive for contract-prorated assignments")
	ErrInvalidType        = errors.New("invalid assignment type")
)
