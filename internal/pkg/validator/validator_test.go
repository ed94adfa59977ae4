package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("12345"))
	assert.False(t, IsNumeric("12.45"))
	assert.False(t, IsNumeric("12a"))
	assert.False(t, IsNumeric(""))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-03-15")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), date)

	_, ok = IsValidDate("15-03-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestIsValidPeriod(t *testing.T) {
	assert.True(t, IsValidPeriod(1, 2025))
	assert.True(t, IsValidPeriod(12, 2000))
	assert.False(t, IsValidPeriod(0, 2025))
	assert.False(t, IsValidPeriod(13, 2025))
	assert.False(t, IsValidPeriod(6, 1999))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "must be 1-12"},
		{Field: "employee_id", Message: "is required"},
	}

	assert.Equal(t, "month: must be 1-12; employee_id: is required", errs.Error())

	m := errs.ToMap()
	assert.Equal(t, "must be 1-12", m["month"])
	assert.Equal(t, "is required", m["employee_id"])
}
