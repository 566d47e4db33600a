package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmployee(t *testing.T) {
	updated := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	got := NormalizeEmployee(LegacyEmployee{
		EmployeeID: " EMP001 ",
		Name:       "Nguyen Van A",
		Department: "Assembly",
		Position:   "Operator",
		Building:   "B1",
		Line:       "L3",
		HireDate:   "2023-05-02T00:00:00Z",
		Status:     "inactive",
		UpdatedAt:  updated,
	})

	assert.Equal(t, "EMP001", string(got.EmployeeID))
	assert.Equal(t, "2023-05-02", string(got.HireDate))
	assert.Equal(t, StatusInactive, got.Status)
	assert.Equal(t, updated, got.UpdatedAt)
}

func TestNormalizeEmployeeUnknownStatusIsActive(t *testing.T) {
	assert.Equal(t, StatusActive, NormalizeEmployee(LegacyEmployee{Status: ""}).Status)
	assert.Equal(t, StatusActive, NormalizeEmployee(LegacyEmployee{Status: "Active"}).Status)
}

func TestNormalizeEmployees(t *testing.T) {
	got := NormalizeEmployees([]LegacyEmployee{
		{EmployeeID: "EMP001", HireDate: "2024-01-15"},
		{EmployeeID: "EMP002", HireDate: "garbage"},
	})

	assert.Len(t, got, 2)
	assert.Equal(t, "2024-01-15", string(got[0].HireDate))
	assert.Equal(t, "garbage", string(got[1].HireDate))
	assert.Empty(t, NormalizeEmployees(nil))
}

func TestEmployeeFilterMatches(t *testing.T) {
	e := Employee{EmployeeID: "EMP001", Name: "Kim Min", Department: "Assembly", Status: StatusActive}
	all := "all"
	dept := "Assembly"
	other := "Paint"
	search := "min"
	status := "active"

	assert.True(t, EmployeeFilter{}.Matches(e))
	assert.True(t, EmployeeFilter{Department: &all, Search: &search, Status: &status}.Matches(e))
	assert.True(t, EmployeeFilter{Department: &dept}.Matches(e))
	assert.False(t, EmployeeFilter{Department: &other}.Matches(e))
}

func TestUpdateEmployeeRequestApply(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	name := "  Renamed "
	base := Employee{EmployeeID: "EMP001", Name: "Old", Department: "Assembly"}

	got := UpdateEmployeeRequest{Name: &name}.Apply(base, now)

	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "Assembly", got.Department)
	assert.Equal(t, now, got.UpdatedAt)
	assert.Equal(t, "Old", base.Name)
}

func TestCreateEmployeeRequestValidate(t *testing.T) {
	valid := CreateEmployeeRequest{EmployeeID: "EMP001", Name: "A", Department: "D", Position: "P", HireDate: "2024-01-01"}
	assert.NoError(t, valid.Validate())

	invalid := CreateEmployeeRequest{EmployeeID: "emp1", HireDate: "01/01/2024"}
	err := invalid.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "employee_id")
	assert.Contains(t, err.Error(), "hire_date")
}
