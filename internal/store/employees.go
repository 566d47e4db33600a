package store

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
)

// FetchEmployees lists employees with delta merged over the last used filter.
func (s *Store) FetchEmployees(ctx context.Context, delta employee.EmployeeFilter) ([]employee.Employee, error) {
	filter := employee.FilterSchema.Merge(s.current().employeeFilter, delta)
	return fetch(ctx, s, CategoryEmployees, "FetchEmployees",
		func(ctx context.Context) ([]employee.Employee, error) {
			return s.backend.Employees.List(ctx, filter)
		},
		func(st *state, list []employee.Employee) {
			st.employees = st.employees.replaceView(list, employeeKey)
			st.employeeFilter = filter
		})
}

// FetchEmployee loads one employee into the table and selects it. A missing
// employee clears the selection and returns nil.
func (s *Store) FetchEmployee(ctx context.Context, id ids.EmployeeID) (*employee.Employee, error) {
	return fetch(ctx, s, CategoryEmployees, "FetchEmployee",
		func(ctx context.Context) (*employee.Employee, error) {
			return s.backend.Employees.GetByID(ctx, id)
		},
		func(st *state, e *employee.Employee) {
			st.selectedEmployee = nil
			if e != nil {
				st.employees = st.employees.upsert(e.EmployeeID, *e)
				sel := e.EmployeeID
				st.selectedEmployee = &sel
			}
		})
}

func (s *Store) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	return createOp(ctx, s, "CreateEmployee", changelog.EntityEmployee,
		func(e employee.Employee) string { return string(e.EmployeeID) },
		func(ctx context.Context) (employee.Employee, error) {
			return s.backend.Employees.Create(ctx, req.ToEntity(s.now()))
		},
		func(st *state, e employee.Employee) {
			st.employees = st.employees.appendNew(e.EmployeeID, e)
		})
}

// UpdateEmployee patches id. A nil result means the backend did not find it;
// state is left alone in that case.
func (s *Store) UpdateEmployee(ctx context.Context, id ids.EmployeeID, patch employee.UpdateEmployeeRequest) (*employee.Employee, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return updateOp(ctx, s, "UpdateEmployee", changelog.EntityEmployee, string(id), "",
		s.employeeBefore(id),
		func(ctx context.Context) (*employee.Employee, error) {
			return s.backend.Employees.Update(ctx, id, patch)
		},
		func(before, after employee.Employee) employee.Employee {
			after.EmployeeID = before.EmployeeID
			return after
		},
		s.putEmployee)
}

// DeactivateEmployee is the soft delete of an employee: its status becomes
// INACTIVE and it stays in every list.
func (s *Store) DeactivateEmployee(ctx context.Context, id ids.EmployeeID) (bool, error) {
	return softDeleteOp(ctx, s, "DeactivateEmployee", changelog.EntityEmployee, string(id),
		s.employeeBefore(id),
		func(ctx context.Context) (bool, error) { return s.backend.Employees.Deactivate(ctx, id) },
		func(ctx context.Context) (*employee.Employee, error) { return s.backend.Employees.GetByID(ctx, id) },
		func(e employee.Employee) employee.Employee { return e.Deactivated(s.now()) },
		s.putEmployee)
}

func (s *Store) employeeBefore(id ids.EmployeeID) func(ctx context.Context) (*employee.Employee, error) {
	return func(ctx context.Context) (*employee.Employee, error) {
		return lookup(ctx, s.current().employees, id, s.backend.Employees.GetByID)
	}
}

func (s *Store) putEmployee(st *state, e employee.Employee) {
	st.employees = st.employees.upsert(e.EmployeeID, e)
}
