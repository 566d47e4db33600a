package memory

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
)

type employeeRepository struct {
	db *DB
}

func (db *DB) Employees() employee.Repository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) (out []employee.Employee, err error) {
	r.db.read(func(d *data) {
		out = values(d.employees, filter.Matches, byKey(employeeID))
	})
	return out, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id ids.EmployeeID) (out *employee.Employee, err error) {
	r.db.read(func(d *data) {
		out = ptr(d.employees[id], hasKey(d.employees, id))
	})
	return out, nil
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	var err error
	r.db.write(ctx, func(d *data) {
		if _, ok := d.employees[e.EmployeeID]; ok {
			err = employee.ErrEmployeeIDExists
			return
		}
		d.employees[e.EmployeeID] = e
	})
	return e, err
}

func (r *employeeRepository) Update(ctx context.Context, id ids.EmployeeID, req employee.UpdateEmployeeRequest) (out *employee.Employee, err error) {
	r.db.write(ctx, func(d *data) {
		e, ok := d.employees[id]
		if !ok {
			return
		}
		e = req.Apply(e, r.db.now())
		d.employees[id] = e
		out = &e
	})
	return out, nil
}

// Deactivate reports whether id exists. An already inactive employee stays
// inactive and still counts as found.
func (r *employeeRepository) Deactivate(ctx context.Context, id ids.EmployeeID) (found bool, err error) {
	r.db.write(ctx, func(d *data) {
		e, ok := d.employees[id]
		if !ok {
			return
		}
		d.employees[id] = e.Deactivated(r.db.now())
		found = true
	})
	return found, nil
}

func hasKey[K comparable, V any](m map[K]V, k K) bool {
	_, ok := m[k]
	return ok
}

func employeeID(e employee.Employee) ids.EmployeeID { return e.EmployeeID }
