package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/jackc/pgx/v5"
)

var employeeColumns = `employee_id, name, department, position, building, line, ` + dateText("hire_date") + `, status, updated_at`

var employeeConstraints = constraintErrors{uniqueViolationCode: employee.ErrEmployeeIDExists}

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		e        employee.Employee
		id       string
		hireDate string
		status   string
	)
	err := row.Scan(&id, &e.Name, &e.Department, &e.Position, &e.Building, &e.Line, &hireDate, &status, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, err
	}
	e.EmployeeID = ids.UnsafeEmployeeID(id)
	e.HireDate = datetime.ISODate(hireDate)
	e.Status = employee.Status(status)
	return e, nil
}

// List implements employee.Repository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var w where
	w.eq("department", filter.Department)
	w.eq("position", filter.Position)
	w.eq("building", filter.Building)
	w.eq("line", filter.Line)
	w.eqFold("status", filter.Status)
	w.contains(filter.Search, "name", "employee_id")

	query := `
		SELECT ` + employeeColumns + `
		FROM employees` + w.String() + `
		ORDER BY employee_id
	`
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// GetByID implements employee.Repository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id ids.EmployeeID) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE employee_id = $1
	`
	e, err := scanEmployee(q.QueryRow(ctx, query, string(id)))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create implements employee.Repository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (employee_id, name, department, position, building, line, hire_date, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, $9)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		string(newEmployee.EmployeeID),
		newEmployee.Name,
		newEmployee.Department,
		newEmployee.Position,
		newEmployee.Building,
		newEmployee.Line,
		string(newEmployee.HireDate),
		string(newEmployee.Status),
		newEmployee.UpdatedAt,
	))
	if err != nil {
		return employee.Employee{}, employeeConstraints.translate(err)
	}
	return created, nil
}

// Update implements employee.Repository. The patch is applied to the current
// row, so a missing employee yields nil without touching the table.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id ids.EmployeeID, req employee.UpdateEmployeeRequest) (*employee.Employee, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	next := req.Apply(*current, time.Now().UTC())

	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE employees
		SET name = $2, department = $3, position = $4, building = $5, line = $6,
			hire_date = $7::date, status = $8, updated_at = $9
		WHERE employee_id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		string(id),
		next.Name,
		next.Department,
		next.Position,
		next.Building,
		next.Line,
		string(next.HireDate),
		string(next.Status),
		next.UpdatedAt,
	))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, employeeConstraints.translate(err)
	}
	return &updated, nil
}

// Deactivate implements employee.Repository. The row stays; only its status
// changes.
func (r *employeeRepositoryImpl) Deactivate(ctx context.Context, id ids.EmployeeID) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET status = 'INACTIVE', updated_at = NOW()
		WHERE employee_id = $1
	`
	tag, err := q.Exec(ctx, query, string(id))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
