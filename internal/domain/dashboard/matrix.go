package dashboard

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/frozen"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
)

type CellStatus string

const (
	CellCompleted CellStatus = "COMPLETED"
	CellExpiring  CellStatus = "EXPIRING"
	CellExpired   CellStatus = "EXPIRED"
	CellFailed    CellStatus = "FAILED"
	CellNotTaken  CellStatus = "NOT_TAKEN"
)

// ProgressMatrixFilter narrows the employee rows (department, position,
// building, line) and the program columns (category, program_codes).
type ProgressMatrixFilter struct {
	Department   *string  `json:"department,omitempty"`
	Position     *string  `json:"position,omitempty"`
	Building     *string  `json:"building,omitempty"`
	Line         *string  `json:"line,omitempty"`
	Category     *string  `json:"category,omitempty"`
	ProgramCodes []string `json:"program_codes,omitempty"`
}

var MatrixFilterSchema = queryfilter.New(
	queryfilter.String("department", "all", func(f *ProgressMatrixFilter) **string { return &f.Department }),
	queryfilter.String("position", "all", func(f *ProgressMatrixFilter) **string { return &f.Position }),
	queryfilter.String("building", "all", func(f *ProgressMatrixFilter) **string { return &f.Building }),
	queryfilter.String("line", "all", func(f *ProgressMatrixFilter) **string { return &f.Line }),
	queryfilter.String("category", "all", func(f *ProgressMatrixFilter) **string { return &f.Category }),
	queryfilter.List("program_codes", []string{}, func(f *ProgressMatrixFilter) *[]string { return &f.ProgramCodes }),
)

// EmployeeFilter is the row part of f, restricted to active employees.
func (f ProgressMatrixFilter) EmployeeFilter() employee.EmployeeFilter {
	return employee.EmployeeFilter{
		Department: f.Department,
		Position:   f.Position,
		Building:   f.Building,
		Line:       f.Line,
		Status:     queryfilter.Ptr(string(employee.StatusActive)),
	}
}

func (f ProgressMatrixFilter) matchesProgram(p program.Program) bool {
	if !p.IsActive {
		return false
	}
	if v, ok := queryfilter.Active(f.Category); ok && string(p.Category) != v {
		return false
	}
	if codes, ok := queryfilter.ActiveList(f.ProgramCodes); ok && !slices.Contains(codes, string(p.Code)) {
		return false
	}
	return true
}

type ProgramColumn struct {
	Code     ids.ProgramCode  `json:"code"`
	Name     string           `json:"name"`
	Category program.Category `json:"category"`
}

type MatrixCell struct {
	ProgramCode  ids.ProgramCode   `json:"program_code"`
	Status       CellStatus        `json:"status"`
	Required     bool              `json:"required"`
	ResultID     *ids.ResultID     `json:"result_id,omitempty"`
	TrainingDate *datetime.ISODate `json:"training_date,omitempty"`
	Score        *float64          `json:"score,omitempty"`
	Grade        *program.Grade    `json:"grade,omitempty"`
	ExpiresOn    *datetime.ISODate `json:"expires_on,omitempty"`
}

type MatrixRow struct {
	EmployeeID     ids.EmployeeID  `json:"employee_id"`
	Name           string          `json:"name"`
	Department     string          `json:"department"`
	Position       string          `json:"position"`
	Cells          []MatrixCell    `json:"cells"`
	CompletedCount int             `json:"completed_count"`
	CompletionRate decimal.Decimal `json:"completion_rate"`
}

type ProgressMatrix struct {
	Programs    []ProgramColumn `json:"programs"`
	Rows        []MatrixRow     `json:"rows"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// BuildProgressMatrix crosses active employees with active programs. Each cell
// reflects the newest result for that pair. A cell counts as completed while
// its certification is still valid, EXPIRING included.
func BuildProgressMatrix(
	employees []employee.Employee,
	programs []program.Program,
	records []result.Record,
	filter ProgressMatrixFilter,
	now time.Time,
	expiringWithinDays int,
) ProgressMatrix {
	rowFilter := filter.EmployeeFilter()

	var columns []program.Program
	for _, p := range programs {
		if filter.matchesProgram(p) {
			columns = append(columns, p)
		}
	}
	slices.SortFunc(columns, func(a, b program.Program) int { return cmp.Compare(a.Code, b.Code) })

	latest := latestResults(records)
	m := ProgressMatrix{
		Programs:    make([]ProgramColumn, 0, len(columns)),
		Rows:        []MatrixRow{},
		GeneratedAt: now,
	}
	for _, p := range columns {
		m.Programs = append(m.Programs, ProgramColumn{Code: p.Code, Name: p.Name, Category: p.Category})
	}

	for _, e := range employees {
		if !rowFilter.Matches(e) {
			continue
		}
		row := MatrixRow{
			EmployeeID: e.EmployeeID,
			Name:       e.Name,
			Department: e.Department,
			Position:   e.Position,
			Cells:      make([]MatrixCell, 0, len(columns)),
		}
		for _, p := range columns {
			cell := buildCell(p, latest, e, now, expiringWithinDays)
			if cell.Status == CellCompleted || cell.Status == CellExpiring {
				row.CompletedCount++
			}
			row.Cells = append(row.Cells, cell)
		}
		row.CompletionRate = Rate(int64(row.CompletedCount), int64(len(columns)))
		m.Rows = append(m.Rows, row)
	}
	slices.SortFunc(m.Rows, func(a, b MatrixRow) int { return cmp.Compare(a.EmployeeID, b.EmployeeID) })
	return m
}

func buildCell(p program.Program, latest map[cellKey]result.Record, e employee.Employee, now time.Time, expiringWithinDays int) MatrixCell {
	cell := MatrixCell{
		ProgramCode: p.Code,
		Status:      CellNotTaken,
		Required:    p.TargetPositions.Len() == 0 || frozen.Contains(p.TargetPositions, e.Position),
	}
	r, ok := latest[cellKey{e.EmployeeID, p.Code}]
	if !ok {
		return cell
	}

	id, date := r.ResultID, r.TrainingDate
	cell.ResultID = &id
	cell.TrainingDate = &date
	cell.Score = r.Score
	cell.Grade = r.Grade

	if !r.Passed() {
		cell.Status = CellFailed
		return cell
	}
	cell.Status = CellCompleted
	if expiresOn, ok := r.ExpiresOn(p.ValidityMonths); ok {
		cell.ExpiresOn = &expiresOn
		switch {
		case datetime.IsExpiredFrom(expiresOn, now):
			cell.Status = CellExpired
		case datetime.IsExpiringFrom(expiresOn, expiringWithinDays, now):
			cell.Status = CellExpiring
		}
	}
	return cell
}
