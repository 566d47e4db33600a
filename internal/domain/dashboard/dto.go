package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
)

// Stats is the headline block of the dashboard.
type Stats struct {
	TotalEmployees    int64           `json:"total_employees"`
	ActiveEmployees   int64           `json:"active_employees"`
	ActivePrograms    int64           `json:"active_programs"`
	SessionsThisMonth int64           `json:"sessions_this_month"`
	TotalResults      int64           `json:"total_results"`
	PassCount         int64           `json:"pass_count"`
	FailCount         int64           `json:"fail_count"`
	AbsentCount       int64           `json:"absent_count"`
	PassRate          decimal.Decimal `json:"pass_rate"`
	AverageScore      decimal.Decimal `json:"average_score"`
	RetrainingCount   int64           `json:"retraining_count"`
	ExpiringSoonCount int64           `json:"expiring_soon_count"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// MonthlyStat counts the results recorded in one month.
type MonthlyStat struct {
	Month    datetime.YearMonth `json:"month"`
	Sessions int64              `json:"sessions"`
	Trained  int64              `json:"trained"`
	Passed   int64              `json:"passed"`
	Failed   int64              `json:"failed"`
	Absent   int64              `json:"absent"`
	PassRate decimal.Decimal    `json:"pass_rate"`
}

// GradeDistribution counts graded results; Ungraded covers results without a grade.
type GradeDistribution struct {
	ProgramCode *ids.ProgramCode `json:"program_code"`
	AA          int64            `json:"aa"`
	A           int64            `json:"a"`
	B           int64            `json:"b"`
	C           int64            `json:"c"`
	Ungraded    int64            `json:"ungraded"`
	Total       int64            `json:"total"`
}

// Add counts n results carrying grade g. A nil or unknown grade is ungraded.
func (d *GradeDistribution) Add(g *program.Grade, n int64) {
	d.Total += n
	if g == nil {
		d.Ungraded += n
		return
	}
	switch *g {
	case program.GradeAA:
		d.AA += n
	case program.GradeA:
		d.A += n
	case program.GradeB:
		d.B += n
	case program.GradeC:
		d.C += n
	default:
		d.Ungraded += n
	}
}

type RetrainingTarget struct {
	ResultID     ids.ResultID     `json:"result_id"`
	EmployeeID   ids.EmployeeID   `json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	Department   string           `json:"department"`
	ProgramCode  ids.ProgramCode  `json:"program_code"`
	ProgramName  string           `json:"program_name"`
	TrainingDate datetime.ISODate `json:"training_date"`
	Result       result.Outcome   `json:"result"`
	Score        *float64         `json:"score"`
}

type ExpiringItem struct {
	ResultID     ids.ResultID     `json:"result_id"`
	EmployeeID   ids.EmployeeID   `json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	Department   string           `json:"department"`
	ProgramCode  ids.ProgramCode  `json:"program_code"`
	ProgramName  string           `json:"program_name"`
	TrainingDate datetime.ISODate `json:"training_date"`
	ExpiresOn    datetime.ISODate `json:"expires_on"`
	DaysLeft     int              `json:"days_left"`
}

// Rate returns part/total as a percentage rounded to one decimal place.
func Rate(part, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(total)).Round(1)
}
