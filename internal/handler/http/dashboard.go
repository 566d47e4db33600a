package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/training-backend-go/internal/store"
)

type DashboardHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	Grades(w http.ResponseWriter, r *http.Request)
	Retraining(w http.ResponseWriter, r *http.Request)
	Expiring(w http.ResponseWriter, r *http.Request)
	Matrix(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	stores
}

func NewDashboardHandler(registry *store.Registry) DashboardHandler {
	return &dashboardHandlerImpl{stores{registry}}
}

// overviewResponse is everything FetchDashboard refreshes, read back from the
// caller's snapshot.
type overviewResponse struct {
	Stats        *dashboard.Stats             `json:"stats"`
	Monthly      []dashboard.MonthlyStat      `json:"monthly"`
	Retraining   []dashboard.RetrainingTarget `json:"retraining"`
	ExpiringSoon []dashboard.ExpiringItem     `json:"expiring_soon"`
}

func (h *dashboardHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "DashboardOverview", err)
		return
	}
	if err := s.FetchDashboard(r.Context()); err != nil {
		fail(w, r, "DashboardOverview", err)
		return
	}
	snap := s.Snapshot()
	response.Success(w, overviewResponse{
		Stats:        snap.Stats(),
		Monthly:      snap.MonthlyStats(),
		Retraining:   snap.RetrainingTargets(),
		ExpiringSoon: snap.ExpiringSoon(),
	})
}

func (h *dashboardHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "DashboardStats", err)
		return
	}
	stats, err := s.FetchDashboardStats(r.Context())
	if err != nil {
		fail(w, r, "DashboardStats", err)
		return
	}
	response.Success(w, stats)
}

// Monthly takes ?year=, defaulting to the current year.
func (h *dashboardHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	year, ok := intQuery(w, r, "year", 0, 1900, 9999)
	if !ok {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "DashboardMonthly", err)
		return
	}
	if year == 0 {
		year = s.Now().Year()
	}
	months, err := s.FetchMonthlyStats(r.Context(), year)
	if err != nil {
		fail(w, r, "DashboardMonthly", err)
		return
	}
	response.Success(w, months)
}

// Grades takes an optional ?program_code=.
func (h *dashboardHandlerImpl) Grades(w http.ResponseWriter, r *http.Request) {
	var code *ids.ProgramCode
	if raw := r.URL.Query().Get("program_code"); raw != "" && raw != "all" {
		c, ok := ids.CreateProgramCode(raw)
		if !ok {
			response.HandleError(w, validator.ValidationErrors{{Field: "program_code", Message: "program_code is malformed"}})
			return
		}
		code = &c
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "DashboardGrades", err)
		return
	}
	dist, err := s.FetchGradeDistribution(r.Context(), code)
	if err != nil {
		fail(w, r, "DashboardGrades", err)
		return
	}
	response.Success(w, dist)
}

func (h *dashboardHandlerImpl) Retraining(w http.ResponseWriter, r *http.Request) {
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "DashboardRetraining", err)
		return
	}
	targets, err := s.FetchRetrainingTargets(r.Context())
	if err != nil {
		fail(w, r, "DashboardRetraining", err)
		return
	}
	response.List(w, targets, "")
}

// Expiring takes ?within_days=; without it the configured window applies.
func (h *dashboardHandlerImpl) Expiring(w http.ResponseWriter, r *http.Request) {
	days, ok := intQuery(w, r, "within_days", 0, 1, 3650)
	if !ok {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "DashboardExpiring", err)
		return
	}
	items, err := s.FetchExpiringSoon(r.Context(), days)
	if err != nil {
		fail(w, r, "DashboardExpiring", err)
		return
	}
	response.List(w, items, "")
}

func (h *dashboardHandlerImpl) Matrix(w http.ResponseWriter, r *http.Request) {
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "ProgressMatrix", err)
		return
	}
	matrix, err := s.FetchProgressMatrix(r.Context(), dashboard.MatrixFilterSchema.Delta(r.URL.Query()))
	if err != nil {
		fail(w, r, "ProgressMatrix", err)
		return
	}
	response.SuccessWithMeta(w, matrix, &response.Meta{
		TotalItems:  len(matrix.Rows),
		QueryString: dashboard.MatrixFilterSchema.QueryString(s.Snapshot().ProgressMatrixFilter()),
	})
}

// intQuery reads an optional integer parameter bounded by [min, max]. def is
// returned when the parameter is absent.
func intQuery(w http.ResponseWriter, r *http.Request, key string, def, min, max int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		response.HandleError(w, validator.ValidationErrors{{
			Field:   key,
			Message: key + " must be a number between " + strconv.Itoa(min) + " and " + strconv.Itoa(max),
		}})
		return 0, false
	}
	return v, true
}
