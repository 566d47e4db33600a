package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/training-backend-go/internal/store"
)

// ResultHandler has no Delete. Results are corrected, never removed.
type ResultHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type resultHandlerImpl struct {
	stores
}

func NewResultHandler(registry *store.Registry) ResultHandler {
	return &resultHandlerImpl{stores{registry}}
}

// correctResultRequest is the body of a result correction: the patch plus the
// reason recorded on the change log entry.
type correctResultRequest struct {
	result.UpdateResultRequest
	Reason string `json:"reason"`
}

func (r *correctResultRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := r.UpdateResultRequest.Validate(); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, verrs...)
		} else {
			return err
		}
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: result.ErrReasonRequired.Error(),
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (h *resultHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "ListResults", err)
		return
	}
	list, err := s.FetchResults(r.Context(), result.FilterSchema.Delta(r.URL.Query()))
	if err != nil {
		fail(w, r, "ListResults", err)
		return
	}
	response.List(w, list, result.FilterSchema.QueryString(s.Snapshot().ResultFilter()))
}

func (h *resultHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "result_id", ids.CreateResultID)
	if !ok {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "GetResult", err)
		return
	}
	rec, err := s.FetchResult(r.Context(), id)
	if err != nil {
		fail(w, r, "GetResult", err)
		return
	}
	if rec == nil {
		response.HandleError(w, result.ErrResultNotFound)
		return
	}
	response.Success(w, rec)
}

func (h *resultHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req result.CreateResultRequest
	if !decode(w, r, "CreateResult", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "CreateResult", err)
		return
	}
	created, err := s.CreateResult(r.Context(), req)
	if err != nil {
		fail(w, r, "CreateResult", err)
		return
	}
	slog.Info("Training result recorded", "result_id", created.ResultID, "by", s.Owner())
	response.Created(w, "Training result recorded successfully", created)
}

func (h *resultHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "result_id", ids.CreateResultID)
	if !ok {
		return
	}
	var req correctResultRequest
	if !decode(w, r, "UpdateResult", &req) {
		return
	}
	if err := req.Validate(); err != nil {
		fail(w, r, "UpdateResult", err)
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "UpdateResult", err)
		return
	}
	updated, err := s.UpdateResult(r.Context(), id, req.UpdateResultRequest, strings.TrimSpace(req.Reason))
	if err != nil {
		fail(w, r, "UpdateResult", err)
		return
	}
	if updated == nil {
		response.HandleError(w, result.ErrResultNotFound)
		return
	}
	response.SuccessWithMessage(w, "Training result corrected successfully", updated)
}
