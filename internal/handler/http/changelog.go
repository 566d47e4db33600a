package http

import (
	"net/http"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
	"github.com/cmlabs-hris/training-backend-go/internal/handler/http/response"
)

type ChangeLogHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type changeLogHandlerImpl struct {
	changeLogs changelog.Repository
}

func NewChangeLogHandler(changeLogs changelog.Repository) ChangeLogHandler {
	return &changeLogHandlerImpl{changeLogs: changeLogs}
}

// List reads the audit trail newest first. The log is shared by every user,
// so the filter is decoded fresh from each request rather than merged.
func (h *changeLogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	limit, ok := intQuery(w, r, "limit", changelog.DefaultLimit, 1, changelog.DefaultLimit*10)
	if !ok {
		return
	}
	filter := changelog.FilterSchema.Decode(r.URL.Query())
	filter.Limit = limit

	entries, err := h.changeLogs.List(r.Context(), filter)
	if err != nil {
		fail(w, r, "ListChangeLogs", err)
		return
	}
	if entries == nil {
		entries = []changelog.Entry{}
	}
	response.SuccessWithMeta(w, entries, &response.Meta{
		Limit:       filter.EffectiveLimit(),
		TotalItems:  len(entries),
		QueryString: changelog.FilterSchema.QueryString(filter),
	})
}
