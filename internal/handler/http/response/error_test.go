package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/newhire"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "name", Message: "name is required"}}, http.StatusUnprocessableEntity, CodeValidation},
		{"wrapped validation", fmt.Errorf("create: %w", validator.ValidationErrors{{Field: "x", Message: "bad"}}), http.StatusUnprocessableEntity, CodeValidation},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized},
		{"outside domain", auth.ErrEmailNotAllowed, http.StatusForbidden, CodeForbidden},
		{"google off", auth.ErrGoogleSignInDisabled, http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"employee missing", fmt.Errorf("get: %w", employee.ErrEmployeeNotFound), http.StatusNotFound, CodeNotFound},
		{"duplicate employee", employee.ErrEmployeeIDExists, http.StatusConflict, CodeConflict},
		{"unknown program", session.ErrUnknownProgram, http.StatusBadRequest, CodeBadRequest},
		{"result missing", result.ErrResultNotFound, http.StatusNotFound, CodeNotFound},
		{"resigned twice", newhire.ErrTraineeAlreadyResigned, http.StatusConflict, CodeConflict},
		{"cancelled", context.Canceled, http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"anything else", errors.New("pool exhausted"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleErrorHidesInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("dial tcp 10.0.0.7:5432: connection refused"))

	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
}

func TestListNeverWritesNull(t *testing.T) {
	rec := httptest.NewRecorder()
	List[string](rec, nil, "?department=Assembly")

	var body struct {
		Data []string `json:"data"`
		Meta Meta     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body.Data)
	assert.Equal(t, 0, body.Meta.TotalItems)
	assert.Equal(t, "?department=Assembly", body.Meta.QueryString)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}
