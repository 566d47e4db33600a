package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/newhire"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrNotSignedIn):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenMissing):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrEmailNotAllowed):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrStateMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrGoogleSignInDisabled):
		ServiceUnavailable(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrOAuthProviderIDExists):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrEmailDomainNotAllowed):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee id already exists")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, err.Error())

	// Program domain errors
	case errors.Is(err, program.ErrProgramNotFound):
		NotFound(w, "Training program not found")
	case errors.Is(err, program.ErrProgramCodeExists):
		Conflict(w, "Program code already exists")

	// Session domain errors
	case errors.Is(err, session.ErrSessionNotFound):
		NotFound(w, "Training session not found")
	case errors.Is(err, session.ErrUnknownProgram):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, session.ErrSessionAlreadyCanceled):
		Conflict(w, err.Error())

	// Result domain errors
	case errors.Is(err, result.ErrResultNotFound):
		NotFound(w, "Training result not found")
	case errors.Is(err, result.ErrUnknownReference):
		BadRequest(w, err.Error(), nil)

	// New-hire domain errors
	case errors.Is(err, newhire.ErrTeamNotFound):
		NotFound(w, "Team not found")
	case errors.Is(err, newhire.ErrTraineeNotFound):
		NotFound(w, "Trainee not found")
	case errors.Is(err, newhire.ErrMeetingNotFound):
		NotFound(w, "Meeting not found")
	case errors.Is(err, newhire.ErrTraineeAlreadyResigned):
		Conflict(w, err.Error())

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		ServiceUnavailable(w, "Request was cancelled")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
