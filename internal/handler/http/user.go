package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/training-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{userService: userService}
}

func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		fail(w, r, "ListUsers", err)
		return
	}
	response.List(w, users, "")
}

func (h *userHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if !decode(w, r, "CreateUser", &req) {
		return
	}
	created, err := h.userService.Create(r.Context(), req)
	if err != nil {
		fail(w, r, "CreateUser", err)
		return
	}
	slog.Info("User created", "user_id", created.ID, "role", created.Role)
	response.Created(w, "User created successfully", created)
}

// UpdateRole takes the user id from the path; a body id is ignored.
func (h *userHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRoleRequest
	if !decode(w, r, "UpdateUserRole", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	updated, err := h.userService.UpdateRole(r.Context(), req)
	if err != nil {
		fail(w, r, "UpdateUserRole", err)
		return
	}
	slog.Info("User role updated", "user_id", updated.ID, "role", updated.Role)
	response.SuccessWithMessage(w, "User role updated successfully", updated)
}
