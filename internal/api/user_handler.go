package api

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/notes-api/internal/api/shared"
	"github.com/phrazzld/notes-api/internal/service"
)

// UserHandler serves the /users endpoints.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a UserHandler backed by the given service.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input service.CreateUserInput
	if err := decodeBody(w, r, &input); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, service.MsgFieldsRequired, err)
		return
	}

	user, err := h.users.Create(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusCreated, fmt.Sprintf("New user %s created", user.Username))
}

// UpdateUser handles PATCH /users. The user id travels in the body.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateUserInput
	if err := decodeBody(w, r, &input); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, service.MsgUserUpdateFieldsNeeded, err)
		return
	}

	user, err := h.users.Update(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, fmt.Sprintf("%s updated", user.Username))
}

// DeleteUser handles DELETE /users and answers with a bare JSON string.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if err := decodeBody(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, service.MsgUserIDRequired, err)
		return
	}

	user, err := h.users.Delete(r.Context(), req.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		fmt.Sprintf("Username %s with ID %s deleted", user.Username, user.ID))
}
