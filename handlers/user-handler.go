package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harshithareddy888/HackConnect/errors"
	"github.com/harshithareddy888/HackConnect/middleware"
	"github.com/harshithareddy888/HackConnect/services"
)

type UserHandler struct {
	UserService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}

	user, err := h.UserService.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}

	var update services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, errors.BadRequest("invalid request payload"))
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, user)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid user ID format"))
		return
	}

	user, err := h.UserService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, user)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, len(users), users)
}
