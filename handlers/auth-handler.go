package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/harshithareddy888/HackConnect/errors"
	"github.com/harshithareddy888/HackConnect/models"
	"github.com/harshithareddy888/HackConnect/services"
)

type AuthHandler struct {
	UserService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{UserService: userService}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         *models.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.BadRequest("invalid request payload"))
		return
	}

	user, access, refresh, err := h.UserService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, tokenResponse{Token: access, RefreshToken: refresh, User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.BadRequest("invalid request payload"))
		return
	}

	user, access, refresh, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, tokenResponse{Token: access, RefreshToken: refresh, User: user})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		respondError(w, errors.Unauthorized("no refresh token provided"))
		return
	}

	access, err := h.UserService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]string{"token": access})
}
