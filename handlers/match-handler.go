package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harshithareddy888/HackConnect/errors"
	"github.com/harshithareddy888/HackConnect/middleware"
	"github.com/harshithareddy888/HackConnect/models"
	"github.com/harshithareddy888/HackConnect/services"
)

type MatchHandler struct {
	MatchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{MatchService: matchService}
}

type interactionRequest struct {
	InteractionType models.InteractionType `json:"interactionType"`
}

type interactionResponse struct {
	Match       bool                `json:"match"`
	Interaction *models.Interaction `json:"interaction"`
}

func (h *MatchHandler) Interact(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	targetID, err := primitive.ObjectIDFromHex(mux.Vars(r)["targetId"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid user ID format"))
		return
	}

	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.BadRequest("invalid request payload"))
		return
	}

	matched, interaction, err := h.MatchService.RecordInteraction(r.Context(), userID, targetID, req.InteractionType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, interactionResponse{Match: matched, Interaction: interaction})
}

func (h *MatchHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}

	suggestions, err := h.MatchService.GetSuggestions(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, len(suggestions), suggestions)
}

func (h *MatchHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}

	matches, err := h.MatchService.GetMatches(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, len(matches), matches)
}
