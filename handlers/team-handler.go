package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harshithareddy888/HackConnect/errors"
	"github.com/harshithareddy888/HackConnect/middleware"
	"github.com/harshithareddy888/HackConnect/models"
	"github.com/harshithareddy888/HackConnect/services"
)

type TeamHandler struct {
	TeamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{TeamService: teamService}
}

type createTeamRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ProjectIdea  string   `json:"projectIdea"`
	SkillsNeeded []string `json:"skillsNeeded"`
	MaxMembers   int      `json:"maxMembers"`
}

type inviteRequest struct {
	Message string `json:"message"`
}

type respondInviteRequest struct {
	Status models.InviteStatus `json:"status"`
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}

	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.BadRequest("invalid request payload"))
		return
	}

	team, err := h.TeamService.CreateTeam(r.Context(), userID, req.Name, req.Description, req.ProjectIdea, req.SkillsNeeded, req.MaxMembers)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, team)
}

// reserved query parameters that are not filter conditions
var reservedListParams = map[string]bool{"sort": true, "page": true, "limit": true}

// parseTeamFilters reads conditions of the form field=value or
// field[op]=value from the query string into typed filters. Values
// are coerced: booleans for isOpen, integers for maxMembers, comma
// lists for the in operator.
func parseTeamFilters(values url.Values) []services.TeamFilter {
	var filters []services.TeamFilter
	for key, vals := range values {
		if reservedListParams[key] || len(vals) == 0 {
			continue
		}

		field, op := key, services.OpEq
		if i := strings.IndexByte(key, '['); i > 0 && strings.HasSuffix(key, "]") {
			field = key[:i]
			op = services.FilterOp(key[i+1 : len(key)-1])
		}

		raw := vals[0]
		var value interface{}
		if op == services.OpIn {
			parts := strings.Split(raw, ",")
			coerced := make([]interface{}, len(parts))
			for i, p := range parts {
				coerced[i] = coerceFilterValue(p)
			}
			value = coerced
		} else {
			value = coerceFilterValue(raw)
		}

		filters = append(filters, services.TeamFilter{Field: field, Op: op, Value: value})
	}
	return filters
}

func coerceFilterValue(raw string) interface{} {
	if raw == "true" {
		return true
	}
	if raw == "false" {
		return false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return raw
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	teams, total, err := h.TeamService.ListTeams(r.Context(), parseTeamFilters(query), query.Get("sort"), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"teams": teams,
		"total": total,
	})
}

func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid team ID format"))
		return
	}

	team, err := h.TeamService.GetTeam(r.Context(), teamID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, team)
}

func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	teamID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid team ID format"))
		return
	}

	var update services.TeamUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, errors.BadRequest("invalid request payload"))
		return
	}

	team, err := h.TeamService.UpdateTeam(r.Context(), userID, teamID, update)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, team)
}

func (h *TeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	vars := mux.Vars(r)
	teamID, err := primitive.ObjectIDFromHex(vars["teamId"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid team ID format"))
		return
	}
	targetID, err := primitive.ObjectIDFromHex(vars["userId"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid user ID format"))
		return
	}

	var req inviteRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.TeamService.Invite(r.Context(), userID, teamID, targetID, req.Message); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

func (h *TeamHandler) RespondToInvite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	teamID, err := primitive.ObjectIDFromHex(mux.Vars(r)["teamId"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid team ID format"))
		return
	}

	var req respondInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.BadRequest("invalid request payload"))
		return
	}

	if err := h.TeamService.RespondToInvite(r.Context(), userID, teamID, req.Status); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	vars := mux.Vars(r)
	teamID, err := primitive.ObjectIDFromHex(vars["teamId"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid team ID format"))
		return
	}
	targetID, err := primitive.ObjectIDFromHex(vars["userId"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid user ID format"))
		return
	}

	if err := h.TeamService.RemoveMember(r.Context(), userID, teamID, targetID); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

func (h *TeamHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, errors.Unauthorized("not authenticated"))
		return
	}
	teamID, err := primitive.ObjectIDFromHex(mux.Vars(r)["teamId"])
	if err != nil {
		respondError(w, errors.BadRequest("invalid team ID format"))
		return
	}

	if err := h.TeamService.Leave(r.Context(), userID, teamID); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}
