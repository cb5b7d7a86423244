package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/harshithareddy888/HackConnect/errors"
	"github.com/harshithareddy888/HackConnect/logging"
)

// Every endpoint answers with the same envelope: {"success": true,
// "data": ...} or {"success": false, "message": ...}.
type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, response{Success: true, Data: data})
}

func respondList(w http.ResponseWriter, count int, data interface{}) {
	respondJSON(w, http.StatusOK, response{Success: true, Data: data, Count: &count})
}

func respondError(w http.ResponseWriter, err error) {
	code := errors.Code(err)
	if code >= 500 {
		logging.Logger.Errorf("Request failed: %v", err)
	}
	respondJSON(w, code, response{Success: false, Message: errors.Message(err)})
}
