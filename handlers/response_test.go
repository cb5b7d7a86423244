package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshithareddy888/HackConnect/errors"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondData(t *testing.T) {
	rec := httptest.NewRecorder()
	respondData(rec, http.StatusCreated, map[string]string{"name": "Alpha"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]interface{}{"name": "Alpha"}, body["data"])
	assert.NotContains(t, body, "message")
}

func TestRespondList(t *testing.T) {
	rec := httptest.NewRecorder()
	respondList(rec, 2, []string{"a", "b"})

	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", errors.NotFound("team not found"), 404, "team not found"},
		{"forbidden", errors.Forbidden("only a team leader may do this"), 403, "only a team leader may do this"},
		{"conflict", errors.Conflict("team name already exists"), 409, "team name already exists"},
		{"full", errors.Full("team is full"), 409, "team is full"},
		{"bad request", errors.BadRequest("invalid team ID format"), 400, "invalid team ID format"},
		{"unknown errors are masked", assert.AnError, 500, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["message"])
			assert.NotContains(t, body, "data")
		})
	}
}
