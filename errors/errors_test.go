package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{BadRequest("bad"), 400},
		{Unauthorized("who"), 401},
		{Forbidden("no"), 403},
		{NotFound("gone"), 404},
		{Conflict("dup"), 409},
		{Full("full"), 409},
		{Internal("boom"), 500},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, Code(tc.err), tc.err.Error())
	}
}

func TestFormatting(t *testing.T) {
	err := NotFound("team %s not found", "alpha")
	assert.Equal(t, "team alpha not found", err.Error())
	assert.Equal(t, "team alpha not found", Message(err))
}

func TestForeignErrorsAreInternal(t *testing.T) {
	err := stderrors.New("driver exploded")
	assert.Equal(t, DefaultCode, Code(err))
	assert.Equal(t, "internal server error", Message(err))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsBadRequest(BadRequest("x")))
	assert.True(t, IsUnauthorized(Unauthorized("x")))
	assert.True(t, IsForbidden(Forbidden("x")))
	assert.True(t, IsNotFound(NotFound("x")))
	assert.True(t, IsConflict(Conflict("x")))
	assert.True(t, IsConflict(Full("x")))

	assert.False(t, IsNotFound(Conflict("x")))
	assert.False(t, IsConflict(stderrors.New("x")))
}
