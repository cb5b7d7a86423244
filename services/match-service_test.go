package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshithareddy888/HackConnect/errors"
)

func TestInteractionInsertErr(t *testing.T) {
	t.Run("duplicate key means the interaction already exists", func(t *testing.T) {
		err := interactionInsertErr(duplicateKeyErr("user_1_targetUser_1"))
		require.True(t, errors.IsConflict(err))
		assert.Equal(t, "interaction already exists", errors.Message(err))
	})

	t.Run("other errors pass through unchanged", func(t *testing.T) {
		assert.Equal(t, assert.AnError, interactionInsertErr(assert.AnError))
	})
}
