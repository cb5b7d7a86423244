package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harshithareddy888/HackConnect/errors"
)

func duplicateKeyErr(index string) error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: hackconnect.teams index: " + index + " dup key",
	}}}
}

func TestTeamInsertErr(t *testing.T) {
	t.Run("name index means the name is taken", func(t *testing.T) {
		err := teamInsertErr(duplicateKeyErr("name_1"))
		require.True(t, errors.IsConflict(err))
		assert.Equal(t, "team name already exists", errors.Message(err))
	})

	t.Run("membership index means the founder already has a team", func(t *testing.T) {
		err := teamInsertErr(duplicateKeyErr("members.user_1"))
		require.True(t, errors.IsConflict(err))
		assert.Equal(t, "you are already a member of a team", errors.Message(err))
	})

	t.Run("other errors pass through unchanged", func(t *testing.T) {
		assert.Equal(t, assert.AnError, teamInsertErr(assert.AnError))
	})
}
