package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/harshithareddy888/HackConnect/errors"
)

func TestBuildTeamQuery(t *testing.T) {
	t.Run("empty filter list yields an empty query", func(t *testing.T) {
		query, err := BuildTeamQuery(nil)
		require.NoError(t, err)
		assert.Empty(t, query)
	})

	t.Run("builds operator documents per field", func(t *testing.T) {
		query, err := BuildTeamQuery([]TeamFilter{
			{Field: "isOpen", Op: OpEq, Value: true},
			{Field: "maxMembers", Op: OpGte, Value: 4},
		})
		require.NoError(t, err)
		assert.Equal(t, bson.M{"$eq": true}, query["isOpen"])
		assert.Equal(t, bson.M{"$gte": 4}, query["maxMembers"])
	})

	t.Run("merges several operators on one field", func(t *testing.T) {
		query, err := BuildTeamQuery([]TeamFilter{
			{Field: "maxMembers", Op: OpGte, Value: 3},
			{Field: "maxMembers", Op: OpLte, Value: 6},
		})
		require.NoError(t, err)
		assert.Equal(t, bson.M{"$gte": 3, "$lte": 6}, query["maxMembers"])
	})

	t.Run("rejects fields outside the allow list", func(t *testing.T) {
		_, err := BuildTeamQuery([]TeamFilter{{Field: "members.user", Op: OpEq, Value: "x"}})
		require.Error(t, err)
		assert.True(t, errors.IsBadRequest(err))
	})

	t.Run("rejects unknown operators", func(t *testing.T) {
		_, err := BuildTeamQuery([]TeamFilter{{Field: "name", Op: "regex", Value: ".*"}})
		require.Error(t, err)
		assert.True(t, errors.IsBadRequest(err))
	})
}

func TestTeamSort(t *testing.T) {
	t.Run("defaults to newest first", func(t *testing.T) {
		sort, err := TeamSort("")
		require.NoError(t, err)
		assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, sort)
	})

	t.Run("ascending and descending", func(t *testing.T) {
		sort, err := TeamSort("name")
		require.NoError(t, err)
		assert.Equal(t, bson.D{{Key: "name", Value: 1}}, sort)

		sort, err = TeamSort("-maxMembers")
		require.NoError(t, err)
		assert.Equal(t, bson.D{{Key: "maxMembers", Value: -1}}, sort)
	})

	t.Run("rejects keys outside the allow list", func(t *testing.T) {
		_, err := TeamSort("invites")
		require.Error(t, err)
		assert.True(t, errors.IsBadRequest(err))
	})
}
