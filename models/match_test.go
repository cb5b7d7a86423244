package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMatchPair(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	ab := MatchPair(a, b)
	ba := MatchPair(b, a)

	// the pair is canonical regardless of argument order
	assert.Equal(t, ab, ba)
	require.Len(t, ab, 2)
	assert.True(t, ab[0].Hex() < ab[1].Hex())
}

func TestMatch_Counterpart(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	m := Match{Users: MatchPair(a, b)}

	other, ok := m.Counterpart(a)
	require.True(t, ok)
	assert.Equal(t, b, other)

	other, ok = m.Counterpart(b)
	require.True(t, ok)
	assert.Equal(t, a, other)

	_, ok = m.Counterpart(primitive.NewObjectID())
	assert.False(t, ok)
}

func TestValidInteractionType(t *testing.T) {
	assert.True(t, ValidInteractionType(InteractionLike))
	assert.True(t, ValidInteractionType(InteractionSkip))
	assert.False(t, ValidInteractionType("superlike"))
	assert.False(t, ValidInteractionType(""))
}
