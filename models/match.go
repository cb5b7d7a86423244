package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultMatchMessage = "You are now connected!"

// Match records a mutual-like relationship between two users. The pair
// is stored in canonical order so the unique index on users holds
// regardless of which like arrived last.
type Match struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Users       []primitive.ObjectID `bson:"users" json:"users"`
	MatchedAt   time.Time            `bson:"matchedAt" json:"matchedAt"`
	LastMessage string               `bson:"lastMessage" json:"lastMessage"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// MatchPair orders two user IDs canonically (lexicographic by hex).
func MatchPair(a, b primitive.ObjectID) []primitive.ObjectID {
	if a.Hex() > b.Hex() {
		a, b = b, a
	}
	return []primitive.ObjectID{a, b}
}

// Counterpart returns the other user of the match, false when user is
// not part of it.
func (m *Match) Counterpart(user primitive.ObjectID) (primitive.ObjectID, bool) {
	member := false
	other := primitive.NilObjectID
	for _, u := range m.Users {
		if u == user {
			member = true
		} else {
			other = u
		}
	}
	if !member || other.IsZero() {
		return primitive.NilObjectID, false
	}
	return other, true
}
