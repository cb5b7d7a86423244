package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InteractionType string

const (
	InteractionLike InteractionType = "like"
	InteractionSkip InteractionType = "skip"
)

// Interaction is a single like/skip from one user toward another.
// Interactions are write-once: the (user, targetUser) pair is unique.
type Interaction struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	TargetUser      primitive.ObjectID `bson:"targetUser" json:"targetUser"`
	InteractionType InteractionType    `bson:"interactionType" json:"interactionType"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

func ValidInteractionType(t InteractionType) bool {
	return t == InteractionLike || t == InteractionSkip
}
