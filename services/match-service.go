package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harshithareddy888/HackConnect/errors"
	"github.com/harshithareddy888/HackConnect/logging"
	"github.com/harshithareddy888/HackConnect/models"
)

const suggestionLimit = 10

type MatchService struct {
	InteractionsCollection *mongo.Collection
	MatchesCollection      *mongo.Collection
	UsersCollection        *mongo.Collection
}

func NewMatchService(interactions, matches, users *mongo.Collection) *MatchService {
	return &MatchService{
		InteractionsCollection: interactions,
		MatchesCollection:      matches,
		UsersCollection:        users,
	}
}

// RecordInteraction persists a write-once like/skip from actor toward
// target and reports whether the interaction completed a mutual-like
// match. The unique index on (user, targetUser) makes the write-once
// rule hold under concurrent requests; the match upsert is keyed on
// the canonical pair so at most one match exists per pair no matter
// which like lands last.
func (s *MatchService) RecordInteraction(ctx context.Context, actor, target primitive.ObjectID, kind models.InteractionType) (bool, *models.Interaction, error) {
	if !models.ValidInteractionType(kind) {
		return false, nil, errors.BadRequest("unknown interaction type")
	}
	if actor == target {
		return false, nil, errors.BadRequest("cannot interact with yourself")
	}

	n, err := s.UsersCollection.CountDocuments(ctx, bson.M{"_id": target})
	if err != nil {
		return false, nil, err
	}
	if n == 0 {
		return false, nil, errors.NotFound("user not found")
	}

	interaction := &models.Interaction{
		ID:              primitive.NewObjectID(),
		User:            actor,
		TargetUser:      target,
		InteractionType: kind,
		CreatedAt:       time.Now().UTC(),
	}
	if _, err := s.InteractionsCollection.InsertOne(ctx, interaction); err != nil {
		return false, nil, interactionInsertErr(err)
	}

	if kind != models.InteractionLike {
		return false, interaction, nil
	}

	reverse := s.InteractionsCollection.FindOne(ctx, bson.M{
		"user":            target,
		"targetUser":      actor,
		"interactionType": models.InteractionLike,
	})
	if reverse.Err() != nil {
		if reverse.Err() == mongo.ErrNoDocuments {
			return false, interaction, nil
		}
		return false, nil, reverse.Err()
	}

	if err := s.ensureMatch(ctx, actor, target); err != nil {
		return false, nil, err
	}
	logging.Logger.Infof("Matched users %s and %s", actor.Hex(), target.Hex())
	return true, interaction, nil
}

// interactionInsertErr maps the unique-index violation on
// (user, targetUser) to the write-once Conflict.
func interactionInsertErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errors.Conflict("interaction already exists")
	}
	return err
}

// ensureMatch creates the match for the pair unless it already exists.
func (s *MatchService) ensureMatch(ctx context.Context, a, b primitive.ObjectID) error {
	now := time.Now().UTC()
	pair := models.MatchPair(a, b)
	_, err := s.MatchesCollection.UpdateOne(ctx,
		bson.M{"users": pair},
		bson.M{"$setOnInsert": bson.M{
			"users":       pair,
			"matchedAt":   now,
			"lastMessage": models.DefaultMatchMessage,
			"updatedAt":   now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return err
	}
	return nil
}

// GetSuggestions returns up to ten users the caller has not interacted
// or matched with, in stable document order, with private fields
// stripped.
func (s *MatchService) GetSuggestions(ctx context.Context, userID primitive.ObjectID) ([]models.PublicProfile, error) {
	excluded := []primitive.ObjectID{userID}

	cursor, err := s.InteractionsCollection.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	var interactions []models.Interaction
	if err := cursor.All(ctx, &interactions); err != nil {
		return nil, err
	}
	for _, i := range interactions {
		excluded = append(excluded, i.TargetUser)
	}

	cursor, err = s.MatchesCollection.Find(ctx, bson.M{"users": userID})
	if err != nil {
		return nil, err
	}
	var matches []models.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	for _, m := range matches {
		if other, ok := m.Counterpart(userID); ok {
			excluded = append(excluded, other)
		}
	}

	findOpts := options.Find().
		SetLimit(suggestionLimit).
		SetSort(bson.M{"_id": 1}).
		SetProjection(bson.M{
			"name": 1, "email": 1, "avatar": 1,
			"role": 1, "experienceLevel": 1,
		})
	cursor, err = s.UsersCollection.Find(ctx, bson.M{"_id": bson.M{"$nin": excluded}}, findOpts)
	if err != nil {
		return nil, err
	}

	var suggestions []models.PublicProfile
	if err := cursor.All(ctx, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// MatchWithProfile pairs a match record with the counterpart's public
// profile for the caller.
type MatchWithProfile struct {
	models.Match `bson:",inline"`
	With         models.PublicProfile `json:"with"`
}

// GetMatches lists the caller's matches, most recently updated first.
// Matches whose counterpart has been deleted are dropped silently.
func (s *MatchService) GetMatches(ctx context.Context, userID primitive.ObjectID) ([]MatchWithProfile, error) {
	findOpts := options.Find().SetSort(bson.M{"updatedAt": -1})
	cursor, err := s.MatchesCollection.Find(ctx, bson.M{"users": userID}, findOpts)
	if err != nil {
		return nil, err
	}
	var matches []models.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}

	result := make([]MatchWithProfile, 0, len(matches))
	for _, m := range matches {
		other, ok := m.Counterpart(userID)
		if !ok {
			continue
		}
		var counterpart models.User
		err := s.UsersCollection.FindOne(ctx, bson.M{"_id": other}).Decode(&counterpart)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				continue
			}
			return nil, err
		}
		result = append(result, MatchWithProfile{Match: m, With: counterpart.Public()})
	}
	return result, nil
}
