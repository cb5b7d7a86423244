package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harshithareddy888/HackConnect/errors"
	"github.com/harshithareddy888/HackConnect/logging"
	"github.com/harshithareddy888/HackConnect/models"
	"github.com/harshithareddy888/HackConnect/utils"
)

const defaultAvatar = "default-avatar.png"

type UserService struct {
	UserCollection *mongo.Collection
	Tokens         *TokenService
	BlackList      map[string]bool
}

func NewUserService(userCollection *mongo.Collection, tokens *TokenService, blackList map[string]bool) *UserService {
	return &UserService{
		UserCollection: userCollection,
		Tokens:         tokens,
		BlackList:      blackList,
	}
}

// Register creates a user account and issues the initial token pair.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if verrs := models.ValidateRegistration(name, email, password); !verrs.OK() {
		return nil, "", "", errors.BadRequest("%s", verrs.Error())
	}
	if s.BlackList[password] {
		return nil, "", "", errors.BadRequest("password is too common, please choose a stronger one")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", "", err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:              primitive.NewObjectID(),
		Name:            name,
		Email:           email,
		Password:        hashed,
		Role:            models.RoleDeveloper,
		ExperienceLevel: models.ExperienceBeginner,
		Avatar:          defaultAvatar,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := s.UserCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", "", errors.Conflict("user already exists")
		}
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	logging.Logger.Infof("Registered user %s", user.Email)
	user.Sanitize()
	return user, access, refresh, nil
}

// Login verifies credentials and issues a fresh token pair, replacing
// the stored refresh token so previously issued ones stop working.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, "", "", errors.Unauthorized("invalid credentials")
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, "", "", errors.Unauthorized("invalid credentials")
	}

	access, refresh, err := s.issueTokens(ctx, &user)
	if err != nil {
		return nil, "", "", err
	}

	user.Sanitize()
	return &user, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// presented token must match the one stored on the user record.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.Tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", errors.Unauthorized("invalid refresh token")
	}

	n, err := s.UserCollection.CountDocuments(ctx, bson.M{"_id": objectID, "refreshToken": refreshToken})
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", errors.Unauthorized("invalid refresh token")
	}

	return s.Tokens.GenerateAccessToken(userID)
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) (string, string, error) {
	access, err := s.Tokens.GenerateAccessToken(user.ID.Hex())
	if err != nil {
		return "", "", err
	}
	refresh, err := s.Tokens.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		return "", "", err
	}

	_, err = s.UserCollection.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"refreshToken": refresh, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("user not found")
		}
		return nil, err
	}
	user.Sanitize()
	return &user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Sanitize()
	}
	return users, nil
}

// ProfileUpdate carries the mutable profile fields; nil or empty
// values leave the stored value untouched.
type ProfileUpdate struct {
	Name            string                 `json:"name"`
	Bio             string                 `json:"bio"`
	Skills          []string               `json:"skills"`
	Interests       []string               `json:"interests"`
	Role            models.UserRole        `json:"role"`
	ExperienceLevel models.ExperienceLevel `json:"experienceLevel"`
	Avatar          string                 `json:"avatar"`
	Links           *models.Links          `json:"links"`
}

func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (*models.User, error) {
	if verrs := models.ValidateProfileUpdate(update.Name, update.Bio, update.Role, update.ExperienceLevel); !verrs.OK() {
		return nil, errors.BadRequest("%s", verrs.Error())
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Bio != "" {
		set["bio"] = update.Bio
	}
	if update.Skills != nil {
		set["skills"] = update.Skills
	}
	if update.Interests != nil {
		set["interests"] = update.Interests
	}
	if update.Role != "" {
		set["role"] = update.Role
	}
	if update.ExperienceLevel != "" {
		set["experienceLevel"] = update.ExperienceLevel
	}
	if update.Avatar != "" {
		set["avatar"] = update.Avatar
	}
	if update.Links != nil {
		set["links"] = update.Links
	}

	result, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, errors.NotFound("user not found")
	}

	return s.GetByID(ctx, id)
}
