package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleDeveloper      UserRole = "developer"
	RoleDesigner       UserRole = "designer"
	RoleProductManager UserRole = "product manager"
	RoleDataScientist  UserRole = "data scientist"
	RoleOther          UserRole = "other"
)

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceExpert       ExperienceLevel = "expert"
)

type Links struct {
	GitHub   string `bson:"github,omitempty" json:"github,omitempty"`
	LinkedIn string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"`
	Bio             string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills          []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Interests       []string           `bson:"interests,omitempty" json:"interests,omitempty"`
	Role            UserRole           `bson:"role" json:"role"`
	ExperienceLevel ExperienceLevel    `bson:"experienceLevel" json:"experienceLevel"`
	Avatar          string             `bson:"avatar" json:"avatar"`
	Links           Links              `bson:"links,omitempty" json:"links,omitempty"`
	RefreshToken    string             `bson:"refreshToken,omitempty" json:"-"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile is the projection of a user that other users are
// allowed to see. It never includes the password hash or the refresh
// token.
type PublicProfile struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Avatar          string             `bson:"avatar" json:"avatar"`
	Role            UserRole           `bson:"role" json:"role"`
	ExperienceLevel ExperienceLevel    `bson:"experienceLevel" json:"experienceLevel"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Avatar:          u.Avatar,
		Role:            u.Role,
		ExperienceLevel: u.ExperienceLevel,
	}
}

// Sanitize strips credentials before a user document is serialized in
// a response that returns the full profile.
func (u *User) Sanitize() {
	u.Password = ""
	u.RefreshToken = ""
}

func ValidUserRole(r UserRole) bool {
	switch r {
	case RoleDeveloper, RoleDesigner, RoleProductManager, RoleDataScientist, RoleOther:
		return true
	}
	return false
}

func ValidExperienceLevel(l ExperienceLevel) bool {
	switch l {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert:
		return true
	}
	return false
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// ValidateRegistration checks a registration payload and returns the
// list of field errors, empty when the payload is acceptable.
func ValidateRegistration(name, email, password string) ValidationErrors {
	var errs ValidationErrors
	if len(name) < 2 || len(name) > 50 {
		errs = errs.Add("name", "name must be between 2 and 50 characters")
	}
	if !emailPattern.MatchString(strings.ToLower(email)) {
		errs = errs.Add("email", "a valid email address is required")
	}
	if len(password) < 6 {
		errs = errs.Add("password", "password must be at least 6 characters")
	}
	return errs
}

// ValidateProfileUpdate checks the mutable profile fields.
func ValidateProfileUpdate(name, bio string, role UserRole, level ExperienceLevel) ValidationErrors {
	var errs ValidationErrors
	if name != "" && (len(name) < 2 || len(name) > 50) {
		errs = errs.Add("name", "name must be between 2 and 50 characters")
	}
	if len(bio) > 500 {
		errs = errs.Add("bio", "bio cannot be more than 500 characters")
	}
	if role != "" && !ValidUserRole(role) {
		errs = errs.Add("role", "unknown role")
	}
	if level != "" && !ValidExperienceLevel(level) {
		errs = errs.Add("experienceLevel", "unknown experience level")
	}
	return errs
}
