package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateRegistration(t *testing.T) {
	t.Run("accepts a valid payload", func(t *testing.T) {
		assert.True(t, ValidateRegistration("Alice", "alice@example.com", "secret1").OK())
	})

	t.Run("collects every failure", func(t *testing.T) {
		verrs := ValidateRegistration("A", "not-an-email", "short")
		require.Len(t, verrs, 3)
		assert.Equal(t, "name", verrs[0].Field)
		assert.Equal(t, "email", verrs[1].Field)
		assert.Equal(t, "password", verrs[2].Field)
		assert.Contains(t, verrs.Error(), "email")
	})
}

func TestValidateProfileUpdate(t *testing.T) {
	t.Run("empty update is valid", func(t *testing.T) {
		assert.True(t, ValidateProfileUpdate("", "", "", "").OK())
	})

	t.Run("rejects unknown enums", func(t *testing.T) {
		verrs := ValidateProfileUpdate("", "", "hacker", "grandmaster")
		require.Len(t, verrs, 2)
		assert.Equal(t, "role", verrs[0].Field)
		assert.Equal(t, "experienceLevel", verrs[1].Field)
	})
}

func TestUser_Public(t *testing.T) {
	u := User{
		ID:           primitive.NewObjectID(),
		Name:         "Alice",
		Email:        "alice@example.com",
		Password:     "hash",
		RefreshToken: "refresh",
		Role:         RoleDesigner,
	}

	p := u.Public()
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, u.Email, p.Email)
	assert.Equal(t, RoleDesigner, p.Role)

	u.Sanitize()
	assert.Empty(t, u.Password)
	assert.Empty(t, u.RefreshToken)
}
