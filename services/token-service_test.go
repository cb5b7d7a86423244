package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshithareddy888/HackConnect/errors"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")
	const userID = "64f000000000000000000001"

	access, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)

	got, err := svc.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	got, err = svc.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenService_RejectsWrongTokenType(t *testing.T) {
	svc := NewTokenService("test-secret")

	access, err := svc.GenerateAccessToken("user")
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken("user")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(refresh)
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))

	_, err = svc.VerifyRefreshToken(access)
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
}

func TestTokenService_RejectsForeignSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").GenerateAccessToken("user")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").VerifyAccessToken(token)
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	_, err := NewTokenService("secret").VerifyAccessToken("not.a.token")
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
}
