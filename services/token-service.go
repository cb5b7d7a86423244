package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harshithareddy888/HackConnect/errors"
)

const (
	accessTokenTTL  = 2 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    string `json:"id"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the signed access and refresh
// tokens. Both carry only the user ID; the refresh token is
// additionally persisted on the user document by the user service.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

func (s *TokenService) GenerateAccessToken(userID string) (string, error) {
	return s.generate(userID, tokenTypeAccess, accessTokenTTL)
}

func (s *TokenService) GenerateRefreshToken(userID string) (string, error) {
	return s.generate(userID, tokenTypeRefresh, refreshTokenTTL)
}

func (s *TokenService) generate(userID, tokenType string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyAccessToken resolves an access token to the user ID it was
// issued for.
func (s *TokenService) VerifyAccessToken(tokenStr string) (string, error) {
	return s.verify(tokenStr, tokenTypeAccess)
}

// VerifyRefreshToken resolves a refresh token to the user ID it was
// issued for. The caller must still check the token against the one
// stored on the user record.
func (s *TokenService) VerifyRefreshToken(tokenStr string) (string, error) {
	return s.verify(tokenStr, tokenTypeRefresh)
}

func (s *TokenService) verify(tokenStr, tokenType string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.Unauthorized("invalid token")
	}
	if claims.TokenType != tokenType {
		return "", errors.Unauthorized("invalid token")
	}
	return claims.UserID, nil
}
