// Package service issues and checks the JWTs of the portal.
//
// Access tokens carry the user ID and role. Refresh tokens carry neither: the owning
// user is resolved through the token store, which lets a logout revoke them.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is written into every token and required when parsing
const Issuer = "business-control-portal"

const (
	useAccess  = "access"
	useRefresh = "refresh"
)

var (
	// ErrInvalidToken wraps every parse, signature, issuer and expiry failure
	ErrInvalidToken = errors.New("invalid token")
	// ErrWrongTokenUse is returned when a refresh token is presented as an access token or the other way round
	ErrWrongTokenUse = errors.New("wrong token use")
)

// Claims of a portal token
type Claims struct {
	Use    string `json:"use"`
	UserID int    `json:"uid,omitempty"`
	Role   int    `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenGenerator signs and validates HS256 tokens
type TokenGenerator struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	now                func() time.Time
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, accessExpiry, refreshExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:             []byte(secret),
		accessTokenExpiry:  accessExpiry,
		refreshTokenExpiry: refreshExpiry,
		now:                time.Now,
	}
}

// GenerateTokens returns a new access token for userID with role and a new refresh token
func (tg *TokenGenerator) GenerateTokens(userID int, role int) (string, string, error) {
	accessToken, err := tg.sign(Claims{Use: useAccess, UserID: userID, Role: role}, tg.accessTokenExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := tg.sign(Claims{Use: useRefresh}, tg.refreshTokenExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// sign fills the registered claims and signs. The random ID keeps tokens issued
// within the same second distinct, the token store has a unique index on them.
func (tg *TokenGenerator) sign(claims Claims, lifetime time.Duration) (string, error) {
	now := tg.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    Issuer,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tg.secret)
}

// parse checks signature, method, issuer, expiry and use of a token
func (tg *TokenGenerator) parse(tokenString, use string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return tg.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tg.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Use != use {
		return nil, fmt.Errorf("%w: expected %s token, got %q", ErrWrongTokenUse, use, claims.Use)
	}
	return claims, nil
}

// ValidateAccessToken returns the user ID and role of a valid access token
func (tg *TokenGenerator) ValidateAccessToken(tokenString string) (int, int, error) {
	claims, err := tg.parse(tokenString, useAccess)
	if err != nil {
		return 0, 0, err
	}
	if claims.UserID <= 0 || claims.Role <= 0 {
		return 0, 0, fmt.Errorf("%w: missing user or role", ErrInvalidToken)
	}
	return claims.UserID, claims.Role, nil
}

// ValidateRefreshToken checks a refresh token. Whether it is still stored is up to the caller.
func (tg *TokenGenerator) ValidateRefreshToken(tokenString string) error {
	_, err := tg.parse(tokenString, useRefresh)
	return err
}
