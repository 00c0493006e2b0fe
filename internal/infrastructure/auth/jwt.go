// Package auth issues and verifies the dashboard's JWTs and keeps track of
// revoked tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/infrastructure/config"
)

// TokenType tells access and refresh tokens apart
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrTokenNotYetValid   = errors.New("token is not yet valid")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
	ErrRevokedToken       = errors.New("token has been revoked")
)

// Claims identify a dashboard admin. Refresh tokens only carry the admin ID,
// the username and the refresh count.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	Role         string    `json:"role,omitempty"`
	TokenType    TokenType `json:"token_type"`
	RefreshCount int       `json:"refresh_count,omitempty"`
}

// AdminID parses UserID
func (c *Claims) AdminID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// IssuedAtTime returns the iat claim, or the zero time
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// RemainingTTL returns how long the token stays valid, never negative
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}

// TokenPair is returned on login and refresh
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// GenerateTokenInput is the admin a pair is issued for
type GenerateTokenInput struct {
	UserID   uuid.UUID
	Username string
	Name     string
	Role     string
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

// JWTService signs HS256 tokens. Access and refresh tokens use separate
// secrets unless no refresh secret is configured.
type JWTService struct {
	keys            map[TokenType]signingKey
	issuer          string
	maxRefreshCount int
	parser          *jwt.Parser
}

// NewJWTService creates a JWTService from cfg
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}
	return &JWTService{
		keys: map[TokenType]signingKey{
			TokenTypeAccess:  {secret: []byte(cfg.Secret), ttl: cfg.AccessTokenExpiration},
			TokenTypeRefresh: {secret: []byte(refreshSecret), ttl: cfg.RefreshTokenExpiration},
		},
		issuer:          cfg.Issuer,
		maxRefreshCount: cfg.MaxRefreshCount,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithIssuedAt(),
		),
	}
}

// GenerateTokenPair issues a fresh pair on login
func (s *JWTService) GenerateTokenPair(input GenerateTokenInput) (*TokenPair, error) {
	return s.issue(input, 0)
}

// RefreshTokenPair issues a new pair for a previously validated refresh token.
// input carries the admin's current name and role, so role changes apply on refresh.
func (s *JWTService) RefreshTokenPair(previous *Claims, input GenerateTokenInput) (*TokenPair, error) {
	switch {
	case previous.TokenType != TokenTypeRefresh:
		return nil, ErrInvalidTokenType
	case previous.RefreshCount >= s.maxRefreshCount:
		return nil, ErrMaxRefreshExceeded
	case previous.UserID != input.UserID.String():
		return nil, ErrInvalidClaims
	}
	return s.issue(input, previous.RefreshCount+1)
}

func (s *JWTService) issue(input GenerateTokenInput, refreshCount int) (*TokenPair, error) {
	now := time.Now()

	access := s.newClaims(TokenTypeAccess, input.UserID.String(), now)
	access.Username = input.Username
	access.Name = input.Name
	access.Role = input.Role

	refresh := s.newClaims(TokenTypeRefresh, input.UserID.String(), now)
	refresh.Username = input.Username
	refresh.RefreshCount = refreshCount

	accessToken, err := s.sign(access)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.sign(refresh)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  access.ExpiresAt.Time,
		RefreshTokenExpiresAt: refresh.ExpiresAt.Time,
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) newClaims(kind TokenType, adminID string, now time.Time) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   adminID,
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.keys[kind].ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    adminID,
		TokenType: kind,
	}
}

func (s *JWTService) sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.keys[claims.TokenType].secret)
}

// ValidateAccessToken verifies an access token
func (s *JWTService) ValidateAccessToken(raw string) (*Claims, error) {
	return s.parse(raw, TokenTypeAccess)
}

// ValidateRefreshToken verifies a refresh token
func (s *JWTService) ValidateRefreshToken(raw string) (*Claims, error) {
	return s.parse(raw, TokenTypeRefresh)
}

func (s *JWTService) parse(raw string, kind TokenType) (*Claims, error) {
	secret := s.keys[kind].secret
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case err != nil:
		return nil, ErrInvalidToken
	}

	if claims.TokenType != kind {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID == "" || claims.Subject != claims.UserID {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// GetAccessTokenExpiration returns the access token lifetime
func (s *JWTService) GetAccessTokenExpiration() time.Duration {
	return s.keys[TokenTypeAccess].ttl
}

// GetRefreshTokenExpiration returns the refresh token lifetime. Session
// revocations must be kept at least this long.
func (s *JWTService) GetRefreshTokenExpiration() time.Duration {
	return s.keys[TokenTypeRefresh].ttl
}
