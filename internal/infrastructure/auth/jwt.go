// Package auth verifies the bearer tokens issued by the identity provider
// and turns their claims into a shared.RequestContext.
package auth

import (
	"errors"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrMissingRole      = errors.New("missing role in claims")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// Claims are the access token claims the back office relies on
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	BranchID string `json:"branch_id,omitempty"`
}

// RequestContext converts the claims into the caller's scope
func (c *Claims) RequestContext() (shared.RequestContext, error) {
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return shared.RequestContext{}, ErrInvalidClaims
	}
	var branchID *uuid.UUID
	if c.BranchID != "" {
		id, err := uuid.Parse(c.BranchID)
		if err != nil {
			return shared.RequestContext{}, ErrInvalidClaims
		}
		branchID = &id
	}
	return shared.NewRequestContext(userID, shared.ParseRole(c.Role), branchID), nil
}

// JWTService signs and verifies HS256 access tokens
type JWTService struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		leeway: cfg.Leeway,
	}
}

// IssueInput describes the subject of a token
type IssueInput struct {
	UserID   uuid.UUID
	Role     shared.Role
	BranchID *uuid.UUID
	TTL      time.Duration
}

// Issue signs an access token. Production tokens come from the identity
// provider; this serves local development and tests.
func (s *JWTService) Issue(in IssueInput) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(in.TTL)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   in.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: in.UserID.String(),
		Role:   string(in.Role),
	}
	if in.BranchID != nil {
		claims.BranchID = in.BranchID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify validates a token and returns its claims
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(s.leeway),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	if claims.Role == "" {
		return nil, ErrMissingRole
	}
	return claims, nil
}
