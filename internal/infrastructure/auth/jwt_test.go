package auth

import (
	"testing"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret: "test-secret-key-that-is-long-enough",
		Issuer: "backoffice",
	})
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()
	branchID := uuid.New()

	token, expiresAt, err := svc.Issue(IssueInput{UserID: userID, Role: shared.RoleManager, BranchID: &branchID, TTL: time.Hour})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "MANAGER", claims.Role)

	rc, err := claims.RequestContext()
	require.NoError(t, err)
	assert.Equal(t, userID, rc.UserID)
	assert.Equal(t, shared.RoleManager, rc.Role)
	require.NotNil(t, rc.BranchID)
	assert.Equal(t, branchID, *rc.BranchID)
	assert.False(t, rc.IsAdmin())
}

func TestJWTService_AdminWithoutBranch(t *testing.T) {
	svc := newTestService()
	token, _, err := svc.Issue(IssueInput{UserID: uuid.New(), Role: shared.RoleAdmin, TTL: time.Hour})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	rc, err := claims.RequestContext()
	require.NoError(t, err)
	assert.True(t, rc.IsAdmin())
	assert.Nil(t, rc.BranchID)
}

func TestJWTService_Verify_Rejects(t *testing.T) {
	svc := newTestService()

	t.Run("expired", func(t *testing.T) {
		token, _, err := svc.Issue(IssueInput{UserID: uuid.New(), Role: shared.RoleCashier, TTL: -time.Minute})
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-long-enough-!!", Issuer: "backoffice"})
		token, _, err := other.Issue(IssueInput{UserID: uuid.New(), Role: shared.RoleCashier, TTL: time.Hour})
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-that-is-long-enough", Issuer: "elsewhere"})
		token, _, err := other.Issue(IssueInput{UserID: uuid.New(), Role: shared.RoleCashier, TTL: time.Hour})
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing role", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "backoffice",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UserID: uuid.NewString(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrMissingRole)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "backoffice",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UserID: uuid.NewString(),
			Role:   "ADMIN",
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_RequestContext_Invalid(t *testing.T) {
	_, err := (&Claims{UserID: "nope", Role: "ADMIN"}).RequestContext()
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = (&Claims{UserID: uuid.NewString(), Role: "CASHIER", BranchID: "bad"}).RequestContext()
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
