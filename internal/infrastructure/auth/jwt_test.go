package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willy-peters/SmartPOS/internal/domain/identity"
	"github.com/willy-peters/SmartPOS/internal/infrastructure/config"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Expiration: expiration,
		Issuer:     "smartpos-test",
	})
}

func testPrincipal() identity.Principal {
	return identity.Principal{
		UserID:   uuid.New(),
		Username: "jamie",
		Role:     identity.RoleCashier,
	}
}

func TestJWTService_Generate(t *testing.T) {
	t.Run("issues a bearer token", func(t *testing.T) {
		service := newTestJWTService(time.Hour)

		token, err := service.Generate(testPrincipal())

		require.NoError(t, err)
		assert.NotEmpty(t, token.AccessToken)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)
	})

	t.Run("rejects a nil user ID", func(t *testing.T) {
		service := newTestJWTService(time.Hour)

		principal := testPrincipal()
		principal.UserID = uuid.Nil

		token, err := service.Generate(principal)

		assert.Nil(t, token)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		service := newTestJWTService(time.Hour)

		principal := testPrincipal()
		principal.Role = identity.Role("superuser")

		token, err := service.Generate(principal)

		assert.Nil(t, token)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestJWTService_Validate(t *testing.T) {
	t.Run("round trips the principal", func(t *testing.T) {
		service := newTestJWTService(time.Hour)
		principal := testPrincipal()

		token, err := service.Generate(principal)
		require.NoError(t, err)

		parsed, err := service.Validate(token.AccessToken)

		require.NoError(t, err)
		assert.Equal(t, principal.UserID, parsed.UserID)
		assert.Equal(t, principal.Username, parsed.Username)
		assert.Equal(t, principal.Role, parsed.Role)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		service := newTestJWTService(time.Hour)
		other := NewJWTService(config.JWTConfig{
			Secret:     "a-completely-different-secret",
			Expiration: time.Hour,
			Issuer:     "smartpos-test",
		})

		token, err := other.Generate(testPrincipal())
		require.NoError(t, err)

		_, err = service.Validate(token.AccessToken)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		service := newTestJWTService(-time.Minute)

		token, err := service.Generate(testPrincipal())
		require.NoError(t, err)

		_, err = service.Validate(token.AccessToken)

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		service := newTestJWTService(time.Hour)

		_, err := service.Validate("not-a-jwt")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token with the none algorithm", func(t *testing.T) {
		service := newTestJWTService(time.Hour)

		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.New().String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UserID: uuid.New().String(),
			Role:   "cashier",
		}
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.Validate(tokenString)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token carrying an invalid role", func(t *testing.T) {
		service := newTestJWTService(time.Hour)

		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.New().String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UserID: uuid.New().String(),
			Role:   "superuser",
		}
		signed := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := signed.SignedString([]byte("test-secret-key-for-unit-tests"))
		require.NoError(t, err)

		_, err = service.Validate(tokenString)

		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}
