package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sezzlegate/internal/shared/authorization"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", "sezzlegate", 15)

	token, exp, err := svc.Generate("ops-1", authorization.RoleOperator)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ops-1", claims.Subject)
	assert.Equal(t, authorization.RoleOperator, claims.Role)
	assert.Equal(t, "sezzlegate", claims.Issuer)
}

func TestJWTService_GenerateRejectsBadInput(t *testing.T) {
	svc := NewJWTService("test-secret", "", 15)

	_, _, err := svc.Generate("", authorization.RoleAdmin)
	assert.Error(t, err)

	_, _, err = svc.Generate("ops-1", authorization.UserRole("root"))
	assert.Error(t, err)
}

func TestJWTService_VerifyRejects(t *testing.T) {
	svc := NewJWTService("test-secret", "sezzlegate", 15)
	token, _, err := svc.Generate("ops-1", authorization.RoleAdmin)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret", "sezzlegate", 15)
		_, err := other.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService("test-secret", "someone-else", 15)
		_, err := other.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWTService("test-secret", "sezzlegate", 15)
		later.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err := later.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			Role:             authorization.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "ops-1", Issuer: "sezzlegate"},
		})
		s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.Verify(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
