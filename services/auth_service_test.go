package services

import (
	"testing"

	"github.com/animatic-studio/dto"
	"github.com/animatic-studio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	user, err := Register(dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")

	// Duplicate email is rejected
	_, err = Register(dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "other",
	})
	assert.Error(t, err)

	response, err := Login(dto.LoginRequest{
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Empty(t, response.User.Password)

	_, err = Login(dto.LoginRequest{
		Email:    "new@example.com",
		Password: "wrong",
	})
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, expiresAt, err := GenerateToken("user-1", "new@example.com", "admin")
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "new@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)

	_, err = ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, _, err := GenerateToken("user-1", "new@example.com", "user")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
