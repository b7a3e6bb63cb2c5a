package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", 60)
	staff := &domain.StaffUser{ID: 42, Role: domain.RoleS2Admin}

	token, expiresAt, err := manager.GenerateToken(staff)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.StaffID)
	assert.Equal(t, domain.RoleS2Admin, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issued, _, err := NewTokenManager("secret-one", 60).GenerateToken(&domain.StaffUser{ID: 1})
	require.NoError(t, err)

	_, err = NewTokenManager("secret-two", 60).ParseToken(issued)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("secret-pass", 4)
	require.NoError(t, err)

	require.NoError(t, ComparePassword(hashed, "secret-pass"))
	assert.Error(t, ComparePassword(hashed, "wrong-pass"))
}
