package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheus/jobmatch/internal/config"
)

func newTestJWTService(hours int) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "unit-test-secret", ExpirationHours: hours})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(1)

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateTokenRejectsBadInput(t *testing.T) {
	svc := newTestJWTService(1)

	_, err := svc.ValidateToken("")
	assert.Error(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := newTestJWTService(1).GenerateToken(7)
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "different-secret", ExpirationHours: 1})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
