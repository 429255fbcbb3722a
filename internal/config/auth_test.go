package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		wantCost int
		wantErr  bool
	}{
		{"default cost", "", 12, false},
		{"explicit cost", "10", 10, false},
		{"upper bound", "14", 14, false},
		{"below range", "9", 0, true},
		{"above range", "15", 0, true},
		{"not a number", "ten", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
		})
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := cfg.HashPassword("s3nh@-forte")
	require.NoError(t, err)
	assert.NotEqual(t, "s3nh@-forte", hash)

	assert.True(t, cfg.VerifyPassword("s3nh@-forte", hash))
	assert.False(t, cfg.VerifyPassword("outra-senha", hash))
}

func TestPasswordPepperChangesVerification(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "tempero")
	peppered, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := peppered.HashPassword("senha")
	require.NoError(t, err)
	assert.True(t, peppered.VerifyPassword("senha", hash))

	plain := &PasswordConfig{BcryptCost: 10}
	assert.False(t, plain.VerifyPassword("senha", hash))
}

func TestNewJWTConfig(t *testing.T) {
	t.Run("requires secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := NewJWTConfig()
		assert.Error(t, err)
	})

	t.Run("defaults expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "segredo")
		t.Setenv("JWT_EXPIRATION_HOURS", "")
		cfg, err := NewJWTConfig()
		require.NoError(t, err)
		assert.Equal(t, 24, cfg.ExpirationHours)
	})

	t.Run("custom expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "segredo")
		t.Setenv("JWT_EXPIRATION_HOURS", "72")
		cfg, err := NewJWTConfig()
		require.NoError(t, err)
		assert.Equal(t, 72, cfg.ExpirationHours)
	})

	t.Run("rejects zero expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "segredo")
		t.Setenv("JWT_EXPIRATION_HOURS", "0")
		_, err := NewJWTConfig()
		assert.Error(t, err)
	})
}
