package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig_Cost(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		wantCost int
		wantErr  bool
	}{
		{name: "default when unset", cost: "", wantCost: 12},
		{name: "minimum cost", cost: "10", wantCost: 10},
		{name: "maximum cost", cost: "14", wantCost: 14},
		{name: "below minimum", cost: "9", wantErr: true},
		{name: "above maximum", cost: "15", wantErr: true},
		{name: "non-numeric", cost: "fast", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", "")

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	password := "hunter2hunter2"
	hash, err := cfg.HashPassword(password)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, cfg.VerifyPassword(password, hash))
	assert.False(t, cfg.VerifyPassword("wrong-password", hash))

	// Salting makes repeated hashes of the same password differ.
	hash2, err := cfg.HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestPasswordConfig_PepperChangesVerification(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")

	t.Setenv("PASSWORD_PEPPER", "pepper-one")
	peppered, err := NewPasswordConfig()
	require.NoError(t, err)

	password := "hunter2hunter2"
	hash, err := peppered.HashPassword(password)
	require.NoError(t, err)
	require.True(t, peppered.VerifyPassword(password, hash))

	// A hash minted under one pepper must not verify under another.
	t.Setenv("PASSWORD_PEPPER", "pepper-two")
	rotated, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.False(t, rotated.VerifyPassword(password, hash))

	t.Setenv("PASSWORD_PEPPER", "")
	unpeppered, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.False(t, unpeppered.VerifyPassword(password, hash))
}

func TestPasswordConfig_VerifyRejectsMalformedHash(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	for _, hash := range []string{"", "not-a-hash", "$2a$10$truncated"} {
		assert.False(t, cfg.VerifyPassword("anything", hash), "hash %q", hash)
	}
}

func TestPasswordConfig_OverlongPasswordErrors(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	// bcrypt rejects inputs past 72 bytes instead of silently truncating.
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	hash, err := cfg.HashPassword(string(long))
	assert.Error(t, err)
	assert.Empty(t, hash)
}
