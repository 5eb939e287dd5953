package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewJWTConfig(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		expiration string
		issuer     string
		wantHours  int
		wantIssuer string
		wantErr    string
	}{
		{name: "defaults", secret: "s3cret", wantHours: 24, wantIssuer: DefaultJWTIssuer},
		{name: "custom", secret: "s3cret", expiration: "12", issuer: "candy", wantHours: 12, wantIssuer: "candy"},
		{name: "missing secret", wantErr: "JWT_SECRET is required"},
		{name: "zero hours", secret: "s3cret", expiration: "0", wantErr: "at least 1 hour"},
		{name: "not a number", secret: "s3cret", expiration: "soon", wantErr: "invalid JWT_EXPIRATION_HOURS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)
			t.Setenv("JWT_ISSUER", tt.issuer)

			cfg, err := NewJWTConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.secret, cfg.Secret)
			assert.Equal(t, tt.wantHours, cfg.ExpirationHours)
			assert.Equal(t, tt.wantIssuer, cfg.Issuer)
			assert.Equal(t, time.Duration(tt.wantHours)*time.Hour, cfg.TTL())
		})
	}
}

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		wantCost int
		wantErr  bool
	}{
		{name: "default cost", cost: "", wantCost: DefaultBcryptCost},
		{name: "lowest allowed", cost: "10", wantCost: 10},
		{name: "too low", cost: "9", wantErr: true},
		{name: "too high", cost: "15", wantErr: true},
		{name: "invalid", cost: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", "pepper")

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, "pepper", cfg.Pepper)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: bcrypt.MinCost, Pepper: "pepper"}

	hash, err := cfg.HashPassword("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.True(t, cfg.VerifyPassword("123456", hash))
	assert.False(t, cfg.VerifyPassword("1234568", hash))

	unpeppered := &PasswordConfig{BcryptCost: bcrypt.MinCost}
	assert.False(t, unpeppered.VerifyPassword("123456", hash), "pepper must be part of the hash input")
}
