package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func newTestPasswordManager() *PasswordManager {
	return NewPasswordManager(&config.Config{Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost}})
}

func TestHashPasswordDigestNeverEqualsPlaintext(t *testing.T) {
	pm := newTestPasswordManager()

	for _, password := range []string{"secret", "hunter22", "correct horse battery staple"} {
		t.Run(password, func(t *testing.T) {
			digest, err := pm.HashPassword(password)
			require.NoError(t, err)

			assert.NotEqual(t, password, digest)
			assert.True(t, pm.VerifyPassword(digest, password))
			assert.False(t, pm.VerifyPassword(digest, password+"x"))
			assert.False(t, pm.VerifyPassword(digest, ""))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	pm := newTestPasswordManager()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", "12345", true},
		{"minimum length", "123456", false},
		{"maximum length", strings.Repeat("a", MaxPasswordLength), false},
		{"too long", strings.Repeat("a", MaxPasswordLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pm.ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPasswordManagerClampsInvalidCost(t *testing.T) {
	pm := NewPasswordManager(&config.Config{Security: config.SecurityConfig{BcryptCost: 99}})
	assert.Equal(t, bcrypt.DefaultCost, pm.cost)
}
