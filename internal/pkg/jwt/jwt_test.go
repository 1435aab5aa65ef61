package jwt

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")

	token, expiresAt, err := svc.GenerateAccessToken(audit.Actor{ID: "hr-1", Name: "Awa"}, audit.RoleHR)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	userID, _ := decoded.Get("user_id")
	role, _ := decoded.Get("role")
	tokenType, _ := decoded.Get("type")
	assert.Equal(t, "hr-1", userID)
	assert.Equal(t, "hr", role)
	assert.Equal(t, "access", tokenType)
}

func TestGenerateAccessToken_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		exp   string
		actor audit.Actor
		role  audit.Role
	}{
		{name: "empty actor", exp: "1h", actor: audit.Actor{}, role: audit.RoleHR},
		{name: "unknown role", exp: "1h", actor: audit.Actor{ID: "x"}, role: "owner"},
		{name: "bad duration", exp: "soon", actor: audit.Actor{ID: "x"}, role: audit.RoleViewer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewJWTService("secret", tt.exp).GenerateAccessToken(tt.actor, tt.role)
			assert.Error(t, err)
		})
	}
}

func TestDecode_WrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a", "1h").GenerateAccessToken(audit.Actor{ID: "x"}, audit.RoleAdmin)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", "1h").JWTAuth().Decode(token)
	assert.Error(t, err)
}
