package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	expiry := 24 * time.Hour
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("user-123", "u@example.com", []string{"member", "admin"}, expiry)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, []string{"member", "admin"}, claims.Roles)
}

func TestJWTVerifier_Verify(t *testing.T) {
	issuer := NewJWTIssuer("secret")
	verifier := NewJWTVerifier("secret")

	valid, err := issuer.Issue("user-1", "a@example.com", []string{"member"}, time.Hour)
	require.NoError(t, err)
	expired, err := issuer.Issue("user-1", "a@example.com", []string{"member"}, -time.Minute)
	require.NoError(t, err)
	foreign, err := NewJWTIssuer("other").Issue("user-1", "a@example.com", nil, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantID  string
		wantErr bool
	}{
		{name: "valid", token: valid, wantID: "user-1"},
		{name: "expired", token: expired, wantErr: true},
		{name: "wrong secret", token: foreign, wantErr: true},
		{name: "garbage", token: "not.a.jwt", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := verifier.Verify(tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
