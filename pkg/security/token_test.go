package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	id, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", -time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)

	other, err := NewTokenIssuer("another-secret", time.Hour)
	require.NoError(t, err)
	foreign, err := other.Issue(testUser())
	require.NoError(t, err)

	sign := func(method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "malformed.token.here"},
		{"signed with another secret", foreign},
		{"wrong algorithm", sign(jwt.SigningMethodHS512, issuer.key, jwt.MapClaims{"user_id": "7", "type": "access", "exp": exp})},
		{"missing expiry", sign(jwt.SigningMethodHS256, issuer.key, jwt.MapClaims{"user_id": "7", "type": "access"})},
		{"wrong type", sign(jwt.SigningMethodHS256, issuer.key, jwt.MapClaims{"user_id": "7", "type": "refresh", "exp": exp})},
		{"numeric user id", sign(jwt.SigningMethodHS256, issuer.key, jwt.MapClaims{"user_id": 7, "type": "access", "exp": exp})},
		{"zero user id", sign(jwt.SigningMethodHS256, issuer.key, jwt.MapClaims{"user_id": "0", "type": "access", "exp": exp})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Parse(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestDeriveKey_PurposeSeparation(t *testing.T) {
	a, err := DeriveKey("secret", "a")
	require.NoError(t, err)
	b, err := DeriveKey("secret", "b")
	require.NoError(t, err)

	assert.Len(t, a, keySize)
	assert.NotEqual(t, a, b)
}
