package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(ttl time.Duration) *JWTManager {
	return NewJWTManager("test-secret", "inventory-api", "inventory-clients", ttl)
}

func TestJWTRoundTrip(t *testing.T) {
	m := testManager(time.Hour)

	token, exp, err := m.Generate("user-1", "ana@example.com", "Ana", []string{"User", "Admin"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, []string{"User", "Admin"}, claims.Roles)
	assert.True(t, claims.HasRole("Admin"))
	assert.False(t, claims.HasRole("Auditor"))
}

func TestJWTExpired(t *testing.T) {
	m := testManager(-time.Minute)

	token, _, err := m.Generate("user-1", "ana@example.com", "Ana", nil)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTTamperedSignature(t *testing.T) {
	m := testManager(time.Hour)
	token, _, err := m.Generate("user-1", "ana@example.com", "Ana", nil)
	require.NoError(t, err)

	other := NewJWTManager("other-secret", m.Issuer, m.Audience, time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTWrongIssuerOrAudience(t *testing.T) {
	m := testManager(time.Hour)
	token, _, err := m.Generate("user-1", "ana@example.com", "Ana", nil)
	require.NoError(t, err)

	wrongIss := NewJWTManager("test-secret", "someone-else", m.Audience, time.Hour)
	_, err = wrongIss.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	wrongAud := NewJWTManager("test-secret", m.Issuer, "other-clients", time.Hour)
	_, err = wrongAud.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTGarbageToken(t *testing.T) {
	m := testManager(time.Hour)
	_, err := m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
