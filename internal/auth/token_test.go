package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooladmin.com/internal/domain"
	"schooladmin.com/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:       42,
		Username: "alice01",
		Email:    "alice@example.com",
		Role:     model.RoleTeacher,
	}
}

func TestTokenIssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice01", claims.Username)
	assert.Equal(t, model.RoleTeacher, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenVerifyExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenVerifyMalformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJub25lIn0.e30."} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token: %q", tok)
	}
}
