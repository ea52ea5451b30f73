package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("Passw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd", hashed)

	// 同一明文两次哈希结果不同（加盐）
	hashed2, err := HashPassword("Passw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, hashed, hashed2)
}

func TestHashPasswordInvalidCost(t *testing.T) {
	// cost 越界时回退到默认值，而不是报错
	hashed, err := HashPassword("Passw0rd", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cost)
}

func TestCheckPassword(t *testing.T) {
	hashed, err := HashPassword("Passw0rd", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPassword("Passw0rd", hashed))
	assert.False(t, CheckPassword("passw0rd", hashed))
	assert.False(t, CheckPassword("", hashed))
	assert.False(t, CheckPassword("Passw0rd", "not-a-hash"))
}
