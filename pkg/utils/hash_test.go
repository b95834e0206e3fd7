package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pa55word")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-pa55word", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pa55word"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}

func TestGenerateRandomToken(t *testing.T) {
	a := GenerateRandomToken(32)
	b := GenerateRandomToken(32)

	require.NotEmpty(t, a)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestGenerateOTPCode(t *testing.T) {
	code := GenerateOTPCode(6)
	require.NotEmpty(t, code)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}
