package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		for _, ch := range otp {
			assert.True(t, ch >= '0' && ch <= '9', "OTP must be decimal digits, got %q", otp)
		}
		seen[otp] = true
	}

	// 50 draws from a million values colliding down to one code would
	// mean the generator is broken
	assert.Greater(t, len(seen), 1)
}

func TestHashOTP(t *testing.T) {
	h1 := HashOTP("123456")
	h2 := HashOTP("123456")
	h3 := HashOTP("123457")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
	assert.NotContains(t, h1, "123456")
}
