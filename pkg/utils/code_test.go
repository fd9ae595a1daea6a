package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfirmationCode(t *testing.T) {
	code, err := GenerateConfirmationCode(6)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "non-digit %q in code", c)
	}

	// Non-positive length falls back to the default
	code, err = GenerateConfirmationCode(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}

func TestConfirmationCodeHashRoundTrip(t *testing.T) {
	code, err := GenerateConfirmationCode(6)
	require.NoError(t, err)

	hash, err := HashConfirmationCode(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.True(t, CheckConfirmationCode(code, hash))
	assert.False(t, CheckConfirmationCode("000000", hash))
	assert.False(t, CheckConfirmationCode(code, "not-a-hash"))
}
