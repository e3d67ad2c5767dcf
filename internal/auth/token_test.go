package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourvisto/backend/internal/auth"
)

func TestGenerateToken_UniqueAndHashed(t *testing.T) {
	tok1, hash1, err := auth.GenerateToken()
	require.NoError(t, err)
	tok2, hash2, err := auth.GenerateToken()
	require.NoError(t, err)

	assert.NotEmpty(t, tok1)
	assert.NotEqual(t, tok1, tok2)
	assert.NotEqual(t, hash1, hash2)

	// The stored hash must never equal the client-held token.
	assert.NotEqual(t, tok1, hash1)
	assert.Equal(t, auth.HashToken(tok1), hash1)
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, auth.HashToken("abc"), auth.HashToken("abc"))
	assert.NotEqual(t, auth.HashToken("abc"), auth.HashToken("abd"))
	assert.Len(t, auth.HashToken("abc"), 64) // hex-encoded SHA-256
}
