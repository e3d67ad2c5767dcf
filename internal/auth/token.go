// Package auth provides the pieces of the sign-in flow that talk to the
// outside world: session token generation/hashing and the Google OAuth
// provider client. Session persistence and profile resolution live in the
// service layer.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

const tokenBytes = 32 // 256 bits

// GenerateToken returns a new random session token and its SHA-256 hash.
// The token goes to the client; only the hash is ever stored, so the
// sessions table is useless to an attacker who reads it.
func GenerateToken() (token, hash string, err error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token = base64.RawURLEncoding.EncodeToString(buf)
	return token, HashToken(token), nil
}

// HashToken returns the hex-encoded SHA-256 hash of a session token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
