package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	TokenLength = 32
	TokenPrefix = "hd_"
)

// GenerateToken mints a new API token, returning both the plaintext to hand
// to the user and the hash to persist. Plaintext is never stored.
func GenerateToken() (plaintext string, hash []byte, err error) {
	randomBytes := make([]byte, TokenLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", nil, fmt.Errorf("generating random bytes: %w", err)
	}

	plaintext = TokenPrefix + base64.RawURLEncoding.EncodeToString(randomBytes)
	return plaintext, HashToken(plaintext), nil
}

// HashToken derives the storage hash of a token.
func HashToken(token string) []byte {
	hash := sha256.Sum256([]byte(token))
	return hash[:]
}

// ValidTokenFormat reports whether a presented token is structurally a
// huddle token, before any database lookup.
func ValidTokenFormat(token string) bool {
	if !strings.HasPrefix(token, TokenPrefix) {
		return false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(token, TokenPrefix))
	if err != nil {
		return false
	}
	return len(decoded) == TokenLength
}
