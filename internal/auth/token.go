package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// TokenBytes is the entropy of generated API tokens.
const TokenBytes = 32

// TokenPrefix marks tokens issued by this service, making leaked tokens
// greppable in logs and config files.
const TokenPrefix = "sch_"

// GenerateToken creates a new random API token. The raw value is shown to
// the caller exactly once; only its hash is persisted.
func GenerateToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return TokenPrefix + base64.RawURLEncoding.EncodeToString(buf), nil
}
