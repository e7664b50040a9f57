package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinAPIKeyLength is the minimum accepted provider credential length
	MinAPIKeyLength = 32
)

var apiKeyPattern = regexp.MustCompile(`^[A-Za-z0-9+/=_-]+$`)

// ValidateAPIKey checks a provider credential syntactically: minimum length
// and base64-ish character set. It says nothing about whether the provider
// will accept the key.
func ValidateAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("api key is required")
	}
	if len(key) < MinAPIKeyLength {
		return fmt.Errorf("api key must be at least %d characters long", MinAPIKeyLength)
	}
	if !apiKeyPattern.MatchString(key) {
		return fmt.Errorf("api key contains invalid characters")
	}
	return nil
}

// MaskKey renders a credential safe for display: first 4 and last 4
// characters with the middle elided.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

// MaskAccountNumber hides all but the last 4 digits of an account number
func MaskAccountNumber(accountNumber string) string {
	if len(accountNumber) <= 4 {
		return accountNumber
	}
	return strings.Repeat("*", len(accountNumber)-4) + accountNumber[len(accountNumber)-4:]
}

// GenerateID returns a random hex identifier with the given prefix,
// e.g. GenerateID("pd") -> "pd-9f86d081...".
func GenerateID(prefix string) (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return prefix + "-" + hex.EncodeToString(bytes), nil
}
