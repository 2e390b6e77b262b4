package auth

import (
	"encoding/base64"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MinKeyBytes is the shortest accepted HMAC signing key (256 bits).
const MinKeyBytes = 32

// Config holds the process-wide credential settings. It is built once at
// startup and handed to the user repository.
type Config struct {
	SigningKey []byte
	TokenTTL   time.Duration
	Issuer     string
	BcryptCost int
}

// NewConfig decodes a base64 secret and checks it is long enough for HS256.
func NewConfig(encodedSecret string, ttl time.Duration, issuer string, bcryptCost int) (Config, error) {
	key, err := DecodeSecret(encodedSecret)
	if err != nil {
		return Config{}, err
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return Config{
		SigningKey: key,
		TokenTTL:   ttl,
		Issuer:     issuer,
		BcryptCost: bcryptCost,
	}, nil
}

// DecodeSecret decodes a standard base64 secret and enforces MinKeyBytes.
func DecodeSecret(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("jwt secret is not valid base64: %w", err)
	}
	if len(key) < MinKeyBytes {
		return nil, fmt.Errorf("jwt secret must decode to at least %d bytes, got %d", MinKeyBytes, len(key))
	}
	return key, nil
}

// HashPassword hashes a password with bcrypt at the configured cost.
func (c Config) HashPassword(password string) (string, error) {
	cost := c.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored hash.
func (c Config) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
