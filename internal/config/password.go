package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// PasswordConfig holds configuration for password hashing and verification.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret mixed into every password
}

// NewPasswordConfig creates a new password configuration from environment
// variables. It reads BCRYPT_COST (default: 12) and optionally
// PASSWORD_PEPPER.
func NewPasswordConfig() (*PasswordConfig, error) {
	cost := 12
	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		parsed, err := strconv.Atoi(costStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
		}
		cost = parsed
	}

	config := &PasswordConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("PASSWORD_PEPPER"),
	}
	if err := config.normalize(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// HashPassword hashes a password using bcrypt.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a stored hash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw+c.Pepper)) == nil
}
