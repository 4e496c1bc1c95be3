// Package keyring stores habitual's secrets in the OS keyring: the database
// connection string and the token signing secret.
package keyring

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitual/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

const secretBytes = 32

func get(user string) (string, error) {
	v, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func set(user, value, what string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", what, err)
	}
	return nil
}

func del(user, what string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", what, err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string.
// Returns ErrNotFound if none is stored.
func GetConnectionString() (string, error) {
	return get(constants.KeyringDBUser)
}

func SetConnectionString(connStr string) error {
	return set(constants.KeyringDBUser, connStr, "connection string")
}

func DeleteConnectionString() error {
	return del(constants.KeyringDBUser, "connection string")
}

// GetSigningSecret retrieves the token signing secret.
// Returns ErrNotFound if none is stored.
func GetSigningSecret() (string, error) {
	return get(constants.KeyringSecretUser)
}

func SetSigningSecret(secret string) error {
	return set(constants.KeyringSecretUser, secret, "signing secret")
}

func DeleteSigningSecret() error {
	return del(constants.KeyringSecretUser, "signing secret")
}

// EnsureSigningSecret returns the stored signing secret, generating and
// storing a random one first if the keyring has none. created reports
// whether a new secret was generated.
func EnsureSigningSecret() (secret string, created bool, err error) {
	secret, err = GetSigningSecret()
	if err == nil {
		return secret, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", false, err
	}

	secret, err = GenerateSecret()
	if err != nil {
		return "", false, err
	}
	if err := SetSigningSecret(secret); err != nil {
		return "", false, err
	}
	return secret, true, nil
}

// GenerateSecret returns a random URL-safe secret.
func GenerateSecret() (string, error) {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
