// Package keyring stores the PostgreSQL connection string outside of
// command-line flags, in the OS keyring or the environment.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/quickhire/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source identifies where a connection string was found.
type Source string

const (
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

// GetConnectionString retrieves the database connection string from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// ResolveConnectionString looks for a connection string in the
// QUICKHIRE_DB_CONNECTION environment variable first and the OS keyring second.
func ResolveConnectionString() (string, Source, error) {
	if connStr := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); connStr != "" {
		return connStr, SourceEnv, nil
	}
	connStr, err := GetConnectionString()
	if err != nil {
		return "", "", err
	}
	return connStr, SourceKeyring, nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// MaskPassword hides the password in a URL or DSN connection string for display.
func MaskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		idx := strings.Index(connStr, "://")
		remaining := connStr[idx+3:]
		if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
			userInfo := remaining[:atIdx]
			if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
				return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
			}
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(strings.ToLower(part), "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}
