package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/quickhire/internal/constants"
	apperrors "github.com/julianstephens/quickhire/internal/errors"
	"github.com/julianstephens/quickhire/internal/keyring"
	"github.com/julianstephens/quickhire/internal/storage"
	"github.com/julianstephens/quickhire/internal/storage/postgres"
	"github.com/julianstephens/quickhire/internal/storage/sqlite"
	"github.com/julianstephens/quickhire/internal/utils"
)

// KeyringConfig selects the connection string stored in the OS keyring.
const KeyringConfig = "keyring"

// OpenStore picks a backend for config without connecting to it.
//
// A connection string in QUICKHIRE_DB_CONNECTION wins. Otherwise "keyring"
// reads the stored connection string, a postgres:// URL is used directly
// provided it carries no password, and anything else is a SQLite file path.
func OpenStore(config string) (storage.Provider, error) {
	if connStr := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); connStr != "" {
		return openPostgres(connStr, false)
	}

	if config == KeyringConfig {
		connStr, _, err := keyring.ResolveConnectionString()
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, apperrors.WithHint(err, "store one with 'quickhire keyring set <connection-string>'")
		}
		if err != nil {
			return nil, err
		}
		return openPostgres(connStr, false)
	}

	if postgres.IsConnString(config) {
		return openPostgres(config, true)
	}

	path, err := utils.ExpandPath(config)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

// openPostgres validates connStr. Passwords are only rejected when the string
// came from a command-line flag.
func openPostgres(connStr string, fromFlag bool) (storage.Provider, error) {
	err := postgres.ValidateConnString(connStr)
	switch {
	case errors.Is(err, postgres.ErrEmbeddedCredentials) && fromFlag:
		return nil, apperrors.WithHint(
			fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed on the command line"),
			"use 'quickhire keyring set', "+constants.EnvDBConnection+" or a .pgpass file",
		)
	case err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials):
		return nil, err
	}
	return postgres.New(connStr), nil
}
