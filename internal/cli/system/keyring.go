package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/keyring"
	"github.com/julianstephens/quickhire/internal/storage/postgres"
)

// KeyringSetCmd stores a PostgreSQL connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	err := postgres.ValidateConnString(cmd.ConnectionString)
	if errors.Is(err, postgres.ErrEmbeddedCredentials) {
		ctx.Println("Note: the connection string contains a password; it is stored as-is in the OS keyring.")
	} else if err != nil {
		return err
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}
	ctx.Println("✓ Connection string stored in OS keyring")
	ctx.Printf("  Use it with: quickhire --config %s <command>\n", cli.KeyringConfig)
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring; use 'quickhire keyring set' to store one")
	}
	if err != nil {
		return fmt.Errorf("failed to read keyring: %w", err)
	}
	ctx.Println(keyring.MaskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")
	if _, err := keyring.GetConnectionString(); err == nil {
		ctx.Println("✓ Connection string is stored")
	} else {
		ctx.Println("ℹ No connection string stored")
	}
	return nil
}
