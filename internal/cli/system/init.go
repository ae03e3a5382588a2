package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing SQLite database before initializing."`
	Source string `help:"Database path or connection string to copy existing data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Close(); err != nil {
		return err
	}
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if err := ctx.Load(); err != nil {
		return err
	}
	defer ctx.Close()
	ctx.Printf("Initialized quickhire storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source == "" {
		return nil
	}
	ctx.Printf("Copying data from: %s\n", c.Source)
	src, err := cli.OpenStore(c.Source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	counts, err := storage.CopyAll(context.Background(), src, ctx.Store)
	if err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	for _, table := range storage.TableNames() {
		ctx.Printf("  %-14s %d rows\n", table, counts[table])
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if ctx.Store.Backend() != "sqlite" {
		return fmt.Errorf("--force is only supported for SQLite storage")
	}
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, errDB := filepath.Abs(dbPath)
		absSrc, errSrc := filepath.Abs(c.Source)
		if errDB == nil && errSrc == nil && absDB == absSrc {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	if err := ctx.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}
