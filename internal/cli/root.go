// Package cli holds the state shared by every quickhire command.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/quickhire/internal/backup"
	"github.com/julianstephens/quickhire/internal/content"
	"github.com/julianstephens/quickhire/internal/logger"
	"github.com/julianstephens/quickhire/internal/planner"
	"github.com/julianstephens/quickhire/internal/services"
	"github.com/julianstephens/quickhire/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Catalog   *content.Catalog
	Generator *planner.Generator
	Services  *services.Services
	Out       io.Writer
	Now       func() time.Time
	Debug     bool

	loaded bool
}

func NewContext(store storage.Provider, catalog *content.Catalog) *Context {
	return &Context{
		Store:     store,
		Catalog:   catalog,
		Generator: planner.New(catalog),
		Services:  services.New(store),
		Out:       os.Stdout,
		Now:       time.Now,
	}
}

// Load opens the store once. Commands that never touch the database skip it.
func (c *Context) Load() error {
	if c.loaded {
		return nil
	}
	if err := c.Store.Load(); err != nil {
		return err
	}
	c.loaded = true
	return nil
}

// Close releases the store if it was opened.
func (c *Context) Close() error {
	if !c.loaded {
		return nil
	}
	c.loaded = false
	return c.Store.Close()
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// PerformAutomaticBackup snapshots a SQLite database and logs, rather than
// returns, any failure.
func (c *Context) PerformAutomaticBackup() {
	if c.Store.Backend() != "sqlite" {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
