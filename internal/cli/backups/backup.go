package backups

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quickhire/internal/backup"
	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/constants"
)

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if ctx.Store.Backend() != "sqlite" {
		return nil, fmt.Errorf("backups are only supported for SQLite storage (current backend: %s)", ctx.Store.Backend())
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("✓ Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	list, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(list) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, b := range list {
		rows = append(rows, []string{b.Name(), b.Timestamp.Format("2006-01-02 15:04:05"), fmt.Sprintf("%.1f KB", float64(b.Size)/1024)})
	}
	ctx.Printf("%d backups, keeping the most recent %d\n", len(list), constants.MaxBackups)
	ctx.Println(cli.Table([]string{"File", "Created", "Size"}, rows))
	ctx.Printf("Backup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" optional:"" default:"latest" help:"Backup file name, path, or 'latest'."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Resolve(c.Backup)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Replace the current database with this backup?").
			Description(fmt.Sprintf("Restore from: %s\nStop any running 'quickhire serve' first. The current database is backed up before restoring.", path)).
			Value(&confirmed).
			WithTheme(huh.ThemeDracula()).
			Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirmed {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}
	safety, err := mgr.Restore(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	ctx.Printf("✓ Database restored from %s\n", path)
	if safety != "" {
		ctx.Printf("  Previous database saved as %s\n", safety)
	}
	return nil
}
