package system

import (
	"fmt"

	"github.com/julianstephens/quickhire/internal/cli"
)

type MigrateCmd struct {
	Status bool `help:"Only report the schema version and pending migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if c.Status {
		st, err := ctx.Store.SchemaStatus()
		if err != nil {
			return err
		}
		ctx.Printf("Schema version: %d (latest %d)\n", st.Current, st.Latest)
		for _, m := range st.Pending {
			ctx.Printf("  pending: %03d_%s\n", m.Version, m.Name)
		}
		return nil
	}

	count, err := ctx.Store.Migrate(func(msg string) { ctx.Println(msg) })
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
