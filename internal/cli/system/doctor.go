package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/quickhire/internal/backup"
	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/storage"
)

type DoctorCmd struct{}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkReachable},
	{name: "Schema version", needsDB: true, run: checkSchema},
	{name: "Content catalog", run: checkCatalog},
	{name: "Plan integrity", needsDB: true, run: checkPlanIntegrity},
	{name: "Backups present", warnOnly: true, run: checkBackups},
	{name: "Clock", run: checkClock},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	failed := false
	reachable := false
	for i, c := range checks {
		if c.needsDB && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed = true
		}
		if i == 0 {
			reachable = err == nil
		}
	}

	ctx.Println()
	if failed {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkReachable(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ctx.Store.Ping(pingCtx)
}

func checkSchema(ctx *cli.Context) error {
	st, err := ctx.Store.SchemaStatus()
	if err != nil {
		return err
	}
	if !st.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'quickhire migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkCatalog(ctx *cli.Context) error {
	if ctx.Catalog == nil || ctx.Catalog.Len() == 0 {
		return errors.New("no technologies loaded")
	}
	return nil
}

// checkPlanIntegrity looks for live plans whose stored days do not match total_days.
func checkPlanIntegrity(ctx *cli.Context) error {
	bg := context.Background()
	plans, err := ctx.Services.Plans.List(bg, false)
	if err != nil {
		return err
	}
	var broken []string
	for _, p := range plans {
		days, err := ctx.Store.Query(bg, storage.TablePlanDays, storage.Query{
			Filters: []storage.Filter{storage.Eq("plan_id", p.ID)},
		})
		if err != nil {
			return err
		}
		if len(days) != p.TotalDays {
			broken = append(broken, fmt.Sprintf("%s (%d/%d days)", cli.ShortID(p.ID), len(days), p.TotalDays))
		}
	}
	if len(broken) > 0 {
		return fmt.Errorf("found %d incomplete plan(s): %v", len(broken), broken)
	}
	return nil
}

func checkBackups(ctx *cli.Context) error {
	if ctx.Store.Backend() != "sqlite" {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found; consider creating one with 'quickhire backup create'")
	}
	return nil
}

func checkClock(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
