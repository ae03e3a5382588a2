package plans

import (
	"context"
	"fmt"

	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/services"
	"github.com/julianstephens/quickhire/internal/tui"
	"github.com/julianstephens/quickhire/internal/utils"
)

// resolvePlan expands a plan ID prefix against saved plans.
func resolvePlan(ctx *cli.Context, ref string, includeDeleted bool) (string, error) {
	if err := ctx.Load(); err != nil {
		return "", err
	}
	plans, err := ctx.Services.Plans.List(context.Background(), includeDeleted)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(plans))
	for i, p := range plans {
		ids[i] = p.ID
	}
	return cli.ResolveID("plan", ref, ids)
}

type PlanListCmd struct {
	Deleted bool `help:"Include deleted plans."`
}

func (c *PlanListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	plans, err := ctx.Services.Plans.List(context.Background(), c.Deleted)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		ctx.Println("No saved plans. Create one with: quickhire plan generate <technology> --save")
		return nil
	}

	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		status := ""
		if p.DeletedAt != nil {
			status = "deleted"
		}
		rows = append(rows, []string{
			cli.ShortID(p.ID), p.Title, string(p.ExplanationLevel),
			utils.FormatHours(p.DailyHours), cli.DisplayTime(p.CreatedAt), status,
		})
	}
	ctx.Println(cli.Table([]string{"ID", "Title", "Level", "Hours/day", "Created", "Status"}, rows))
	return nil
}

type PlanShowCmd struct {
	ID   string `arg:"" help:"Plan ID or unique prefix."`
	View bool   `help:"Open the plan in the interactive viewer."`
}

func (c *PlanShowCmd) Run(ctx *cli.Context) error {
	id, err := resolvePlan(ctx, c.ID, false)
	if err != nil {
		return err
	}
	plan, err := ctx.Services.Plans.Get(context.Background(), id)
	if err != nil {
		return err
	}

	if c.View {
		final, err := tui.Run(asGenerated(plan), nil, ctx.Services.Plans, plan.ID)
		if err != nil {
			return fmt.Errorf("plan viewer failed: %w", err)
		}
		return final.Err()
	}

	progress := services.Summarize(plan)
	ctx.Println(cli.Heading(plan.Title))
	ctx.Printf("ID: %s\nLevel: %s · %s/day · created %s\n", plan.ID, plan.ExplanationLevel, utils.FormatHours(plan.DailyHours), cli.DisplayTime(plan.CreatedAt))
	ctx.Printf("Progress: %s %d/%d days (%.0f%%)\n\n", cli.ProgressBar(progress.Percent, 20), progress.CompletedDays, progress.TotalDays, progress.Percent)
	for _, d := range plan.Days {
		ctx.Println(cli.RenderDay(d))
	}
	if progress.NextDay > 0 {
		ctx.Printf("Next up: day %d\n", progress.NextDay)
	} else {
		ctx.Println("All days complete.")
	}
	return nil
}

type PlanDoneCmd struct {
	ID  string `arg:"" help:"Plan ID or unique prefix."`
	Day int    `arg:"" help:"Day number to mark done."`
}

func (c *PlanDoneCmd) Run(ctx *cli.Context) error {
	return setDay(ctx, c.ID, c.Day, true)
}

type PlanUndoCmd struct {
	ID  string `arg:"" help:"Plan ID or unique prefix."`
	Day int    `arg:"" help:"Day number to mark not done."`
}

func (c *PlanUndoCmd) Run(ctx *cli.Context) error {
	return setDay(ctx, c.ID, c.Day, false)
}

func setDay(ctx *cli.Context, ref string, day int, done bool) error {
	id, err := resolvePlan(ctx, ref, false)
	if err != nil {
		return err
	}
	bg := context.Background()
	if _, err := ctx.Services.Plans.SetDayCompleted(bg, id, day, done); err != nil {
		return err
	}
	progress, err := ctx.Services.Plans.Progress(bg, id)
	if err != nil {
		return err
	}
	state := "done"
	if !done {
		state = "not done"
	}
	ctx.Printf("✓ Day %d marked %s. %s %d/%d days\n", day, state, cli.ProgressBar(progress.Percent, 20), progress.CompletedDays, progress.TotalDays)
	return nil
}

type PlanDeleteCmd struct {
	ID string `arg:"" help:"Plan ID or unique prefix."`
}

func (c *PlanDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolvePlan(ctx, c.ID, false)
	if err != nil {
		return err
	}
	if err := ctx.Services.Plans.Delete(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	ctx.Printf("Deleted plan %s (restore with: quickhire plan restore %s)\n", id, cli.ShortID(id))
	return nil
}

type PlanRestoreCmd struct {
	ID string `arg:"" help:"ID or unique prefix of a deleted plan."`
}

func (c *PlanRestoreCmd) Run(ctx *cli.Context) error {
	id, err := resolvePlan(ctx, c.ID, true)
	if err != nil {
		return err
	}
	if err := ctx.Services.Plans.Restore(context.Background(), id); err != nil {
		return fmt.Errorf("failed to restore plan: %w", err)
	}
	ctx.Printf("Restored plan %s\n", id)
	return nil
}

// asGenerated adapts a saved plan for the viewer.
func asGenerated(p models.StudyPlan) models.GeneratedPlan {
	return models.GeneratedPlan{
		Technology:       p.Technology,
		Title:            p.Title,
		TotalDays:        p.TotalDays,
		DailyHours:       p.DailyHours,
		ExplanationLevel: p.ExplanationLevel,
		Days:             p.Days,
	}
}
