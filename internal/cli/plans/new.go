package plans

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/constants"
	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/tui"
)

type PlanNewCmd struct{}

func (c *PlanNewCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	fm := tui.NewPlanFormModel(models.PlanConfig{
		TotalDays:        constants.DefaultPlanDays,
		DailyHours:       constants.DefaultDailyHours,
		ExplanationLevel: models.LevelBeginner,
	})
	if err := tui.NewPlanForm(ctx.Catalog, fm).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			ctx.Println("Cancelled.")
			return nil
		}
		return err
	}
	cfg, err := fm.Config()
	if err != nil {
		return err
	}

	plan := ctx.Generator.Generate(cfg)
	final, err := tui.Run(plan, ctx.Generator.Notices(cfg), ctx.Services.Plans, "")
	if err != nil {
		return fmt.Errorf("plan viewer failed: %w", err)
	}
	if err := final.Err(); err != nil {
		return err
	}
	if id := final.SavedID(); id != "" {
		ctx.Printf("✓ Saved plan %s\n", id)
	} else {
		ctx.Println("Plan not saved.")
	}
	return nil
}
