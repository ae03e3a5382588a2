package plans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/services"
	"github.com/julianstephens/quickhire/internal/utils"
	"github.com/julianstephens/quickhire/internal/validation"
)

type PlanGenerateCmd struct {
	Technology string  `arg:"" optional:"" help:"Technology to study. Unknown names use the default track."`
	Days       int     `short:"d" default:"5" help:"Number of days (1-10)."`
	Hours      float64 `default:"2" help:"Study hours per day."`
	Level      string  `short:"l" default:"beginner" help:"Explanation level: beginner, intermediate or advanced."`
	Extended   bool    `short:"e" help:"Include explanations and interview questions."`
	Save       bool    `short:"s" help:"Save the generated plan."`
	JSON       bool    `name:"json" help:"Print the plan as JSON."`
}

func (c *PlanGenerateCmd) config() models.PlanConfig {
	level := models.ExplanationLevel(c.Level)
	if parsed, ok := models.ParseLevel(c.Level); ok {
		level = parsed
	}
	return models.PlanConfig{
		Technology:       c.Technology,
		TotalDays:        c.Days,
		DailyHours:       c.Hours,
		ExplanationLevel: level,
		Extended:         c.Extended,
	}
}

type generateOutput struct {
	Plan    models.GeneratedPlan `json:"plan"`
	Notices []string             `json:"notices,omitempty"`
	SavedID string               `json:"saved_id,omitempty"`
}

func (c *PlanGenerateCmd) Run(ctx *cli.Context) error {
	cfg := c.config()
	if err := validation.ValidatePlanConfig(cfg); err != nil {
		var errs validation.Errors
		if errors.As(err, &errs) {
			return fmt.Errorf("invalid plan options:\n%s", errs.FormatReport())
		}
		return err
	}

	out := generateOutput{
		Plan:    ctx.Generator.Generate(cfg),
		Notices: ctx.Generator.Notices(cfg),
	}
	if c.Save {
		id, err := savePlan(ctx, out.Plan)
		if err != nil {
			return err
		}
		out.SavedID = id
	}

	if c.JSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode plan: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	for _, n := range out.Notices {
		ctx.Printf("⚠ %s\n", n)
	}
	ctx.Println(cli.Heading(out.Plan.Title))
	ctx.Printf("%s · %s/day · %d days\n\n", out.Plan.ExplanationLevel, utils.FormatHours(out.Plan.DailyHours), out.Plan.TotalDays)
	for _, d := range out.Plan.Days {
		ctx.Println(cli.RenderDay(d))
	}
	if out.SavedID != "" {
		ctx.Printf("✓ Saved plan %s\n", out.SavedID)
	}
	return nil
}

// savePlan persists plan and returns its ID. A partial save is reported with
// the cleanup error so the user knows rows may remain.
func savePlan(ctx *cli.Context, plan models.GeneratedPlan) (string, error) {
	if err := ctx.Load(); err != nil {
		return "", err
	}
	saved, err := ctx.Services.Plans.Save(context.Background(), plan)
	if errors.Is(err, services.ErrPartialSave) {
		return "", fmt.Errorf("plan was only partly saved and could not be cleaned up: %w", err)
	}
	if err != nil {
		return "", fmt.Errorf("failed to save plan: %w", err)
	}
	return saved.ID, nil
}
