package experiences

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/models"
)

type ExperienceAddCmd struct {
	Company    string   `arg:"" help:"Company name."`
	Role       string   `arg:"" help:"Role interviewed for."`
	Date       string   `help:"Interview date (YYYY-MM-DD)."`
	Result     string   `default:"pending" enum:"selected,rejected,pending,withdrawn" help:"Outcome: selected, rejected, pending or withdrawn."`
	Difficulty string   `default:"medium" enum:"easy,medium,hard" help:"Difficulty: easy, medium or hard."`
	Summary    string   `help:"Short summary of the process."`
	Author     string   `help:"Who is sharing this experience."`
	Round      []string `required:"" help:"Interview round as 'Name: question; question'. Repeatable."`
}

func (c *ExperienceAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	e := models.Experience{
		Company:        c.Company,
		Role:           c.Role,
		ExperienceDate: c.Date,
		Result:         models.ExperienceResult(c.Result),
		Difficulty:     models.Difficulty(c.Difficulty),
		Summary:        c.Summary,
		Author:         c.Author,
		Rounds:         parseRounds(c.Round),
	}
	created, err := ctx.Services.Experiences.Create(context.Background(), e)
	if err != nil {
		return fmt.Errorf("failed to add experience: %w", err)
	}
	ctx.Printf("✓ Added experience %s (%s at %s)\n", created.ID, created.Role, created.Company)
	return nil
}

// parseRounds reads "Name: q1; q2" flag values. A value without a colon is a
// round with no recorded questions.
func parseRounds(values []string) []models.InterviewRound {
	rounds := make([]models.InterviewRound, 0, len(values))
	for _, v := range values {
		name, rest, _ := strings.Cut(v, ":")
		round := models.InterviewRound{Name: strings.TrimSpace(name)}
		for q := range strings.SplitSeq(rest, ";") {
			if q = strings.TrimSpace(q); q != "" {
				round.Questions = append(round.Questions, q)
			}
		}
		if round.Name != "" {
			rounds = append(rounds, round)
		}
	}
	return rounds
}

type ExperienceListCmd struct {
	Company string `help:"Filter by company (substring)."`
	Role    string `help:"Filter by role (substring)."`
	Result  string `help:"Filter by result."`
	Limit   int    `short:"n" help:"Maximum number of results."`
}

func (c *ExperienceListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	list, err := ctx.Services.Experiences.List(context.Background(), models.ExperienceFilter{
		Company: c.Company,
		Role:    c.Role,
		Result:  models.ExperienceResult(c.Result),
		Limit:   c.Limit,
	})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No experiences found.")
		return nil
	}
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{cli.ShortID(e.ID), e.Company, e.Role, string(e.Result), string(e.Difficulty), fmt.Sprint(len(e.Rounds)), e.ExperienceDate})
	}
	ctx.Println(cli.Table([]string{"ID", "Company", "Role", "Result", "Difficulty", "Rounds", "Date"}, rows))
	return nil
}

func resolve(ctx *cli.Context, ref string) (string, error) {
	if err := ctx.Load(); err != nil {
		return "", err
	}
	list, err := ctx.Services.Experiences.List(context.Background(), models.ExperienceFilter{Limit: cli.ResolveLimit})
	if err != nil {
		return "", err
	}
	ids := make([]string, len(list))
	for i, e := range list {
		ids[i] = e.ID
	}
	return cli.ResolveID("experience", ref, ids)
}

type ExperienceShowCmd struct {
	ID string `arg:"" help:"Experience ID or unique prefix."`
}

func (c *ExperienceShowCmd) Run(ctx *cli.Context) error {
	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	e, err := ctx.Services.Experiences.Get(context.Background(), id)
	if err != nil {
		return err
	}
	ctx.Println(cli.Heading(fmt.Sprintf("%s at %s", e.Role, e.Company)))
	ctx.Printf("Result: %s · Difficulty: %s\n", e.Result, e.Difficulty)
	if e.ExperienceDate != "" {
		ctx.Printf("Date: %s\n", e.ExperienceDate)
	}
	if e.Author != "" {
		ctx.Printf("Shared by: %s\n", e.Author)
	}
	if e.Summary != "" {
		ctx.Printf("\n%s\n", e.Summary)
	}
	for i, r := range e.Rounds {
		ctx.Printf("\n%s\n", cli.Heading(fmt.Sprintf("Round %d: %s", i+1, r.Name)))
		if r.Description != "" {
			ctx.Printf("  %s\n", r.Description)
		}
		for _, q := range r.Questions {
			ctx.Printf("  - %s\n", q)
		}
	}
	return nil
}

type ExperienceDeleteCmd struct {
	ID string `arg:"" help:"Experience ID or unique prefix."`
}

func (c *ExperienceDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Services.Experiences.Delete(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}
	ctx.Printf("Deleted experience %s\n", id)
	return nil
}
