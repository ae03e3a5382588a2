package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/models"
)

type JobAddCmd struct {
	Company     string   `arg:"" help:"Hiring company."`
	Title       string   `arg:"" help:"Job title."`
	Location    string   `help:"Location or 'Remote'."`
	Type        string   `name:"type" default:"full-time" enum:"full-time,internship,part-time,contract" help:"Job type."`
	Level       string   `help:"Experience level, e.g. fresher or 0-2 years."`
	Description string   `help:"Job description."`
	URL         string   `name:"url" help:"Application link."`
	Tag         []string `help:"Skill tag. Repeatable."`
	Posted      string   `help:"Posting date (YYYY-MM-DD)."`
}

func (c *JobAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	job, err := ctx.Services.Jobs.Create(context.Background(), models.JobListing{
		Company:         c.Company,
		Title:           c.Title,
		Location:        c.Location,
		JobType:         models.JobType(c.Type),
		ExperienceLevel: c.Level,
		Description:     c.Description,
		ApplyURL:        c.URL,
		Tags:            c.Tag,
		PostedAt:        c.Posted,
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}
	ctx.Printf("✓ Added job %s (%s at %s)\n", job.ID, job.Title, job.Company)
	return nil
}

type JobListCmd struct {
	Keyword  string `arg:"" optional:"" help:"Search title, company, description and tags."`
	Location string `help:"Filter by location (substring)."`
	Type     string `name:"type" help:"Filter by job type."`
	Level    string `help:"Filter by experience level (substring)."`
	Limit    int    `short:"n" help:"Maximum number of results."`
}

func (c *JobListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	list, err := ctx.Services.Jobs.List(context.Background(), models.JobFilter{
		Keyword:         c.Keyword,
		Location:        c.Location,
		JobType:         models.JobType(c.Type),
		ExperienceLevel: c.Level,
		Limit:           c.Limit,
	})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No jobs found.")
		return nil
	}
	rows := make([][]string, 0, len(list))
	for _, j := range list {
		rows = append(rows, []string{cli.ShortID(j.ID), j.Title, j.Company, j.Location, string(j.JobType), strings.Join(j.Tags, ", ")})
	}
	ctx.Println(cli.Table([]string{"ID", "Title", "Company", "Location", "Type", "Tags"}, rows))
	return nil
}

func resolve(ctx *cli.Context, ref string) (string, error) {
	if err := ctx.Load(); err != nil {
		return "", err
	}
	list, err := ctx.Services.Jobs.List(context.Background(), models.JobFilter{Limit: cli.ResolveLimit})
	if err != nil {
		return "", err
	}
	ids := make([]string, len(list))
	for i, j := range list {
		ids[i] = j.ID
	}
	return cli.ResolveID("job", ref, ids)
}

type JobShowCmd struct {
	ID string `arg:"" help:"Job ID or unique prefix."`
}

func (c *JobShowCmd) Run(ctx *cli.Context) error {
	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	j, err := ctx.Services.Jobs.Get(context.Background(), id)
	if err != nil {
		return err
	}
	ctx.Println(cli.Heading(fmt.Sprintf("%s at %s", j.Title, j.Company)))
	ctx.Printf("Type: %s\n", j.JobType)
	for _, f := range [][2]string{
		{"Location", j.Location},
		{"Experience", j.ExperienceLevel},
		{"Posted", j.PostedAt},
		{"Apply", j.ApplyURL},
		{"Tags", strings.Join(j.Tags, ", ")},
	} {
		if f[1] != "" {
			ctx.Printf("%s: %s\n", f[0], f[1])
		}
	}
	if j.Description != "" {
		ctx.Printf("\n%s\n", j.Description)
	}
	return nil
}

type JobDeleteCmd struct {
	ID string `arg:"" help:"Job ID or unique prefix."`
}

func (c *JobDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Services.Jobs.Delete(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	ctx.Printf("Deleted job %s\n", id)
	return nil
}
