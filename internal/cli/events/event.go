package events

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/utils"
)

type EventAddCmd struct {
	Title       string `arg:"" help:"Event title."`
	Type        string `name:"type" default:"workshop" enum:"workshop,hackathon,career-fair,webinar,deadline,meetup" help:"Event type."`
	Starts      string `required:"" help:"Start time (RFC3339, 'YYYY-MM-DD HH:MM' or YYYY-MM-DD)."`
	Ends        string `help:"End time. Defaults to one hour after the start."`
	Location    string `help:"Venue or 'Online'."`
	URL         string `name:"url" help:"Event link."`
	Description string `help:"Event description."`
	TZ          string `name:"tz" help:"Time zone for times without an offset. Defaults to local."`
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	loc, err := utils.LoadLocation(c.TZ)
	if err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}
	start, err := utils.ParseDateTime(c.Starts, loc)
	if err != nil {
		return err
	}
	end := start.Add(time.Hour)
	if c.Ends != "" {
		if end, err = utils.ParseDateTime(c.Ends, loc); err != nil {
			return err
		}
	}

	if err := ctx.Load(); err != nil {
		return err
	}
	e, err := ctx.Services.Events.Create(context.Background(), models.CareerEvent{
		Title:       c.Title,
		Description: c.Description,
		EventType:   models.EventType(c.Type),
		Location:    c.Location,
		StartsAt:    start.Format(time.RFC3339),
		EndsAt:      end.Format(time.RFC3339),
		URL:         c.URL,
	})
	if err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	ctx.Printf("✓ Added event %s (%s, %s)\n", e.ID, e.Title, cli.DisplayTime(e.StartsAt))
	return nil
}

type EventListCmd struct {
	From string `help:"Only events starting at or after this time."`
	To   string `help:"Only events starting before this time."`
}

func (c *EventListCmd) Run(ctx *cli.Context) error {
	var from, to time.Time
	var err error
	if c.From != "" {
		if from, err = utils.ParseDateTime(c.From, time.Local); err != nil {
			return err
		}
	}
	if c.To != "" {
		if to, err = utils.ParseDateTime(c.To, time.Local); err != nil {
			return err
		}
	}
	if err := ctx.Load(); err != nil {
		return err
	}
	list, err := ctx.Services.Events.List(context.Background(), from, to)
	if err != nil {
		return err
	}
	printEvents(ctx, list)
	return nil
}

type EventUpcomingCmd struct {
	Limit int `short:"n" default:"10" help:"Maximum number of events."`
}

func (c *EventUpcomingCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	list, err := ctx.Services.Events.Upcoming(context.Background(), ctx.Now(), c.Limit)
	if err != nil {
		return err
	}
	printEvents(ctx, list)
	return nil
}

func printEvents(ctx *cli.Context, list []models.CareerEvent) {
	if len(list) == 0 {
		ctx.Println("No events found.")
		return
	}
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{cli.ShortID(e.ID), cli.DisplayTime(e.StartsAt), cli.DisplayTime(e.EndsAt), e.Title, string(e.EventType), e.Location})
	}
	ctx.Println(cli.Table([]string{"ID", "Starts", "Ends", "Title", "Type", "Location"}, rows))
}

type EventDeleteCmd struct {
	ID string `arg:"" help:"Event ID or unique prefix."`
}

func (c *EventDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	list, err := ctx.Services.Events.List(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		return err
	}
	ids := make([]string, len(list))
	for i, e := range list {
		ids[i] = e.ID
	}
	id, err := cli.ResolveID("event", c.ID, ids)
	if err != nil {
		return err
	}
	if err := ctx.Services.Events.Delete(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	ctx.Printf("Deleted event %s\n", id)
	return nil
}
