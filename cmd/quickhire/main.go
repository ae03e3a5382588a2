package main

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/cli/backups"
	"github.com/julianstephens/quickhire/internal/cli/events"
	"github.com/julianstephens/quickhire/internal/cli/experiences"
	"github.com/julianstephens/quickhire/internal/cli/jobs"
	"github.com/julianstephens/quickhire/internal/cli/plans"
	"github.com/julianstephens/quickhire/internal/cli/system"
	"github.com/julianstephens/quickhire/internal/constants"
	"github.com/julianstephens/quickhire/internal/content"
	apperrors "github.com/julianstephens/quickhire/internal/errors"
	"github.com/julianstephens/quickhire/internal/logger"
	"github.com/julianstephens/quickhire/internal/storage/postgres"
	"github.com/julianstephens/quickhire/internal/utils"
)

type CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path, PostgreSQL connection string without a password, or 'keyring'." env:"QUICKHIRE_DB" default:"${config}"`
	Catalog string `help:"Directory of technology YAML files to use instead of the built-in catalog." env:"QUICKHIRE_CATALOG"`
	Debug   bool   `help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize quickhire storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the HTTP API."`
	Tech    struct {
		List plans.TechListCmd `cmd:"" help:"List technologies with study content." default:"1"`
	} `cmd:"" help:"Browse the content catalog."`
	Plan struct {
		Generate plans.PlanGenerateCmd `cmd:"" help:"Generate a study plan."`
		New      plans.PlanNewCmd      `cmd:"" help:"Build a plan interactively and review it day by day."`
		List     plans.PlanListCmd     `cmd:"" help:"List saved plans."`
		Show     plans.PlanShowCmd     `cmd:"" help:"Show a saved plan and its progress."`
		Done     plans.PlanDoneCmd     `cmd:"" help:"Mark a day of a plan done."`
		Undo     plans.PlanUndoCmd     `cmd:"" help:"Mark a day of a plan not done."`
		Delete   plans.PlanDeleteCmd   `cmd:"" help:"Delete a saved plan."`
		Restore  plans.PlanRestoreCmd  `cmd:"" help:"Restore a deleted plan."`
	} `cmd:"" help:"Generate and track study plans."`
	Experience struct {
		Add    experiences.ExperienceAddCmd    `cmd:"" help:"Share an interview experience."`
		List   experiences.ExperienceListCmd   `cmd:"" help:"List interview experiences."`
		Show   experiences.ExperienceShowCmd   `cmd:"" help:"Show an interview experience."`
		Delete experiences.ExperienceDeleteCmd `cmd:"" help:"Delete an interview experience."`
	} `cmd:"" help:"Manage interview experiences."`
	Job struct {
		Add    jobs.JobAddCmd    `cmd:"" help:"Add a job listing."`
		List   jobs.JobListCmd   `cmd:"" help:"Search job listings."`
		Show   jobs.JobShowCmd   `cmd:"" help:"Show a job listing."`
		Delete jobs.JobDeleteCmd `cmd:"" help:"Delete a job listing."`
	} `cmd:"" help:"Manage job listings."`
	Event struct {
		Add      events.EventAddCmd      `cmd:"" help:"Add a career event."`
		List     events.EventListCmd     `cmd:"" help:"List career events."`
		Upcoming events.EventUpcomingCmd `cmd:"" help:"List events that have not ended."`
		Delete   events.EventDeleteCmd   `cmd:"" help:"Delete a career event."`
	} `cmd:"" help:"Manage the career events calendar."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report where the connection string comes from."`
	} `cmd:"" help:"Manage the database connection string in the OS keyring."`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		apperrors.Fatal(err)
	}
	if err := run(os.Args[1:], os.Stdout); err != nil {
		apperrors.Fatal(err)
	}
}

func newParser(c *CLI, out io.Writer) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name(constants.AppName),
		kong.Description("Interview preparation: study plans, interview experiences, jobs and career events"),
		kong.UsageOnError(),
		kong.Writers(out, os.Stderr),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	)
}

// run parses args and executes the selected command, writing output to out.
func run(args []string, out io.Writer) error {
	var c CLI
	parser, err := newParser(&c, out)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{Debug: c.Debug, ConfigDir: configDir(c.Config)}); err != nil {
		return err
	}

	catalog, err := content.Load(c.Catalog)
	if err != nil {
		return err
	}
	store, err := cli.OpenStore(c.Config)
	if err != nil {
		return err
	}

	appCtx := cli.NewContext(store, catalog)
	appCtx.Out = out
	appCtx.Debug = c.Debug
	defer appCtx.Close()

	return kctx.Run(appCtx)
}

// configDir holds logs next to a SQLite database, or in the default config
// directory for remote and keyring stores.
func configDir(config string) string {
	if config != cli.KeyringConfig && !postgres.IsConnString(config) {
		if path, err := utils.ExpandPath(config); err == nil {
			return filepath.Dir(path)
		}
	}
	path, err := utils.ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return "."
	}
	return filepath.Dir(path)
}
