package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/quickhire/internal/cli"
	"github.com/julianstephens/quickhire/internal/constants"
	"github.com/julianstephens/quickhire/internal/server"
)

type ServeCmd struct {
	Addr         string   `help:"Address to listen on." env:"QUICKHIRE_ADDR" default:":8080"`
	AllowOrigins []string `help:"CORS origins to allow. All origins are allowed when empty." name:"allow-origin"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	srv := server.New(server.Config{
		Addr:         c.Addr,
		AllowOrigins: c.AllowOrigins,
		Debug:        ctx.Debug,
	}, server.Deps{
		Store:     ctx.Store,
		Generator: ctx.Generator,
		Services:  ctx.Services,
		Now:       ctx.Now,
	})

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("%s %s API listening on %s\n", constants.AppName, constants.Version, srv.Addr())
	return srv.Run(sigCtx)
}
