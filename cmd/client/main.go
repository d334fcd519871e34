package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/gtstudio/internal/buildinfo"
	"github.com/dmitrijs2005/gtstudio/internal/client/cli"
	"github.com/dmitrijs2005/gtstudio/internal/client/config"
	"github.com/dmitrijs2005/gtstudio/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// Stdout belongs to the REPL, so diagnostics go to stderr.
	logger := logging.NewJSON(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
