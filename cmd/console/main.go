package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/userdeck/userdeck/internal/buildinfo"
	"github.com/userdeck/userdeck/internal/console/cli"
	"github.com/userdeck/userdeck/internal/console/config"
	"github.com/userdeck/userdeck/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// Interactive output owns stdout; diagnostics go to stderr.
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
