package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/storefront/internal/buildinfo"
	"github.com/dmitrijs2005/storefront/internal/client/cli"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("config: %v", err)
		return 2
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	defer logging.Flush(logger)

	app, err := cli.NewApp(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer app.Close()

	// "storefront whoami" runs one command; no arguments starts the REPL.
	if args := flagx.Positional(os.Args[1:], config.FlagNames); len(args) > 0 {
		if !app.Exec(ctx, args) {
			return 1
		}
		return 0
	}

	buildinfo.PrintBuildData(os.Stdout)
	app.Run(ctx)
	return 0
}
