package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/diplomadesk/internal/buildinfo"
	"github.com/dmitrijs2005/diplomadesk/internal/devserver"
	"github.com/dmitrijs2005/diplomadesk/internal/devserver/config"
	"github.com/dmitrijs2005/diplomadesk/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stdout, true)

	app, err := devserver.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
