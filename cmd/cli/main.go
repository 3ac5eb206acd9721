package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/splitroom/internal/buildinfo"
	"github.com/dmitrijs2005/splitroom/internal/client/cli"
	"github.com/dmitrijs2005/splitroom/internal/client/config"
	"github.com/dmitrijs2005/splitroom/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.Setup()

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
